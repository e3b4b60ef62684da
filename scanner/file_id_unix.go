//go:build !windows

package scanner

import (
	"fmt"
	"os"
	"syscall"
)

// getFileID yields a stable device+inode identity so reports can be
// correlated across renames.
func getFileID(path string, info os.FileInfo) string {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok || stat == nil {
		return ""
	}
	return fmt.Sprintf("dev=%d,inode=%d", stat.Dev, stat.Ino)
}
