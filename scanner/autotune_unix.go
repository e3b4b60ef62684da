//go:build !windows

package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// detectDiskType guesses the primary disk class so the throttle can pick
// sensible starting rates. Linux exposes this through the block layer;
// modern macs are assumed solid-state.
func detectDiskType() string {
	if runtime.GOOS == "darwin" {
		return "ssd"
	}
	if runtime.GOOS != "linux" {
		return "unknown"
	}
	entries, err := os.ReadDir("/sys/block")
	if err != nil {
		return "unknown"
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		b, err := os.ReadFile(filepath.Join("/sys/block", entry.Name(), "queue/rotational"))
		if err != nil {
			continue
		}
		switch strings.TrimSpace(string(b)) {
		case "1":
			return "hdd"
		case "0":
			return "ssd"
		}
	}
	return "unknown"
}
