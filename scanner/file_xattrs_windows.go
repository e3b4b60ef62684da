//go:build windows

package scanner

// Extended attributes in the POSIX sense do not exist on NTFS; the
// report field stays empty on Windows.
func getXattrs(path string, maxValueSize int) (map[string]string, error) {
	return nil, nil
}
