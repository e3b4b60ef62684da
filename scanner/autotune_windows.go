//go:build windows

package scanner

// No rotational probe on Windows; the throttle uses the neutral rate
// defaults.
func detectDiskType() string {
	return "unknown"
}
