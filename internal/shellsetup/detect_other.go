//go:build !linux

package shellsetup

// DetectParentShellName is unavailable without procfs.
func DetectParentShellName() string {
	return ""
}
