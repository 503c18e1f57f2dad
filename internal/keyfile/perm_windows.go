//go:build windows

package keyfile

// Windows ACLs do not map to mode bits.
func warnIfShared(string) {}
