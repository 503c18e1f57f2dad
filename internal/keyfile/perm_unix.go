//go:build !windows

package keyfile

import (
	"os"

	"ImageVault/internal/log"
)

// warnIfShared logs when a keyfile is readable by group or others.
func warnIfShared(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.Mode().Perm()&0077 != 0 {
		log.Warn("Keyfile is accessible by other users", log.String("path", path), log.String("mode", info.Mode().Perm().String()))
	}
}
