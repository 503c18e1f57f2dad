// ImageVault seals images into authenticated, self-describing containers
// under a 256-bit key and restores them byte for byte.
//
// The container carries the original file name, format, dimensions and a
// SHA3-256 checksum of the image next to the ciphertext, all covered by one
// AEAD tag (AES-256-GCM or ChaCha20-Poly1305). An optional Reed-Solomon
// armor protects stored containers against bit-rot.
package main

import (
	"os"

	"ImageVault/internal/cli"
)

// version is reported by "imagevault --version".
const version = "v1.0.0"

func main() {
	os.Exit(cli.Execute(version))
}
