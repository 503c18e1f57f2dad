// Package keyfile stores and loads ImageVault keys as text files.
// A keyfile holds the 44-character base64 text form of a 32-byte key,
// followed by a newline.
package keyfile

import (
	"fmt"
	"os"

	"ImageVault/internal/crypto"
	"ImageVault/internal/errors"
	"ImageVault/internal/fileops"
	"ImageVault/internal/log"
	"ImageVault/internal/util"
)

// MaxSize bounds how much of a keyfile is read. Anything larger is not a key.
const MaxSize = 1 * util.KiB

// Perm is the mode keyfiles are created with.
const Perm os.FileMode = 0600

// Save writes the text form of key to path with owner-only permissions.
// Without overwrite an existing path is left untouched and ErrFileExists is returned.
func Save(path string, key *crypto.Key, overwrite bool) error {
	if key == nil || key.IsClosed() {
		return errors.ErrNoKey
	}
	text := crypto.EncodeKey(key)
	if text == "" {
		return errors.ErrKeyClosed
	}

	buf := []byte(text + "\n")
	defer crypto.SecureZero(buf)

	if err := fileops.WriteAtomic(path, buf, Perm, overwrite); err != nil {
		return err
	}
	log.Info("Keyfile saved", log.String("path", path), log.String("fingerprint", key.Fingerprint()))
	return nil
}

// Load reads a keyfile written by Save. Surrounding whitespace is ignored.
func Load(path string) (*crypto.Key, error) {
	data, err := fileops.ReadFile(path, MaxSize)
	if err != nil {
		if errors.Is(err, errors.ErrInputTooLarge) {
			return nil, fmt.Errorf("keyfile %s: %w", path, errors.ErrInvalidKeyFormat)
		}
		return nil, err
	}
	defer crypto.SecureZero(data)

	key, err := crypto.DecodeKey(string(data))
	if err != nil {
		return nil, fmt.Errorf("keyfile %s: %w", path, err)
	}
	warnIfShared(path)
	return key, nil
}
