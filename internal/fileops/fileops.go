// Package fileops provides the file operations around containers:
// size-limited reads, atomic writes through an ".incomplete" file, and
// traversal-safe output naming.
package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ImageVault/internal/errors"
)

// IncompleteSuffix marks an output that is still being written.
const IncompleteSuffix = ".incomplete"

// ReadFile reads path, refusing files larger than limit bytes.
// A limit <= 0 disables the check.
func ReadFile(path string, limit int64) ([]byte, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileError("open", path, err)
	}
	defer fin.Close()

	stat, err := fin.Stat()
	if err != nil {
		return nil, errors.NewFileError("stat", path, err)
	}
	if stat.IsDir() {
		return nil, errors.NewFileError("read", path, fmt.Errorf("is a directory"))
	}
	if limit > 0 && stat.Size() > limit {
		return nil, fmt.Errorf("%s: %w (%d > %d bytes)", path, errors.ErrInputTooLarge, stat.Size(), limit)
	}

	r := io.Reader(fin)
	if limit > 0 {
		// The file may grow between Stat and Read
		r = io.LimitReader(fin, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewFileError("read", path, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%s: %w", path, errors.ErrInputTooLarge)
	}
	return data, nil
}

// WriteAtomic writes data to a private path.*.incomplete file in the same
// directory, syncs it and publishes it as path. On failure the partial file
// is removed and path is left untouched.
//
// Without overwrite the file is published only if path does not exist yet,
// checked atomically, so of several concurrent writers exactly one succeeds
// and the rest get ErrFileExists. With overwrite the last writer wins and
// path always holds one writer's complete data.
func WriteAtomic(path string, data []byte, perm os.FileMode, overwrite bool) (retErr error) {
	if !overwrite && Exists(path) {
		return errors.NewFileError("write", path, errors.ErrFileExists)
	}

	// CreateTemp opens with O_EXCL: a fresh file, never a symlink or a
	// leftover with other permissions
	fout, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*"+IncompleteSuffix)
	if err != nil {
		return errors.NewFileError("create", path+IncompleteSuffix, err)
	}
	tmpPath := fout.Name()
	defer func() {
		if retErr != nil {
			_ = fout.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := fout.Chmod(perm); err != nil {
		return errors.NewFileError("chmod", tmpPath, err)
	}
	if _, err := fout.Write(data); err != nil {
		return errors.NewFileError("write", tmpPath, err)
	}

	// Sync to ensure data is flushed before publishing
	if err := fout.Sync(); err != nil {
		return errors.NewFileError("sync", tmpPath, err)
	}
	if err := fout.Close(); err != nil {
		return errors.NewFileError("close", tmpPath, err)
	}

	if overwrite {
		if err := os.Rename(tmpPath, path); err != nil {
			return errors.NewFileError("rename", path, err)
		}
		return nil
	}
	return publishExclusive(tmpPath, path, data, perm)
}

// publishExclusive moves tmpPath to path only if path does not exist.
// A hard link fails atomically on an existing target; filesystems without
// hard links fall back to an O_EXCL create of path.
func publishExclusive(tmpPath, path string, data []byte, perm os.FileMode) error {
	err := os.Link(tmpPath, path)
	if err == nil {
		_ = os.Remove(tmpPath)
		return nil
	}
	if os.IsExist(err) {
		_ = os.Remove(tmpPath)
		return errors.NewFileError("write", path, errors.ErrFileExists)
	}
	_ = os.Remove(tmpPath)
	return writeExclusive(path, data, perm)
}

func writeExclusive(path string, data []byte, perm os.FileMode) (retErr error) {
	fout, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		if os.IsExist(err) {
			return errors.NewFileError("write", path, errors.ErrFileExists)
		}
		return errors.NewFileError("create", path, err)
	}
	defer func() {
		if retErr != nil {
			_ = fout.Close()
			_ = os.Remove(path)
		}
	}()

	if _, err := fout.Write(data); err != nil {
		return errors.NewFileError("write", path, err)
	}
	if err := fout.Sync(); err != nil {
		return errors.NewFileError("sync", path, err)
	}
	if err := fout.Close(); err != nil {
		return errors.NewFileError("close", path, err)
	}
	return nil
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// SafeJoin joins dir with the final element of name, so a stored filename
// like "../../etc/passwd" can never escape dir.
func SafeJoin(dir, name string) (string, error) {
	base := name[strings.LastIndexAny(name, `/\`)+1:]
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == ".." || strings.ContainsRune(base, 0) {
		return "", errors.NewValidationError("filename", fmt.Sprintf("unusable output name %q", name))
	}
	if vol := filepath.VolumeName(base); vol != "" {
		return "", errors.NewValidationError("filename", fmt.Sprintf("output name %q names a volume", name))
	}
	return filepath.Join(dir, base), nil
}
