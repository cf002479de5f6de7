// Package fileio reads inspection input files and writes compose output files.
package fileio

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"
)

// OutputPerm is the mode given to written compose files.
const OutputPerm fs.FileMode = 0o644

// ReadInput reads the whole input file. The file is closed on every return path.
func ReadInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newIOError("open", path, ErrInputNotFound, err)
		}
		return nil, newIOError("open", path, ErrReadFailed, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, newIOError("read", path, ErrReadFailed, err)
	}
	return data, nil
}

// WriteOutput replaces the file at path with data. Symlinks are followed.
// A regular (or not yet existing) target is replaced through a temporary file
// in the same directory, so readers see either the old file or the complete
// new one. Other targets, such as /dev/null or a dangling symlink, are opened
// and truncated in place.
func WriteOutput(path string, data []byte) error {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}

	info, err := os.Lstat(target)
	if err == nil && !info.Mode().IsRegular() {
		if err := writeInPlace(target, data); err != nil {
			return newIOError("write", path, ErrWriteFailed, err)
		}
		return nil
	}

	if err := atomicwriter.WriteFile(target, data, OutputPerm); err != nil {
		return newIOError("write", path, ErrWriteFailed, err)
	}
	return nil
}

// writeInPlace creates or truncates path and writes data to it.
func writeInPlace(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, OutputPerm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
