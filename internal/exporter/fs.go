package exporter

import (
	"errors"
	"io/fs"
	"os"
)

// FileSystem is the file access an export needs
type FileSystem interface {
	Exists(path string) (bool, error)
	MkdirAll(path string) error

	// WriteFile creates path and writes data to it. It never replaces an
	// existing file; that case fails with an error matching fs.ErrExist.
	WriteFile(path string, data []byte) error
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem implements FileSystem on the local disk
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (OSFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (OSFileSystem) WriteFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
