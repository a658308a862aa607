package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file into its package directory.
func WriteFiles(files []GeneratedFile) error {
	for i := range files {
		file := &files[i]

		err := os.MkdirAll(file.Dir, dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		err = os.WriteFile(file.Path(), file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Path(), err)
		}
	}

	return nil
}

// StaleFile is a generated file whose copy on disk is missing or outdated.
type StaleFile struct {
	Path    string
	Missing bool
}

// String returns a human-readable description.
func (s StaleFile) String() string {
	if s.Missing {
		return s.Path + ": missing"
	}

	return s.Path + ": out of date"
}

// Stale compares generated files with their copies on disk.
func Stale(files []GeneratedFile) ([]StaleFile, error) {
	var stale []StaleFile

	for i := range files {
		file := &files[i]

		onDisk, err := os.ReadFile(file.Path())
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, StaleFile{Path: file.Path(), Missing: true})
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", file.Path(), err)
		}

		if !bytes.Equal(onDisk, file.Content) {
			stale = append(stale, StaleFile{Path: file.Path()})
		}
	}

	return stale, nil
}
