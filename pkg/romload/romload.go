// Package romload loads a cartridge ROM image from disk, transparently
// unpacking .zip, .gz, and .7z archives first.
package romload

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// Load reads path and returns the raw cartridge bytes, decompressing
// .zip/.gz/.7z containers as needed. A plain .gb/.gbc file (or anything
// else unrecognized) is returned as-is.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("romload: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return loadGzip(f)
	case ".zip":
		return loadZip(f)
	case ".7z":
		return loadSevenZip(f)
	default:
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("romload: %w", err)
		}
		return data, nil
	}
}

func loadGzip(f *os.File) ([]byte, error) {
	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("romload: gzip: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("romload: gzip: %w", err)
	}
	return data, nil
}

// loadZip returns the first .gb/.gbc member of a zip archive, falling
// back to the first member at all if none has a recognized extension.
func loadZip(f *os.File) ([]byte, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("romload: %w", err)
	}

	zr, err := zip.NewReader(f, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("romload: zip: %w", err)
	}
	if len(zr.File) == 0 {
		return nil, fmt.Errorf("romload: zip archive is empty")
	}

	entry := zr.File[0]
	for _, file := range zr.File {
		if isROMName(file.Name) {
			entry = file
			break
		}
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("romload: zip: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("romload: zip: %w", err)
	}
	return data, nil
}

// loadSevenZip mirrors loadZip for .7z archives, using sevenzip.Reader's
// zip-shaped File list.
func loadSevenZip(f *os.File) ([]byte, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("romload: %w", err)
	}

	zr, err := sevenzip.NewReader(f, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("romload: 7z: %w", err)
	}
	if len(zr.File) == 0 {
		return nil, fmt.Errorf("romload: 7z archive is empty")
	}

	entry := zr.File[0]
	for _, file := range zr.File {
		if isROMName(file.Name) {
			entry = file
			break
		}
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("romload: 7z: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("romload: 7z: %w", err)
	}
	return data, nil
}

func isROMName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".gb" || ext == ".gbc"
}
