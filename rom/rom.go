// Package rom loads and saves the ROM images patches are applied to.
package rom

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"softpatch/log"
)

// CopierHeaderSize is the size of the header prepended by some dumping
// devices (mostly SNES copiers). Patches usually address the data after it.
const CopierHeaderSize = 512

// INESMagic opens NES ROM files. Their patches address the whole file,
// header included.
const INESMagic = "NES\x1a"

type Image struct {
	Path string // Path the image was loaded from, or empty.
	Data []byte
}

// Open loads a rom from file.
func Open(fsys afero.Fs, path string) (*Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img := &Image{Path: path}
	if _, err := img.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return img, nil
}

// ReadFrom implements io.ReaderFrom interface
func (img *Image) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	img.Data = buf
	log.ModROM.DebugZ("rom loaded").String("path", img.Path).Int("size", len(buf)).Bool("copier", img.CopierHeader()).End()
	return int64(len(buf)), nil
}

// WriteFile writes the image to path, creating missing parent directories.
func (img *Image) WriteFile(fsys afero.Fs, path string) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fsys, path, img.Data, 0644)
}

// CopierHeader guesses whether the image carries a copier header: dumps are
// a multiple of 1kB, so a remainder of exactly 512 bytes is the header.
// iNES images have their own 16 bytes header and never carry one.
func (img *Image) CopierHeader() bool {
	if img.IsINES() {
		return false
	}
	return len(img.Data)%1024 == CopierHeaderSize
}

// IsINES indicates whether the image is a NES ROM in the iNES format.
func (img *Image) IsINES() bool {
	return len(img.Data) >= 16 && string(img.Data[:4]) == INESMagic
}

// Name returns the base name of the image path, without extension.
func (img *Image) Name() string {
	base := filepath.Base(img.Path)
	return base[:len(base)-len(filepath.Ext(base))]
}
