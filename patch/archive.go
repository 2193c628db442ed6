package patch

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/zip"
	"github.com/nwaples/rardecode/v2"
	"github.com/spf13/afero"

	"softpatch/log"
)

// ErrNoMember is returned when an archive holds no file with the wanted
// extension.
var ErrNoMember = errors.New("no matching file in archive")

type archiveKind uint8

const (
	notArchive archiveKind = iota
	zipArchive
	sevenZipArchive
	rarArchive
)

func archiveKindOf(path string) archiveKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return zipArchive
	case ".7z":
		return sevenZipArchive
	case ".rar":
		return rarArchive
	}
	return notArchive
}

// IsArchive reports whether path names an archive patches can be read from.
func IsArchive(path string) bool {
	return archiveKindOf(path) != notArchive
}

func hasSuffixFold(name, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(name), strings.ToLower(suffix))
}

// readArchiveMember returns the content of the first file in the archive at
// path whose name ends with ext, compared case-insensitively.
func readArchiveMember(fsys afero.Fs, path, ext string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	var data []byte
	switch archiveKindOf(path) {
	case zipArchive:
		data, err = readZipMember(f, fi.Size(), ext)
	case sevenZipArchive:
		data, err = read7zMember(f, fi.Size(), ext)
	case rarArchive:
		data, err = readRarMember(f, ext)
	default:
		return nil, fmt.Errorf("%s: unsupported archive", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func readZipMember(r io.ReaderAt, size int64, ext string) ([]byte, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() || !hasSuffixFold(zf.Name, ext) {
			continue
		}
		log.ModArchive.DebugZ("zip member").String("name", zf.Name).End()

		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, ErrNoMember
}

func read7zMember(r io.ReaderAt, size int64, ext string) ([]byte, error) {
	sr, err := sevenzip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	for _, sf := range sr.File {
		if sf.FileInfo().IsDir() || !hasSuffixFold(sf.Name, ext) {
			continue
		}
		log.ModArchive.DebugZ("7z member").String("name", sf.Name).End()

		rc, err := sf.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, ErrNoMember
}

func readRarMember(r io.Reader, ext string) ([]byte, error) {
	rr, err := rardecode.NewReader(r)
	if err != nil {
		return nil, err
	}

	for {
		hdr, err := rr.Next()
		if err == io.EOF {
			return nil, ErrNoMember
		}
		if err != nil {
			return nil, err
		}
		if hdr.IsDir || !hasSuffixFold(hdr.Name, ext) {
			continue
		}
		log.ModArchive.DebugZ("rar member").String("name", hdr.Name).End()
		return io.ReadAll(rr)
	}
}
