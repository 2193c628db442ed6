package patch

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

// ipsCopy returns an IPS patch writing data at off.
func ipsCopy(off uint32, data ...byte) []byte {
	p := []byte("PATCH")
	p = append(p, byte(off>>16), byte(off>>8), byte(off), byte(len(data)>>8), byte(len(data)))
	p = append(p, data...)
	return append(p, "EOF"...)
}

type zipEntry struct {
	name string
	data []byte
}

func zipOf(tb testing.TB, entries ...zipEntry) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			tb.Fatal(err)
		}
		if _, err := w.Write(e.data); err != nil {
			tb.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatal(err)
	}
	return buf.Bytes()
}

func writeFiles(tb testing.TB, fsys afero.Fs, files map[string][]byte) {
	for path, data := range files {
		if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
			tb.Fatal(err)
		}
	}
}
