package rom

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestCopierHeader(t *testing.T) {
	tests := []struct {
		size int
		want bool
	}{
		{0, false},
		{512, true},
		{1024, false},
		{0x80000, false},
		{0x80200, true},
		{0x80201, false},
	}

	for _, tt := range tests {
		img := &Image{Data: make([]byte, tt.size)}
		if got := img.CopierHeader(); got != tt.want {
			t.Errorf("CopierHeader() with %d bytes = %t, want %t", tt.size, got, tt.want)
		}
	}

	nes := append([]byte(INESMagic), make([]byte, 0x80200-4)...)
	if (&Image{Data: nes}).CopierHeader() {
		t.Error("CopierHeader() = true on an iNES image")
	}
}

func TestIsINES(t *testing.T) {
	nes := append([]byte(INESMagic), make([]byte, 12)...)
	if !(&Image{Data: nes}).IsINES() {
		t.Error("IsINES() = false on an iNES header")
	}
	if (&Image{Data: nes[:8]}).IsINES() {
		t.Error("IsINES() = true on a truncated header")
	}
	if (&Image{Data: make([]byte, 16)}).IsINES() {
		t.Error("IsINES() = true without magic")
	}
}

func TestOpenWrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	data := bytes.Repeat([]byte{0xEA}, 1536)

	path := "/games/game.sfc"
	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		t.Fatal(err)
	}

	img, err := Open(fsys, path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(data, img.Data); diff != "" {
		t.Fatalf("Open() data mismatch (-want +got):\n%s", diff)
	}
	if img.Name() != "game" {
		t.Errorf("Name() = %q, want %q", img.Name(), "game")
	}

	out := "/out/patched/game.sfc"
	img.Data[0] = 0
	if err := img.WriteFile(fsys, out); err != nil {
		t.Fatal(err)
	}
	written, err := afero.ReadFile(fsys, out)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(img.Data, written); diff != "" {
		t.Errorf("WriteFile() mismatch (-want +got):\n%s", diff)
	}

	if _, err := Open(fsys, "/games/missing.sfc"); err == nil {
		t.Error("Open() on a missing file succeeded")
	}
}

func TestOpenHostFs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.nes")
	nes := append([]byte(INESMagic), make([]byte, 12)...)
	if err := os.WriteFile(path, nes, 0644); err != nil {
		t.Fatal(err)
	}

	img, err := Open(afero.NewOsFs(), path)
	if err != nil {
		t.Fatal(err)
	}
	if !img.IsINES() || img.CopierHeader() {
		t.Errorf("IsINES() = %t, CopierHeader() = %t", img.IsINES(), img.CopierHeader())
	}
}
