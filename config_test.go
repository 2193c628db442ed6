package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", cfgFilename)

	want := Config{
		Patch: PatchConfig{
			Dir:      "/data/patches",
			Headered: "auto",
			Suffix:   ".hack",
		},
		Log: LogConfig{Modules: []string{"ips", "patch"}},
	}
	if err := SaveConfig(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), cfgFilename)
	content := `
[patch]
dir = "patches"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	want := defaultConfig
	want.Patch.Dir = "patches"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigOrDefault(t *testing.T) {
	dir := t.TempDir()

	got := LoadConfigOrDefault(filepath.Join(dir, "missing.toml"))
	if diff := cmp.Diff(defaultConfig, got); diff != "" {
		t.Errorf("missing file: mismatch (-want +got):\n%s", diff)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[patch\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got = LoadConfigOrDefault(bad)
	if diff := cmp.Diff(defaultConfig, got); diff != "" {
		t.Errorf("bad file: mismatch (-want +got):\n%s", diff)
	}
}
