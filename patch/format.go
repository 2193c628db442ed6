package patch

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"softpatch/ips"
)

//go:generate go tool stringer -type=Format

// Format is a patch file format.
type Format uint8

const (
	IPS Format = iota
	BPS
)

// bpsMagic opens every BPS patch.
const bpsMagic = "BPS1"

// Ext returns the lowercase file extension of the format, dot included.
func (f Format) Ext() string {
	return "." + strings.ToLower(f.String())
}

// Base returns the name of the patch file expected inside a game directory.
func (f Format) Base() string {
	return "patch" + f.Ext()
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "ips":
		return IPS, true
	case "bps":
		return BPS, true
	}
	return 0, false
}

// Detect identifies the format of a patch from its magic bytes.
func Detect(data []byte) (Format, bool) {
	switch {
	case bytes.HasPrefix(data, []byte(ips.Magic)):
		return IPS, true
	case bytes.HasPrefix(data, []byte(bpsMagic)):
		return BPS, true
	}
	return 0, false
}

// FileFormat selects the format of the patch file at path: the one named by
// hint, or the one detected from data, then from the file extension. A hint
// that is not a format name, such as "auto", is ignored.
func FileFormat(hint, path string, data []byte) (Format, error) {
	if f, ok := ParseFormat(hint); ok {
		return f, nil
	}
	if f, ok := Detect(data); ok {
		return f, nil
	}
	if f, ok := ParseFormat(filepath.Ext(path)); ok {
		return f, nil
	}
	return 0, fmt.Errorf("%s: unknown patch format", path)
}
