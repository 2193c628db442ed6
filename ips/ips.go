// Package ips applies patches in the IPS format to ROM images.
//
// An IPS patch is the "PATCH" magic followed by a sequence of records, each
// addressing the target with a 24-bit big-endian offset, and closed by an
// "EOF" marker optionally followed by a 24-bit size the target is truncated
// (or extended) to.
package ips

import (
	"softpatch/log"
)

// HeaderSize is the size of the copier header some ROM dumps carry in front
// of the data addressed by patches.
const HeaderSize = 512

// Apply patches target and returns it. When headered is true every record
// offset is lowered by HeaderSize; writes landing before the start of target
// are skipped. Writes past the end of target extend it with zeroes.
//
// Apply returns false, with target untouched, only if patch fails Validate.
// Records are applied as they are decoded and there is no rollback.
//
// A stream ending without an "EOF" marker is still reported as a success:
// the records decoded so far have already modified target, and other
// patchers accept such files.
func Apply(target, patch []byte, headered bool) ([]byte, bool) {
	if err := Validate(patch); err != nil {
		log.ModIPS.WarnZ("patch rejected").Error("err", err).Int("size", len(patch)).Blob("head", patch[:min(len(patch), len(Magic))]).End()
		return target, false
	}

	bias := 0
	if headered {
		bias = HeaderSize
	}

	for cursor := len(Magic); ; {
		rec, next := Next(patch, cursor)
		log.ModIPS.DebugZ("record").Int("cursor", cursor).Stringer("rec", rec).End()

		switch r := rec.(type) {
		case Truncate:
			return resize(target, int(r.Size)), true
		case Terminator:
			return target, true
		case Overrun:
			log.ModIPS.WarnZ("EOF marker not found, keeping applied records").Int("cursor", cursor).End()
			return target, true
		case Copy:
			target = r.apply(target, bias)
		case Fill:
			log.ModIPS.DebugZ("fill").Hex24("offset", r.Offset).Hex16("count", r.Count).Hex8("value", r.Value).End()
			target = r.apply(target, bias)
		}
		cursor = next
	}
}

func (c Copy) apply(target []byte, bias int) []byte {
	addr := int(c.Offset) - bias
	target = extend(target, addr+len(c.Data))
	for i, b := range c.Data {
		if addr+i >= 0 {
			target[addr+i] = b
		}
	}
	return target
}

func (f Fill) apply(target []byte, bias int) []byte {
	if f.Count == 0 {
		return target
	}
	addr := int(f.Offset) - bias
	target = extend(target, addr+int(f.Count))
	for i := range int(f.Count) {
		if addr+i >= 0 {
			target[addr+i] = f.Value
		}
	}
	return target
}

// extend grows buf with zeroes so that it holds at least n bytes.
func extend(buf []byte, n int) []byte {
	if n <= len(buf) {
		return buf
	}
	return resize(buf, n)
}

// resize returns buf truncated or zero-extended to exactly n bytes.
func resize(buf []byte, n int) []byte {
	if n <= len(buf) {
		return buf[:n]
	}
	if n <= cap(buf) {
		old := len(buf)
		buf = buf[:n]
		clear(buf[old:])
		return buf
	}
	grown := make([]byte, n)
	copy(grown, buf)
	return grown
}
