package ips

import "bytes"

// patchOf concatenates the magic header and the given chunks.
func patchOf(chunks ...[]byte) []byte {
	return bytes.Join(append([][]byte{[]byte(Magic)}, chunks...), nil)
}

func copyRec(off uint32, data ...byte) []byte {
	rec := []byte{byte(off >> 16), byte(off >> 8), byte(off), byte(len(data) >> 8), byte(len(data))}
	return append(rec, data...)
}

func fillRec(off uint32, count uint16, value byte) []byte {
	return []byte{byte(off >> 16), byte(off >> 8), byte(off), 0, 0, byte(count >> 8), byte(count), value}
}

func eof() []byte { return []byte(eofMarker) }

func eofTruncate(size uint32) []byte {
	return append(eof(), byte(size>>16), byte(size>>8), byte(size))
}

// rom returns a buffer of n bytes holding a recognizable pattern.
func rom(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i*7 + 3)
	}
	return buf
}

func clone(buf []byte) []byte {
	return append(make([]byte, 0, len(buf)), buf...)
}
