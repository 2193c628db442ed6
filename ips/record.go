package ips

import "fmt"

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind identifies the variant of a Record.
type Kind uint8

const (
	KindCopy Kind = iota
	KindFill
	KindTruncate
	KindTerminator
	KindOverrun
)

// A Record is one instruction decoded from an IPS stream. The concrete type
// is one of Copy, Fill, Truncate, Terminator or Overrun.
type Record interface {
	fmt.Stringer
	Kind() Kind
}

// Copy writes Data starting at Offset.
type Copy struct {
	Offset uint32 // 24-bit
	Data   []byte
}

// Fill writes Value Count times starting at Offset. It is encoded as a
// record with a zero length field.
type Fill struct {
	Offset uint32 // 24-bit
	Count  uint16
	Value  byte
}

// Truncate resizes the target to Size bytes. It can only appear as the last
// 6 bytes of a patch: "EOF" followed by a 24-bit size.
type Truncate struct {
	Size uint32 // 24-bit
}

// Terminator is the bare "EOF" marker closing a patch.
type Terminator struct{}

// Overrun is reported when the cursor reaches or passes the end of the patch
// without meeting either form of the "EOF" marker.
type Overrun struct{}

func (Copy) Kind() Kind       { return KindCopy }
func (Fill) Kind() Kind       { return KindFill }
func (Truncate) Kind() Kind   { return KindTruncate }
func (Terminator) Kind() Kind { return KindTerminator }
func (Overrun) Kind() Kind    { return KindOverrun }

// Span returns the half-open address range written by the record, before any
// header adjustment.
func (c Copy) Span() (start, end int64) {
	return int64(c.Offset), int64(c.Offset) + int64(len(c.Data))
}

// Span returns the half-open address range written by the record, before any
// header adjustment.
func (f Fill) Span() (start, end int64) {
	return int64(f.Offset), int64(f.Offset) + int64(f.Count)
}

func (c Copy) String() string {
	return fmt.Sprintf("%06X: copy %d bytes", c.Offset, len(c.Data))
}

func (f Fill) String() string {
	return fmt.Sprintf("%06X: fill %d bytes with %02X", f.Offset, f.Count, f.Value)
}

func (t Truncate) String() string {
	return fmt.Sprintf("EOF, truncate to %d bytes", t.Size)
}

func (Terminator) String() string { return "EOF" }
func (Overrun) String() string    { return "end of patch without EOF" }
