package ips

import "errors"

const (
	// Magic opens every IPS patch.
	Magic = "PATCH"

	// MinSize is the size of the smallest patch accepted by Apply.
	MinSize = 8

	eofMarker = "EOF"
)

var (
	ErrTooShort = errors.New("ips: patch shorter than 8 bytes")
	ErrBadMagic = errors.New("ips: missing PATCH header")
)

// Validate reports whether patch passes the checks Apply performs before
// touching the target.
func Validate(patch []byte) error {
	if len(patch) < MinSize {
		return ErrTooShort
	}
	if string(patch[:len(Magic)]) != Magic {
		return ErrBadMagic
	}
	return nil
}

// at returns patch[i], or 0 when i is out of range. Corrupt or cut patches
// thus decode to garbage instead of faulting.
func at(patch []byte, i int) byte {
	if i < 0 || i >= len(patch) {
		return 0
	}
	return patch[i]
}

func u16(patch []byte, i int) uint16 {
	return uint16(at(patch, i))<<8 | uint16(at(patch, i+1))
}

func u24(patch []byte, i int) uint32 {
	return uint32(at(patch, i))<<16 | uint32(at(patch, i+1))<<8 | uint32(at(patch, i+2))
}

func isEOF(patch []byte, i int) bool {
	return at(patch, i) == eofMarker[0] && at(patch, i+1) == eofMarker[1] && at(patch, i+2) == eofMarker[2]
}

// Next decodes the record found at cursor and returns it along with the
// cursor of the following record. The end conditions are tested first, in
// order: a truncating "EOF" occupying exactly the last 6 bytes, then a bare
// "EOF" occupying exactly the last 3 bytes. A cursor at or past the end of
// patch yields Overrun.
//
// Next does not check the header; cursor normally starts at len(Magic).
func Next(patch []byte, cursor int) (Record, int) {
	n := len(patch)
	if cursor == n-6 && isEOF(patch, cursor) {
		return Truncate{Size: u24(patch, cursor+3)}, n
	}
	if cursor == n-3 && isEOF(patch, cursor) {
		return Terminator{}, n
	}
	if cursor >= n {
		return Overrun{}, cursor
	}

	offset := u24(patch, cursor)
	length := u16(patch, cursor+3)
	cursor += 5

	if length == 0 {
		fill := Fill{
			Offset: offset,
			Count:  u16(patch, cursor),
			Value:  at(patch, cursor+2),
		}
		return fill, cursor + 3
	}

	data := make([]byte, length)
	for i := range data {
		data[i] = at(patch, cursor+i)
	}
	return Copy{Offset: offset, Data: data}, cursor + int(length)
}

// Records decodes the whole stream. The last record is always a Truncate,
// a Terminator or an Overrun.
func Records(patch []byte) ([]Record, error) {
	if err := Validate(patch); err != nil {
		return nil, err
	}

	var recs []Record
	for cursor := len(Magic); ; {
		rec, next := Next(patch, cursor)
		recs = append(recs, rec)
		switch rec.(type) {
		case Truncate, Terminator, Overrun:
			return recs, nil
		}
		cursor = next
	}
}
