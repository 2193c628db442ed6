package main

import (
	"fmt"
	"io"

	"github.com/go-faster/jx"

	"softpatch/ips"
	"softpatch/patch"
)

// applyReport describes the patching of one ROM.
type applyReport struct {
	ROM    string
	Output string // empty when nothing was written
	Size   int    // size of the patched image
	Result patch.Result
}

func (r *applyReport) encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("rom", func(e *jx.Encoder) { e.Str(r.ROM) })
		e.Field("format", func(e *jx.Encoder) { e.Str(r.Result.Format.String()) })
		e.Field("applied", func(e *jx.Encoder) { e.Bool(r.Result.Applied) })
		if r.Result.Applied {
			e.Field("output", func(e *jx.Encoder) { e.Str(r.Output) })
			e.Field("size", func(e *jx.Encoder) { e.Int(r.Size) })
			if r.Result.Format == patch.IPS {
				e.Field("headered", func(e *jx.Encoder) { e.Bool(r.Result.Headered) })
			}
		} else {
			e.Field("message", func(e *jx.Encoder) { e.Str(r.Result.Message) })
		}
	})
}

func (r *applyReport) String() string {
	if !r.Result.Applied {
		return fmt.Sprintf("%s: %s", r.ROM, r.Result.Message)
	}
	return fmt.Sprintf("%s: %s patch applied, %d bytes written to %s", r.ROM, r.Result.Format, r.Size, r.Output)
}

func writeReports(w io.Writer, asJSON bool, reports ...*applyReport) error {
	if !asJSON {
		for _, r := range reports {
			if _, err := fmt.Fprintln(w, r); err != nil {
				return err
			}
		}
		return nil
	}

	var e jx.Encoder
	e.SetIdent(2)
	e.Arr(func(e *jx.Encoder) {
		for _, r := range reports {
			r.encode(e)
		}
	})
	_, err := w.Write(append(e.Bytes(), '\n'))
	return err
}

func writeRecords(w io.Writer, asJSON bool, recs []ips.Record) error {
	if !asJSON {
		for _, rec := range recs {
			if _, err := fmt.Fprintln(w, rec); err != nil {
				return err
			}
		}
		return nil
	}

	var e jx.Encoder
	e.SetIdent(2)
	e.Arr(func(e *jx.Encoder) {
		for _, rec := range recs {
			e.Obj(func(e *jx.Encoder) {
				e.Field("kind", func(e *jx.Encoder) { e.Str(rec.Kind().String()) })
				switch r := rec.(type) {
				case ips.Copy:
					e.Field("offset", func(e *jx.Encoder) { e.Int(int(r.Offset)) })
					e.Field("length", func(e *jx.Encoder) { e.Int(len(r.Data)) })
				case ips.Fill:
					e.Field("offset", func(e *jx.Encoder) { e.Int(int(r.Offset)) })
					e.Field("length", func(e *jx.Encoder) { e.Int(int(r.Count)) })
					e.Field("value", func(e *jx.Encoder) { e.Int(int(r.Value)) })
				case ips.Truncate:
					e.Field("size", func(e *jx.Encoder) { e.Int(int(r.Size)) })
				}
			})
		}
	})
	_, err := w.Write(append(e.Bytes(), '\n'))
	return err
}
