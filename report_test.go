package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-faster/jx"
	"github.com/google/go-cmp/cmp"

	"softpatch/ips"
	"softpatch/patch"
)

func TestWriteReportsJSON(t *testing.T) {
	reports := []*applyReport{
		{
			ROM:    "a.sfc",
			Output: "a (patched).sfc",
			Size:   1024,
			Result: patch.Result{Format: patch.IPS, Applied: true, Headered: true},
		},
		{
			ROM:    "b.sfc",
			Result: patch.Result{Format: patch.BPS, Message: "checksum mismatch", Err: errors.New("checksum mismatch")},
		},
	}

	var buf bytes.Buffer
	if err := writeReports(&buf, true, reports...); err != nil {
		t.Fatal(err)
	}

	var got []map[string]any
	err := jx.DecodeBytes(buf.Bytes()).Arr(func(d *jx.Decoder) error {
		obj := make(map[string]any)
		got = append(got, obj)
		return d.Obj(func(d *jx.Decoder, key string) error {
			switch d.Next() {
			case jx.String:
				s, err := d.Str()
				obj[key] = s
				return err
			case jx.Bool:
				b, err := d.Bool()
				obj[key] = b
				return err
			case jx.Number:
				n, err := d.Int()
				obj[key] = n
				return err
			}
			return d.Skip()
		})
	})
	if err != nil {
		t.Fatalf("invalid JSON %s: %v", buf.String(), err)
	}

	want := []map[string]any{
		{"rom": "a.sfc", "format": "IPS", "applied": true, "output": "a (patched).sfc", "size": 1024, "headered": true},
		{"rom": "b.sfc", "format": "BPS", "applied": false, "message": "checksum mismatch"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteReportsText(t *testing.T) {
	var buf bytes.Buffer
	err := writeReports(&buf, false,
		&applyReport{ROM: "a.sfc", Output: "out.sfc", Size: 10, Result: patch.Result{Format: patch.IPS, Applied: true}},
		&applyReport{ROM: "b.sfc", Result: patch.Result{Format: patch.IPS, Message: "no patch found"}},
	)
	if err != nil {
		t.Fatal(err)
	}

	want := "a.sfc: IPS patch applied, 10 bytes written to out.sfc\nb.sfc: no patch found\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRecordsJSON(t *testing.T) {
	recs := []ips.Record{
		ips.Copy{Offset: 0x10, Data: []byte{1, 2}},
		ips.Fill{Offset: 0x20, Count: 4, Value: 0x7F},
		ips.Truncate{Size: 64},
	}

	var buf bytes.Buffer
	if err := writeRecords(&buf, true, recs); err != nil {
		t.Fatal(err)
	}

	var kinds []string
	var offsets []int
	err := jx.DecodeBytes(buf.Bytes()).Arr(func(d *jx.Decoder) error {
		return d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "kind":
				s, err := d.Str()
				kinds = append(kinds, s)
				return err
			case "offset":
				n, err := d.Int()
				offsets = append(offsets, n)
				return err
			}
			return d.Skip()
		})
	})
	if err != nil {
		t.Fatalf("invalid JSON %s: %v", buf.String(), err)
	}

	if diff := cmp.Diff([]string{"Copy", "Fill", "Truncate"}, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0x10, 0x20}, offsets); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
}
