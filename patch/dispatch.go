// Package patch locates the patch associated with a game and applies it with
// the matching codec.
package patch

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/afero"

	"softpatch/ips"
	"softpatch/log"
)

// ErrNoCodec is returned when a BPS patch is found but no codec was
// configured to apply it.
var ErrNoCodec = errors.New("no BPS codec available")

// headerlessHint follows every BPS failure message.
const headerlessHint = "Please ensure you are using the correct (headerless) ROM for this patch."

// A HeaderPrompt decides whether an IPS patch expects a headered ROM. The
// IPS format has no way to tell, so front-ends usually ask the user.
type HeaderPrompt interface {
	Headered(location string) bool
}

// HeaderPromptFunc adapts a function to the HeaderPrompt interface.
type HeaderPromptFunc func(location string) bool

func (f HeaderPromptFunc) Headered(location string) bool { return f(location) }

// A BPSCodec applies a BPS patch to source and returns the patched image and
// the patch manifest. A non-nil error means source could not be patched.
type BPSCodec interface {
	Apply(source, patch []byte) (target []byte, manifest string, err error)
}

// Result is the outcome of an apply attempt.
type Result struct {
	Format  Format
	Applied bool

	// Headered is the answer of the header prompt, for IPS patches.
	Headered bool

	// Message describes the failure for display. Empty on success.
	Message string
	Err     error
}

func (res Result) String() string {
	if res.Applied {
		return res.Format.String() + " patch applied"
	}
	return res.Format.String() + ": " + res.Message
}

func failed(format Format, err error) Result {
	return Result{Format: format, Message: err.Error(), Err: err}
}

// Dispatcher resolves patches and applies them. Its zero value is not
// usable: Resolver must be set. A Dispatcher has no mutable state and can be
// shared by concurrent callers.
type Dispatcher struct {
	Resolver Resolver

	// Prompt is consulted before applying an IPS patch. A nil Prompt means
	// patches are applied to headerless ROMs.
	Prompt HeaderPrompt

	// BPS applies BPS patches. A nil codec makes every found BPS patch fail
	// with ErrNoCodec.
	BPS BPSCodec

	// Fs holds the patch files given to ApplyFile. nil is the host
	// filesystem.
	Fs afero.Fs
}

// ApplyIPS applies the IPS patch found for location to target.
func (d *Dispatcher) ApplyIPS(target []byte, location string) ([]byte, Result) {
	return d.resolveAndApply(target, location, IPS)
}

// ApplyBPS applies the BPS patch found for location to target.
func (d *Dispatcher) ApplyBPS(target []byte, location string) ([]byte, Result) {
	return d.resolveAndApply(target, location, BPS)
}

// Apply looks for an IPS patch then, if none could be applied, for a BPS
// patch. The BPS result is returned only when a BPS patch was found.
func (d *Dispatcher) Apply(target []byte, location string) ([]byte, Result) {
	out, res := d.ApplyIPS(target, location)
	if res.Applied {
		return out, res
	}

	bout, bres := d.ApplyBPS(target, location)
	if bres.Applied || !errors.Is(bres.Err, ErrNotFound) {
		return bout, bres
	}
	return out, res
}

func (d *Dispatcher) resolveAndApply(target []byte, location string, format Format) ([]byte, Result) {
	data, err := d.Resolver.Resolve(location, format)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.ModPatch.WarnZ("failed to read patch").Stringer("format", format).String("location", location).Error("err", err).End()
		}
		return target, failed(format, err)
	}
	return d.ApplyData(target, data, format, location)
}

// ApplyFile applies the patch file at patchPath, bypassing resolution. Its
// format is chosen by FileFormat from hint. patchPath is what the header
// prompt is asked about.
func (d *Dispatcher) ApplyFile(target []byte, patchPath, hint string) ([]byte, Result) {
	fsys := d.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	data, err := afero.ReadFile(fsys, patchPath)
	if err != nil {
		format, _ := FileFormat(hint, patchPath, nil)
		return target, failed(format, err)
	}
	format, err := FileFormat(hint, patchPath, data)
	if err != nil {
		return target, failed(format, err)
	}
	return d.ApplyData(target, data, format, patchPath)
}

// ApplyData applies the patch held in data, bypassing resolution. location
// is only passed to the header prompt.
func (d *Dispatcher) ApplyData(target, data []byte, format Format, location string) ([]byte, Result) {
	switch format {
	case IPS:
		return d.applyIPS(target, data, location)
	case BPS:
		return d.applyBPS(target, data)
	}
	return target, failed(format, fmt.Errorf("unsupported patch format %v", format))
}

func (d *Dispatcher) applyIPS(target, data []byte, location string) ([]byte, Result) {
	headered := d.Prompt != nil && d.Prompt.Headered(location)

	out, ok := ips.Apply(target, data, headered)
	if !ok {
		return target, failed(IPS, ips.Validate(data))
	}

	log.ModPatch.InfoZ("patch applied").Stringer("format", IPS).String("location", location).Bool("headered", headered).End()
	return out, Result{Format: IPS, Applied: true, Headered: headered}
}

func (d *Dispatcher) applyBPS(target, data []byte) ([]byte, Result) {
	if d.BPS == nil {
		return target, failed(BPS, ErrNoCodec)
	}

	// the codec gets its own copy: target stays intact whatever happens.
	out, _, err := d.BPS.Apply(slices.Clone(target), data)
	if err != nil {
		res := failed(BPS, err)
		res.Message = err.Error() + "\n\n" + headerlessHint
		log.ModPatch.WarnZ("BPS patch failed").Error("err", err).End()
		return target, res
	}

	log.ModPatch.InfoZ("patch applied").Stringer("format", BPS).Int("size", len(out)).End()
	return out, Result{Format: BPS, Applied: true}
}
