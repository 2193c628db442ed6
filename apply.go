package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"softpatch/ips"
	"softpatch/log"
	"softpatch/patch"
	"softpatch/rom"
)

// outputPath returns the path of the patched ROM for romPath: the ROM name
// followed by suffix, in dir or next to the ROM when dir is empty.
func outputPath(romPath, dir, suffix string) string {
	if dir == "" {
		dir = filepath.Dir(romPath)
	}
	base := filepath.Base(romPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)] + suffix + ext
	if filepath.Join(dir, name) == filepath.Clean(romPath) {
		name = base[:len(base)-len(ext)] + " (patched)" + ext
	}
	return filepath.Join(dir, name)
}

// runApply patches one ROM. The returned error is set for ROM I/O failures,
// a patch that could not be applied is described by the report.
func runApply(fsys afero.Fs, args Apply, cfg Config, d *patch.Dispatcher, in io.Reader, out io.Writer) (*applyReport, error) {
	img, err := rom.Open(fsys, args.RomPath)
	if err != nil {
		return nil, err
	}

	mode, err := parseHeaderMode(args.Headered, cfg.Patch.Headered)
	if err != nil {
		return nil, err
	}
	d.Prompt = newHeaderPrompt(mode, img, in, out)

	location := args.Location
	if location == "" {
		location = args.RomPath
	}

	var (
		data []byte
		res  patch.Result
	)
	switch {
	case args.Patch != "":
		data, res = d.ApplyFile(img.Data, args.Patch, args.Format)
	case args.Format == "ips":
		data, res = d.ApplyIPS(img.Data, location)
	case args.Format == "bps":
		data, res = d.ApplyBPS(img.Data, location)
	default:
		data, res = d.Apply(img.Data, location)
	}

	report := &applyReport{ROM: args.RomPath, Result: res}
	if !res.Applied {
		return report, nil
	}

	img.Data = data
	report.Size = len(data)
	report.Output = args.Output
	if report.Output == "" {
		report.Output = outputPath(args.RomPath, "", cfg.Patch.Suffix)
	}
	if err := img.WriteFile(fsys, report.Output); err != nil {
		return nil, fmt.Errorf("failed to write patched rom: %w", err)
	}
	return report, nil
}

// runBatch patches several ROMs concurrently. Each ROM goes through its own
// dispatcher since header guesses depend on the ROM.
func runBatch(fsys afero.Fs, args Batch, cfg Config, resolver patch.Resolver) ([]*applyReport, error) {
	mode, err := parseHeaderMode(args.Headered, cfg.Patch.Headered)
	if err != nil {
		return nil, err
	}
	if mode == headerAsk {
		log.ModCLI.Warnf("cannot ask about headers in batch mode, guessing from ROM sizes")
		mode = headerAuto
	}

	reports := make([]*applyReport, len(args.RomPaths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, path := range args.RomPaths {
		g.Go(func() error {
			rlog := log.ModCLI.WithField("rom", path)

			d := &patch.Dispatcher{Resolver: resolver, Fs: fsys}
			rep, err := runApply(fsys, Apply{
				RomPath:  path,
				Format:   "auto",
				Headered: string(mode),
				Output:   outputPath(path, args.OutDir, cfg.Patch.Suffix),
			}, cfg, d, nil, io.Discard)
			if err != nil {
				rlog.Errorf("failed to patch: %v", err)
				return fmt.Errorf("%s: %w", path, err)
			}
			if rep.Result.Applied {
				rlog.Infof("patched into %s", rep.Output)
			} else {
				rlog.Warnf("not patched: %s", rep.Result.Message)
			}
			reports[i] = rep
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func runInspect(args Inspect, out io.Writer) error {
	buf, err := os.ReadFile(args.PatchPath)
	if err != nil {
		return err
	}
	recs, err := ips.Records(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", args.PatchPath, err)
	}
	return writeRecords(out, args.JSON, recs)
}
