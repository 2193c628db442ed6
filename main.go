package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/BurntSushi/toml"

	"softpatch/log"
	"softpatch/patch"
)

func main() {
	args := parseArgs(os.Args[1:])
	cfg := LoadConfigOrDefault(args.ConfigFile)

	mask, err := log.ParseMask(strings.Join(cfg.Log.Modules, ","))
	checkf(err, "invalid log modules in configuration")
	if args.Log.set {
		mask = args.Log.mask
	}
	log.EnableDebugModules(mask)

	resolver := patch.NewFSResolver(cfg.Patch.Dir)
	fsys := resolver.Fs

	switch args.mode {
	case applyMode:
		d := &patch.Dispatcher{Resolver: resolver, Fs: fsys}
		rep, err := runApply(fsys, args.Apply, cfg, d, os.Stdin, os.Stderr)
		checkf(err, "failed to patch %s", args.Apply.RomPath)
		check(writeReports(os.Stdout, args.Apply.JSON, rep))
		if !rep.Result.Applied {
			os.Exit(1)
		}

	case batchMode:
		reps, err := runBatch(fsys, args.Batch, cfg, resolver)
		check(err)
		check(writeReports(os.Stdout, args.Batch.JSON, reps...))

	case inspectMode:
		check(runInspect(args.Inspect, os.Stdout))

	case configMode:
		if args.Config.Save {
			checkf(SaveConfig(args.ConfigFile, cfg), "failed to save configuration")
			fmt.Fprintln(os.Stderr, "configuration written to", ConfigPath(args.ConfigFile))
		}
		check(toml.NewEncoder(os.Stdout).Encode(cfg))

	case versionMode:
		fmt.Println("softpatch", version())
	}
}

func version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}

func check(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", err)
	os.Exit(1)
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s: %s\n", fmt.Sprintf(format, args...), err)
	os.Exit(1)
}
