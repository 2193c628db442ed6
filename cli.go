package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"softpatch/log"
)

type mode byte

const (
	applyMode   mode = iota // Apply the patch of one ROM
	batchMode               // Apply patches to several ROMs
	inspectMode             // List the records of a patch
	configMode              // Show or save the configuration
	versionMode             // Show softpatch version
)

type (
	CLI struct {
		Apply   Apply     `cmd:"" help:"Apply the patch of a ROM."`
		Batch   Batch     `cmd:"" help:"Apply patches to several ROMs."`
		Inspect Inspect   `cmd:"" help:"List the records of an IPS patch."`
		Config  ConfigCmd `cmd:"" help:"Show the effective configuration."`
		Version Version   `cmd:"" help:"Show softpatch version."`

		Log        logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		ConfigFile string     `name:"config" help:"${config_help}" type:"path"`

		mode mode
	}

	Apply struct {
		RomPath string `arg:"" name:"/path/to/rom" help:"ROM to patch." type:"existingfile"`

		Location string `name:"location" help:"${location_help}" type:"path"`
		Patch    string `name:"patch" short:"p" help:"Apply this patch file instead of looking for one." type:"existingfile"`
		Format   string `name:"format" help:"Patch format: auto, ips or bps." default:"auto" enum:"auto,ips,bps"`
		Headered string `name:"headered" help:"${headered_help}" placeholder:"ask|auto|yes|no"`
		Output   string `name:"output" short:"o" help:"${output_help}" type:"path"`
		JSON     bool   `name:"json" help:"Print a JSON report."`
	}

	Batch struct {
		RomPaths []string `arg:"" name:"/path/to/rom" help:"ROMs to patch."`

		Headered string `name:"headered" help:"${headered_help}" placeholder:"auto|yes|no"`
		OutDir   string `name:"out-dir" help:"Write patched ROMs in this directory." type:"path"`
		JSON     bool   `name:"json" help:"Print a JSON report."`
	}

	Inspect struct {
		PatchPath string `arg:"" name:"/path/to/patch" help:"IPS patch to inspect." type:"existingfile"`

		JSON bool `name:"json" help:"Print records as JSON."`
	}

	ConfigCmd struct {
		Save bool `name:"save" help:"Write the effective configuration to the configuration file."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"log_help":      "Enable logging for specified modules.",
	"config_help":   "Configuration file. (default: <user config dir>/softpatch/config.toml)",
	"location_help": "Where to look for the patch: a game directory, an archive or a file the patch is named after. (default: the ROM path)",
	"headered_help": "Whether IPS patches expect a headered ROM. 'auto' guesses from the ROM size. (default: from config)",
	"output_help":   "Patched ROM path. (default: ROM name followed by the configured suffix)",
}

// logModMask is the value of the --log flag.
type logModMask struct {
	mask log.ModuleMask
	set  bool
}

func (m *logModMask) UnmarshalText(text []byte) error {
	mask, err := log.ParseMask(string(text))
	if err != nil {
		return err
	}
	m.mask, m.set = mask, true
	return nil
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("softpatch"),
		kong.Description("Apply IPS and BPS soft patches to ROM images."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	cmd := ctx.Command()
	switch {
	case strings.HasPrefix(cmd, "apply"):
		cfg.mode = applyMode
	case strings.HasPrefix(cmd, "batch"):
		cfg.mode = batchMode
	case strings.HasPrefix(cmd, "inspect"):
		cfg.mode = inspectMode
	case cmd == "config":
		cfg.mode = configMode
	default:
		cfg.mode = versionMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if ctx.Command() == "" {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}
