package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"plu/emu/log"
)

type mode byte

const (
	runMode     mode = iota // Run a ROM
	infoMode                // Show ROM infos
	versionMode             // Show plu version
	saveConfigMode          // Write the configuration file
)

type (
	CLI struct {
		Run     Run     `cmd:"" help:"Run ROM in emulator."`
		Info    Info    `cmd:"" help:"Show ROM infos."`
		Version Version `cmd:"" help:"Show plu version."`

		SaveConfig SaveConfig `cmd:"" name:"save-config" help:"Write the effective configuration, defaults included, to a TOML file."`

		Log     logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		LogFile *outfile   `name:"log-file" help:"Write logs to file." placeholder:"FILE|stdout|stderr"`
		Config  string     `name:"config" help:"${config_help}" type:"path"`

		mode mode
	}

	Run struct {
		RomPath  string `arg:"" name:"/path/to/rom" help:"ROM image, mapped at the top of the address space." type:"existingfile"`
		DiskPath string `arg:"" name:"/path/to/disk" help:"Disk image." type:"existingfile" optional:""`

		Trace      *outfile      `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		Speed      time.Duration `name:"speed" help:"${speed_help}" default:"-1ns"`
		LogLevel   int           `name:"log-level" help:"${log_level_help}" default:"-1"`
		Remote     string        `name:"remote" help:"Serve remote hosts on this address." placeholder:"ADDR"`
		DumpState  string        `name:"dump-state" help:"Write the final machine state to file, as JSON." type:"path"`
		SaveDisk   bool          `name:"save-disk" help:"Write the disk image back on exit, if modified."`
		CPUProfile string        `name:"cpuprofile" help:"${cpuprofile_help}" type:"path"`
	}

	Info struct {
		RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
	}

	Version struct{}

	SaveConfig struct {
		Output string `arg:"" name:"/path/to/config" help:"${save_config_help}" type:"path" optional:""`
	}
)

var vars = kong.Vars{
	"config_help":      "Configuration file. (default: config.toml in the user config directory)",
	"speed_help":       "Delay after each instruction, overrides the configuration.",
	"log_level_help":   "Engine log level (0-3), overrides the configuration.",
	"cpuprofile_help":  "Write CPU profile to file.",
	"log_help":         "Enable logging for specified modules.",
	"save_config_help": "Destination file. (default: the --config file, or config.toml in the user config directory)",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("plu"),
		kong.Description("65C02 single board computer emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch strings.Fields(ctx.Command())[0] {
	case "info":
		cfg.mode = infoMode
	case "version":
		cfg.mode = versionMode
	case "save-config":
		cfg.mode = saveConfigMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.

Control keys:
  Ctrl-Q  quit          Ctrl-R  reset
  Ctrl-P  pause/resume  Ctrl-N  single step
  Ctrl-L  log level     Ctrl-T  processor state
  Ctrl-D  memory page dump, the next page on each press
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
