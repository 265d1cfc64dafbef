// Command hightime normalizes, adds, subtracts, formats and encodes
// extended-precision instants and durations.
//
// Usage:
//
//	hightime <command> [flags] <values...>
//
// Commands:
//
//	norm     Sum durations and print the normalized result
//	add      Add durations to an instant or duration
//	sub      Subtract an instant or duration from another
//	fmt      Reprint instants and durations
//	now      Print the current time
//	encode   Encode a value as binary, CBOR, JSON, YAML or text
//	decode   Decode a hex CBOR value
//
// Instants are ISO 8601 text such as 2020-04-20T15:10:33.976508569718000529850102
// or "@" followed by Unix seconds. Durations are unit-suffixed components
// such as 1d2h or 3us250fs.
//
// Environment:
//
//	HIGHTIME_TIMESPEC    precision of printed instants (default auto)
//	HIGHTIME_TZ          zone for now and @timestamps (default naive local)
//	HIGHTIME_LOG_LEVEL   logrus level (default warn)
//
// Examples:
//
//	# Normalize a sum of durations
//	hightime norm 1.5h 90s 250fs
//
//	# Difference between two instants
//	hightime sub 2020-04-21T00:00:00 2020-04-20T23:59:59.000000000000000000000001
//
//	# Current time in UTC to the yoctosecond
//	hightime now -tz UTC -timespec yoctoseconds
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/noodlebox/hightime/cmd/hightime/commands"
)

const usage = `hightime - extended-precision time tool

Usage:
  hightime <command> [flags] <values...>

Commands:
  norm     Sum durations and print the normalized result
  add      Add durations to an instant or duration
  sub      Subtract an instant or duration from another
  fmt      Reprint instants and durations
  now      Print the current time
  encode   Encode a value as binary, CBOR, JSON, YAML or text
  decode   Decode a hex CBOR value

Use "hightime <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := commands.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := commands.SetupLogging(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level: %v\n", err)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "norm":
		runNorm(cfg, args)
	case "add":
		runAdd(cfg, args)
	case "sub":
		runSub(cfg, args)
	case "fmt":
		runFmt(cfg, args)
	case "now":
		runNow(cfg, args)
	case "encode":
		runEncode(cfg, args)
	case "decode":
		runDecode(cfg, args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// newFlagSet returns a flag set carrying the options every command shares,
// defaulted from cfg.
func newFlagSet(name, synopsis, args string, cfg commands.Config) (*flag.FlagSet, func() commands.Options) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "hightime %s - %s\n\nUsage:\n  hightime %s [flags] %s\n\nFlags:\n", name, synopsis, name, args)
		fs.PrintDefaults()
	}

	timespec := fs.String("timespec", cfg.Timespec, "Precision of printed instants (auto, hours .. yoctoseconds)")
	tz := fs.String("tz", cfg.TZ, "Zone for now and @timestamps; empty for naive local time")
	sep := fs.String("sep", "T", "Separator between date and time")
	goSyntax := fs.Bool("go", false, "Print values as Go expressions")

	return fs, func() commands.Options {
		cfg := cfg
		cfg.Timespec, cfg.TZ = *timespec, *tz

		opts := commands.DefaultOptions()
		var err error
		if opts.Spec, err = cfg.Spec(); err != nil {
			fatal(err)
		}
		if opts.Loc, err = cfg.Location(); err != nil {
			fatal(err)
		}
		if utf8.RuneCountInString(*sep) != 1 {
			fatal(fmt.Errorf("separator must be a single character, got %q", *sep))
		}
		opts.Sep, _ = utf8.DecodeRuneInString(*sep)
		opts.GoSyntax = *goSyntax
		logrus.WithFields(logrus.Fields{
			"command":  name,
			"timespec": opts.Spec,
			"tz":       cfg.TZ,
		}).Debug("options")
		return opts
	}
}

func parse(fs *flag.FlagSet, args []string, min int) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < min {
		fmt.Fprintf(os.Stderr, "Error: at least %d argument(s) required\n", min)
		fs.Usage()
		os.Exit(1)
	}
}

func fatal(err error) {
	logrus.WithError(err).Debug("command failed")
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runNorm(cfg commands.Config, args []string) {
	fs, options := newFlagSet("norm", "Sum durations and print the normalized result", "<duration...>", cfg)
	parse(fs, args, 1)
	if err := commands.RunNorm(fs.Args(), options(), os.Stdout); err != nil {
		fatal(err)
	}
}

func runAdd(cfg commands.Config, args []string) {
	fs, options := newFlagSet("add", "Add durations to an instant or duration", "<instant|duration> <duration...>", cfg)
	parse(fs, args, 2)
	if err := commands.RunAdd(fs.Arg(0), fs.Args()[1:], options(), os.Stdout); err != nil {
		fatal(err)
	}
}

func runSub(cfg commands.Config, args []string) {
	fs, options := newFlagSet("sub", "Subtract an instant or duration from another", "<a> <b>", cfg)
	parse(fs, args, 2)
	if err := commands.RunSub(fs.Arg(0), fs.Arg(1), options(), os.Stdout); err != nil {
		fatal(err)
	}
}

func runFmt(cfg commands.Config, args []string) {
	fs, options := newFlagSet("fmt", "Reprint instants and durations", "<value...>", cfg)
	parse(fs, args, 1)
	if err := commands.RunFmt(fs.Args(), options(), os.Stdout); err != nil {
		fatal(err)
	}
}

func runNow(cfg commands.Config, args []string) {
	fs, options := newFlagSet("now", "Print the current time", "", cfg)
	parse(fs, args, 0)
	if err := commands.RunNow(options(), os.Stdout); err != nil {
		fatal(err)
	}
}

func runEncode(cfg commands.Config, args []string) {
	fs, options := newFlagSet("encode", "Encode a value", "<value>", cfg)
	format := fs.String("format", "cbor", "Output format ("+strings.Join(commands.Formats, ", ")+")")
	parse(fs, args, 1)
	if err := commands.RunEncode(fs.Arg(0), *format, options(), os.Stdout); err != nil {
		fatal(err)
	}
}

func runDecode(cfg commands.Config, args []string) {
	fs, options := newFlagSet("decode", "Decode a hex CBOR value", "<hex>", cfg)
	kind := fs.String("kind", "instant", "Kind of value (instant, duration)")
	parse(fs, args, 1)
	if err := commands.RunDecode(fs.Arg(0), *kind, options(), os.Stdout); err != nil {
		fatal(err)
	}
}
