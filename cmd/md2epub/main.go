package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return nil
	}

	switch args[0] {
	case "convert":
		flags, positional, err := parseConvertFlags(args[1:])
		if err != nil {
			return err
		}
		return runConvert(positional, flags, stdout, stderr)
	case "init":
		return runInit(args[1:], stdout)
	case "version":
		fmt.Fprintf(stdout, "md2epub %s\n", Version)
		return nil
	case "help":
		runHelp(args[1:], stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command: %q", args[0])
	}
}
