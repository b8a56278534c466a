package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// numberingFlags holds cross-reference numbering flags.
type numberingFlags struct {
	global       bool
	theoremKinds []string
}

// backendFlags holds external tool flags.
type backendFlags struct {
	pandoc      string // pandoc binary override
	calibre     string // ebook-convert binary override
	from        string // pandoc source format descriptor
	useGoldmark bool   // pure-Go intermediate HTML backend
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	formats    []string
	stylesheet string
	numbering  numberingFlags
	backend    backendFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pipeline stages")
}

// addNumberingFlags adds numbering flags to a FlagSet.
func addNumberingFlags(fs *flag.FlagSet, f *numberingFlags) {
	fs.BoolVar(&f.global, "global-numbering", false, "number entities continuously across chapters")
	fs.StringSliceVar(&f.theoremKinds, "theorem-kinds", nil, "theorem-like kind abbreviations")
}

// addBackendFlags adds external tool flags to a FlagSet.
func addBackendFlags(fs *flag.FlagSet, f *backendFlags) {
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc binary path")
	fs.StringVar(&f.calibre, "calibre", "", "ebook-convert binary path")
	fs.StringVar(&f.from, "from", "", "pandoc source format descriptor")
	fs.BoolVar(&f.useGoldmark, "use-goldmark", false, "use the pure-Go intermediate HTML backend")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output base path")
	fs.StringSliceVarP(&f.formats, "format", "f", nil, "output formats: epub, markdown, mobi, azw3")
	fs.StringVar(&f.stylesheet, "stylesheet", "", "book CSS file (default: embedded)")

	addCommonFlags(fs, &f.common)
	addNumberingFlags(fs, &f.numbering)
	addBackendFlags(fs, &f.backend)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
