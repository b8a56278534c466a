package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2epub <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a Markdown book to EPUB")
	fmt.Fprintln(w, "  init       Create a book.yaml and a starter chapter")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2epub help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2epub convert [chapters...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown book manuscript to an e-book.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  chapters    Chapter files in reading order (optional if config lists them)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output base path")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -f, --format <list>       Output formats: epub, markdown, mobi, azw3")
	fmt.Fprintln(w, "      --stylesheet <path>   Book CSS file (default: embedded)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Numbering:")
	fmt.Fprintln(w, "      --global-numbering    Continuous numbering across chapters")
	fmt.Fprintln(w, "      --theorem-kinds <l>   Theorem-like kind abbreviations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "External tools:")
	fmt.Fprintln(w, "      --pandoc <path>       Pandoc binary")
	fmt.Fprintln(w, "      --calibre <path>      ebook-convert binary")
	fmt.Fprintln(w, "      --from <s>            Pandoc source format descriptor")
	fmt.Fprintln(w, "      --use-goldmark        Pure-Go intermediate HTML backend")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show pipeline stages")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2epub init [dir]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create a book.yaml and a starter chapter in dir (default: current directory).")
}

// runHelp prints help for a specific command.
func runHelp(args []string, w io.Writer) {
	if len(args) == 0 {
		printUsage(w)
		return
	}
	switch args[0] {
	case "convert":
		printConvertUsage(w)
	case "init":
		printInitUsage(w)
	default:
		printUsage(w)
	}
}
