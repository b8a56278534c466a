package main

import (
	"reflect"
	"testing"
)

func TestParseConvertFlags(t *testing.T) {
	args := []string{
		"-o", "out/book",
		"-f", "epub,mobi",
		"--stylesheet", "style.css",
		"--global-numbering",
		"--theorem-kinds", "thm,lem",
		"--pandoc", "/opt/pandoc",
		"--calibre", "/opt/ebook-convert",
		"--from", "markdown",
		"--use-goldmark",
		"-c", "book.yaml",
		"-q",
		"-v",
		"ch1.md", "ch2.md",
	}

	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	if flags.output != "out/book" {
		t.Errorf("output = %q", flags.output)
	}
	if want := []string{"epub", "mobi"}; !reflect.DeepEqual(flags.formats, want) {
		t.Errorf("formats = %v, want %v", flags.formats, want)
	}
	if flags.stylesheet != "style.css" {
		t.Errorf("stylesheet = %q", flags.stylesheet)
	}
	if !flags.numbering.global {
		t.Error("numbering.global = false")
	}
	if want := []string{"thm", "lem"}; !reflect.DeepEqual(flags.numbering.theoremKinds, want) {
		t.Errorf("theoremKinds = %v, want %v", flags.numbering.theoremKinds, want)
	}
	if flags.backend.pandoc != "/opt/pandoc" {
		t.Errorf("backend.pandoc = %q", flags.backend.pandoc)
	}
	if flags.backend.calibre != "/opt/ebook-convert" {
		t.Errorf("backend.calibre = %q", flags.backend.calibre)
	}
	if flags.backend.from != "markdown" {
		t.Errorf("backend.from = %q", flags.backend.from)
	}
	if !flags.backend.useGoldmark {
		t.Error("backend.useGoldmark = false")
	}
	if flags.common.config != "book.yaml" {
		t.Errorf("common.config = %q", flags.common.config)
	}
	if !flags.common.quiet || !flags.common.verbose {
		t.Errorf("common = %+v", flags.common)
	}
	if want := []string{"ch1.md", "ch2.md"}; !reflect.DeepEqual(positional, want) {
		t.Errorf("positional = %v, want %v", positional, want)
	}
}

func TestParseConvertFlagsDefaults(t *testing.T) {
	flags, positional, err := parseConvertFlags([]string{"book.md"})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}
	if flags.output != "" || len(flags.formats) != 0 || flags.backend.useGoldmark {
		t.Errorf("unexpected defaults: %+v", flags)
	}
	if want := []string{"book.md"}; !reflect.DeepEqual(positional, want) {
		t.Errorf("positional = %v, want %v", positional, want)
	}
}

func TestParseConvertFlagsUnknownFlag(t *testing.T) {
	if _, _, err := parseConvertFlags([]string{"--no-such-flag"}); err == nil {
		t.Error("parseConvertFlags() accepted an unknown flag")
	}
}
