package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	md2epub "github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/assets"
	"github.com/alnah/go-md2epub/internal/config"
	"github.com/alnah/go-md2epub/internal/convert"
	"github.com/alnah/go-md2epub/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoChapters      = errors.New("no chapter files specified (arguments or book.chapters in config)")
	ErrChapterNotFound = errors.New("chapter file not found")
	ErrBadExtension    = errors.New("chapter must have .md or .markdown extension")
)

// runConvert orchestrates one full book conversion.
func runConvert(positional []string, flags *convertFlags, stdout, stderr io.Writer) error {
	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlags(flags, cfg)

	chapters := positional
	if len(chapters) == 0 {
		chapters = cfg.Book.Chapters
	}
	if len(chapters) == 0 {
		return ErrNoChapters
	}
	for _, ch := range chapters {
		if ext := filepath.Ext(ch); ext != ".md" && ext != ".markdown" {
			return fmt.Errorf("%w: %s", ErrBadExtension, ch)
		}
		if !fileutil.FileExists(ch) {
			return fmt.Errorf("%w: %s", ErrChapterNotFound, ch)
		}
	}

	verbosef := func(format string, args ...interface{}) {
		if flags.common.verbose && !flags.common.quiet {
			fmt.Fprintf(stderr, format+"\n", args...)
		}
	}

	verbosef("Merging %d chapter(s)", len(chapters))
	source, err := mergeChapters(chapters)
	if err != nil {
		return err
	}

	formats := cfg.Output.Formats
	mode := md2epub.ModeEPUB
	if markdownOnly(formats) {
		mode = md2epub.ModeMarkdown
	}

	pandoc := &convert.PandocConverter{
		Runner:    &convert.ExecRunner{},
		Binary:    cfg.Pandoc.Binary,
		From:      cfg.Pandoc.From,
		ExtraArgs: cfg.Pandoc.ExtraArgs,
	}
	var backend convert.Converter = pandoc
	if flags.backend.useGoldmark {
		backend = convert.NewGoldmarkConverter()
	}

	opts := []md2epub.Option{
		md2epub.WithMode(mode),
		md2epub.WithGlobalNumbering(cfg.Numbering.Global),
		md2epub.WithConverter(backend),
	}
	if len(cfg.Numbering.TheoremKinds) > 0 {
		opts = append(opts, md2epub.WithTheoremKinds(cfg.Numbering.TheoremKinds))
	}

	verbosef("Resolving cross-references")
	result, err := md2epub.New(opts...).Process(source)
	if err != nil {
		return err
	}

	base := outputBase(cfg.Output.Path, chapters[0])
	created := make([]string, 0, len(formats))

	if containsFormat(formats, config.FormatMarkdown) {
		mdOut := base + ".md"
		if err := os.WriteFile(mdOut, []byte(result), 0o644); err != nil { // #nosec G306 -- book output is world-readable
			return fmt.Errorf("writing %s: %w", mdOut, err)
		}
		created = append(created, mdOut)
	}

	if needsEbook(formats) {
		mdPath, mdCleanup, err := fileutil.WriteTempFile(result, "md")
		if err != nil {
			return err
		}
		defer mdCleanup()

		cssPath := cfg.Output.Stylesheet
		if cssPath == "" {
			var cssCleanup func()
			cssPath, cssCleanup, err = assets.WriteDefaultStylesheet()
			if err != nil {
				return err
			}
			defer cssCleanup()
		}

		epubPath := base + ".epub"
		verbosef("Producing %s", epubPath)
		if err := pandoc.ProduceBook(mdPath, epubPath, cssPath, nil); err != nil {
			return err
		}
		created = append(created, epubPath)

		transcoder := &convert.Transcoder{Runner: &convert.ExecRunner{}, Binary: cfg.Calibre.Binary}
		for _, f := range formats {
			if f != config.FormatMobi && f != config.FormatAZW3 {
				continue
			}
			out := base + "." + f
			verbosef("Transcoding %s", out)
			if err := transcoder.Transcode(epubPath, out, cfg.Calibre.ExtraArgs); err != nil {
				return err
			}
			created = append(created, out)
		}
	}

	if !flags.common.quiet {
		for _, path := range created {
			fmt.Fprintf(stdout, "Created %s\n", path)
		}
	}
	return nil
}

// mergeFlags merges CLI flags into the config (CLI wins).
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if len(flags.formats) > 0 {
		cfg.Output.Formats = flags.formats
	}
	if flags.stylesheet != "" {
		cfg.Output.Stylesheet = flags.stylesheet
	}
	if flags.numbering.global {
		cfg.Numbering.Global = true
	}
	if len(flags.numbering.theoremKinds) > 0 {
		cfg.Numbering.TheoremKinds = flags.numbering.theoremKinds
	}
	if flags.backend.pandoc != "" {
		cfg.Pandoc.Binary = flags.backend.pandoc
	}
	if flags.backend.from != "" {
		cfg.Pandoc.From = flags.backend.from
	}
	if flags.backend.calibre != "" {
		cfg.Calibre.Binary = flags.backend.calibre
	}
}

// mergeChapters concatenates chapter files in reading order, separated by
// blank lines so chapter boundaries stay intact.
func mergeChapters(paths []string) (string, error) {
	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		lines, err := fileutil.ReadLines(path)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimRight(strings.Join(lines, "\n"), "\n"))
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}

// outputBase derives the extensionless output base path.
func outputBase(configured, firstChapter string) string {
	p := configured
	if p == "" {
		p = firstChapter
	}
	return strings.TrimSuffix(p, filepath.Ext(p))
}

func containsFormat(formats []string, want string) bool {
	for _, f := range formats {
		if f == want {
			return true
		}
	}
	return false
}

func markdownOnly(formats []string) bool {
	for _, f := range formats {
		if f != config.FormatMarkdown {
			return false
		}
	}
	return len(formats) > 0
}

func needsEbook(formats []string) bool {
	for _, f := range formats {
		if f == config.FormatEPUB || f == config.FormatMobi || f == config.FormatAZW3 {
			return true
		}
	}
	return false
}
