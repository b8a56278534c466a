package md2epub

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-md2epub/internal/convert"
	"github.com/alnah/go-md2epub/internal/fileutil"
	"github.com/alnah/go-md2epub/internal/normalize"
	"github.com/alnah/go-md2epub/internal/refs"
)

// Compile-time interface implementation checks.
var (
	_ Converter = (*convert.PandocConverter)(nil)
	_ Converter = (*convert.GoldmarkConverter)(nil)
)

// Service orchestrates the cross-reference rewriting pipeline. Each call is
// independent and carries no state across invocations.
type Service struct {
	cfg       serviceConfig
	converter Converter
}

// New creates a Service with default configuration: EPUB mode, chapter-wise
// numbering, Pandoc backend.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			mode:         ModeEPUB,
			theoremKinds: refs.DefaultTheoremKinds(),
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.converter == nil {
		s.converter = convert.NewPandocConverter()
	}
	return s
}

// Process rewrites one complete Markdown source: external conversion to
// intermediate HTML, label parsing, reference table construction, source
// rewriting, and (in EPUB mode) structural normalization. The intermediate
// HTML file is deleted on all exit paths.
func (s *Service) Process(source string) (string, error) {
	if source == "" {
		return "", ErrEmptySource
	}

	mdPath, mdCleanup, err := fileutil.WriteTempFile(source, "md")
	if err != nil {
		return "", err
	}
	defer mdCleanup()

	htmlPath, htmlCleanup, err := fileutil.TempFilePath("html")
	if err != nil {
		return "", err
	}
	defer htmlCleanup()

	if err := s.converter.ConvertFile(mdPath, htmlPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIntermediateFailed, err)
	}

	htmlLines, err := fileutil.ReadLines(htmlPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIntermediateFailed, err)
	}

	kinds := refs.NewKindSet(s.cfg.theoremKinds)
	parsed, err := refs.ParseHTML(htmlLines, kinds, s.cfg.global)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLabelParse, err)
	}

	table := refs.Merge(parsed.Entities, parsed.Sections)
	rewriter := refs.NewRewriter(table, refs.RewriteOptions{
		Kinds:           kinds,
		EPUB:            s.cfg.mode == ModeEPUB,
		GlobalNumbering: s.cfg.global,
		HTMLRefTexts:    parsed.RefTexts,
	})

	lines := rewriter.Rewrite(strings.Split(source, "\n"))
	if s.cfg.mode == ModeEPUB {
		lines = normalize.Apply(lines)
	}
	return strings.Join(lines, "\n"), nil
}

// ProcessFile reads inputPath, processes its content, and writes the result
// to outputPath. When outputPath is empty the rewritten content is only
// returned, not written.
func (s *Service) ProcessFile(inputPath, outputPath string) (string, error) {
	content, err := os.ReadFile(inputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", inputPath, err)
	}

	result, err := s.Process(string(content))
	if err != nil {
		return "", err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result), 0o644); err != nil { // #nosec G306 -- book output is world-readable
			return "", fmt.Errorf("writing %s: %w", outputPath, err)
		}
	}
	return result, nil
}
