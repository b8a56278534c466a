package md2epub

import (
	"github.com/alnah/go-md2epub/internal/refs"
)

// Converter produces the intermediate HTML document for one Markdown
// source file. The default implementation shells out to Pandoc.
type Converter interface {
	ConvertFile(inputPath, outputPath string) error
}

// Mode selects the rewriting target.
type Mode int

const (
	// ModeEPUB targets e-book output: equation numbers render as
	// \qquad(n) (many readers cannot render \tag), and structural
	// normalization (parts, appendices, math fencing) is applied.
	ModeEPUB Mode = iota
	// ModeMarkdown targets a plain Markdown intermediate: equation numbers
	// render as \tag{n} and structural normalization is skipped.
	ModeMarkdown
)

// DefaultTheoremKinds returns the default theorem-like kind abbreviations.
func DefaultTheoremKinds() []string {
	return refs.DefaultTheoremKinds()
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	mode         Mode
	global       bool
	theoremKinds []string
}

// WithMode sets the rewriting target. Default is ModeEPUB.
func WithMode(m Mode) Option {
	return func(s *Service) {
		s.cfg.mode = m
	}
}

// WithGlobalNumbering switches between continuous numbering across the
// whole book (true) and numbering that resets per top-level chapter
// (false, the default).
func WithGlobalNumbering(global bool) Option {
	return func(s *Service) {
		s.cfg.global = global
	}
}

// WithTheoremKinds overrides the set of theorem-like kind abbreviations.
func WithTheoremKinds(kinds []string) Option {
	return func(s *Service) {
		s.cfg.theoremKinds = kinds
	}
}

// WithConverter replaces the intermediate HTML backend (e.g. by the
// goldmark backend, or by a fake in tests).
func WithConverter(c Converter) Option {
	return func(s *Service) {
		s.converter = c
	}
}
