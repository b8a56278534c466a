package convert

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// Sentinel errors for Pandoc invocations.
var (
	ErrPandocFailed = errors.New("pandoc conversion failed")
	ErrNoOutput     = errors.New("converter produced no output file")
)

// DefaultSourceFormat is the Pandoc source format descriptor used when the
// configuration does not override it. Fancy lists are disabled so letter
// markers like "A)" survive as text.
const DefaultSourceFormat = "markdown+autolink_bare_uris+tex_math_single_backslash-fancy_lists"

// PandocConverter invokes the Pandoc CLI.
type PandocConverter struct {
	Runner CommandRunner
	Binary string // pandoc executable, default "pandoc"
	From   string // source format descriptor, default DefaultSourceFormat
	// ExtraArgs are appended after the forced options.
	ExtraArgs []string
}

// NewPandocConverter creates a PandocConverter with a real command runner.
func NewPandocConverter() *PandocConverter {
	return &PandocConverter{Runner: &ExecRunner{}}
}

func (c *PandocConverter) binary() string {
	if c.Binary != "" {
		return c.Binary
	}
	return "pandoc"
}

func (c *PandocConverter) from() string {
	if c.From != "" {
		return c.From
	}
	return DefaultSourceFormat
}

// ConvertFile converts inputPath into a complete standalone HTML document at
// outputPath. Section divs, section numbering, and MathJax math rendering
// are forced: the label parser depends on the markers they leave behind.
// A missing output file after a clean exit is still a failure.
func (c *PandocConverter) ConvertFile(inputPath, outputPath string) error {
	args := []string{
		inputPath,
		"-f", c.from(),
		"-t", "html",
		"-o", outputPath,
		"--standalone",
		"--section-divs",
		"--number-sections",
		"--mathjax",
	}
	args = append(args, c.ExtraArgs...)

	_, stderr, err := c.Runner.Run(c.binary(), args...)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPandocFailed, stderr, err)
	}
	if !fileutil.FileExists(outputPath) {
		return fmt.Errorf("%w: %s", ErrNoOutput, outputPath)
	}
	return nil
}

// ProduceBook converts a processed Markdown file into the final book at
// outputPath (the target format is inferred by Pandoc from the extension).
// cssPath, when non-empty, is passed through as the book stylesheet.
func (c *PandocConverter) ProduceBook(inputPath, outputPath, cssPath string, extraArgs []string) error {
	args := []string{
		inputPath,
		"-f", c.from(),
		"-o", outputPath,
		"--number-sections",
		"--mathml",
	}
	if cssPath != "" {
		args = append(args, "--css", cssPath)
	}
	args = append(args, extraArgs...)

	_, stderr, err := c.Runner.Run(c.binary(), args...)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPandocFailed, stderr, err)
	}
	if !fileutil.FileExists(outputPath) {
		return fmt.Errorf("%w: %s", ErrNoOutput, outputPath)
	}
	return nil
}
