package convert

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates the pure-Go HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// htmlTemplate wraps the sectionized fragment in a complete HTML5 document,
// matching the standalone output contract of the Pandoc backend.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Document</title>
</head>
<body>
%s
</body>
</html>`

// GoldmarkConverter produces the intermediate HTML without an external
// Pandoc install. The goldmark fragment is post-processed into numbered
// Pandoc-style section divs so the label parser sees the same markers
// regardless of backend.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes so the book stylesheet controls colors
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // heading ids feed section labels
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ConvertFile converts inputPath into a standalone intermediate HTML
// document at outputPath.
func (c *GoldmarkConverter) ConvertFile(inputPath, outputPath string) error {
	content, err := os.ReadFile(inputPath) // #nosec G304 -- path comes from the caller's own pipeline
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	var buf bytes.Buffer
	if err := c.md.Convert(content, &buf); err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	body, err := sectionize(buf.String())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	doc := fmt.Sprintf(htmlTemplate, body)
	if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil { // #nosec G306 -- scratch artifact
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
