// Package md2epub converts multi-chapter Markdown book manuscripts into
// EPUB e-books by orchestrating an external document converter and
// post-processing its intermediate HTML representation.
//
// # Quick Start
//
// Create a service and process a book source:
//
//	svc := md2epub.New()
//	result, err := svc.Process(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Process returns the rewritten Markdown with all cross-references
// resolved. ProcessFile reads and writes files directly:
//
//	_, err := svc.ProcessFile("book.md", "book-out.md")
//
// # Conversion Pipeline
//
// Each call runs the following stages over one complete source file:
//
//  1. External conversion to an intermediate HTML document (Pandoc by
//     default, a pure-Go goldmark backend as fallback)
//  2. Label parsing: figures, tables and theorem environments are numbered
//     in document order; section numbers are read from the numbered HTML
//  3. Reference table construction (one merged label -> number mapping)
//  4. Source rewriting: caption prefixes, equation numbering, inline
//     \@ref(label) resolution, tagged reference links
//  5. Structural normalization for e-book output: part dividers removed,
//     appendix headings demoted, bare math environments fenced
//
// The intermediate HTML is a scoped temporary artifact and is deleted on
// all exit paths.
//
// # Reference Markers
//
// The source syntax follows the established book-manuscript conventions:
// (\#fig:id) anchors a label to a caption, \@ref(fig:id) references it
// inline, and (ref:tag) defines and invokes reusable reference text.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := md2epub.New(
//	    md2epub.WithGlobalNumbering(true),
//	    md2epub.WithMode(md2epub.ModeMarkdown),
//	    md2epub.WithTheoremKinds([]string{"thm", "lem"}),
//	)
//
// # External Tools
//
// The default backend shells out to Pandoc; format transcoding (mobi, azw3)
// shells out to Calibre's ebook-convert. Neither binary is bundled. Use
// WithConverter to supply a different intermediate-HTML producer, such as
// the goldmark backend in internal/convert.
package md2epub
