package refs

import (
	"regexp"
	"strings"
)

// Placeholder and marker patterns in the Markdown source.
var (
	// Math environments numbered by the rewriter. The \begin line must be
	// the entire line, case-sensitive, with no trailing whitespace.
	mathEnvBegin = regexp.MustCompile(`^\\begin\{(equation|align|gather|multline|eqnarray)\}$`)

	// Equation label placeholder: (\#eq:id)
	eqPlaceholder = regexp.MustCompile(`\(\\#(eq:[-/[:alnum:]]+)\)`)

	// Figure placeholder leaked into alt text.
	figPlaceholder = regexp.MustCompile(`\(\\#fig:[-/[:alnum:]]+\)`)

	// Inline reference macro \@ref(label). The optional leading backtick is
	// captured so occurrences inside inline code spans can be skipped
	// (RE2 has no lookbehind).
	refMacro = regexp.MustCompile("`?\\\\@ref\\(([-/:.[:alnum:]]+)\\)")

	// Top-level chapter heading in Markdown source.
	chapterHeading = regexp.MustCompile(`^# `)

	// Tagged reference links: line-level definition and inline invocation.
	refLinkDef = regexp.MustCompile(`^\(ref:([-[:alnum:]]+)\) (.+)$`)
	refLinkUse = regexp.MustCompile(`\(ref:([-[:alnum:]]+)\)`)

	// Lines that establish a caption context in the Markdown source.
	srcCaptionContextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^!\[`),
		regexp.MustCompile(`^Table: `),
		regexp.MustCompile(`^: `),
		regexp.MustCompile(`^:::`),
		regexp.MustCompile(`^<p class="caption`),
		regexp.MustCompile(`^<caption`),
		regexp.MustCompile(`^<div class="`), // custom block wrappers (theorems)
	}
)

// brokenRefMarker is substituted for unresolved inline references so the
// mistake is visible in rendered output. Unresolved caption placeholders, in
// contrast, pass through silently; the asymmetry matches the established
// behavior of the pipeline and is kept deliberately.
const brokenRefMarker = "**??**"

// RewriteOptions configures a Rewriter.
type RewriteOptions struct {
	Kinds           KindSet
	EPUB            bool // target e-book output rather than plain Markdown
	GlobalNumbering bool
	// HTMLRefTexts holds tagged reference-link definitions recovered from
	// the intermediate HTML. In plain-Markdown mode they take priority over
	// raw-source definitions, since the HTML reflects post-conversion text.
	HTMLRefTexts map[string]string
}

// Rewriter substitutes placeholder reference markers in a Markdown source
// with resolved numbers and labels. It is a single-pass, line-oriented
// transform over one complete source file; no state survives between calls.
type Rewriter struct {
	table *Table
	opts  RewriteOptions
}

// NewRewriter creates a Rewriter over a merged reference table.
func NewRewriter(table *Table, opts RewriteOptions) *Rewriter {
	return &Rewriter{table: table, opts: opts}
}

// Rewrite applies all rewriting passes and returns the rewritten lines.
// Pass order matters: equations register their labels in the table before
// inline references resolve against it, and tagged reference links run last
// because they may remove definition lines.
func (r *Rewriter) Rewrite(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)

	prose := ProseMask(out)
	r.numberEquations(out, prose)
	r.rewriteCaptions(out, prose)
	stripFigPlaceholders(out, prose)
	r.resolveRefs(out, prose)
	return r.resolveRefLinks(out, prose)
}

// numberEquations assigns numbers to labeled math environments in document
// order and replaces each label placeholder with a trailing equation marker:
// \tag{n} for plain Markdown, \qquad(n) for e-book output where \tag
// rendering is widely unsupported.
func (r *Rewriter) numberEquations(lines []string, prose []bool) {
	chapter := 0
	n := 0
	env := ""

	for i, line := range lines {
		if env == "" {
			if !prose[i] {
				continue
			}
			if chapterHeading.MatchString(line) {
				chapter++
				if !r.opts.GlobalNumbering {
					n = 0
				}
				continue
			}
			if m := mathEnvBegin.FindStringSubmatch(line); m != nil {
				env = m[1]
			}
			continue
		}

		if line == `\end{`+env+`}` {
			env = ""
			continue
		}

		m := eqPlaceholder.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		label := m[1]
		num, ok := r.table.Lookup(label)
		if !ok {
			n++
			num = FormatNumber(chapter, n, r.opts.GlobalNumbering)
			r.table.Set(label, num)
		}
		lines[i] = strings.Replace(line, m[0], r.equationMarker(num), 1)
	}
}

func (r *Rewriter) equationMarker(num string) string {
	if r.opts.EPUB {
		return `\qquad(` + num + `)`
	}
	return `\tag{` + num + `}`
}

// rewriteCaptions replaces caption label placeholders with their rendered
// prefix ("Figure 2.3: "). Theorem-kind labels emit an invisible anchor
// instead, since theorem environments render their own numbering and the
// anchor only has to make the position addressable. The first matching
// label wins per line.
func (r *Rewriter) rewriteCaptions(lines []string, prose []bool) {
	for i, line := range lines {
		if !prose[i] || !isSourceCaptionContext(line) {
			continue
		}
		for _, label := range r.table.Labels() {
			placeholder := `(\#` + label + `)`
			if !strings.Contains(line, placeholder) {
				continue
			}
			sep := strings.Index(label, ":")
			if sep < 0 {
				continue // section ids carry no kind, never appear in captions
			}
			kind := label[:sep]
			num, _ := r.table.Lookup(label)

			var repl string
			switch {
			case r.opts.Kinds.IsTheorem(kind):
				repl = `<a id="` + label + `"></a>`
			case r.opts.Kinds.Prefix(kind) != "":
				repl = r.opts.Kinds.Prefix(kind) + " " + num + ": "
			}
			lines[i] = strings.Replace(line, placeholder, repl, 1)
			break
		}
	}
}

// stripFigPlaceholders removes figure placeholders that leaked into image
// alt text, regardless of caption context.
func stripFigPlaceholders(lines []string, prose []bool) {
	for i, line := range lines {
		if prose[i] && strings.Contains(line, `(\#fig:`) {
			lines[i] = figPlaceholder.ReplaceAllString(line, "")
		}
	}
}

// resolveRefs replaces inline \@ref(label) macros in prose regions with
// their resolved numbers. A macro directly preceded by a backtick sits in
// an inline code span and is left alone. Unresolved labels become a visible
// broken marker rather than disappearing.
func (r *Rewriter) resolveRefs(lines []string, prose []bool) {
	for i, line := range lines {
		if !prose[i] || !strings.Contains(line, `\@ref(`) {
			continue
		}
		lines[i] = refMacro.ReplaceAllStringFunc(line, func(m string) string {
			if strings.HasPrefix(m, "`") {
				return m
			}
			label := refMacro.FindStringSubmatch(m)[1]
			if v, ok := r.table.Lookup(label); ok {
				return v
			}
			return brokenRefMarker
		})
	}
}

// resolveRefLinks collects tagged reference-link definitions, removes the
// definition lines, and replaces invocations with the defined text.
func (r *Rewriter) resolveRefLinks(lines []string, prose []bool) []string {
	defs := make(map[string]string)
	isDef := make([]bool, len(lines))

	for i, line := range lines {
		if !prose[i] {
			continue
		}
		m := refLinkDef.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		isDef[i] = true
		if _, ok := defs[m[1]]; !ok {
			defs[m[1]] = m[2]
		}
	}

	for tag, text := range r.opts.HTMLRefTexts {
		if _, ok := defs[tag]; ok && r.opts.EPUB {
			continue // raw source wins for e-book output
		}
		defs[tag] = text
	}

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if isDef[i] {
			continue
		}
		if prose[i] && strings.Contains(line, "(ref:") {
			line = refLinkUse.ReplaceAllStringFunc(line, func(m string) string {
				tag := refLinkUse.FindStringSubmatch(m)[1]
				if text, ok := defs[tag]; ok {
					return text
				}
				return m
			})
		}
		out = append(out, line)
	}
	return out
}

// isSourceCaptionContext reports whether a Markdown source line can carry a
// caption label.
func isSourceCaptionContext(line string) bool {
	for _, p := range srcCaptionContextPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
