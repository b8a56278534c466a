// Package normalize applies EPUB-specific structural transforms to a
// Markdown book source: part divider removal, appendix demotion, and math
// environment fencing. All transforms are line-level and idempotent, and
// are only meant for e-book output.
package normalize

import (
	"regexp"
)

var (
	// Part divider heading: "# (PART) Title" or "# (PART*) Title".
	partHeading = regexp.MustCompile(`^# \(PART\*?\)`)

	// Appendix divider heading: "# (APPENDIX) Title".
	appendixHeading = regexp.MustCompile(`^# \(APPENDIX\) ?`)

	// Bare math environment delimiters. Pandoc discards environments that
	// are not wrapped in paragraph-level math delimiters.
	mathBegin = regexp.MustCompile(`^\\begin\{(equation|align|gather|multline|eqnarray)\}$`)
	mathEnd   = regexp.MustCompile(`^\\end\{(equation|align|gather|multline|eqnarray)\}$`)

	fenceDelimiter = regexp.MustCompile("^(```|~~~)")
)

// Apply runs all structural transforms in order.
func Apply(lines []string) []string {
	lines = RemoveParts(lines)
	lines = DemoteAppendix(lines)
	return FenceMath(lines)
}

// RemoveParts drops part divider headings. E-books have no grouping
// construct above the chapter, so the divider would only leave an empty
// visual break.
func RemoveParts(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if partHeading.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// DemoteAppendix converts appendix divider headings into ordinary top-level
// headings. Appendix chapters keep the main numbering sequence instead of
// switching to letters; this is a known limitation of the target format
// handling, left as-is.
func DemoteAppendix(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = appendixHeading.ReplaceAllString(line, "# ")
	}
	return out
}

// FenceMath wraps bare math environment begin/end lines in $$ delimiters.
// Already-fenced environments and lines inside code fences are left alone.
func FenceMath(lines []string) []string {
	out := make([]string, len(lines))
	inFence := false
	inMath := false

	for i, line := range lines {
		out[i] = line
		if fenceDelimiter.MatchString(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		if !inMath && mathBegin.MatchString(line) {
			if i > 0 && lines[i-1] == "$$" {
				continue // already fenced by the author
			}
			out[i] = "$$" + line
			inMath = true
			continue
		}
		if inMath && mathEnd.MatchString(line) {
			out[i] = line + "$$"
			inMath = false
		}
	}
	return out
}
