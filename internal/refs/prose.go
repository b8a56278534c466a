package refs

import (
	"regexp"
	"strings"
)

// Verbatim region delimiters and indented code.
var (
	fenceDelimiter    = regexp.MustCompile("^(```|~~~)")
	indentedCodeBlock = regexp.MustCompile(`^(    |\t)`)
)

// ProseMask returns, for each source line, whether the line is prose and
// therefore eligible for reference rewriting. Fenced code blocks (backticks
// or tildes), the fence lines themselves, and indented code blocks are
// excluded. The mask is computed fresh per rewrite pass and never persisted.
func ProseMask(lines []string) []bool {
	mask := make([]bool, len(lines))
	inFence := false

	for i, line := range lines {
		if fenceDelimiter.MatchString(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if indentedCodeBlock.MatchString(line) && strings.TrimSpace(line) != "" {
			continue
		}
		mask[i] = true
	}
	return mask
}
