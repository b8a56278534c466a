package refs

import (
	"regexp"
	"strings"
)

// Built-in label kinds with a visible caption prefix.
const (
	KindFigure   = "fig"
	KindTable    = "tab"
	KindEquation = "eq"
)

// DefaultTheoremKinds returns the default theorem-like kind abbreviations.
// Theorem environments render their own numbering, so their placeholders
// resolve to invisible anchors rather than visible prefixes.
func DefaultTheoremKinds() []string {
	return []string{"thm", "lem", "cor", "prop", "cnj", "def", "exm", "exr"}
}

// KindSet is the label-kind taxonomy for one conversion pass: the fixed
// fig/tab/eq kinds plus a configurable set of theorem-like abbreviations.
type KindSet struct {
	theorem    map[string]bool
	htmlMarker *regexp.Regexp
	srcMarker  *regexp.Regexp
}

// NewKindSet builds a KindSet from theorem-kind abbreviations. Passing nil
// uses DefaultTheoremKinds.
func NewKindSet(theoremKinds []string) KindSet {
	if theoremKinds == nil {
		theoremKinds = DefaultTheoremKinds()
	}
	theorem := make(map[string]bool, len(theoremKinds))
	for _, k := range theoremKinds {
		theorem[k] = true
	}

	alts := make([]string, 0, len(theoremKinds)+2)
	alts = append(alts, KindFigure, KindTable)
	for _, k := range theoremKinds {
		alts = append(alts, regexp.QuoteMeta(k))
	}
	alternation := strings.Join(alts, "|")

	return KindSet{
		theorem: theorem,
		// Markers as they appear in the intermediate HTML: (#fig:id)
		htmlMarker: regexp.MustCompile(`\(#((` + alternation + `):[-/[:alnum:]]+)\)`),
		// Markers as they appear in the Markdown source: (\#fig:id)
		srcMarker: regexp.MustCompile(`\(\\#((` + alternation + `):[-/[:alnum:]]+)\)`),
	}
}

// IsTheorem reports whether kind is a theorem-like abbreviation.
func (k KindSet) IsTheorem(kind string) bool {
	return k.theorem[kind]
}

// Prefix returns the visible caption prefix for a kind, or "" for kinds
// that render an anchor instead.
func (k KindSet) Prefix(kind string) string {
	switch kind {
	case KindFigure:
		return "Figure"
	case KindTable:
		return "Table"
	}
	return ""
}
