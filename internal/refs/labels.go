package refs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Precompiled patterns over the literal markers Pandoc leaves in the
// intermediate HTML.
var (
	// Top-level chapter boundary: --section-divs wraps each level-1
	// heading in a section div.
	chapterOpenPattern = regexp.MustCompile(`^<div (id="[^"]*" )?class="section level1`)

	// Lines that establish a caption context for entity numbering.
	captionContextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^<p class="caption`),
		regexp.MustCompile(`^<caption`),
		regexp.MustCompile(`^Table: `),
		regexp.MustCompile(`^<div class="`),
	}

	// Tagged reference-link definition: (ref:tag) text
	refDefPattern = regexp.MustCompile(`^\(ref:([-[:alnum:]]+)\) (.+)$`)
)

// ParseResult holds everything the label parser extracts from one
// intermediate HTML document.
type ParseResult struct {
	// Entities maps figure/table/theorem labels to their assigned numbers,
	// in document order.
	Entities *Table
	// Sections maps section ids to their assigned section numbers.
	Sections *Table
	// RefTexts maps tagged reference-link names to their definition text.
	RefTexts map[string]string
}

// ParseHTML scans the intermediate HTML produced by the conversion step and
// builds the per-kind label mappings. Entities are numbered positionally in
// document order; when globalNumbering is false, numbering restarts at each
// top-level chapter boundary.
func ParseHTML(lines []string, kinds KindSet, globalNumbering bool) (*ParseResult, error) {
	res := &ParseResult{
		Entities: NewTable(),
		Sections: NewTable(),
		RefTexts: make(map[string]string),
	}

	chapter := 0
	counters := make(map[string]int)

	for _, line := range lines {
		if chapterOpenPattern.MatchString(line) {
			chapter++
			if !globalNumbering {
				counters = make(map[string]int)
			}
		}

		if !isCaptionContext(line) {
			continue
		}

		// Only the first marker on a line counts; a label echoed later in
		// the same line (e.g. in an img alt attribute) is ignored.
		m := kinds.htmlMarker.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		label, kind := m[1], m[2]
		if _, ok := res.Entities.Lookup(label); ok {
			continue
		}
		counters[kind]++
		res.Entities.Set(label, FormatNumber(chapter, counters[kind], globalNumbering))
	}

	if err := parseDocument(strings.Join(lines, "\n"), res); err != nil {
		return nil, err
	}
	return res, nil
}

// parseDocument extracts section numbers and tagged reference-link
// definitions, which need element context rather than line patterns.
func parseDocument(htmlDoc string, res *ParseResult) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlDoc))
	if err != nil {
		return fmt.Errorf("parsing intermediate HTML: %w", err)
	}

	doc.Find("span.header-section-number").Each(func(_ int, s *goquery.Selection) {
		number := strings.TrimSpace(s.Text())
		if number == "" {
			return
		}
		id, ok := s.Closest("div.section").Attr("id")
		if !ok || id == "" {
			return
		}
		res.Sections.Set(id, number)
	})

	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		m := refDefPattern.FindStringSubmatch(strings.TrimSpace(s.Text()))
		if m == nil {
			return
		}
		if _, ok := res.RefTexts[m[1]]; !ok {
			res.RefTexts[m[1]] = m[2]
		}
	})

	return nil
}

// isCaptionContext reports whether a line is a structurally valid position
// for an entity label.
func isCaptionContext(line string) bool {
	for _, p := range captionContextPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// FormatNumber renders an entity number. Continuous numbering yields a bare
// integer; chapter-wise numbering yields "<chapter>.<n>". Entities appearing
// before the first chapter boundary fall back to continuous form.
func FormatNumber(chapter, n int, globalNumbering bool) string {
	if globalNumbering || chapter == 0 {
		return strconv.Itoa(n)
	}
	return strconv.Itoa(chapter) + "." + strconv.Itoa(n)
}
