package convert

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// sectionize rewrites a flat sequence of headings and content into nested,
// numbered section divs in the shape Pandoc emits with --section-divs and
// --number-sections: each heading opens a div carrying the heading's id and
// a "section levelN" class, and the heading text gains a
// header-section-number span.
func sectionize(fragment string) (string, error) {
	container, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	promoteCaptions(container)
	return renderTopLevel(buildSections(container))
}

// parseFragment parses an HTML fragment in body context and wraps the
// resulting nodes in a container for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// tableCaptionPrefix marks a table caption paragraph in Pandoc's Markdown
// dialect. Goldmark has no table caption support and leaves it as plain
// paragraph text.
const tableCaptionPrefix = "Table: "

// promoteCaptions rewrites goldmark's caption-bearing paragraphs into the
// shape Pandoc emits, so the line-oriented label scan finds them: a paragraph
// holding a lone image becomes a figure div with a caption paragraph built
// from the alt text, and a "Table: ..." paragraph becomes a caption
// paragraph. Each synthesized caption lands on its own output line.
func promoteCaptions(container *html.Node) {
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.P {
			continue
		}
		if img := loneImage(c); img != nil {
			alt := attrVal(img, "alt")
			if alt == "" {
				continue
			}
			fig := figureNode(img, alt)
			container.InsertBefore(fig, c)
			container.RemoveChild(c)
			c = fig
			continue
		}
		promoteTableCaption(c)
	}
}

// loneImage returns the paragraph's image when the image is its only content
// apart from whitespace.
func loneImage(p *html.Node) *html.Node {
	var img *html.Node
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
		case c.Type == html.ElementNode && c.DataAtom == atom.Img && img == nil:
			img = c
		default:
			return nil
		}
	}
	return img
}

// figureNode wraps a detached image in a figure div with a caption paragraph,
// the image and caption each on their own line.
func figureNode(img *html.Node, alt string) *html.Node {
	img.Parent.RemoveChild(img)

	caption := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.P,
		Data:     "p",
		Attr:     []html.Attribute{{Key: "class", Val: "caption"}},
	}
	caption.AppendChild(&html.Node{Type: html.TextNode, Data: alt})

	div := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
		Attr:     []html.Attribute{{Key: "class", Val: "figure"}},
	}
	div.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
	div.AppendChild(img)
	div.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
	div.AppendChild(caption)
	div.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
	return div
}

// promoteTableCaption turns a "Table: ..." paragraph into a caption
// paragraph, dropping the prefix like Pandoc does.
func promoteTableCaption(p *html.Node) {
	first := p.FirstChild
	if first == nil || first.Type != html.TextNode || !strings.HasPrefix(first.Data, tableCaptionPrefix) {
		return
	}
	first.Data = strings.TrimPrefix(first.Data, tableCaptionPrefix)
	p.Attr = append(p.Attr, html.Attribute{Key: "class", Val: "caption"})
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

type sectionFrame struct {
	level int
	div   *html.Node
}

// buildSections moves every node of the container into a section tree.
func buildSections(container *html.Node) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	var stack []sectionFrame
	var counters [6]int

	appendTarget := func() *html.Node {
		if len(stack) == 0 {
			return root
		}
		return stack[len(stack)-1].div
	}

	for c := container.FirstChild; c != nil; {
		next := c.NextSibling
		container.RemoveChild(c)

		level := headingLevel(c)
		if level == 0 {
			appendTarget().AppendChild(c)
			c = next
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}

		counters[level-1]++
		for j := level; j < len(counters); j++ {
			counters[j] = 0
		}

		div := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Div,
			Data:     "div",
			Attr: []html.Attribute{
				{Key: "id", Val: takeAttr(c, "id")},
				{Key: "class", Val: "section level" + strconv.Itoa(level)},
			},
		}
		numberHeading(c, sectionNumber(counters[:level]))
		div.AppendChild(c)
		appendTarget().AppendChild(div)
		stack = append(stack, sectionFrame{level: level, div: div})
		c = next
	}
	return root
}

// renderTopLevel renders each top-level node on its own line, so the
// line-oriented label parser can spot chapter boundaries.
func renderTopLevel(root *html.Node) (string, error) {
	var parts []string
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		var buf strings.Builder
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
		parts = append(parts, buf.String())
	}
	return strings.Join(parts, "\n"), nil
}

// numberHeading prepends a header-section-number span to the heading text.
func numberHeading(h *html.Node, number string) {
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr:     []html.Attribute{{Key: "class", Val: "header-section-number"}},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: number})

	h.InsertBefore(span, h.FirstChild)
	h.InsertBefore(&html.Node{Type: html.TextNode, Data: " "}, span.NextSibling)
}

func sectionNumber(counters []int) string {
	parts := make([]string, len(counters))
	for i, n := range counters {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode {
		return 0
	}
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// takeAttr removes an attribute from a node and returns its value.
func takeAttr(n *html.Node, key string) string {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return a.Val
		}
	}
	return ""
}
