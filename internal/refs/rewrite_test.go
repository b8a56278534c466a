package refs

import (
	"reflect"
	"strings"
	"testing"
)

func newTestTable(pairs ...string) *Table {
	table := NewTable()
	for i := 0; i+1 < len(pairs); i += 2 {
		table.Set(pairs[i], pairs[i+1])
	}
	return table
}

func TestRewriteFigureCaption(t *testing.T) {
	table := newTestTable("fig:plot", "2.1")
	r := NewRewriter(table, RewriteOptions{Kinds: NewKindSet(nil), EPUB: true})

	got := r.Rewrite([]string{`![(\#fig:plot)A plot](plot.png)`})
	want := []string{`![Figure 2.1: A plot](plot.png)`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

func TestRewriteTableCaption(t *testing.T) {
	table := newTestTable("tab:runs", "1.2")
	r := NewRewriter(table, RewriteOptions{Kinds: NewKindSet(nil), EPUB: true})

	got := r.Rewrite([]string{`: (\#tab:runs)Benchmark runs`})
	want := []string{`: Table 1.2: Benchmark runs`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

func TestRewriteTheoremAnchor(t *testing.T) {
	table := newTestTable("thm:pyth", "1.1")
	r := NewRewriter(table, RewriteOptions{Kinds: NewKindSet(nil), EPUB: true})

	got := r.Rewrite([]string{`<div class="theorem">(\#thm:pyth) In a right triangle...`})
	want := []string{`<div class="theorem"><a id="thm:pyth"></a> In a right triangle...`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

func TestRewriteUnknownCaptionLabelPassesThrough(t *testing.T) {
	r := NewRewriter(NewTable(), RewriteOptions{Kinds: NewKindSet(nil), EPUB: true})

	in := []string{`: (\#tab:unknown)Orphaned caption`}
	got := r.Rewrite(in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("Rewrite() = %v, want unchanged %v", got, in)
	}
}

func TestRewriteStripsAltTextPlaceholder(t *testing.T) {
	table := newTestTable("fig:plot", "2.1")
	r := NewRewriter(table, RewriteOptions{Kinds: NewKindSet(nil), EPUB: true})

	got := r.Rewrite([]string{`<img src="plot.png" alt="(\#fig:plot)A plot" />`})
	want := []string{`<img src="plot.png" alt="A plot" />`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

func TestRewriteEquationNumbering(t *testing.T) {
	source := []string{
		"# First",
		"",
		`\begin{equation}`,
		`E = mc^2 (\#eq:emc)`,
		`\end{equation}`,
		"",
		"# Second",
		"",
		`\begin{align}`,
		`a &= b (\#eq:ab)`,
		`\end{align}`,
	}

	tests := []struct {
		name     string
		opts     RewriteOptions
		wantEmc  string
		wantAb   string
	}{
		{
			name:    "epub chapter-wise",
			opts:    RewriteOptions{Kinds: NewKindSet(nil), EPUB: true},
			wantEmc: `E = mc^2 \qquad(1.1)`,
			wantAb:  `a &= b \qquad(2.1)`,
		},
		{
			name:    "markdown global",
			opts:    RewriteOptions{Kinds: NewKindSet(nil), GlobalNumbering: true},
			wantEmc: `E = mc^2 \tag{1}`,
			wantAb:  `a &= b \tag{2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRewriter(NewTable(), tt.opts)
			got := r.Rewrite(source)
			if got[3] != tt.wantEmc {
				t.Errorf("line 3 = %q, want %q", got[3], tt.wantEmc)
			}
			if got[9] != tt.wantAb {
				t.Errorf("line 9 = %q, want %q", got[9], tt.wantAb)
			}
		})
	}
}

func TestRewriteEquationRefResolvesToAssignedNumber(t *testing.T) {
	source := []string{
		"# First",
		`\begin{equation}`,
		`E = mc^2 (\#eq:emc)`,
		`\end{equation}`,
		`See \@ref(eq:emc).`,
	}
	r := NewRewriter(NewTable(), RewriteOptions{Kinds: NewKindSet(nil), EPUB: true})
	got := r.Rewrite(source)

	if want := "See 1.1."; got[4] != want {
		t.Errorf("line 4 = %q, want %q", got[4], want)
	}
}

func TestResolveRefs(t *testing.T) {
	table := newTestTable("fig:plot", "2.1", "intro", "1")
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "figure reference",
			in:   `See Figure \@ref(fig:plot) above.`,
			want: `See Figure 2.1 above.`,
		},
		{
			name: "section reference",
			in:   `Section \@ref(intro) introduces the topic.`,
			want: `Section 1 introduces the topic.`,
		},
		{
			name: "unresolved reference",
			in:   `See \@ref(fig:ghost).`,
			want: `See **??**.`,
		},
		{
			name: "inline code span untouched",
			in:   "Write `\\@ref(fig:plot)` to reference a figure.",
			want: "Write `\\@ref(fig:plot)` to reference a figure.",
		},
		{
			name: "two references on one line",
			in:   `Compare \@ref(fig:plot) with \@ref(intro).`,
			want: `Compare 2.1 with 1.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRewriter(table, RewriteOptions{Kinds: NewKindSet(nil), EPUB: true})
			got := r.Rewrite([]string{tt.in})
			if got[0] != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.in, got[0], tt.want)
			}
		})
	}
}

func TestResolveRefsSkipsFencedCode(t *testing.T) {
	table := newTestTable("fig:plot", "2.1")
	r := NewRewriter(table, RewriteOptions{Kinds: NewKindSet(nil), EPUB: true})

	source := []string{
		"```",
		`\@ref(fig:plot)`,
		"```",
		`\@ref(fig:plot)`,
	}
	got := r.Rewrite(source)
	if got[1] != `\@ref(fig:plot)` {
		t.Errorf("fenced line rewritten: %q", got[1])
	}
	if got[3] != "2.1" {
		t.Errorf("prose line = %q, want %q", got[3], "2.1")
	}
}

func TestResolveRefLinks(t *testing.T) {
	source := []string{
		"(ref:cap) A **bold** caption",
		"",
		"Use (ref:cap) here.",
		"Unknown (ref:nope) stays.",
	}
	r := NewRewriter(NewTable(), RewriteOptions{Kinds: NewKindSet(nil), EPUB: true})
	got := r.Rewrite(source)

	want := []string{
		"",
		"Use A **bold** caption here.",
		"Unknown (ref:nope) stays.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rewrite() = %v, want %v", got, want)
	}
}

func TestResolveRefLinksPrecedence(t *testing.T) {
	source := []string{
		"(ref:cap) source text",
		"Use (ref:cap) here.",
	}
	htmlDefs := map[string]string{"cap": "html text"}

	tests := []struct {
		name string
		epub bool
		want string
	}{
		{"epub prefers source", true, "Use source text here."},
		{"markdown prefers html", false, "Use html text here."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRewriter(NewTable(), RewriteOptions{
				Kinds:        NewKindSet(nil),
				EPUB:         tt.epub,
				HTMLRefTexts: htmlDefs,
			})
			got := r.Rewrite(source)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Rewrite() = %v, want [%q]", got, tt.want)
			}
		})
	}
}

func TestRewriteIdempotent(t *testing.T) {
	table := newTestTable("fig:plot", "2.1")
	r := NewRewriter(table, RewriteOptions{Kinds: NewKindSet(nil), EPUB: true})

	source := []string{
		`![(\#fig:plot)A plot](plot.png)`,
		"",
		`See Figure \@ref(fig:plot) above.`,
	}
	once := r.Rewrite(source)
	twice := NewRewriter(table, RewriteOptions{Kinds: NewKindSet(nil), EPUB: true}).Rewrite(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed output:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestRewriteDoesNotMutateInput(t *testing.T) {
	table := newTestTable("fig:plot", "2.1")
	r := NewRewriter(table, RewriteOptions{Kinds: NewKindSet(nil), EPUB: true})

	source := []string{`See \@ref(fig:plot).`}
	saved := strings.Clone(source[0])
	r.Rewrite(source)
	if source[0] != saved {
		t.Errorf("input mutated: %q", source[0])
	}
}
