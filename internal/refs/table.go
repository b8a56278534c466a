// Package refs resolves cross-reference labels in a Markdown book source:
// it extracts numbered labels from the intermediate HTML, builds a reference
// table, and rewrites placeholder markers in the source against it.
package refs

// Table maps typed labels (e.g. "fig:plot", "eq:mean", or a section id) to
// their rendered display values. A table is built once per conversion pass
// and treated as read-only by every pass except equation numbering, which
// registers equation labels as it assigns them.
type Table struct {
	values map[string]string
	order  []string
}

// NewTable creates an empty reference table.
func NewTable() *Table {
	return &Table{values: make(map[string]string)}
}

// Set records a label's display value. The first value set for a label wins;
// later occurrences of the same label are ignored so that duplicated labels
// (an alt attribute echoing a caption) do not shift numbering.
func (t *Table) Set(label, value string) {
	if _, ok := t.values[label]; ok {
		return
	}
	t.values[label] = value
	t.order = append(t.order, label)
}

// Lookup returns the display value for a label.
func (t *Table) Lookup(label string) (string, bool) {
	v, ok := t.values[label]
	return v, ok
}

// Len returns the number of distinct labels in the table.
func (t *Table) Len() int {
	return len(t.order)
}

// Labels returns all labels in insertion order. Lookup does not depend on
// order; it is kept only to make rewriting output deterministic.
func (t *Table) Labels() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Merge combines tables into a single table. Earlier tables win on label
// collisions, consistent with Set semantics.
func Merge(tables ...*Table) *Table {
	merged := NewTable()
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, label := range t.order {
			merged.Set(label, t.values[label])
		}
	}
	return merged
}
