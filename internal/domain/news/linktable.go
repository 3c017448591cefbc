package news

// LinkEntry is one referenced resource discovered in an item body.
// Label holds anchor text or image alt text when present.
type LinkEntry struct {
	Kind  LinkKind
	URL   string
	Label string
}

type linkKey struct {
	kind LinkKind
	url  string
}

// LinkTable is an ordered, deduplicating table of resources referenced by
// one item. Positions are 1-based, contiguous, and stable: registering the
// same (kind, url) pair again returns the original position. One table is
// built per item and never shared across items.
type LinkTable struct {
	entries []LinkEntry
	index   map[linkKey]int
}

// NewLinkTable returns an empty table.
func NewLinkTable() *LinkTable {
	return &LinkTable{index: make(map[linkKey]int)}
}

// Register records a resource and returns its 1-based position.
// A (kind, url) pair already in the table keeps its first position and
// its first label.
func (t *LinkTable) Register(kind LinkKind, url, label string) int {
	key := linkKey{kind: kind, url: url}
	if pos, ok := t.index[key]; ok {
		return pos
	}
	t.entries = append(t.entries, LinkEntry{Kind: kind, URL: url, Label: label})
	pos := len(t.entries)
	t.index[key] = pos
	return pos
}

// At returns the entry at a 1-based position.
func (t *LinkTable) At(pos int) (LinkEntry, bool) {
	if t == nil || pos < 1 || pos > len(t.entries) {
		return LinkEntry{}, false
	}
	return t.entries[pos-1], true
}

// Len returns the number of registered entries.
func (t *LinkTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns the entries in position order. The slice is a copy.
func (t *LinkTable) Entries() []LinkEntry {
	if t == nil {
		return nil
	}
	out := make([]LinkEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
