package content

import "strings"

// Node is one value in the documentation content tree. It is implemented by
// Leaf (string text), Scalar (any other scalar value) and *Map (an ordered
// mapping of keys to child nodes).
type Node interface {
	node()
}

// Leaf is a string value. The renderer shows it as a code block.
type Leaf struct {
	Text string
}

// Scalar is a non-string scalar (number, bool, null) kept in its source form.
type Scalar struct {
	Text string
	Tag  string
}

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key   string
	Value Node
}

// Map is an ordered mapping. Iteration order is the order keys were declared
// in the source document.
type Map struct {
	entries []Entry
	index   map[string]int
}

func (Leaf) node()   {}
func (Scalar) node() {}
func (*Map) node()   {}

// NewMap builds a Map from entries. Later duplicates replace earlier values
// but keep the position of the first occurrence.
func NewMap(entries ...Entry) *Map {
	m := &Map{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Set adds or replaces the value under key.
func (m *Map) Set(key string, value Node) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in declaration order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the entries in declaration order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Text returns the display string of a scalar node. Maps have no display
// string and yield "".
func Text(n Node) string {
	switch v := n.(type) {
	case Leaf:
		return v.Text
	case Scalar:
		return v.Text
	default:
		return ""
	}
}

// Walk visits every non-map node under n depth-first, in declaration order.
// path holds the keys leading to the visited node.
func Walk(n Node, fn func(path []string, n Node) error) error {
	return walk(n, nil, fn)
}

func walk(n Node, path []string, fn func([]string, Node) error) error {
	m, ok := n.(*Map)
	if !ok {
		return fn(path, n)
	}
	for _, e := range m.entries {
		next := make([]string, len(path)+1)
		copy(next, path)
		next[len(path)] = e.Key
		if err := walk(e.Value, next, fn); err != nil {
			return err
		}
	}
	return nil
}

// JoinPath joins key segments into the slash separated form used by Glob.
// Slashes inside a key (directory names such as "refs/") are written as %2F.
func JoinPath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = strings.ReplaceAll(s, "/", "%2F")
	}
	return strings.Join(escaped, "/")
}
