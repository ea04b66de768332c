package content

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

//go:embed sections.yaml
var sectionsYAML []byte

// Reserved content keys.
const (
	KeyOverview      = "overview"
	KeyFileStructure = "fileStructure"
	KeyTitle         = "title"
)

var (
	// ErrMissingOverview is returned when a section's content has no
	// overview string.
	ErrMissingOverview = errors.New("section content has no overview")

	// ErrMalformed is returned when the registry document does not match
	// the {title, icon, content} section schema.
	ErrMalformed = errors.New("malformed content registry")
)

// Section is one top-level documentation topic.
type Section struct {
	Key     string
	Title   string
	Icon    string
	Content *Map
}

// Overview returns the section's overview text.
func (s *Section) Overview() string {
	n, _ := s.Content.Get(KeyOverview)
	return Text(n)
}

// Registry holds every section, in declaration order.
type Registry struct {
	order    []string
	sections map[string]*Section
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the registry built from the embedded sections document.
// The document is parsed once per process.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Parse(sectionsYAML)
	})
	return defaultReg, defaultErr
}

// Parse builds a registry from a YAML document.
func Parse(data []byte) (*Registry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing content registry: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &Registry{sections: map[string]*Section{}}, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping of sections", ErrMalformed)
	}

	reg := &Registry{sections: make(map[string]*Section, len(root.Content)/2)}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		if _, dup := reg.sections[key]; dup {
			return nil, fmt.Errorf("%w: duplicate section %q", ErrMalformed, key)
		}
		sec, err := parseSection(key, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		reg.order = append(reg.order, key)
		reg.sections[key] = sec
	}
	return reg, nil
}

func parseSection(key string, n *yaml.Node) (*Section, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: section %q must be a mapping", ErrMalformed, key)
	}
	sec := &Section{Key: key}
	for i := 0; i+1 < len(n.Content); i += 2 {
		field, value := n.Content[i].Value, n.Content[i+1]
		switch field {
		case "title":
			sec.Title = value.Value
		case "icon":
			sec.Icon = value.Value
		case "content":
			node, err := convert(value)
			if err != nil {
				return nil, fmt.Errorf("section %q: %w", key, err)
			}
			m, ok := node.(*Map)
			if !ok {
				return nil, fmt.Errorf("%w: section %q content must be a mapping", ErrMalformed, key)
			}
			sec.Content = m
		}
	}
	if sec.Content == nil {
		return nil, fmt.Errorf("%w: section %q has no content", ErrMalformed, key)
	}
	overview, ok := sec.Content.Get(KeyOverview)
	if !ok {
		return nil, fmt.Errorf("section %q: %w", key, ErrMissingOverview)
	}
	if _, isLeaf := overview.(Leaf); !isLeaf {
		return nil, fmt.Errorf("section %q: overview must be a string: %w", key, ErrMissingOverview)
	}
	return sec, nil
}

// convert turns a YAML node into a content Node. Sequences become maps keyed
// by element index.
func convert(n *yaml.Node) (Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Scalar{Tag: "!!null"}, nil
		}
		return convert(n.Content[0])
	case yaml.AliasNode:
		return convert(n.Alias)
	case yaml.ScalarNode:
		tag := n.ShortTag()
		if tag == "!!str" {
			return Leaf{Text: n.Value}, nil
		}
		return Scalar{Text: n.Value, Tag: tag}, nil
	case yaml.MappingNode:
		m := &Map{index: make(map[string]int, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if m.Has(key) {
				return nil, fmt.Errorf("%w: duplicate key %q at line %d", ErrMalformed, key, n.Content[i].Line)
			}
			child, err := convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, child)
		}
		return m, nil
	case yaml.SequenceNode:
		m := &Map{index: make(map[string]int, len(n.Content))}
		for i, item := range n.Content {
			child, err := convert(item)
			if err != nil {
				return nil, err
			}
			m.Set(fmt.Sprint(i), child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unsupported node kind %d at line %d", ErrMalformed, n.Kind, n.Line)
	}
}

// Section returns the section registered under key.
func (r *Registry) Section(key string) (*Section, bool) {
	s, ok := r.sections[key]
	return s, ok
}

// Keys returns the section keys in declaration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Sections returns all sections in declaration order.
func (r *Registry) Sections() []*Section {
	out := make([]*Section, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.sections[k])
	}
	return out
}

// Match is a content value selected by Glob.
type Match struct {
	Path string
	Node Node
}

// Glob returns every scalar value whose path matches pattern. Paths have the
// form "section/key/subkey"; see JoinPath for how keys containing slashes
// are written. Patterns use doublestar syntax, so "guide/**" selects the whole
// guide section.
func (r *Registry) Glob(pattern string) ([]Match, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	var matches []Match
	for _, key := range r.order {
		sec := r.sections[key]
		err := Walk(sec.Content, func(path []string, n Node) error {
			full := JoinPath(append([]string{key}, path...)...)
			ok, err := doublestar.Match(pattern, full)
			if err != nil {
				return err
			}
			if ok {
				matches = append(matches, Match{Path: full, Node: n})
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return matches, nil
}
