package content

// FileEntry is a top-level row of a section's file structure listing.
type FileEntry struct {
	Path        string
	Description string
	Children    []FileChild
}

// FileChild is a nested row beneath a FileEntry.
type FileChild struct {
	Path        string
	Description string
}

// FileStructure returns the section's two-level directory listing. A string
// value is the entry's description; a mapping contributes its "description"
// and, when present, each "children" entry one level down. ok is false when
// the section has no fileStructure entry.
func (s *Section) FileStructure() (entries []FileEntry, ok bool) {
	n, ok := s.Content.Get(KeyFileStructure)
	if !ok {
		return nil, false
	}
	m, isMap := n.(*Map)
	if !isMap {
		return nil, true
	}
	for _, e := range m.Entries() {
		entry := FileEntry{Path: e.Key}
		switch v := e.Value.(type) {
		case *Map:
			desc, _ := v.Get("description")
			entry.Description = Text(desc)
			if children, ok := v.Get("children"); ok {
				if cm, ok := children.(*Map); ok {
					for _, c := range cm.Entries() {
						entry.Children = append(entry.Children, FileChild{Path: c.Key, Description: Text(c.Value)})
					}
				}
			}
		default:
			entry.Description = Text(v)
		}
		entries = append(entries, entry)
	}
	return entries, true
}
