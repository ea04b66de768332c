// Package viewer holds the state of the documentation viewer for one section
// and renders that section's content into a front-end neutral block tree.
package viewer

import (
	"github.com/gitmesh/docs-hub/internal/content"
)

const overviewTab = content.KeyOverview

// LastUpdated is the revision date shown on content tabs.
const LastUpdated = "Jan 15, 2024"

// Filter is the content filter selected in the viewer header.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterCommands Filter = "commands"
	FilterConfig   Filter = "config"
	FilterExamples Filter = "examples"
)

// FilterOption is one entry of the filter select.
type FilterOption struct {
	Value Filter
	Label string
}

// Filters lists the filter choices in display order.
var Filters = []FilterOption{
	{FilterAll, "All Content"},
	{FilterCommands, "Commands"},
	{FilterConfig, "Configuration"},
	{FilterExamples, "Examples"},
}

// ParseFilter returns the filter named s, or FilterAll when s is unknown.
func ParseFilter(s string) Filter {
	for _, f := range Filters {
		if string(f.Value) == s {
			return f.Value
		}
	}
	return FilterAll
}

// Tab is an entry of the viewer's tab list.
type Tab struct {
	Key   string
	Label string
	Icon  Icon
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithBack sets the callback run by Back.
func WithBack(fn func()) Option {
	return func(v *Viewer) { v.onBack = fn }
}

// Viewer is the documentation viewer for one section. When the section key is
// not in the registry the viewer is in its not-found state: it has no tabs and
// only Back does anything.
//
// Search text and filter are held for display only; they do not change which
// content renders.
type Viewer struct {
	key     string
	section *content.Section
	tab     string
	search  string
	filter  Filter
	onBack  func()
}

// New opens section key of reg.
func New(reg *content.Registry, key string, opts ...Option) *Viewer {
	v := &Viewer{key: key, tab: overviewTab, filter: FilterAll}
	if reg != nil {
		if sec, ok := reg.Section(key); ok {
			v.section = sec
		}
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Key returns the requested section key.
func (v *Viewer) Key() string { return v.key }

// Found reports whether the section exists.
func (v *Viewer) Found() bool { return v.section != nil }

// Section returns the open section, or nil in the not-found state.
func (v *Viewer) Section() *content.Section { return v.section }

// ActiveTab returns the selected tab key.
func (v *Viewer) ActiveTab() string { return v.tab }

// Tabs lists the overview tab followed by every other top-level content key
// in declaration order.
func (v *Viewer) Tabs() []Tab {
	if v.section == nil {
		return nil
	}
	tabs := []Tab{{Key: overviewTab, Label: "Overview", Icon: IconInfo}}
	for _, k := range v.section.Content.Keys() {
		if k == overviewTab {
			continue
		}
		tabs = append(tabs, Tab{Key: k, Label: Heading(k), Icon: TabIcon(k)})
	}
	return tabs
}

// SelectTab makes key the active tab. Unknown keys are ignored and reported
// with false.
func (v *Viewer) SelectTab(key string) bool {
	if v.section == nil || !v.section.Content.Has(key) {
		return false
	}
	v.tab = key
	return true
}

// Search returns the search text.
func (v *Viewer) Search() string { return v.search }

// SetSearch stores the search text.
func (v *Viewer) SetSearch(q string) { v.search = q }

// Filter returns the selected filter.
func (v *Viewer) Filter() Filter { return v.filter }

// SetFilter selects f. Unknown filters select FilterAll.
func (v *Viewer) SetFilter(f Filter) { v.filter = ParseFilter(string(f)) }

// Back runs the back-navigation callback.
func (v *Viewer) Back() {
	if v.onBack != nil {
		v.onBack()
	}
}

// Overview is the content of the overview tab.
type Overview struct {
	Text  string
	Files []content.FileEntry
}

// HasFiles reports whether a file structure listing is shown.
func (o Overview) HasFiles() bool { return len(o.Files) > 0 }

// Overview returns the overview text and file structure listing.
func (v *Viewer) Overview() Overview {
	if v.section == nil {
		return Overview{}
	}
	files, _ := v.section.FileStructure()
	return Overview{Text: v.section.Overview(), Files: files}
}

// Body renders the active tab's content. It returns nil on the overview tab
// and in the not-found state.
func (v *Viewer) Body() Block {
	if v.section == nil || v.tab == overviewTab {
		return nil
	}
	n, ok := v.section.Content.Get(v.tab)
	if !ok {
		return nil
	}
	return Render(n, v.section.Key, v.tab)
}

// TabTitle returns the "title" entry of the active tab, if it has one.
func (v *Viewer) TabTitle() string {
	if v.section == nil {
		return ""
	}
	n, _ := v.section.Content.Get(v.tab)
	m, ok := n.(*content.Map)
	if !ok {
		return ""
	}
	t, _ := m.Get(content.KeyTitle)
	return content.Text(t)
}

// Page is everything a front-end needs to draw the viewer.
type Page struct {
	Key         string
	Found       bool
	Title       string
	Icon        string
	Tabs        []Tab
	ActiveTab   string
	Heading     string
	TabTitle    string
	Overview    *Overview
	Body        Block
	Search      string
	Filter      Filter
	LastUpdated string
}

// Page snapshots the viewer for rendering.
func (v *Viewer) Page() Page {
	p := Page{Key: v.key, Found: v.section != nil, Search: v.search, Filter: v.filter}
	if v.section == nil {
		return p
	}
	p.Title = v.section.Title
	p.Icon = v.section.Icon
	p.Tabs = v.Tabs()
	p.ActiveTab = v.tab
	if v.tab == overviewTab {
		ov := v.Overview()
		p.Overview = &ov
		return p
	}
	p.Heading = Heading(v.tab)
	p.TabTitle = v.TabTitle()
	p.Body = v.Body()
	p.LastUpdated = LastUpdated
	return p
}
