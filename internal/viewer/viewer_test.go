package viewer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitmesh/docs-hub/internal/content"
)

func mustRegistry(t *testing.T) *content.Registry {
	t.Helper()
	reg, err := content.Default()
	require.NoError(t, err)
	return reg
}

func TestUnknownSectionFallsBack(t *testing.T) {
	backs := 0
	v := New(mustRegistry(t), "nonexistent", WithBack(func() { backs++ }))

	assert.False(t, v.Found())
	assert.Nil(t, v.Tabs())
	assert.False(t, v.SelectTab("overview"))
	assert.Nil(t, v.Body())
	assert.Equal(t, Overview{}, v.Overview())

	p := v.Page()
	assert.False(t, p.Found)
	assert.Equal(t, "nonexistent", p.Key)

	v.Back()
	assert.Equal(t, 1, backs)
}

func TestNilRegistryIsNotFound(t *testing.T) {
	v := New(nil, "guide")
	assert.False(t, v.Found())
}

func TestGuideOverviewTab(t *testing.T) {
	v := New(mustRegistry(t), "guide")
	require.True(t, v.Found())
	assert.Equal(t, "overview", v.ActiveTab())

	p := v.Page()
	require.NotNil(t, p.Overview)
	assert.Equal(t, "Getting Started", p.Title)
	assert.True(t, strings.HasPrefix(p.Overview.Text, "Welcome to GitMesh!"))
	require.True(t, p.Overview.HasFiles())
	assert.Equal(t, ".gitmesh/", p.Overview.Files[0].Path)
	assert.Len(t, p.Overview.Files[0].Children, 11)
	assert.Nil(t, p.Body)
	assert.Empty(t, p.LastUpdated)
}

func TestTabsFollowDeclarationOrder(t *testing.T) {
	v := New(mustRegistry(t), "guide")
	var keys, labels []string
	var icons []Icon
	for _, tab := range v.Tabs() {
		keys = append(keys, tab.Key)
		labels = append(labels, tab.Label)
		icons = append(icons, tab.Icon)
	}
	assert.Equal(t, []string{"overview", "prerequisites", "installation", "quickStart", "fileStructure", "troubleshooting"}, keys)
	assert.Equal(t, []string{"Overview", "Prerequisites", "Installation", "Quick Start", "File Structure", "Troubleshooting"}, labels)
	assert.Equal(t, []Icon{IconInfo, IconFile, IconDownload, IconZap, IconDatabase, IconAlert}, icons)
}

func TestSelectTab(t *testing.T) {
	v := New(mustRegistry(t), "guide")

	assert.True(t, v.SelectTab("installation"))
	assert.Equal(t, "installation", v.ActiveTab())

	assert.True(t, v.SelectTab("installation"))
	assert.Equal(t, "installation", v.ActiveTab())

	assert.False(t, v.SelectTab("bogus"))
	assert.Equal(t, "installation", v.ActiveTab())

	p := v.Page()
	assert.Nil(t, p.Overview)
	assert.Equal(t, "Installation", p.Heading)
	assert.Equal(t, "Installation Methods", p.TabTitle)
	assert.Equal(t, LastUpdated, p.LastUpdated)

	blocks := CodeBlocks(p.Body)
	require.NotEmpty(t, blocks)
	assert.Equal(t, "guide/installation/npm", blocks[0].ID)
	assert.Equal(t, LabelTerminal, blocks[0].Label)
}

func TestSearchAndFilterAreCosmetic(t *testing.T) {
	v := New(mustRegistry(t), "guide")
	v.SelectTab("installation")
	before := CodeBlocks(v.Body())

	v.SetSearch("docker")
	v.SetFilter(FilterCommands)
	after := CodeBlocks(v.Body())

	assert.Equal(t, "docker", v.Search())
	assert.Equal(t, FilterCommands, v.Filter())
	assert.Equal(t, before, after)

	v.SetFilter("everything")
	assert.Equal(t, FilterAll, v.Filter())
}

func TestRenderLeafRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"plain",
		"<script>alert('x')</script> & \"quotes\"",
		"line one\n\n  indented\ttab\n",
		"unicode • ✓ 日本語",
	}
	for _, s := range texts {
		b := Render(content.Leaf{Text: s}, "a", "b")
		code, ok := b.(*CodeBlock)
		require.True(t, ok)
		assert.Equal(t, s, code.Text)
		assert.Equal(t, "a/b", code.ID)
	}
}

func TestRenderMapping(t *testing.T) {
	n := content.NewMap(
		content.Entry{Key: "title", Value: content.Leaf{Text: "Hidden"}},
		content.Entry{Key: "meshTopology", Value: content.NewMap(
			content.Entry{Key: "maxPeers", Value: content.Scalar{Text: "50", Tag: "!!int"}},
			content.Entry{Key: "bootstrap", Value: content.Leaf{Text: "mesh://seed:9001"}},
		)},
		content.Entry{Key: "cryptoKeys", Value: content.Leaf{Text: "ed25519"}},
	)

	b := Render(n, "s", "t")
	st, ok := b.(*Stack)
	require.True(t, ok)
	require.Len(t, st.Groups, 2, "title must not render")

	mesh := st.Groups[0]
	assert.Equal(t, "meshTopology", mesh.Key)
	assert.Equal(t, "mesh Topology", mesh.Heading)
	assert.Equal(t, IconNetwork, mesh.Icon)
	assert.Equal(t, 0, mesh.Depth)

	inner, ok := mesh.Body.(*Stack)
	require.True(t, ok)
	assert.Equal(t, 1, inner.Depth)
	assert.Equal(t, &TextBlock{Text: "50"}, inner.Groups[0].Body)
	assert.Equal(t, &CodeBlock{ID: "s/t/meshTopology/bootstrap", Label: LabelConfiguration, Text: "mesh://seed:9001"}, inner.Groups[1].Body)

	assert.Equal(t, IconShield, st.Groups[1].Icon)
}

func TestRenderDeepNesting(t *testing.T) {
	var n content.Node = content.Leaf{Text: "bottom"}
	for i := 0; i < 50; i++ {
		n = content.NewMap(content.Entry{Key: "level", Value: n})
	}
	blocks := CodeBlocks(Render(n))
	require.Len(t, blocks, 1)
	assert.Equal(t, "bottom", blocks[0].Text)
}

func TestCodeLabel(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"# comment", LabelTerminal},
		{"gitmesh init", LabelTerminal},
		{"npm i", LabelTerminal},
		{"GitMesh", LabelConfiguration},
		{`{"port": 9001}`, LabelConfiguration},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CodeLabel(tt.text), tt.text)
	}
}

func TestGroupIcon(t *testing.T) {
	tests := []struct {
		key  string
		want Icon
	}{
		{"networkRequirements", IconNetwork},
		{"meshId", IconNetwork},
		{"cryptoAlgorithms", IconShield},
		{"securityOptions", IconShield},
		{"performance", IconZap},
		{"optimization", IconZap},
		{"config", IconSettings},
		{"settings", IconSettings},
		{"troubleshooting", IconAlert},
		{"issues", IconAlert},
		{"Network", IconChevron},
		{"docker", IconChevron},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupIcon(tt.key), tt.key)
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "quick Start", Humanize("quickStart"))
	assert.Equal(t, "Linux", Humanize("Linux"))
	assert.Equal(t, "p2p Protocol", Humanize("p2pProtocol"))
	assert.Equal(t, "A P I", Humanize("API"))
	assert.Equal(t, "Quick Start", Heading("quickStart"))
	assert.Equal(t, ".Gitmesh/", Capitalize(".gitmesh/"))
}

func TestEverySectionRenders(t *testing.T) {
	reg := mustRegistry(t)
	for _, key := range reg.Keys() {
		v := New(reg, key)
		for _, tab := range v.Tabs() {
			require.True(t, v.SelectTab(tab.Key))
			p := v.Page()
			if tab.Key == "overview" {
				assert.NotEmpty(t, p.Overview.Text, key)
				continue
			}
			assert.NotNil(t, p.Body, "%s/%s", key, tab.Key)
		}
	}
}
