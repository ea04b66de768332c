package viewer

import "strings"

// Icon names a glyph from the hub's icon set. Front-ends map it to an SVG or a
// terminal symbol.
type Icon string

const (
	IconNetwork  Icon = "network"
	IconShield   Icon = "shield"
	IconZap      Icon = "zap"
	IconSettings Icon = "settings"
	IconAlert    Icon = "alert-triangle"
	IconChevron  Icon = "chevron-right"
	IconDownload Icon = "download"
	IconDatabase Icon = "database"
	IconFile     Icon = "file-text"
	IconInfo     Icon = "info"
)

type iconRule struct {
	words []string
	icon  Icon
}

// First match wins. Matching is case-sensitive substring search on the key.
var groupRules = []iconRule{
	{[]string{"network", "mesh"}, IconNetwork},
	{[]string{"security", "crypto"}, IconShield},
	{[]string{"performance", "optimization"}, IconZap},
	{[]string{"config", "setting"}, IconSettings},
	{[]string{"trouble", "issue"}, IconAlert},
}

var tabRules = []iconRule{
	{[]string{"install"}, IconDownload},
	{[]string{"quick", "start"}, IconZap},
	{[]string{"file", "structure"}, IconDatabase},
	{[]string{"trouble"}, IconAlert},
}

// GroupIcon classifies a nested content key.
func GroupIcon(key string) Icon {
	return classify(key, groupRules, IconChevron)
}

// TabIcon classifies a top-level content key shown in the tab list.
func TabIcon(key string) Icon {
	if key == overviewTab {
		return IconInfo
	}
	return classify(key, tabRules, IconFile)
}

func classify(key string, rules []iconRule, fallback Icon) Icon {
	for _, r := range rules {
		for _, w := range r.words {
			if strings.Contains(key, w) {
				return r.icon
			}
		}
	}
	return fallback
}
