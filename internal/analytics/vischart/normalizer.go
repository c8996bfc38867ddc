// internal/analytics/vischart/normalizer.go

// Package vischart maps chart-type vocabulary onto the three visualization
// kinds the dashboard can actually render. Everything else degrades to a bar
// chart with the requested kind flagged so the UI can explain itself.
package vischart

import (
	"regexp"
	"strings"

	"analytics-dashboard/internal/models"
)

// Match is the outcome of scanning text for chart-type vocabulary.
type Match struct {
	Visualization models.Visualization
	Unsupported   bool
	// Label is the human display name of the requested kind, set only for
	// unsupported requests ("pie chart", "box plot", ...).
	Label string
}

type synonym struct {
	re          *regexp.Regexp
	vis         models.Visualization
	unsupported bool
	label       string
}

// Unsupported named kinds are listed before the generic bar words so that
// "pie chart" resolves as pie, not as a bare "chart".
var synonyms = []synonym{
	{re: word(`pie`), unsupported: true, label: "pie chart"},
	{re: word(`scatter`), unsupported: true, label: "scatter plot"},
	{re: word(`bubble`), unsupported: true, label: "bubble chart"},
	{re: word(`heat ?map`), unsupported: true, label: "heatmap"},
	{re: word(`tree ?map`), unsupported: true, label: "treemap"},
	{re: word(`funnel`), unsupported: true, label: "funnel chart"},
	{re: word(`gauge`), unsupported: true, label: "gauge chart"},
	{re: word(`radar`), unsupported: true, label: "radar chart"},
	{re: word(`spider`), unsupported: true, label: "spider chart"},
	{re: word(`area`), unsupported: true, label: "area chart"},
	{re: word(`histogram`), unsupported: true, label: "histogram"},
	{re: word(`sankey`), unsupported: true, label: "sankey diagram"},
	{re: word(`waterfall`), unsupported: true, label: "waterfall chart"},
	{re: word(`gantt`), unsupported: true, label: "gantt chart"},
	{re: word(`network`), unsupported: true, label: "network graph"},
	{re: word(`map`), unsupported: true, label: "map"},
	{re: word(`box ?plot`), unsupported: true, label: "box plot"},
	{re: word(`violin`), unsupported: true, label: "violin plot"},

	{re: word(`line`), vis: models.VisualizationLine},
	{re: word(`trend`), vis: models.VisualizationLine},
	{re: word(`timeline`), vis: models.VisualizationLine},

	{re: word(`insight`), vis: models.VisualizationInsight},
	{re: word(`metric`), vis: models.VisualizationInsight},
	{re: word(`kpi`), vis: models.VisualizationInsight},
	{re: word(`summary`), vis: models.VisualizationInsight},
	{re: word(`total`), vis: models.VisualizationInsight},

	{re: word(`bar`), vis: models.VisualizationBar},
	{re: word(`column`), vis: models.VisualizationBar},
	{re: word(`chart`), vis: models.VisualizationBar},
	{re: word(`graph`), vis: models.VisualizationBar},
}

func word(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`\b(?:` + pattern + `)s?\b`)
}

// Detect scans text for chart-type vocabulary. The second return value is
// false when no chart word appears at all. Unsupported kinds come back as
// bar with Unsupported set and the display label filled in.
func Detect(text string) (Match, bool) {
	lowered := strings.ToLower(text)
	for _, s := range synonyms {
		if !s.re.MatchString(lowered) {
			continue
		}
		if s.unsupported {
			return Match{
				Visualization: models.VisualizationBar,
				Unsupported:   true,
				Label:         s.label,
			}, true
		}
		return Match{Visualization: s.vis}, true
	}
	return Match{}, false
}

// Normalize is Detect with the spec'd default: text without any chart word
// resolves to a bar chart.
func Normalize(text string) Match {
	if m, ok := Detect(text); ok {
		return m
	}
	return Match{Visualization: models.VisualizationBar}
}

// Vocabulary returns an alternation pattern covering every known chart-type
// synonym, for callers that need to recognize visualization-only phrasings.
func Vocabulary() string {
	return `pie|scatter|bubble|heat ?map|tree ?map|funnel|gauge|radar|spider|area|histogram|sankey|waterfall|gantt|network|map|box ?plot|violin|line|trend|timeline|insight|metric|kpi|summary|total|bar|column|chart|graph`
}
