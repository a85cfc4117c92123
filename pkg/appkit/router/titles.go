package router

import "strings"

// defaultTitles maps the dashboard's page names to display titles.
// Unknown names fall back to a kebab-case to Title Case conversion.
var defaultTitles = map[string]string{
	"overview":        "Overview",
	"activities":      "Activities",
	"activity-detail": "Activity Detail",
	"training-load":   "Training Load",
	"power-curve":     "Power Curve",
	"upload":          "Upload",
	"settings":        "Settings",
	"strava-sync":     "Strava Sync",
}

// titleFor resolves a page's display title: configured overrides first,
// then the builtin table, then Humanize.
func titleFor(name string, overrides map[string]string) string {
	if title, ok := overrides[name]; ok {
		return title
	}
	if title, ok := defaultTitles[name]; ok {
		return title
	}
	return Humanize(name)
}

// Humanize converts a kebab-case page name to Title Case, e.g.
// "ride-comparison" becomes "Ride Comparison".
func Humanize(name string) string {
	words := strings.Split(name, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
