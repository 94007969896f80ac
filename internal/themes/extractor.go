// Package themes tags reviews with rule-based themes from seed keyword maps.
package themes

import "strings"

// Theme is a named theme with the seed keywords that trigger it. Keyword
// order within a theme does not matter; theme order fixes the tag order on
// output.
type Theme struct {
	Name     string
	Keywords []string
}

// Other is the fallback tag for reviews matching no theme.
const Other = "Other"

// DefaultThemes is the seed map used when no app-specific override exists.
func DefaultThemes() []Theme {
	return []Theme{
		{Name: "Account Access", Keywords: []string{"login", "log in", "sign in", "otp", "password", "pin", "verification"}},
		{Name: "Connection Issues", Keywords: []string{"network", "offline", "timeout", "disconnect", "no internet", "connection"}},
		{Name: "Usability", Keywords: []string{"hard to use", "navigate", "layout", "interface", "confusing", "user friendly"}},
		{Name: "Performance", Keywords: []string{"slow", "lag", "speed", "delay", "fast", "loading"}},
		{Name: "Functionality", Keywords: []string{"feature", "cannot", "unable", "doesn't work", "does not work", "option"}},
		{Name: "Feature Requests", Keywords: []string{"should have", "wish", "please add", "would be nice", "feature request"}},
		{Name: "Security & Trust", Keywords: []string{"secure", "fraud", "trust", "encryption", "leak", "scam"}},
		{Name: "Notifications", Keywords: []string{"alert", "notification", "push", "reminder"}},
		{Name: "Stability & Bugs", Keywords: []string{"crash", "freeze", "error", "bug", "exception", "broken"}},
		{Name: "Concise Feedback", Keywords: []string{"good", "bad", "fine", "nice app", "great app"}},
	}
}

// Tagger assigns themes to review text by case-insensitive substring match.
// A theme is tagged at most once per review, on its first matching keyword.
type Tagger struct {
	defaults []Theme
	perApp   map[string][]Theme
}

// NewTagger creates a tagger with the given default seed list and optional
// per-app overrides (keyed by app name).
func NewTagger(defaults []Theme, perApp map[string][]Theme) *Tagger {
	return &Tagger{defaults: defaults, perApp: perApp}
}

// Tag returns the theme names matching text for the given app, in seed
// order, or [Other] when nothing matches.
func (t *Tagger) Tag(text, app string) []string {
	seeds := t.defaults
	if override, ok := t.perApp[app]; ok {
		seeds = override
	}

	lowered := strings.ToLower(text)
	var tags []string
	for _, theme := range seeds {
		for _, keyword := range theme.Keywords {
			if strings.Contains(lowered, keyword) {
				tags = append(tags, theme.Name)
				break
			}
		}
	}

	if len(tags) == 0 {
		return []string{Other}
	}
	return tags
}
