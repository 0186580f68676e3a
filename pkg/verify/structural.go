package verify

import (
	"regexp"
	"strings"
)

// structuralPatternTemplates are the named regex templates used only in
// explanation text: they don't affect the decision,
// they describe *why* a title reads as conventional for the domain.
var structuralPatternTemplates = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"TimeBased", regexp.MustCompile(`^(morning|evening|daily|weekly|dawn|dusk|sunrise|sunset)\s+\w+`)},
	{"LocationBased", regexp.MustCompile(`^(indian|bharat|hindu|national|global)\s+\w+`)},
	{"PublicationType", regexp.MustCompile(`.*\s+(chronicle|express|herald|times|news|diary|post|journal|mail)$`)},
}

// DetectStructuralPatterns returns the names of every structural pattern
// template the lowercased title matches.
func DetectStructuralPatterns(title string) []string {
	lower := strings.ToLower(title)
	var found []string
	for _, tpl := range structuralPatternTemplates {
		if tpl.pattern.MatchString(lower) {
			found = append(found, tpl.name)
		}
	}
	return found
}
