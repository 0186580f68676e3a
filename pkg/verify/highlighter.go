package verify

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var nonLetterRe = regexp.MustCompile(`[^a-zA-Z]`)

// functionWords are prioritized with a shorter bold prefix than ordinary
// content words, matching standard "bionic reading" treatment of closed
// classes.
var functionWords = map[string]bool{
	"a": true, "an": true, "the": true, "in": true, "on": true, "at": true,
	"by": true, "for": true, "with": true, "from": true, "to": true, "of": true,
	"and": true, "but": true, "or": true, "so": true, "it": true, "its": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
}

// Conflict markers passed to Highlight describe which tokens/rule
// terms/phonetic codes in a title conflicted with a candidate.
type HighlightConflict struct {
	Tokens   []string
	Rules    []string
	Phonetic []string
}

// BionicHighlighter annotates conflicting tokens/phonemes in a title for
// explanation. Intensity controls both the bold font-weight and how much
// of each classified word's prefix is bolded.
type BionicHighlighter struct {
	Intensity float64
}

// NewBionicHighlighter returns a highlighter with the given intensity
// (expected in [0,1]; 0.5 is a reasonable default).
func NewBionicHighlighter(intensity float64) *BionicHighlighter {
	return &BionicHighlighter{Intensity: intensity}
}

func (h *BionicHighlighter) fixationWeight() int {
	return int(math.Round(400 + h.Intensity*500))
}

func (h *BionicHighlighter) transformWord(word string) string {
	if len([]rune(word)) < 2 {
		return word
	}
	clean := nonLetterRe.ReplaceAllString(word, "")
	if clean == "" {
		return word
	}
	n := len([]rune(clean))
	isFunction := functionWords[strings.ToLower(clean)]

	var baseRatio float64
	switch {
	case n <= 3:
		baseRatio = 0.66
	case isFunction:
		baseRatio = 0.35
	default:
		baseRatio = 0.5
	}

	scaledRatio := baseRatio * (0.5 + h.Intensity)
	if scaledRatio < 0.05 {
		scaledRatio = 0.05
	}
	if scaledRatio > 0.95 {
		scaledRatio = 0.95
	}
	boldCount := int(math.Ceil(float64(n) * scaledRatio))
	if boldCount < 1 {
		boldCount = 1
	}

	runes := []rune(word)
	if boldCount > len(runes) {
		boldCount = len(runes)
	}
	boldPart := string(runes[:boldCount])
	restPart := string(runes[boldCount:])

	return fmt.Sprintf(`<span class="bionic-fixation" style="font-weight:%d">%s</span>%s`,
		h.fixationWeight(), boldPart, restPart)
}

// Highlight applies bionic-style annotation to every word in text that
// matches the conflict descriptor, wrapping the whole output in a single
// container span. Words that don't classify pass through unchanged.
func (h *BionicHighlighter) Highlight(text string, conflict HighlightConflict) string {
	words := strings.Fields(text)

	tokenSet := toLowerSet(conflict.Tokens)
	ruleSet := toLowerSet(conflict.Rules)
	phoneticSet := make(map[string]bool, len(conflict.Phonetic))
	for _, p := range conflict.Phonetic {
		phoneticSet[p] = true
	}

	var out []string
	for _, word := range words {
		clean := strings.ToLower(nonLetterRe.ReplaceAllString(word, ""))
		primary, _ := doubleMetaphone(clean)

		isConflict := tokenSet[clean] || ruleSet[clean] || phoneticSet[primary]
		if !isConflict {
			for rule := range ruleSet {
				if rule != "" && strings.Contains(clean, rule) {
					isConflict = true
					break
				}
			}
		}

		if isConflict {
			out = append(out, h.transformWord(word))
		} else {
			out = append(out, word)
		}
	}

	return fmt.Sprintf(`<span class="bionic-wrapper">%s</span>`, strings.Join(out, " "))
}

func toLowerSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, i := range items {
		out[strings.ToLower(i)] = true
	}
	return out
}
