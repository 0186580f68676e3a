package verify

import (
	"regexp"
	"strings"
	"unicode"
)

// Script identifies the Unicode script DetectScript assigns to a string.
type Script string

const (
	ScriptDevanagari Script = "devanagari"
	ScriptOdia       Script = "odia"
	ScriptLatin      Script = "latin"
	ScriptUnknown    Script = "unknown"
)

// DetectScript checks s for Devanagari, then Oriya (Unicode range tables),
// then ASCII Latin letters, and returns the first script that has at least
// one rune in s. A mixed-script string is reported by that first match,
// not by its majority script.
func DetectScript(s string) Script {
	for _, r := range s {
		if unicode.Is(unicode.Devanagari, r) {
			return ScriptDevanagari
		}
	}
	for _, r := range s {
		if unicode.Is(unicode.Oriya, r) {
			return ScriptOdia
		}
	}
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return ScriptLatin
		}
	}
	return ScriptUnknown
}

// cNotFollowedByH matches a lone "c" not part of "ch"; it is rewritten to
// "k" ahead of the other consonant-flattening substitutions.
var cNotFollowedByH = regexp.MustCompile(`c([^h]|$)`)

// substringRules are applied in the order listed, after script-to-Latin
// conversion and consonant flattening, collapsing common transliteration
// variants of the same phoneme. Each rule sees the output of the rules
// before it.
var substringRules = []struct {
	from string
	to   string
}{
	{"aa", "a"},
	{"ee", "i"},
	{"oo", "u"},
	{"ou", "o"},
	{"bh", "b"},
	{"dh", "d"},
	{"th", "t"},
	{"ph", "f"},
	{"sh", "s"},
	{"chh", "ch"},
	{"ri", "r"},
	{"tra", "tara"},
}

// devanagariToITRANS and oriyaToITRANS hold a deliberately small set of
// the most common native-script syllable-to-ITRANS mappings used by the
// registry's title corpus (newspaper/periodical names). Scripts not
// covered fall through unchanged and still pass through substringRules.
var devanagariToITRANS = map[rune]string{
	'अ': "a", 'आ': "aa", 'इ': "i", 'ई': "ee", 'उ': "u", 'ऊ': "oo",
	'ए': "e", 'ऐ': "ai", 'ओ': "o", 'औ': "au",
	'क': "ka", 'ख': "kha", 'ग': "ga", 'घ': "gha",
	'च': "cha", 'छ': "chha", 'ज': "ja", 'झ': "jha",
	'ट': "ta", 'ठ': "tha", 'ड': "da", 'ढ': "dha", 'ण': "na",
	'त': "ta", 'थ': "tha", 'द': "da", 'ध': "dha", 'न': "na",
	'प': "pa", 'फ': "pha", 'ब': "ba", 'भ': "bha", 'म': "ma",
	'य': "ya", 'र': "ra", 'ल': "la", 'व': "va",
	'श': "sha", 'ष': "sha", 'स': "sa", 'ह': "ha",
	' ': " ",
}

var oriyaToITRANS = map[rune]string{
	'ଅ': "a", 'ଆ': "aa", 'ଇ': "i", 'ଈ': "ee", 'ଉ': "u", 'ଊ': "oo",
	'ଏ': "e", 'ଐ': "ai", 'ଓ': "o", 'ଔ': "au",
	'କ': "ka", 'ଖ': "kha", 'ଗ': "ga", 'ଘ': "gha",
	'ଚ': "cha", 'ଛ': "chha", 'ଜ': "ja", 'ଝ': "jha",
	'ଟ': "ta", 'ଠ': "tha", 'ଡ': "da", 'ଢ': "dha", 'ଣ': "na",
	'ତ': "ta", 'ଥ': "tha", 'ଦ': "da", 'ଧ': "dha", 'ନ': "na",
	'ପ': "pa", 'ଫ': "pha", 'ବ': "ba", 'ଭ': "bha", 'ମ': "ma",
	'ଯ': "ya", 'ର': "ra", 'ଲ': "la", 'ଵ': "va",
	'ଶ': "sha", 'ଷ': "sha", 'ସ': "sa", 'ହ': "ha",
	' ': " ",
}

func scriptToITRANS(s string, table map[rune]string) string {
	var b strings.Builder
	for _, r := range s {
		if v, ok := table[r]; ok {
			b.WriteString(v)
		}
		// unmapped runes (vowel signs/matras not in the table) are dropped;
		// the ITRANS approximation is lossy by design.
	}
	return b.String()
}

// TransliterationNormalize converts native-script input to an
// ITRANS-equivalent Latin rendering, then applies canonical phoneme
// flattening rules so spelling variants of the same transliterated title
// collapse to one form.
func TransliterationNormalize(s string) string {
	text := strings.ToLower(strings.TrimSpace(s))

	switch DetectScript(s) {
	case ScriptDevanagari:
		text = scriptToITRANS(s, devanagariToITRANS)
		text = strings.ToLower(text)
	case ScriptOdia:
		text = scriptToITRANS(s, oriyaToITRANS)
		text = strings.ToLower(text)
	}

	text = cNotFollowedByH.ReplaceAllString(text, "k$1")
	text = strings.ReplaceAll(text, "v", "w")
	text = strings.ReplaceAll(text, "z", "j")
	text = strings.ReplaceAll(text, "x", "ks")
	text = strings.ReplaceAll(text, "q", "k")

	for _, rule := range substringRules {
		text = strings.ReplaceAll(text, rule.from, rule.to)
	}
	return text
}
