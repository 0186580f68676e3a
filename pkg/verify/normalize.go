package verify

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// stopWords is the English stopword set plus the small closed-class
// additions the quality/compliance stages expect removed from the
// tokenized, space-agnostic form.
var stopWords = buildStopWords()

func buildStopWords() map[string]bool {
	base := []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
		"you're", "you've", "you'll", "you'd", "your", "yours", "yourself",
		"yourselves", "he", "him", "his", "himself", "she", "she's", "her",
		"hers", "herself", "it", "it's", "its", "itself", "they", "them",
		"their", "theirs", "themselves", "what", "which", "who", "whom",
		"this", "that", "that'll", "these", "those", "am", "is", "are",
		"was", "were", "be", "been", "being", "have", "has", "had", "having",
		"do", "does", "did", "doing", "but", "if", "or", "because", "as",
		"until", "while", "at", "by", "between", "into", "through", "during",
		"before", "after", "above", "below", "to", "from", "up", "down",
		"in", "out", "on", "off", "over", "under", "again", "further",
		"then", "once", "here", "there", "when", "where", "why", "how",
		"all", "any", "both", "each", "few", "more", "most", "other",
		"some", "such", "no", "nor", "not", "only", "own", "same", "so",
		"than", "too", "very", "s", "t", "can", "will", "just", "don",
		"don't", "should", "should've", "now", "d", "ll", "m", "o", "re",
		"ve", "y", "ain", "aren", "aren't", "couldn", "couldn't",
		// closed-class additions the quality stage removes on top of the
		// stopword baseline
		"the", "and", "a", "an", "of", "for",
	}
	out := make(map[string]bool, len(base))
	for _, w := range base {
		out[w] = true
	}
	return out
}

var nonAlnumSpace = regexp.MustCompile(`[^a-z0-9\s]`)
var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// Normalize lowercases, NFKC-normalizes, replaces every character outside
// [a-z0-9\s] with a single space (the mechanism that neutralizes invisible
// marks and punctuation-based bypasses), drops stopwords, and collapses
// whitespace.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	text := norm.NFKC.String(s)
	text = strings.ToLower(text)
	text = nonAlnumSpace.ReplaceAllString(text, " ")

	tokens := strings.Fields(text)
	kept := tokens[:0]
	for _, t := range tokens {
		if !stopWords[t] {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}

// CanonicalForm is NFKC, lowercase, alphanumeric-only — every non
// alphanumeric character including spaces is stripped. Used for
// concatenation-attack detection, where "Hindustan Times" and
// "hindustantimes" must collapse to the same value.
func CanonicalForm(s string) string {
	if s == "" {
		return ""
	}
	text := norm.NFKC.String(s)
	text = strings.ToLower(text)
	text = strings.TrimSpace(text)
	text = nonAlnum.ReplaceAllString(text, "")
	return text
}
