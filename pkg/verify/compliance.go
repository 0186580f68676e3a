package verify

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ComplianceViolation is one validator's finding.
type ComplianceViolation struct {
	Reason        string
	Term          string
	Components    []string
	CleanedTitle  string
	Penalty       float64
}

// ComplianceResult aggregates the four validators' findings for one title.
type ComplianceResult struct {
	IsCompliant    bool
	Violations     []string
	ViolationTerms []string
	PenaltyScore   float64
	CleanedTitles  []string
}

// ComplianceEngine runs the restricted-terms, periodicity, prefix/suffix,
// and combination validators against a rule catalogue. The
// restricted-terms and periodicity validators each use an Aho-Corasick
// matcher built once in NewComplianceEngine; the prefix/suffix and
// combination validators use plain string checks.
type ComplianceEngine struct {
	catalogue     *RuleCatalogue
	restrictedAC  *ACMatcher
	periodicityAC *ACMatcher
}

// NewComplianceEngine builds validators over the given catalogue.
func NewComplianceEngine(cat *RuleCatalogue) *ComplianceEngine {
	return &ComplianceEngine{
		catalogue:     cat,
		restrictedAC:  NewACMatcher(keys(cat.RestrictedTerms)),
		periodicityAC: NewACMatcher(keys(cat.PeriodicityTerms)),
	}
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// checkRestrictedTerms performs a plain multi-pattern substring search;
// the first hit yields penalty 1.0.
func (e *ComplianceEngine) checkRestrictedTerms(lower string) *ComplianceViolation {
	matches := e.restrictedAC.FindAll(lower)
	if len(matches) == 0 {
		return nil
	}
	m := matches[0]
	return &ComplianceViolation{
		Reason:  "Restricted term detected",
		Term:    m.Pattern,
		Penalty: 1.0,
	}
}

// checkPeriodicity requires both neighboring characters to be
// non-alphanumeric (word boundary), and emits a cleaned_title with the
// term removed and whitespace collapsed.
func (e *ComplianceEngine) checkPeriodicity(lower string) *ComplianceViolation {
	for _, m := range e.periodicityAC.FindAll(lower) {
		startOK := m.Start == 0
		if !startOK {
			r, _ := utf8.DecodeLastRuneInString(lower[:m.Start])
			startOK = !isWordChar(r)
		}
		endOK := m.End >= len(lower)
		if !endOK {
			r, _ := utf8.DecodeRuneInString(lower[m.End:])
			endOK = !isWordChar(r)
		}
		if !startOK || !endOK {
			continue
		}
		cleaned := strings.TrimSpace(lower[:m.Start] + " " + lower[m.End:])
		cleaned = collapseWhitespace(cleaned)
		return &ComplianceViolation{
			Reason:       "Periodicity term detected",
			Term:         m.Pattern,
			CleanedTitle: cleaned,
			Penalty:      0.5,
		}
	}
	return nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// checkPrefixSuffix tests startswith/endswith for each restricted
// prefix/suffix, stripping matches to produce cleaned_title; penalty 0.2
// per match.
func (e *ComplianceEngine) checkPrefixSuffix(lower string) *ComplianceViolation {
	cleaned := lower
	var hit []string
	penalty := 0.0

	for prefix := range e.catalogue.RestrictedPrefixes {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = cleaned[len(prefix):]
			hit = append(hit, prefix)
			penalty += 0.2
		}
	}
	for suffix := range e.catalogue.RestrictedSuffixes {
		if strings.HasSuffix(cleaned, suffix) {
			cleaned = cleaned[:len(cleaned)-len(suffix)]
			hit = append(hit, suffix)
			penalty += 0.2
		}
	}
	if len(hit) == 0 {
		return nil
	}
	sort.Strings(hit)
	return &ComplianceViolation{
		Reason:       "Restricted prefix/suffix detected",
		Components:   hit,
		CleanedTitle: collapseWhitespace(strings.TrimSpace(cleaned)),
		Penalty:      penalty,
	}
}

// checkCombination matches existing normalized titles as whole-word
// substrings of the submitted title; when ≥ 2 distinct titles match, it
// re-verifies distinctness by greedily consuming longest matches from a
// working copy, emitting penalty 1.0 only if ≥ 2 survive.
func (e *ComplianceEngine) checkCombination(lower string, existingNormalized []string) *ComplianceViolation {
	if len(existingNormalized) == 0 {
		return nil
	}

	var matched []string
	for _, existing := range existingNormalized {
		if existing == "" {
			continue
		}
		if containsWholeWord(lower, existing) {
			matched = append(matched, existing)
		}
	}
	if len(matched) < 2 {
		return nil
	}

	// Greedy longest-match distinctness re-check over a working copy.
	sort.Slice(matched, func(i, j int) bool { return len(matched[i]) > len(matched[j]) })
	working := lower
	var survivors []string
	for _, m := range matched {
		if strings.Contains(working, m) {
			survivors = append(survivors, m)
			working = strings.Replace(working, m, "", 1)
		}
	}
	if len(survivors) < 2 {
		return nil
	}
	sort.Strings(survivors)
	return &ComplianceViolation{
		Reason:     "Title is a combination of existing registered titles",
		Components: survivors,
		Penalty:    1.0,
	}
}

func containsWholeWord(haystack, needle string) bool {
	idx := strings.Index(haystack, needle)
	for idx != -1 {
		startByte := idx
		endByte := idx + len(needle)

		startOK := startByte == 0
		if !startOK {
			r, _ := utf8.DecodeLastRuneInString(haystack[:startByte])
			startOK = !isWordChar(r)
		}
		endOK := endByte >= len(haystack)
		if !endOK {
			r, _ := utf8.DecodeRuneInString(haystack[endByte:])
			endOK = !isWordChar(r)
		}

		if startOK && endOK {
			return true
		}
		next := strings.Index(haystack[idx+1:], needle)
		if next == -1 {
			break
		}
		idx = idx + 1 + next
	}
	return false
}

// Check runs all four validators and aggregates their findings.
func (e *ComplianceEngine) Check(title string, existingNormalized []string) ComplianceResult {
	lower := strings.ToLower(title)
	result := ComplianceResult{IsCompliant: true}

	checks := []*ComplianceViolation{
		e.checkRestrictedTerms(lower),
		e.checkPeriodicity(lower),
		e.checkPrefixSuffix(lower),
		e.checkCombination(lower, existingNormalized),
	}

	for _, v := range checks {
		if v == nil {
			continue
		}
		result.IsCompliant = false
		result.Violations = append(result.Violations, v.Reason)
		if v.Term != "" {
			result.ViolationTerms = append(result.ViolationTerms, v.Term)
		}
		result.ViolationTerms = append(result.ViolationTerms, v.Components...)
		result.PenaltyScore += v.Penalty
		if v.CleanedTitle != "" {
			result.CleanedTitles = append(result.CleanedTitles, v.CleanedTitle)
		}
	}

	return result
}
