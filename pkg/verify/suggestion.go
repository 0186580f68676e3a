package verify

import (
	"sort"
	"strings"
)

// TokenRisk classifies one input token's exposure to rejection.
type TokenRisk string

const (
	TokenSafe    TokenRisk = "SAFE"
	TokenRisky   TokenRisk = "RISKY"
	TokenBlocked TokenRisk = "BLOCKED"
)

// safePrefixes/safeSuffixes are the curated word banks the suggestion
// engine draws from; both are pre-vetted against the compliance blacklist.
var safePrefixes = []string{
	"Horizon", "Insight", "Metro", "Prime", "National",
	"Civic", "Pioneer", "Pinnacle", "Frontier", "Apex",
	"Sentinel", "Beacon", "Spectrum", "Vantage", "Meridian",
}

var safeSuffixes = []string{
	"Chronicle", "Dispatch", "Bulletin", "Gazette", "Tribune",
	"Observer", "Reporter", "Sentinel", "Review", "Ledger",
	"Journal", "Monitor", "Outlook", "Digest", "Register",
}

// ConflictAnalysis is step 1 of the suggestion pipeline: what caused the
// rejection, in a form the later steps can act on.
type ConflictAnalysis struct {
	ConflictType       string // "lexical", "phonetic", or "conceptual"
	ConflictingTokens  map[string]bool
	HasPeriodicity     bool
	HasRestricted      bool
	HasCombination     bool
	DominantSignal     string
}

// AnalyzeConflicts builds the ConflictAnalysis from the reported conflicts
// and compliance violations of a rejected/reviewed verification.
func AnalyzeConflicts(title string, conflicts []Conflict, best Scores, dominantSignal string, complianceViolations []string) ConflictAnalysis {
	tokens := strings.Fields(title)
	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[strings.ToLower(t)] = true
	}

	conflictingTokens := make(map[string]bool)
	for _, c := range conflicts {
		for _, ct := range strings.Fields(c.Title) {
			lower := strings.ToLower(ct)
			if tokenSet[lower] {
				conflictingTokens[lower] = true
			}
		}
	}

	hasPeriodicity, hasRestricted, hasCombination := false, false, false
	for _, v := range complianceViolations {
		lower := strings.ToLower(v)
		if strings.Contains(lower, "periodicity") {
			hasPeriodicity = true
		}
		if strings.Contains(lower, "restricted") {
			hasRestricted = true
		}
		if strings.Contains(lower, "combination") {
			hasCombination = true
		}
	}

	conflictType := "conceptual"
	if best.Lexical >= best.Phonetic && best.Lexical >= best.Semantic {
		conflictType = "lexical"
	} else if best.Phonetic >= best.Lexical && best.Phonetic >= best.Semantic {
		conflictType = "phonetic"
	}

	return ConflictAnalysis{
		ConflictType:      conflictType,
		ConflictingTokens: conflictingTokens,
		HasPeriodicity:    hasPeriodicity,
		HasRestricted:     hasRestricted,
		HasCombination:    hasCombination,
		DominantSignal:    dominantSignal,
	}
}

type tokenRiskPair struct {
	token string
	risk  TokenRisk
}

// ClassifyTokenRisk labels each input token SAFE, RISKY, or BLOCKED.
func ClassifyTokenRisk(tokens []string, analysis ConflictAnalysis, cat *RuleCatalogue) []tokenRiskPair {
	cc := GetConceptClusters()
	out := make([]tokenRiskPair, 0, len(tokens))
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		switch {
		case cat.RestrictedTerms[lower] || cat.PeriodicityTerms[lower]:
			out = append(out, tokenRiskPair{tok, TokenBlocked})
		case analysis.ConflictingTokens[lower]:
			out = append(out, tokenRiskPair{tok, TokenRisky})
		case cc.Root(lower) != lower:
			out = append(out, tokenRiskPair{tok, TokenRisky})
		default:
			out = append(out, tokenRiskPair{tok, TokenSafe})
		}
	}
	return out
}

func isSafeWord(word string, cat *RuleCatalogue) bool {
	w := strings.ToLower(strings.TrimSpace(word))
	if len(w) < 2 {
		return false
	}
	if cat.RestrictedTerms[w] || cat.PeriodicityTerms[w] {
		return false
	}
	return true
}

func titleIsClean(title string, cat *RuleCatalogue) bool {
	if len(strings.TrimSpace(title)) < 3 {
		return false
	}
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if cat.RestrictedTerms[w] || cat.PeriodicityTerms[w] {
			return false
		}
	}
	return true
}

// smartTitleCase capitalizes words that are fully lowercase, preserving
// words the caller already capitalized.
func smartTitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == strings.ToLower(w) {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// suggestionCandidate is one generated alternative, paired with the reason
// it was produced.
type suggestionCandidate struct {
	title  string
	reason string
}

// GenerateCandidates produces up to maxCandidates alternative titles via
// six generation strategies.
func GenerateCandidates(title string, analysis ConflictAnalysis, riskPairs []tokenRiskPair, cat *RuleCatalogue, maxCandidates int) []suggestionCandidate {
	cc := GetConceptClusters()
	var out []suggestionCandidate
	seen := make(map[string]bool)

	tokens := make([]string, len(riskPairs))
	for i, p := range riskPairs {
		tokens[i] = p.token
	}

	add := func(newTitle, reason string) {
		key := strings.ToLower(strings.TrimSpace(newTitle))
		if seen[key] || !titleIsClean(newTitle, cat) || len(out) >= maxCandidates {
			return
		}
		seen[key] = true
		out = append(out, suggestionCandidate{smartTitleCase(newTitle), reason})
	}

	// Strategy A — concept cluster swap.
	for i, p := range riskPairs {
		if p.risk != TokenRisky && p.risk != TokenBlocked {
			continue
		}
		alts := cc.GetClusterAlternatives(p.token)
		for j, alt := range alts {
			if j >= 4 {
				break
			}
			if !isSafeWord(alt, cat) {
				continue
			}
			newTokens := append(append(append([]string{}, tokens[:i]...), smartTitleCase(alt)), tokens[i+1:]...)
			add(strings.Join(newTokens, " "), "Replaced '"+p.token+"' with cluster alternative '"+smartTitleCase(alt)+"'")
		}
	}

	// Strategy B — safe suffix substitution on a risky/blocked last token.
	if len(riskPairs) > 0 && (riskPairs[len(riskPairs)-1].risk == TokenRisky || riskPairs[len(riskPairs)-1].risk == TokenBlocked) {
		var safeTokens []string
		for _, p := range riskPairs[:len(riskPairs)-1] {
			if p.risk == TokenSafe {
				safeTokens = append(safeTokens, p.token)
			}
		}
		base := strings.Join(safeTokens, " ")
		if base == "" && len(tokens) > 0 {
			base = tokens[0]
		}
		for i, suffix := range safeSuffixes {
			if i >= 6 {
				break
			}
			add(base+" "+suffix, "Replaced '"+riskPairs[len(riskPairs)-1].token+"' with safe suffix '"+suffix+"'")
		}
	}

	// Safe prefix injection when the first token is risky/blocked.
	if len(riskPairs) > 1 && (riskPairs[0].risk == TokenRisky || riskPairs[0].risk == TokenBlocked) {
		var safeTail []string
		for _, p := range riskPairs[1:] {
			if p.risk == TokenSafe {
				safeTail = append(safeTail, p.token)
			}
		}
		if len(safeTail) > 0 {
			tail := strings.Join(safeTail, " ")
			for i, prefix := range safePrefixes {
				if i >= 5 {
					break
				}
				add(prefix+" "+tail, "Replaced '"+riskPairs[0].token+"' with safe prefix '"+prefix+"'")
			}
		}
	}

	// Strategy C — wholesale reframe when most tokens are not SAFE.
	riskyCount := 0
	for _, p := range riskPairs {
		if p.risk != TokenSafe {
			riskyCount++
		}
	}
	if float64(riskyCount) >= float64(len(riskPairs))*0.6 {
		var safeRemaining []string
		for _, p := range riskPairs {
			if p.risk == TokenSafe {
				safeRemaining = append(safeRemaining, p.token)
			}
		}
		base := strings.Join(safeRemaining, " ")
		if base == "" && len(tokens) > 0 && isSafeWord(tokens[0], cat) {
			base = tokens[0]
		}
		if base != "" {
		outer:
			for i, prefix := range safePrefixes {
				if i >= 5 {
					break
				}
				for j, suffix := range safeSuffixes {
					if j >= 3 {
						break
					}
					add(prefix+" "+base+" "+suffix, "Reframed as '"+prefix+" "+base+" "+suffix+"' to avoid conflicts")
					if len(out) >= maxCandidates {
						break outer
					}
				}
			}
		}
	}

	// Strategy D — phonetic divergence.
	if analysis.ConflictType == "phonetic" {
		for i, p := range riskPairs {
			if p.risk != TokenRisky {
				continue
			}
			tokMeta, _ := doubleMetaphone(p.token)
			for _, alt := range cc.GetClusterAlternatives(p.token) {
				altMeta, _ := doubleMetaphone(alt)
				if altMeta != tokMeta && isSafeWord(alt, cat) {
					newTokens := append(append(append([]string{}, tokens[:i]...), smartTitleCase(alt)), tokens[i+1:]...)
					add(strings.Join(newTokens, " "), "Phonetically diverged: '"+p.token+"' -> '"+smartTitleCase(alt)+"'")
				}
			}
		}
	}

	// Strategy E — periodicity removal, optionally with a safe suffix.
	if analysis.HasPeriodicity {
		var nonPeriod []string
		for _, t := range tokens {
			if !cat.PeriodicityTerms[strings.ToLower(t)] {
				nonPeriod = append(nonPeriod, t)
			}
		}
		if len(nonPeriod) > 0 {
			base := strings.Join(nonPeriod, " ")
			add(base, "Removed periodicity term")
			for i, suffix := range safeSuffixes {
				if i >= 4 {
					break
				}
				add(base+" "+suffix, "Removed periodicity term, added '"+suffix+"'")
			}
		}
	}

	return out
}

// VerifyFunc is the re-entrant call back into the orchestrator, with
// recursion guarded by the caller passing skipSuggestions=true.
type VerifyFunc func(title string) Result

// RescoreAndFilter runs each candidate through verify (which must itself
// be invoked with suggestions skipped) and keeps only those that would
// Accept with probability at or above minProbability, sorted descending
// and truncated to maxResults.
func RescoreAndFilter(candidates []suggestionCandidate, verify VerifyFunc, minProbability float64, maxResults int) []Suggestion {
	var scored []Suggestion
	for _, c := range candidates {
		result := verify(c.title)
		if result.Decision == DecisionAccept && result.VerificationProbability >= minProbability {
			scored = append(scored, Suggestion{
				SuggestedTitle:          c.title,
				VerificationProbability: roundTo2(result.VerificationProbability),
				Reason:                  c.reason,
			})
		}
	}
	// Every qualifying candidate is scored before sorting and truncating,
	// so truncation keeps the true top maxResults by probability rather
	// than the first maxResults encountered in generation order.
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].VerificationProbability > scored[j].VerificationProbability
	})
	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}

func roundTo2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
