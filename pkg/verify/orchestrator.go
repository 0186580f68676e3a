package verify

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aurorareg/titlesentry/pkg/config"
)

// Core is the verification orchestrator: it owns the title index and
// compliance engine for one registry and sequences every stage of a
// verification request.
type Core struct {
	repo        TitleRepository
	index       *InvertedIndex
	compliance  *ComplianceEngine
	highlighter *BionicHighlighter
	cfg         *config.Config
	semantic    SemanticProvider
}

// NewCore loads the full title set from repo and builds the in-memory
// index and compliance engine. The index and rule catalogue are built
// once here and live for the process; accepted titles are appended via
// Submit rather than rebuilt from scratch.
func NewCore(ctx context.Context, repo TitleRepository, cfg *config.Config) (*Core, error) {
	records, err := repo.GetAllTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading title set: %w", err)
	}
	return &Core{
		repo:        repo,
		index:       NewInvertedIndex(records),
		compliance:  NewComplianceEngine(GetRuleCatalogue()),
		highlighter: NewBionicHighlighter(0.5),
		cfg:         cfg,
	}, nil
}

// Verify runs the full verification pipeline for a submitted title,
// including suggestion generation when the decision is not Accept.
func (c *Core) Verify(ctx context.Context, title string) Result {
	return c.verify(ctx, title, false)
}

// Submit registers an accepted title in the repository and the live
// index, so subsequent verifications see it immediately.
func (c *Core) Submit(ctx context.Context, title string) (TitleRecord, error) {
	normalized := Normalize(title)
	record := TitleRecord{
		Title:           title,
		NormalizedTitle: normalized,
		CanonicalTitle:  CanonicalForm(title),
		RegisteredAt:    time.Now(),
	}
	if err := c.repo.AddToCache(ctx, record); err != nil {
		return TitleRecord{}, fmt.Errorf("adding title to repository: %w", err)
	}
	c.index.Append(record)
	return record, nil
}

func (c *Core) verify(ctx context.Context, title string, skipSuggestions bool) Result {
	start := time.Now()

	quality := CheckQuality(title)
	if quality.IsLowQuality {
		return Result{
			IsCompliant:             false,
			VerificationProbability: 0,
			Decision:                DecisionReject,
			Explanation:             "Rejected at quality gate: " + strings.Join(quality.Violations, " "),
			Metadata: Metadata{
				RiskTier:         RiskCritical,
				ProcessingTimeMs: elapsedMs(start),
			},
		}
	}

	normalized := Normalize(title)
	canonical := CanonicalForm(title)
	translit := TransliterationNormalize(title)
	translitNormalized := Normalize(translit)

	allRecords := c.index.AllRecords()

	// Concatenation fast-path: an exact canonical collision, or one
	// canonical form wholly containing the other once either side is
	// long enough to rule out coincidental short-word containment, is a
	// deterministic Reject regardless of scoring.
	const concatenationMinLen = 12
	for _, rec := range allRecords {
		candCanonical := rec.CanonicalTitle
		if len(candCanonical) < 2 {
			continue
		}
		concatenated := candCanonical == canonical ||
			(len(candCanonical) > concatenationMinLen && strings.Contains(canonical, candCanonical)) ||
			(len(canonical) > concatenationMinLen && strings.Contains(candCanonical, canonical))
		if !concatenated {
			continue
		}
		return Result{
			IsCompliant:             false,
			VerificationProbability: 0,
			Decision:                DecisionReject,
			Explanation:             fmt.Sprintf("Rejected: canonical form matches or concatenates existing title %q.", rec.Title),
			Conflicts: []Conflict{{
				Title:           rec.Title,
				ConflictType:    ConflictLexical,
				SimilarityScore: 1.0,
			}},
			Scores: Scores{Lexical: 1.0, Phonetic: 1.0, Semantic: 1.0},
			Analysis: Analysis{
				LexicalSimilarity:    1.0,
				PhoneticSimilarity:   1.0,
				SemanticSimilarity:   1.0,
				CombinationViolation: true,
			},
			Metadata: Metadata{
				RiskTier:          RiskCritical,
				DominantSignal:    "Space Bypass / Concatenation",
				ProcessingTimeMs:  elapsedMs(start),
				CandidatesChecked: 1,
				BestMatch:         rec.Title,
			},
		}
	}

	existingNormalized := make([]string, 0, len(allRecords))
	for _, rec := range allRecords {
		existingNormalized = append(existingNormalized, rec.NormalizedTitle)
	}
	compResult := c.compliance.Check(title, existingNormalized)

	structuralPatterns := DetectStructuralPatterns(title)

	queryTokens := append(strings.Fields(normalized), strings.Fields(translitNormalized)...)
	candidates := c.index.FilterByTokens(queryTokens)
	if len(candidates) > c.cfg.MaxCandidates {
		candidates = candidates[:c.cfg.MaxCandidates]
	}

	scored := make([]candidateScore, 0, len(candidates))
	for _, cand := range candidates {
		candTranslit := TransliterationNormalize(cand.Title)

		lex := LexicalSimilarity(normalized, cand.NormalizedTitle, translitNormalized, Normalize(candTranslit), canonical, cand.CanonicalTitle)
		pho := PhoneticSimilarity(normalized, cand.NormalizedTitle, translitNormalized, Normalize(candTranslit))
		sem := c.semanticSimilarity(ctx, title, cand.Title, normalized, cand.NormalizedTitle)

		// Re-score against any compliance-cleaned form of the title, taking
		// the max: a title that passes compliance only after stripping a
		// periodicity term must still be checked against the registry in
		// that stripped form.
		for _, cleaned := range compResult.CleanedTitles {
			cleanedTranslit := Normalize(TransliterationNormalize(cleaned))
			if v := LexicalSimilarity(cleaned, cand.NormalizedTitle, cleanedTranslit, Normalize(candTranslit), CanonicalForm(cleaned), cand.CanonicalTitle); v > lex {
				lex = v
			}
			if v := PhoneticSimilarity(cleaned, cand.NormalizedTitle, cleanedTranslit, Normalize(candTranslit)); v > pho {
				pho = v
			}
		}

		fused := fuseCandidate(title, cand.Title, lex, pho, sem)
		wLex, wPho, wSem := legacyAdaptiveWeights(title)
		legacy := wLex*lex + wPho*pho + wSem*sem

		scored = append(scored, candidateScore{
			record: cand, lex: lex, pho: pho, sem: sem, fused: fused, legacyWeighted: legacy,
		})
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].fused > scored[j].fused })

	var best candidateScore
	if len(scored) > 0 {
		best = scored[0]
	}

	decision, risk, adjustedBest := decide(compResult.IsCompliant, compResult.PenaltyScore, best.fused, c.cfg.RejectThreshold, c.cfg.ReviewThreshold)
	prob := probability(compResult.IsCompliant, decision, adjustedBest)
	confidence := confidenceScore(best.lex, best.pho, best.sem)
	dominant := dominantSignalName(best.lex, best.pho, best.sem)

	var conflicts []Conflict
	for _, s := range scored {
		if s.fused <= 0.60 {
			continue
		}
		conflictType := ConflictPhonetic
		if s.lex > s.pho {
			conflictType = ConflictLexical
		}
		if s.sem > s.lex && s.sem > s.pho {
			conflictType = ConflictSemantic
		}

		metaTokens, _ := doubleMetaphone(s.record.NormalizedTitle)
		highlight := c.highlighter.Highlight(title, HighlightConflict{
			Tokens:   strings.Fields(s.record.NormalizedTitle),
			Rules:    compResult.ViolationTerms,
			Phonetic: []string{metaTokens},
		})

		conflicts = append(conflicts, Conflict{
			Title:           s.record.Title,
			ConflictType:    conflictType,
			SimilarityScore: roundTo2(s.fused),
			HighlightedText: highlight,
		})
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].SimilarityScore > conflicts[j].SimilarityScore })
	if len(conflicts) > c.cfg.MaxConflicts {
		conflicts = conflicts[:c.cfg.MaxConflicts]
	}

	explanation := c.buildExplanation(decision, compResult, best, structuralPatterns)

	result := Result{
		IsCompliant:             compResult.IsCompliant && decision != DecisionReject,
		VerificationProbability: roundTo2(prob),
		Decision:                decision,
		Explanation:             explanation,
		Conflicts:               conflicts,
		Scores: Scores{
			Lexical:  roundTo2(best.lex),
			Phonetic: roundTo2(best.pho),
			Semantic: roundTo2(best.sem),
		},
		Analysis: Analysis{
			LexicalSimilarity:     roundTo2(best.lex),
			PhoneticSimilarity:    roundTo2(best.pho),
			SemanticSimilarity:    roundTo2(best.sem),
			DisallowedWord:        compResult.PenaltyScore > 0 && containsViolationType(compResult.Violations, "Restricted term"),
			PeriodicityViolation:  containsViolationType(compResult.Violations, "Periodicity"),
			CombinationViolation:  containsViolationType(compResult.Violations, "combination"),
			PrefixSuffixViolation: containsViolationType(compResult.Violations, "prefix/suffix"),
		},
		Metadata: Metadata{
			RiskTier:           risk,
			DominantSignal:     dominant,
			ConfidenceScore:    roundTo2(confidence),
			StructuralPatterns: structuralPatterns,
			ProcessingTimeMs:   elapsedMs(start),
			CandidatesChecked:  len(scored),
		},
	}
	if len(scored) > 0 {
		result.Metadata.BestMatch = best.record.Title
	}

	if !skipSuggestions && decision != DecisionAccept {
		result.Suggestions = c.generateSuggestions(ctx, title, conflicts, result.Scores, dominant, compResult.Violations)
	}

	return result
}

func containsViolationType(violations []string, substr string) bool {
	for _, v := range violations {
		if strings.Contains(strings.ToLower(v), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

func (c *Core) generateSuggestions(ctx context.Context, title string, conflicts []Conflict, scores Scores, dominant string, violations []string) []Suggestion {
	analysis := AnalyzeConflicts(title, conflicts, scores, dominant, violations)
	cat := GetRuleCatalogue()
	riskPairs := ClassifyTokenRisk(strings.Fields(title), analysis, cat)

	candidates := GenerateCandidates(title, analysis, riskPairs, cat, 20)
	if len(candidates) == 0 {
		return nil
	}

	verifyFn := func(candidateTitle string) Result {
		return c.verify(ctx, candidateTitle, true)
	}
	return RescoreAndFilter(candidates, verifyFn, c.cfg.ReducedMinSuggestionProbability, c.cfg.MaxSuggestions)
}

func (c *Core) buildExplanation(decision Decision, comp ComplianceResult, best candidateScore, structuralPatterns []string) string {
	var parts []string
	switch decision {
	case DecisionReject:
		if !comp.IsCompliant {
			parts = append(parts, "Rejected due to compliance violations: "+strings.Join(comp.Violations, "; ")+".")
		} else {
			parts = append(parts, fmt.Sprintf("Rejected: fused similarity %.2f to %q exceeds the reject threshold.", best.fused, best.record.Title))
		}
	case DecisionReview:
		parts = append(parts, fmt.Sprintf("Flagged for review: fused similarity %.2f to %q falls in the review band.", best.fused, best.record.Title))
	default:
		parts = append(parts, "Accepted: no compliance violation and no conflicting title above the review threshold.")
	}
	if len(structuralPatterns) > 0 {
		parts = append(parts, "Matches conventional structural pattern(s): "+strings.Join(structuralPatterns, ", ")+".")
	}
	return strings.Join(parts, " ")
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
