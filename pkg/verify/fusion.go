package verify

import "strings"

// legacyAdaptiveWeights returns the adaptive {lex,pho,sem} weight triple:
// short titles (three words or fewer) favor the phonetic signal over
// lexical, since transliteration and spelling noise dominates short names.
// This value is computed and attached to every candidate score for
// explanation/debugging parity with the source system, but it never
// substitutes for the fusion math below — the fusion always wins, weights
// inform ordering only when fusion is disabled.
func legacyAdaptiveWeights(submittedTitle string) (wLex, wPho, wSem float64) {
	if len(strings.Fields(submittedTitle)) > 3 {
		return 0.6, 0.3, 0.1
	}
	return 0.4, 0.5, 0.1
}

// fuseCandidate computes the fused similarity for one candidate: a
// max-dominant hybrid of lexical/phonetic/semantic scores with semantic
// dampening, containment boost, and short-title amplification.
func fuseCandidate(submittedTitle, candidateTitle string, lex, pho, sem float64) float64 {
	dominant := lex
	if pho > dominant {
		dominant = pho
	}

	var fused float64
	if dominant < 0.95 {
		fused = 0.7*dominant + 0.3*sem
	} else {
		fused = dominant
	}

	a := strings.ToLower(submittedTitle)
	b := strings.ToLower(candidateTitle)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		fused += 0.10
		if fused > 1.0 {
			fused = 1.0
		}
	}

	if len(strings.Fields(submittedTitle)) <= 2 {
		fused *= 1.03
		if fused > 1.0 {
			fused = 1.0
		}
	}

	return fused
}

// confidenceScore computes decision confidence from the best candidate's
// {lex,pho,sem} triple: high agreement across signals yields high
// confidence.
func confidenceScore(lex, pho, sem float64) float64 {
	vals := []float64{lex, pho, sem}
	avg := (vals[0] + vals[1] + vals[2]) / 3
	if avg > 0.8 {
		return 0.95
	}
	mx, mn := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v > mx {
			mx = v
		}
		if v < mn {
			mn = v
		}
	}
	c := 1 - (mx - mn)
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// dominantSignalName returns the name of the largest of {lex,pho,sem}.
func dominantSignalName(lex, pho, sem float64) string {
	name := "lexical"
	best := lex
	if pho > best {
		best = pho
		name = "phonetic"
	}
	if sem > best {
		name = "semantic"
	}
	return name
}
