package verify

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
)

// englishRoots, hindiRoots, and odiaRoots are the literal root-word banks
// the quality gate's soft-scoring model checks Latin-script titles against.
var englishRoots = map[string]bool{
	"news": true, "times": true, "herald": true, "chronicle": true, "express": true,
	"daily": true, "morning": true, "evening": true, "today": true, "journal": true,
	"the": true, "india": true, "observer": true, "standard": true, "tribune": true,
	"national": true, "global": true, "citizen": true, "mirror": true, "post": true,
	"mail": true, "bulletin": true, "gazette": true, "weekly": true, "monthly": true,
	"reporter": true, "press": true, "media": true, "insight": true, "review": true,
	"world": true, "state": true, "city": true, "local": true, "region": true,
}

var hindiRoots = map[string]bool{
	"samachar": true, "bharat": true, "dainik": true, "nav": true, "pratidin": true,
	"sandhya": true, "aaj": true, "lok": true, "rajya": true, "jan": true, "dhwani": true,
	"pratidhwani": true, "hindustan": true, "nagar": true, "khabar": true,
	"prabhat": true, "patrika": true,
}

var odiaRoots = map[string]bool{
	"sambad": true, "samaja": true, "odisha": true, "khabar": true,
	"barta": true, "pratidin": true, "sakal": true,
}

var symbolRe = regexp.MustCompile(`[^\p{L}\p{M}\p{N}\s]`)

// QualityRisk is the risk label the Quality Gate attaches to a low-quality
// verdict.
type QualityRisk string

const (
	QualityRiskLow      QualityRisk = "Low"
	QualityRiskMedium   QualityRisk = "Medium"
	QualityRiskHigh     QualityRisk = "High"
	QualityRiskCritical QualityRisk = "Critical"
)

// QualityVerdict is the Quality Gate's decision for one title.
type QualityVerdict struct {
	IsLowQuality bool
	Violations   []string
	Risk         QualityRisk
}

// shannonEntropy computes the Shannon entropy (bits) of the lowercased
// character distribution of s; used to detect keyboard-mashing.
func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}
	counts := make(map[rune]int)
	n := 0
	for _, r := range strings.ToLower(s) {
		counts[r]++
		n++
	}
	var h float64
	for _, c := range counts {
		p := float64(c) / float64(n)
		h -= p * math.Log2(p)
	}
	return h
}

// CheckQuality runs the multi-script-aware linguistic quality gate (Tier 0)
// over a raw submitted title.
func CheckQuality(title string) QualityVerdict {
	clean := strings.TrimSpace(title)
	var violations []string

	letters := 0
	digits := 0
	for _, r := range clean {
		if unicode.IsLetter(r) {
			letters++
		}
		if unicode.IsDigit(r) {
			digits++
		}
	}

	// A. Minimum character rule.
	if letters < 3 && len([]rune(clean)) <= 3 {
		violations = append(violations, "Too few alphabetic characters (min 3 required).")
		return QualityVerdict{true, violations, QualityRiskCritical}
	}

	// B. Digit ratio rule.
	n := len([]rune(clean))
	if n > 0 && float64(digits)/float64(n) > 0.5 {
		violations = append(violations, fmt.Sprintf("Excessive numeric content (Ratio: %.2f).", float64(digits)/float64(n)))
		return QualityVerdict{true, violations, QualityRiskCritical}
	}

	// C. Entropy limit (extreme randomness).
	entropy := shannonEntropy(clean)
	if entropy > 4.5 && n > 8 {
		violations = append(violations, fmt.Sprintf("High entropy detected (Extreme Randomness: %.2f).", entropy))
		return QualityVerdict{true, violations, QualityRiskHigh}
	}

	// D. Symbol overload.
	symbols := symbolRe.FindAllString(clean, -1)
	if n > 0 && float64(len(symbols))/float64(n) > 0.3 {
		violations = append(violations, "Excessive non-alphanumeric characters.")
		return QualityVerdict{true, violations, QualityRiskHigh}
	}

	script := DetectScript(clean)
	if script == ScriptDevanagari || script == ScriptOdia {
		return QualityVerdict{false, nil, QualityRiskLow}
	}

	// Latin soft-scoring model.
	linguisticScore := 0.0
	tokens := strings.Fields(strings.ToLower(clean))

	strippedTitle := strings.ReplaceAll(strings.ToLower(clean), " ", "")
	distinct := map[rune]bool{}
	for _, r := range strippedTitle {
		distinct[r] = true
	}
	if len([]rune(strippedTitle)) >= 5 && float64(len(distinct))/float64(len([]rune(strippedTitle))) <= 0.5 {
		violations = append(violations, "Low character variety detected (repetitive pattern).")
		return QualityVerdict{true, violations, QualityRiskMedium}
	}

	hasEnglishRoot := false
	hasIndicRoot := false
	for _, t := range tokens {
		if englishRoots[t] {
			hasEnglishRoot = true
		}
		if hindiRoots[t] || odiaRoots[t] {
			hasIndicRoot = true
		}
	}
	if hasEnglishRoot || hasIndicRoot {
		linguisticScore += 0.4
	}

	if script == ScriptLatin {
		var alphaChars []rune
		for _, r := range clean {
			if unicode.IsLetter(r) {
				alphaChars = append(alphaChars, unicode.ToLower(r))
			}
		}
		if len(alphaChars) > 0 {
			vowels := 0
			for _, r := range alphaChars {
				if strings.ContainsRune("aeiou", r) {
					vowels++
				}
			}
			vRatio := float64(vowels) / float64(len(alphaChars))
			if vRatio >= 0.20 {
				linguisticScore += 0.3
			} else {
				violations = append(violations, fmt.Sprintf("Unnatural vowel distribution (Ratio: %.2f).", vRatio))
			}
		} else {
			violations = append(violations, "No Latin alphabetic characters found despite Latin script detection.")
		}
	}

	if entropy <= 4.2 {
		linguisticScore += 0.2
	}

	if linguisticScore >= 0.5 {
		return QualityVerdict{false, nil, QualityRiskLow}
	}

	violations = append(violations, fmt.Sprintf("Failed Linguistic Confidence Threshold (Score: %.2f).", linguisticScore))
	if linguisticScore <= 0.2 {
		return QualityVerdict{true, violations, QualityRiskHigh}
	}
	return QualityVerdict{true, violations, QualityRiskMedium}
}
