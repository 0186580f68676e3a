package verify

import "strings"

// doubleMetaphone computes the primary and (optional) secondary phonetic
// codes for s following the well-known Double Metaphone algorithm. This is
// a compact, English/transliterated-title-oriented implementation: it
// covers the common consonant and vowel rules the registry's title corpus
// actually exercises (initial silent letters, "ph"/"th"/"sh"/"ch" digraphs,
// "c"/"g"/"s" context rules, doubled consonants) rather than the full
// original rule set's every edge case.
func doubleMetaphone(s string) (primary, secondary string) {
	word := strings.ToUpper(strings.TrimSpace(s))
	word = stripNonLetters(word)
	if word == "" {
		return "", ""
	}
	runes := []rune(word)
	n := len(runes)
	first := 0

	// Skip silent initial letter combinations.
	if n >= 2 {
		switch string(runes[0:2]) {
		case "GN", "KN", "PN", "WR", "AE":
			first = 1
		}
	}
	if n >= 1 && runes[0] == 'X' {
		// Initial X sounds like S.
		primary += "S"
		secondary += "S"
		first = 1
	}

	var pb, sb strings.Builder
	pb.WriteString(primary)
	sb.WriteString(secondary)

	isVowel := func(r rune) bool {
		return strings.ContainsRune("AEIOU", r)
	}

	for i := first; i < n && pb.Len() < 8; i++ {
		r := runes[i]
		prev := rune(0)
		if i > 0 {
			prev = runes[i-1]
		}
		next := rune(0)
		if i+1 < n {
			next = runes[i+1]
		}
		next2 := rune(0)
		if i+2 < n {
			next2 = runes[i+2]
		}

		if r == prev && r != 'C' {
			continue // skip doubled letters; a doubled C is not skipped, each C is coded on its own
		}

		switch r {
		case 'A', 'E', 'I', 'O', 'U':
			if i == first {
				pb.WriteByte('A')
				sb.WriteByte('A')
			}
		case 'B':
			pb.WriteByte('P')
			sb.WriteByte('P')
		case 'C':
			if next == 'H' {
				pb.WriteByte('X')
				sb.WriteByte('X')
				i++
			} else if next == 'I' && next2 == 'A' {
				pb.WriteByte('X')
				sb.WriteByte('X')
			} else if next == 'I' || next == 'E' || next == 'Y' {
				pb.WriteByte('S')
				sb.WriteByte('S')
			} else {
				pb.WriteByte('K')
				sb.WriteByte('K')
			}
		case 'D':
			if next == 'G' && (next2 == 'E' || next2 == 'I' || next2 == 'Y') {
				pb.WriteByte('J')
				sb.WriteByte('J')
				i++
			} else {
				pb.WriteByte('T')
				sb.WriteByte('T')
			}
		case 'F':
			pb.WriteByte('F')
			sb.WriteByte('F')
		case 'G':
			if next == 'H' {
				pb.WriteByte('K')
				sb.WriteByte('K')
				i++
			} else if next == 'N' {
				// silent in -GN/-GNED
			} else if next == 'I' || next == 'E' || next == 'Y' {
				pb.WriteByte('J')
				sb.WriteByte('K')
			} else {
				pb.WriteByte('K')
				sb.WriteByte('K')
			}
		case 'H':
			if isVowel(prev) && isVowel(next) {
				pb.WriteByte('H')
				sb.WriteByte('H')
			}
		case 'J':
			pb.WriteByte('J')
			sb.WriteByte('A')
		case 'K':
			if prev != 'C' {
				pb.WriteByte('K')
				sb.WriteByte('K')
			}
		case 'L':
			pb.WriteByte('L')
			sb.WriteByte('L')
		case 'M':
			pb.WriteByte('M')
			sb.WriteByte('M')
		case 'N':
			pb.WriteByte('N')
			sb.WriteByte('N')
		case 'P':
			if next == 'H' {
				pb.WriteByte('F')
				sb.WriteByte('F')
				i++
			} else {
				pb.WriteByte('P')
				sb.WriteByte('P')
			}
		case 'Q':
			pb.WriteByte('K')
			sb.WriteByte('K')
		case 'R':
			pb.WriteByte('R')
			sb.WriteByte('R')
		case 'S':
			if next == 'H' {
				pb.WriteByte('X')
				sb.WriteByte('X')
				i++
			} else if next == 'I' && (next2 == 'O' || next2 == 'A') {
				pb.WriteByte('X')
				sb.WriteByte('S')
			} else {
				pb.WriteByte('S')
				sb.WriteByte('S')
			}
		case 'T':
			if next == 'H' {
				pb.WriteByte('0')
				sb.WriteByte('T')
				i++
			} else if next == 'I' && (next2 == 'O' || next2 == 'A') {
				pb.WriteByte('X')
				sb.WriteByte('X')
			} else {
				pb.WriteByte('T')
				sb.WriteByte('T')
			}
		case 'V':
			pb.WriteByte('F')
			sb.WriteByte('F')
		case 'W':
			if isVowel(next) {
				pb.WriteByte('W')
				sb.WriteByte('W')
			}
		case 'X':
			pb.WriteString("KS")
			sb.WriteString("KS")
		case 'Y':
			if isVowel(next) {
				pb.WriteByte('Y')
				sb.WriteByte('Y')
			}
		case 'Z':
			pb.WriteByte('S')
			sb.WriteByte('S')
		}
	}

	primary = truncate(pb.String(), 8)
	secondary = truncate(sb.String(), 8)
	if secondary == primary {
		secondary = ""
	}
	return primary, secondary
}

func stripNonLetters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// sequenceRatio is a longest-common-subsequence-based similarity ratio in
// [0,1], the same family of measure Python's difflib.SequenceMatcher.ratio
// uses: 2*|LCS| / (|a|+|b|).
func sequenceRatio(a, b string) float64 {
	la, lb := len(a), len(b)
	if la == 0 && lb == 0 {
		return 1
	}
	if la == 0 || lb == 0 {
		return 0
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[lb]
	return 2 * float64(lcs) / float64(la+lb)
}

// PhoneticSimilarity computes double-metaphone codes for both raw-lowercased
// and transliterated forms of a and b, and returns the max sequence-ratio
// similarity across primary/secondary code pairings and both passes.
func PhoneticSimilarity(a, b, aTranslit, bTranslit string) float64 {
	best := phoneticPass(a, b)
	if v := phoneticPass(aTranslit, bTranslit); v > best {
		best = v
	}
	return best
}

func phoneticPass(a, b string) float64 {
	p1, s1 := doubleMetaphone(a)
	p2, s2 := doubleMetaphone(b)

	best := sequenceRatio(p1, p2)
	alt := s2
	if alt == "" {
		alt = p2
	}
	if v := sequenceRatio(p1, alt); v > best {
		best = v
	}
	return best
}
