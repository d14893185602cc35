package fuzzy

import (
	"strings"
	"unicode"
)

// LevenshteinDistance calculates the edit distance between two strings after
// normalization (lower case, folded accents, collapsed whitespace).
func LevenshteinDistance(s1, s2 string) int {
	return distance([]rune(normalizeString(s1)), []rune(normalizeString(s2)))
}

func distance(r1, r2 []rune) int {
	m, n := len(r1), len(r2)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// Threshold is the typo tolerance used for a query of this length.
func Threshold(query string) int {
	n := len([]rune(normalizeString(query)))
	switch {
	case n <= 3:
		return 1
	case n >= 8:
		return 3
	}
	return 2
}

// FuzzyMatch checks if query fuzzy-matches text within a given threshold
// threshold is the maximum allowed edit distance
func FuzzyMatch(query, text string, threshold int) bool {
	query = normalizeString(query)
	text = normalizeString(text)
	if query == "" {
		return true
	}

	if strings.Contains(text, query) {
		return true
	}

	q := []rune(query)
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) {
			return true
		}
		if distance(q, []rune(word)) <= threshold {
			return true
		}
	}

	// whole-text distance only for short texts
	if len(text) < 50 {
		maxDistance := threshold + len(q)/5
		if distance(q, []rune(text)) <= maxDistance {
			return true
		}
	}

	return false
}

// MatchCard reports whether query matches a card's title or the first 500
// characters of its description.
func MatchCard(query, title, description string) bool {
	threshold := Threshold(query)
	if FuzzyMatch(query, title, threshold) {
		return true
	}
	if r := []rune(description); len(r) > 500 {
		description = string(r[:500])
	}
	return description != "" && FuzzyMatch(query, description, threshold)
}

// normalizeString lower-cases, folds accents and collapses whitespace
func normalizeString(s string) string {
	s = removeAccents(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

// removeAccents removes diacritical marks from a string
func removeAccents(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'á', 'à', 'ả', 'ã', 'ạ', 'ă', 'ắ', 'ằ', 'ẳ', 'ẵ', 'ặ', 'â', 'ấ', 'ầ', 'ẩ', 'ẫ', 'ậ', 'ä', 'å':
			result.WriteRune('a')
		case 'é', 'è', 'ẻ', 'ẽ', 'ẹ', 'ê', 'ế', 'ề', 'ể', 'ễ', 'ệ', 'ë':
			result.WriteRune('e')
		case 'í', 'ì', 'ỉ', 'ĩ', 'ị', 'î', 'ï':
			result.WriteRune('i')
		case 'ó', 'ò', 'ỏ', 'õ', 'ọ', 'ô', 'ố', 'ồ', 'ổ', 'ỗ', 'ộ', 'ơ', 'ớ', 'ờ', 'ở', 'ỡ', 'ợ', 'ö':
			result.WriteRune('o')
		case 'ú', 'ù', 'ủ', 'ũ', 'ụ', 'ư', 'ứ', 'ừ', 'ử', 'ữ', 'ự', 'û', 'ü':
			result.WriteRune('u')
		case 'ý', 'ỳ', 'ỷ', 'ỹ', 'ỵ':
			result.WriteRune('y')
		case 'đ':
			result.WriteRune('d')
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}
