package corpus

import "strings"

// Nearest returns the domain candidate with the smallest Levenshtein distance
// to token, comparing case-insensitively. Ties go to the earlier candidate.
// Returns the empty string for an empty domain.
func Nearest(token string, domain []string) string {
	if len(domain) == 0 {
		return ""
	}

	tokenLower := strings.ToLower(token)
	best := domain[0]
	bestDist := levenshtein(tokenLower, strings.ToLower(domain[0]))

	for _, candidate := range domain[1:] {
		if dist := levenshtein(tokenLower, strings.ToLower(candidate)); dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}

	return best
}

// levenshtein calculates the edit distance between two strings.
func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
