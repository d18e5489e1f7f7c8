package usecase

import "strings"

const (
	// defaultFuzzyThreshold is the minimum similarity score (0-100)
	// considered a match when no threshold is configured
	defaultFuzzyThreshold = 80

	// maxWindowTokens caps the sliding-window size in substring search
	maxWindowTokens = 10
)

// Scorer computes similarity scores between normalized strings
type Scorer struct {
	threshold int
}

// NewScorer creates a scorer with the given match threshold (0-100).
// Non-positive values fall back to the default.
func NewScorer(threshold int) *Scorer {
	if threshold <= 0 {
		threshold = defaultFuzzyThreshold
	}
	return &Scorer{threshold: threshold}
}

// Threshold returns the configured match threshold
func (s *Scorer) Threshold() int {
	return s.threshold
}

// Similarity returns a 0-100 score for how close two strings are after
// normalization. 100 means normalized-equal; the score decays with edit
// distance relative to the longer string.
func (s *Scorer) Similarity(a, b string) int {
	a = NormalizeText(a)
	b = NormalizeText(b)

	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	distance := levenshteinDistance(a, b)
	return 100 - (100*distance)/maxLen
}

// IsMatch reports whether two strings score at or above the threshold
func (s *Scorer) IsMatch(a, b string) bool {
	return s.Similarity(a, b) >= s.threshold
}

// SubstringMatch is the best-scoring window found by FindBestSubstringMatch
type SubstringMatch struct {
	Match string
	Score int
}

// FindBestSubstringMatch slides windows of 1 to maxWindowTokens
// whitespace-delimited tokens over haystack and scores each window against
// needle. It returns the highest-scoring window at or above the threshold,
// or nil if none qualifies. Ties keep the first-encountered window
// (windows are visited by size ascending, then start index ascending).
func (s *Scorer) FindBestSubstringMatch(needle, haystack string) *SubstringMatch {
	needle = NormalizeText(needle)
	tokens := strings.Fields(NormalizeText(haystack))
	if needle == "" || len(tokens) == 0 {
		return nil
	}

	var best *SubstringMatch
	for size := 1; size <= maxWindowTokens && size <= len(tokens); size++ {
		for start := 0; start+size <= len(tokens); start++ {
			window := strings.Join(tokens[start:start+size], " ")
			score := s.Similarity(needle, window)
			if score < s.threshold {
				continue
			}
			if best == nil || score > best.Score {
				best = &SubstringMatch{Match: window, Score: score}
			}
		}
	}
	return best
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of the full matrix for space efficiency
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
