package usecase

import "testing"

func TestNewScorer(t *testing.T) {
	t.Run("uses provided threshold", func(t *testing.T) {
		s := NewScorer(90)
		if s.Threshold() != 90 {
			t.Errorf("Threshold() = %d, want 90", s.Threshold())
		}
	})

	t.Run("uses default threshold when zero", func(t *testing.T) {
		s := NewScorer(0)
		if s.Threshold() != defaultFuzzyThreshold {
			t.Errorf("Threshold() = %d, want %d (default)", s.Threshold(), defaultFuzzyThreshold)
		}
	})

	t.Run("uses default threshold when negative", func(t *testing.T) {
		s := NewScorer(-5)
		if s.Threshold() != defaultFuzzyThreshold {
			t.Errorf("Threshold() = %d, want %d (default)", s.Threshold(), defaultFuzzyThreshold)
		}
	})
}

func TestSimilarity(t *testing.T) {
	scorer := NewScorer(80)

	t.Run("identical strings score 100", func(t *testing.T) {
		inputs := []string{"wine", "XYZ Winery", "750 mL", ""}
		for _, input := range inputs {
			if got := scorer.Similarity(input, input); got != 100 {
				t.Errorf("Similarity(%q, %q) = %d, want 100", input, input, got)
			}
		}
	})

	t.Run("normalized-equal strings score 100", func(t *testing.T) {
		if got := scorer.Similarity("XYZ  Winery", "xyz winery"); got != 100 {
			t.Errorf("Similarity = %d, want 100", got)
		}
	})

	t.Run("is symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"bourbon", "bourban"},
			{"XYZ Winery", "ABC Winery"},
			{"red table wine", "red wine"},
			{"", "wine"},
		}
		for _, pair := range pairs {
			ab := scorer.Similarity(pair[0], pair[1])
			ba := scorer.Similarity(pair[1], pair[0])
			if ab != ba {
				t.Errorf("Similarity(%q, %q) = %d but Similarity(%q, %q) = %d",
					pair[0], pair[1], ab, pair[1], pair[0], ba)
			}
		}
	})

	t.Run("empty vs non-empty scores 0", func(t *testing.T) {
		if got := scorer.Similarity("", "wine"); got != 0 {
			t.Errorf("Similarity = %d, want 0", got)
		}
	})

	t.Run("close strings score high", func(t *testing.T) {
		got := scorer.Similarity("bourbon whiskey", "bourbon whisky")
		if got < 90 {
			t.Errorf("Similarity = %d, want >= 90", got)
		}
	})

	t.Run("unrelated strings score low", func(t *testing.T) {
		got := scorer.Similarity("xq", "bourbon whiskey")
		if got > 20 {
			t.Errorf("Similarity = %d, want <= 20", got)
		}
	})
}

func TestIsMatch(t *testing.T) {
	scorer := NewScorer(80)

	if !scorer.IsMatch("750ml", "750ml") {
		t.Error("IsMatch(identical) = false, want true")
	}
	if !scorer.IsMatch("bourbon whiskey", "bourbon whisky") {
		t.Error("IsMatch(near-identical) = false, want true")
	}
	if scorer.IsMatch("merlot", "stout") {
		t.Error("IsMatch(unrelated) = true, want false")
	}
}

func TestIsMatchRespectsThreshold(t *testing.T) {
	a, b := "bourbon whiskey", "bourbon whisky"
	score := NewScorer(80).Similarity(a, b)

	lenient := NewScorer(score)
	if !lenient.IsMatch(a, b) {
		t.Errorf("IsMatch with threshold %d = false, want true", score)
	}

	strict := NewScorer(score + 1)
	if strict.IsMatch(a, b) {
		t.Errorf("IsMatch with threshold %d = true, want false", score+1)
	}
}

func TestFindBestSubstringMatch(t *testing.T) {
	scorer := NewScorer(80)

	t.Run("finds embedded phrase", func(t *testing.T) {
		got := scorer.FindBestSubstringMatch("XYZ Winery", "Estate Bottled XYZ Winery Napa Valley")
		if got == nil {
			t.Fatal("FindBestSubstringMatch = nil, want match")
		}
		if got.Match != "xyz winery" {
			t.Errorf("Match = %q, want %q", got.Match, "xyz winery")
		}
		if got.Score != 100 {
			t.Errorf("Score = %d, want 100", got.Score)
		}
	})

	t.Run("returns nil when nothing qualifies", func(t *testing.T) {
		got := scorer.FindBestSubstringMatch("zinfandel", "pale ale brewed with citra hops")
		if got != nil {
			t.Errorf("FindBestSubstringMatch = %+v, want nil", got)
		}
	})

	t.Run("returns nil for empty needle", func(t *testing.T) {
		if got := scorer.FindBestSubstringMatch("", "some text"); got != nil {
			t.Errorf("FindBestSubstringMatch = %+v, want nil", got)
		}
	})

	t.Run("returns nil for empty haystack", func(t *testing.T) {
		if got := scorer.FindBestSubstringMatch("wine", ""); got != nil {
			t.Errorf("FindBestSubstringMatch = %+v, want nil", got)
		}
	})

	t.Run("single token needle matches single token window", func(t *testing.T) {
		got := scorer.FindBestSubstringMatch("merlot", "2019 Reserve Merlot 750 mL")
		if got == nil {
			t.Fatal("FindBestSubstringMatch = nil, want match")
		}
		if got.Match != "merlot" {
			t.Errorf("Match = %q, want %q", got.Match, "merlot")
		}
	})

	t.Run("first window wins ties", func(t *testing.T) {
		// Both occurrences of "merlot" score 100; the earlier one is kept.
		got := scorer.FindBestSubstringMatch("merlot", "merlot blend with merlot grapes")
		if got == nil {
			t.Fatal("FindBestSubstringMatch = nil, want match")
		}
		if got.Match != "merlot" {
			t.Errorf("Match = %q, want %q", got.Match, "merlot")
		}
	})
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"wine", "vine", 1},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}
