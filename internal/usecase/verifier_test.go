package usecase

import (
	"strings"
	"testing"

	"github.com/labelcheck/backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func newTestVerifier() *FieldVerifier {
	return NewFieldVerifier(VerifierConfig{})
}

func TestNewFieldVerifier(t *testing.T) {
	t.Run("applies defaults for zero config", func(t *testing.T) {
		v := NewFieldVerifier(VerifierConfig{})
		if v.categoryFloor != defaultCategoryFloor {
			t.Errorf("categoryFloor = %v, want %v", v.categoryFloor, defaultCategoryFloor)
		}
		if v.abvTolerance != defaultABVTolerance {
			t.Errorf("abvTolerance = %v, want %v", v.abvTolerance, defaultABVTolerance)
		}
		if v.scorer.Threshold() != defaultFuzzyThreshold {
			t.Errorf("threshold = %v, want %v", v.scorer.Threshold(), defaultFuzzyThreshold)
		}
	})

	t.Run("keeps provided config", func(t *testing.T) {
		v := NewFieldVerifier(VerifierConfig{FuzzyThreshold: 70, CategoryFloor: 50, ABVTolerance: 1.0})
		if v.categoryFloor != 50 || v.abvTolerance != 1.0 || v.scorer.Threshold() != 70 {
			t.Errorf("config not applied: floor=%v tol=%v threshold=%v",
				v.categoryFloor, v.abvTolerance, v.scorer.Threshold())
		}
	})
}

func TestVerifyBrandName(t *testing.T) {
	v := newTestVerifier()

	t.Run("matches identical brands", func(t *testing.T) {
		result := v.VerifyBrandName("XYZ Winery", strPtr("XYZ Winery"))
		if !result.Matched {
			t.Errorf("Matched = false, want true (error: %s)", result.Error)
		}
		if result.Error != "" {
			t.Errorf("Error = %q, want empty on match", result.Error)
		}
	})

	t.Run("matches after normalization", func(t *testing.T) {
		result := v.VerifyBrandName("XYZ Winery", strPtr("  xyz   WINERY "))
		if !result.Matched {
			t.Errorf("Matched = false, want true")
		}
	})

	t.Run("no fuzzy tolerance for brands", func(t *testing.T) {
		// One letter off is a different brand, not a typo.
		result := v.VerifyBrandName("XYZ Winery", strPtr("XYA Winery"))
		if result.Matched {
			t.Error("Matched = true, want false for near-identical brand")
		}
		if !strings.Contains(result.Error, "XYZ Winery") || !strings.Contains(result.Error, "XYA Winery") {
			t.Errorf("Error = %q, want both brand names present", result.Error)
		}
	})

	t.Run("absent extracted brand", func(t *testing.T) {
		result := v.VerifyBrandName("XYZ Winery", nil)
		if result.Matched {
			t.Error("Matched = true, want false")
		}
		if !strings.Contains(result.Error, "not found") {
			t.Errorf("Error = %q, want not-found message", result.Error)
		}
		if result.Found != nil {
			t.Errorf("Found = %v, want nil", *result.Found)
		}
	})

	t.Run("reports similarity score", func(t *testing.T) {
		result := v.VerifyBrandName("XYZ Winery", strPtr("ABC Winery"))
		if result.Similarity == nil {
			t.Fatal("Similarity = nil, want score")
		}
		if *result.Similarity < 0 || *result.Similarity > 100 {
			t.Errorf("Similarity = %d, want 0..100", *result.Similarity)
		}
	})
}

func TestVerifyProductType(t *testing.T) {
	v := newTestVerifier()

	t.Run("matching category", func(t *testing.T) {
		result := v.VerifyProductType(domain.CategoryWine, strPtr("Red Table Wine"))
		if !result.Matched {
			t.Errorf("Matched = false, want true (error: %s)", result.Error)
		}
		if result.Found == nil || *result.Found != string(domain.CategoryWine) {
			t.Errorf("Found = %v, want %s", result.Found, domain.CategoryWine)
		}
	})

	t.Run("mismatched category", func(t *testing.T) {
		result := v.VerifyProductType(domain.CategoryWine, strPtr("Kentucky Straight Bourbon Whiskey"))
		if result.Matched {
			t.Error("Matched = true, want false")
		}
		if !strings.Contains(result.Error, "mismatch") {
			t.Errorf("Error = %q, want mismatch message", result.Error)
		}
		if !strings.Contains(result.Error, string(domain.CategoryDistilledSpirits)) {
			t.Errorf("Error = %q, want classified category named", result.Error)
		}
	})

	t.Run("absent description", func(t *testing.T) {
		result := v.VerifyProductType(domain.CategoryWine, nil)
		if result.Matched {
			t.Error("Matched = true, want false")
		}
		if !strings.Contains(result.Error, "could not determine product type") {
			t.Errorf("Error = %q, want could-not-determine message", result.Error)
		}
	})

	t.Run("unclassifiable description", func(t *testing.T) {
		result := v.VerifyProductType(domain.CategoryWine, strPtr("Sparkling Mineral Water"))
		if result.Matched {
			t.Error("Matched = true, want false")
		}
		if !strings.Contains(result.Error, "could not determine product type") {
			t.Errorf("Error = %q, want could-not-determine message", result.Error)
		}
	})

	t.Run("category comparison is case-insensitive", func(t *testing.T) {
		result := v.VerifyProductType(domain.Category("wine"), strPtr("Red Table Wine"))
		if !result.Matched {
			t.Errorf("Matched = false, want true for lowercase declared category")
		}
	})
}

func TestVerifyAlcoholContent(t *testing.T) {
	v := newTestVerifier()

	tests := []struct {
		name      string
		declared  float64
		extracted *float64
		want      bool
	}{
		{"exact match", 12.5, floatPtr(12.5), true},
		{"within tolerance above", 12.5, floatPtr(13.0), true},
		{"within tolerance below", 12.5, floatPtr(12.0), true},
		{"just outside tolerance", 12.5, floatPtr(13.1), false},
		{"far off", 12.5, floatPtr(40.0), false},
		{"zero extracted is a real reading", 0.5, floatPtr(0.0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.VerifyAlcoholContent(tt.declared, tt.extracted)
			if result.Matched != tt.want {
				t.Errorf("Matched = %v, want %v (error: %s)", result.Matched, tt.want, result.Error)
			}
		})
	}

	t.Run("absent extracted value", func(t *testing.T) {
		result := v.VerifyAlcoholContent(12.5, nil)
		if result.Matched {
			t.Error("Matched = true, want false")
		}
		if !strings.Contains(result.Error, "not found") {
			t.Errorf("Error = %q, want not-found message", result.Error)
		}
	})
}

func TestVerifyNetContents(t *testing.T) {
	v := newTestVerifier()

	tests := []struct {
		name      string
		declared  string
		extracted *string
		want      bool
	}{
		{"identical", "750 mL", strPtr("750 mL"), true},
		{"spacing and case variants", "750 mL", strPtr("750ML"), true},
		{"spelled-out unit", "750 mL", strPtr("750 milliliters"), true},
		{"different volume", "750 mL", strPtr("1 L"), false},
		{"fluid ounce variants", "25.4 FL OZ", strPtr("25.4 fl. oz."), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.VerifyNetContents(tt.declared, tt.extracted)
			if result.Matched != tt.want {
				t.Errorf("Matched = %v, want %v (error: %s)", result.Matched, tt.want, result.Error)
			}
		})
	}

	t.Run("absent extracted value", func(t *testing.T) {
		result := v.VerifyNetContents("750 mL", nil)
		if result.Matched {
			t.Error("Matched = true, want false")
		}
		if !strings.Contains(result.Error, "not found") {
			t.Errorf("Error = %q, want not-found message", result.Error)
		}
	})

	t.Run("exact normalized match scores 100", func(t *testing.T) {
		result := v.VerifyNetContents("750 mL", strPtr("750ML"))
		if result.Similarity == nil || *result.Similarity != 100 {
			t.Errorf("Similarity = %v, want 100", result.Similarity)
		}
	})
}

func TestVerifyGovernmentWarning(t *testing.T) {
	v := newTestVerifier()

	t.Run("warning present", func(t *testing.T) {
		result := v.VerifyGovernmentWarning(true)
		if !result.Matched {
			t.Error("Matched = false, want true")
		}
	})

	t.Run("warning absent", func(t *testing.T) {
		result := v.VerifyGovernmentWarning(false)
		if result.Matched {
			t.Error("Matched = true, want false")
		}
		if result.Error == "" {
			t.Error("Error is empty, want message")
		}
	})
}
