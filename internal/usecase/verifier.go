package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/labelcheck/backend/internal/domain"
)

// Default verification tuning values
const (
	defaultCategoryFloor = 65.0 // Minimum classifier confidence to accept a category
	defaultABVTolerance  = 0.5  // Absolute percentage-point tolerance for ABV
)

// VerifierConfig holds configuration for the field verifiers
type VerifierConfig struct {
	FuzzyThreshold     int
	CategoryFloor      float64
	ABVTolerance       float64
	EnableDebugLogging bool
}

// FieldVerifier compares individual declared fields against the extracted
// record. Verifiers never fail hard: "could not compare" states come back
// as unmatched results with a descriptive error message.
type FieldVerifier struct {
	scorer        *Scorer
	classifier    *Classifier
	categoryFloor float64
	abvTolerance  float64
}

// NewFieldVerifier creates a field verifier with the given configuration
func NewFieldVerifier(config VerifierConfig) *FieldVerifier {
	floor := config.CategoryFloor
	if floor <= 0 {
		floor = defaultCategoryFloor
	}

	tolerance := config.ABVTolerance
	if tolerance <= 0 {
		tolerance = defaultABVTolerance
	}

	return &FieldVerifier{
		scorer:        NewScorer(config.FuzzyThreshold),
		classifier:    NewClassifier(config.EnableDebugLogging),
		categoryFloor: floor,
		abvTolerance:  tolerance,
	}
}

// VerifyBrandName compares brands exactly after normalization. Two
// different brands are a compliance failure, not a typo, so no fuzzy
// tolerance applies here.
func (v *FieldVerifier) VerifyBrandName(declared string, extracted *string) domain.FieldResult {
	result := domain.FieldResult{Expected: declared}

	if extracted == nil {
		result.Error = "brand name not found on label"
		return result
	}

	result.Found = extracted
	score := v.scorer.Similarity(declared, *extracted)
	result.Similarity = &score

	if NormalizeText(declared) == NormalizeText(*extracted) {
		result.Matched = true
		return result
	}

	result.Error = fmt.Sprintf("brand name mismatch: declared %q, label shows %q", declared, *extracted)
	return result
}

// VerifyProductType classifies the extracted product description and
// compares the resulting category against the declared one
func (v *FieldVerifier) VerifyProductType(declared domain.Category, description *string) domain.FieldResult {
	result := domain.FieldResult{Expected: string(declared)}

	if description == nil {
		result.Error = "could not determine product type: no product description found on label"
		return result
	}

	classification := v.classifier.Classify(*description)
	if classification.Category == nil || classification.Confidence < v.categoryFloor {
		result.Found = description
		result.Error = fmt.Sprintf("could not determine product type from description %q", *description)
		return result
	}

	found := string(*classification.Category)
	result.Found = &found
	confidence := int(classification.Confidence)
	result.Similarity = &confidence

	if strings.EqualFold(found, string(declared)) {
		result.Matched = true
		return result
	}

	result.Error = fmt.Sprintf("product type mismatch: declared %q, label describes %q", declared, found)
	return result
}

// VerifyAlcoholContent compares ABV values with an absolute
// percentage-point tolerance
func (v *FieldVerifier) VerifyAlcoholContent(declared float64, extracted *float64) domain.FieldResult {
	result := domain.FieldResult{Expected: formatABV(declared)}

	if extracted == nil {
		result.Error = "alcohol content not found on label"
		return result
	}

	found := formatABV(*extracted)
	result.Found = &found

	if math.Abs(declared-*extracted) <= v.abvTolerance {
		result.Matched = true
		return result
	}

	result.Error = fmt.Sprintf("alcohol content mismatch: declared %s, label shows %s", result.Expected, found)
	return result
}

// VerifyNetContents compares volume expressions: exact equality after
// volume normalization, or similarity at or above the fuzzy threshold
func (v *FieldVerifier) VerifyNetContents(declared string, extracted *string) domain.FieldResult {
	result := domain.FieldResult{Expected: declared}

	if extracted == nil {
		result.Error = "net contents not found on label"
		return result
	}

	result.Found = extracted
	declaredNorm := NormalizeVolume(declared)
	extractedNorm := NormalizeVolume(*extracted)

	if declaredNorm == extractedNorm {
		score := 100
		result.Similarity = &score
		result.Matched = true
		return result
	}

	score := v.scorer.Similarity(declaredNorm, extractedNorm)
	result.Similarity = &score
	if score >= v.scorer.Threshold() {
		result.Matched = true
		return result
	}

	result.Error = fmt.Sprintf("net contents mismatch: declared %q, label shows %q", declared, *extracted)
	return result
}

// VerifyGovernmentWarning checks only that a warning statement is present.
// The result is informational and never affects overall success.
func (v *FieldVerifier) VerifyGovernmentWarning(hasWarning bool) domain.FieldResult {
	result := domain.FieldResult{Expected: "government warning statement present"}

	if hasWarning {
		found := "government warning statement present"
		result.Found = &found
		result.Matched = true
		return result
	}

	result.Error = "government warning statement not found on label"
	return result
}

// formatABV renders an ABV value for display
func formatABV(abv float64) string {
	return fmt.Sprintf("%.1f%% ABV", abv)
}
