package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/labelcheck/backend/internal/domain"
)

// maxMissingCriticalFields is how many of the critical extracted fields
// {brand, description, ABV} may be absent before comparison becomes
// meaningless. Missing two or more aborts the verification.
const maxMissingCriticalFields = 1

// VerificationServiceConfig holds configuration for the verification service
type VerificationServiceConfig struct {
	FuzzyThreshold     int
	CategoryFloor      float64
	ABVTolerance       float64
	EnableDebugLogging bool
}

// VerificationService runs all field verifiers against a declared and an
// extracted record and aggregates the per-field results
type VerificationService struct {
	verifier           *FieldVerifier
	enableDebugLogging bool
}

// NewVerificationService creates a new verification service
func NewVerificationService(config VerificationServiceConfig) *VerificationService {
	verifier := NewFieldVerifier(VerifierConfig{
		FuzzyThreshold:     config.FuzzyThreshold,
		CategoryFloor:      config.CategoryFloor,
		ABVTolerance:       config.ABVTolerance,
		EnableDebugLogging: config.EnableDebugLogging,
	})

	return &VerificationService{
		verifier:           verifier,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// VerifyLabel compares the declared record against the extracted record
// field by field. It returns ErrInsufficientLabelData when the extracted
// record is too sparse to compare; partial results would present false
// confidence in that case.
func (s *VerificationService) VerifyLabel(
	ctx context.Context,
	declared *domain.DeclaredRecord,
	extracted *domain.ExtractedRecord,
) (*domain.VerificationOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if declared == nil || extracted == nil {
		return nil, domain.ErrInvalidRequest
	}
	if declared.BrandName == "" || declared.NetContents == "" {
		return nil, domain.ErrInvalidRequest
	}
	if !knownCategory(declared.ProductCategory) {
		return nil, domain.ErrUnknownCategory
	}

	// Abort check runs on the raw record, before and independent of any
	// per-field matching.
	if missingCriticalFields(extracted) > maxMissingCriticalFields {
		if s.enableDebugLogging {
			log.Printf("[VERIFY] aborting: %d of 3 critical extracted fields absent",
				missingCriticalFields(extracted))
		}
		return nil, domain.ErrInsufficientLabelData
	}

	fields := map[string]domain.FieldResult{
		domain.FieldBrandName:         s.verifier.VerifyBrandName(declared.BrandName, extracted.BrandName),
		domain.FieldProductType:       s.verifier.VerifyProductType(declared.ProductCategory, extracted.ProductDescription),
		domain.FieldAlcoholContent:    s.verifier.VerifyAlcoholContent(declared.AlcoholContent, extracted.AlcoholContent),
		domain.FieldNetContents:       s.verifier.VerifyNetContents(declared.NetContents, extracted.NetContents),
		domain.FieldGovernmentWarning: s.verifier.VerifyGovernmentWarning(extracted.HasWarningStatement),
	}

	success := true
	for _, name := range domain.RequiredFields {
		if !fields[name].Matched {
			success = false
		}
	}

	if s.enableDebugLogging {
		for _, name := range append(domain.RequiredFields, domain.FieldGovernmentWarning) {
			result := fields[name]
			log.Printf("[VERIFY] %s: matched=%v error=%q", name, result.Matched, result.Error)
		}
		log.Printf("[VERIFY] overall success=%v", success)
	}

	return &domain.VerificationOutcome{Success: success, Fields: fields}, nil
}

// missingCriticalFields counts how many of the three critical extracted
// fields are absent
func missingCriticalFields(extracted *domain.ExtractedRecord) int {
	missing := 0
	if extracted.BrandName == nil {
		missing++
	}
	if extracted.ProductDescription == nil {
		missing++
	}
	if extracted.AlcoholContent == nil {
		missing++
	}
	return missing
}

// knownCategory reports whether the declared category is a recognized TTB class
func knownCategory(category domain.Category) bool {
	for _, known := range domain.Categories {
		if strings.EqualFold(string(known), string(category)) {
			return true
		}
	}
	return false
}
