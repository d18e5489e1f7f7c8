package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/labelcheck/backend/internal/domain"
)

// labelResponse mirrors the JSON shape the extraction prompt asks for
type labelResponse struct {
	BrandName           *string  `json:"brand_name"`
	ProductDescription  *string  `json:"product_description"`
	AlcoholContent      *float64 `json:"alcohol_content"`
	NetContents         *string  `json:"net_contents"`
	HasWarningStatement bool     `json:"has_warning_statement"`
}

// ParseExtraction converts the raw model response into an ExtractedRecord.
// The model is told not to use markdown, but fenced output still shows up,
// so fences are stripped before decoding.
func ParseExtraction(raw string) (*domain.ExtractedRecord, error) {
	cleaned := stripCodeFences(raw)

	var resp labelResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}

	return &domain.ExtractedRecord{
		BrandName:           presentString(resp.BrandName),
		ProductDescription:  presentString(resp.ProductDescription),
		AlcoholContent:      resp.AlcoholContent,
		NetContents:         presentString(resp.NetContents),
		HasWarningStatement: resp.HasWarningStatement,
	}, nil
}

// presentString treats empty or whitespace-only strings as absent; the
// model sometimes returns "" where it was told to use null
func presentString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// stripCodeFences removes a surrounding markdown code fence if present
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
