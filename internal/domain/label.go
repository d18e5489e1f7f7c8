package domain

// Category is one of the three TTB regulatory product classes
type Category string

const (
	CategoryWine             Category = "Wine"
	CategoryDistilledSpirits Category = "Distilled Spirits"
	CategoryMaltBeverage     Category = "Malt Beverage"
)

// Categories lists all recognized TTB categories
var Categories = []Category{CategoryWine, CategoryDistilledSpirits, CategoryMaltBeverage}

// DeclaredRecord represents the label claims submitted by the user via the form
type DeclaredRecord struct {
	BrandName       string   `json:"brandName"`
	ProductCategory Category `json:"productCategory"`
	AlcoholContent  float64  `json:"alcoholContent"` // percent ABV, 0-100
	NetContents     string   `json:"netContents"`    // free-form, e.g. "750 mL"
}

// ExtractedRecord represents the fields read off the label image by the
// vision provider. Pointer fields distinguish "absent" from a zero value
// (a 0% ABV or empty volume string is a real reading, nil is not).
type ExtractedRecord struct {
	BrandName           *string  `json:"brandName,omitempty"`
	ProductDescription  *string  `json:"productDescription,omitempty"`
	AlcoholContent      *float64 `json:"alcoholContent,omitempty"`
	NetContents         *string  `json:"netContents,omitempty"`
	HasWarningStatement bool     `json:"hasWarningStatement"`
}

// Merge fills absent fields of the receiver from other. The receiver's
// readings win on conflict; the warning statement counts as present when
// either image shows it. Used when front and back label photos are
// submitted together.
func (e *ExtractedRecord) Merge(other *ExtractedRecord) {
	if other == nil {
		return
	}
	if e.BrandName == nil {
		e.BrandName = other.BrandName
	}
	if e.ProductDescription == nil {
		e.ProductDescription = other.ProductDescription
	}
	if e.AlcoholContent == nil {
		e.AlcoholContent = other.AlcoholContent
	}
	if e.NetContents == nil {
		e.NetContents = other.NetContents
	}
	if other.HasWarningStatement {
		e.HasWarningStatement = true
	}
}

// FieldResult is the per-field verification verdict
type FieldResult struct {
	Matched    bool    `json:"matched"`
	Expected   string  `json:"expected"`
	Found      *string `json:"found,omitempty"`
	Similarity *int    `json:"similarity,omitempty"` // 0-100, set when a fuzzy comparison ran
	Error      string  `json:"error,omitempty"`      // set iff Matched is false
}

// Field names used as keys in VerificationOutcome.Fields
const (
	FieldBrandName         = "brandName"
	FieldProductType       = "productType"
	FieldAlcoholContent    = "alcoholContent"
	FieldNetContents       = "netContents"
	FieldGovernmentWarning = "governmentWarning"
)

// RequiredFields are the fields whose matches decide overall success.
// The government warning check is informational only.
var RequiredFields = []string{FieldBrandName, FieldProductType, FieldAlcoholContent, FieldNetContents}

// VerificationOutcome is the aggregate result of verifying one label
type VerificationOutcome struct {
	Success bool                   `json:"success"`
	Fields  map[string]FieldResult `json:"fields"`
}

// ClassificationResult represents the outcome of classifying a free-text
// product description into a TTB category
type ClassificationResult struct {
	Category       *Category `json:"category"`       // nil when no keyword matched
	Confidence     float64   `json:"confidence"`     // 0-100, capped at 95
	MatchedKeyword string    `json:"matchedKeyword,omitempty"`
}
