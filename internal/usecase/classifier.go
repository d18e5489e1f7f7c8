package usecase

import (
	"log"
	"strings"

	"github.com/labelcheck/backend/internal/domain"
)

// Classifier confidence scoring constants
const (
	baseKeywordConfidence   = 40.0 // Any keyword hit starts here
	lengthConfidencePerChar = 3.0  // Longer keywords are more specific
	maxLengthConfidence     = 30.0 // Cap on the length contribution
	wordBoundaryBonus       = 15.0 // Keyword falls on word boundaries
	maxPositionBonus        = 10.0 // Earlier matches are stronger signals
	maxClassifierConfidence = 95.0 // Keyword matching is never fully certain
)

// categoryKeywords maps each TTB category to the keywords that indicate it.
// This is data, not logic: extend the lists to widen coverage.
var categoryKeywords = map[domain.Category][]string{
	domain.CategoryWine: {
		"wine", "red wine", "white wine", "table wine", "dessert wine",
		"sparkling wine", "rose", "chardonnay", "cabernet", "cabernet sauvignon",
		"merlot", "pinot noir", "pinot grigio", "sauvignon blanc", "riesling",
		"zinfandel", "syrah", "shiraz", "malbec", "moscato", "prosecco",
		"champagne", "port", "sherry", "vermouth", "sangria", "mead",
	},
	domain.CategoryDistilledSpirits: {
		"whiskey", "whisky", "bourbon", "kentucky straight bourbon", "scotch",
		"rye whiskey", "single malt", "vodka", "gin", "rum", "tequila",
		"mezcal", "brandy", "cognac", "liqueur", "schnapps", "absinthe",
		"grappa", "moonshine", "distilled", "spirits",
	},
	domain.CategoryMaltBeverage: {
		"beer", "ale", "lager", "stout", "porter", "pilsner", "ipa",
		"india pale ale", "hefeweizen", "wheat beer", "malt liquor",
		"malt beverage", "cider", "hard cider", "hard seltzer", "kolsch",
		"saison", "bock", "amber ale", "brown ale",
	},
}

// Classifier maps free-text product descriptions to TTB categories via
// keyword scoring
type Classifier struct {
	enableDebugLogging bool
}

// NewClassifier creates a new category classifier
func NewClassifier(enableDebugLogging bool) *Classifier {
	return &Classifier{enableDebugLogging: enableDebugLogging}
}

// Classify scores every keyword of every category against the normalized
// text and returns the single highest-confidence hit. Returns a nil
// category with confidence 0 when no keyword occurs.
func (c *Classifier) Classify(freeText string) domain.ClassificationResult {
	text := NormalizeText(freeText)
	if text == "" {
		return domain.ClassificationResult{}
	}

	var best domain.ClassificationResult
	for _, category := range domain.Categories {
		for _, keyword := range categoryKeywords[category] {
			idx := strings.Index(text, keyword)
			if idx < 0 {
				continue
			}

			confidence := keywordConfidence(text, keyword, idx)
			if confidence > best.Confidence {
				cat := category
				best = domain.ClassificationResult{
					Category:       &cat,
					Confidence:     confidence,
					MatchedKeyword: keyword,
				}
			}
		}
	}

	if c.enableDebugLogging {
		if best.Category != nil {
			log.Printf("[CLASSIFY] %q -> %s (keyword %q, confidence %.1f)",
				freeText, *best.Category, best.MatchedKeyword, best.Confidence)
		} else {
			log.Printf("[CLASSIFY] %q -> no category keyword found", freeText)
		}
	}

	return best
}

// keywordConfidence scores a single keyword hit. Longer keywords, word
// boundary alignment and earlier positions all raise confidence, capped
// at maxClassifierConfidence.
func keywordConfidence(text, keyword string, idx int) float64 {
	confidence := baseKeywordConfidence

	lengthScore := float64(len(keyword)) * lengthConfidencePerChar
	if lengthScore > maxLengthConfidence {
		lengthScore = maxLengthConfidence
	}
	confidence += lengthScore

	if onWordBoundaries(text, keyword, idx) {
		confidence += wordBoundaryBonus
	}

	position := float64(idx) / float64(len(text))
	confidence += maxPositionBonus * (1 - position)

	if confidence > maxClassifierConfidence {
		confidence = maxClassifierConfidence
	}
	return confidence
}

// onWordBoundaries reports whether the keyword occurrence at idx starts and
// ends at word boundaries (so "port" inside "porter" gets no bonus)
func onWordBoundaries(text, keyword string, idx int) bool {
	if idx > 0 && text[idx-1] != ' ' {
		return false
	}
	end := idx + len(keyword)
	if end < len(text) && text[end] != ' ' {
		return false
	}
	return true
}
