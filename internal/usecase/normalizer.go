package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	// Characters allowed to survive text normalization: alphanumerics,
	// space, percent, period, hyphen. Everything else is stripped.
	disallowedCharsRegex = regexp.MustCompile(`[^a-z0-9 %.\-]`)

	// Whitespace runs collapse to a single space
	whitespaceRunRegex = regexp.MustCompile(`\s+`)

	// Matches a numeric quantity followed by a volume unit, with optional
	// whitespace between them. Longer unit spellings come first so the
	// regex engine prefers them over their prefixes (e.g. "ml" vs "l").
	volumeQuantityRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(milliliters?|millilitres?|mls?|liters?|litres?|fluid\s*ounces?|fl\.?\s*oz\.?|ounces?|oz|gallons?|gal|l)\b`)

	// A period left dangling after a canonicalized abbreviation ("fl. oz."
	// ends in one the unit match cannot consume)
	unitTrailingDotRegex = regexp.MustCompile(`(fl oz|ml|gal|l)\.`)
)

// NormalizeText lowercases, trims, collapses internal whitespace runs and
// strips characters outside the allowed set. Always returns a string;
// empty input yields an empty string.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = whitespaceRunRegex.ReplaceAllString(s, " ")
	s = disallowedCharsRegex.ReplaceAllString(s, "")
	// Stripping can leave double spaces behind (e.g. "a & b" -> "a  b")
	s = whitespaceRunRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeVolume normalizes a free-form volume expression so that
// equivalent spellings compare equal: "750 mL", "750ML" and "750
// milliliters" all become "750ml". On top of NormalizeText it removes the
// whitespace between quantity and unit and canonicalizes unit spellings.
func NormalizeVolume(s string) string {
	s = NormalizeText(s)
	s = volumeQuantityRegex.ReplaceAllStringFunc(s, func(match string) string {
		parts := volumeQuantityRegex.FindStringSubmatch(match)
		return parts[1] + canonicalUnit(parts[2])
	})
	return unitTrailingDotRegex.ReplaceAllString(s, "$1")
}

// canonicalUnit maps a unit spelling to its canonical form
func canonicalUnit(unit string) string {
	unit = strings.ReplaceAll(unit, ".", "")
	unit = strings.ReplaceAll(unit, " ", "")

	switch {
	case strings.HasPrefix(unit, "milli") || unit == "ml" || unit == "mls":
		return "ml"
	case strings.HasPrefix(unit, "fl") || strings.HasPrefix(unit, "fluid") ||
		strings.HasPrefix(unit, "oz") || strings.HasPrefix(unit, "ounce"):
		return "fl oz"
	case strings.HasPrefix(unit, "gal"):
		return "gal"
	default:
		return "l"
	}
}
