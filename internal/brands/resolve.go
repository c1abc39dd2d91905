// Package brands resolves canonical brand names from noisy ranking rows and
// labels them with parent company and K-beauty membership.
package brands

import (
	"strings"
	"unicode/utf8"
)

const Unknown = "Unknown"

// Resolve returns the brand for a ranking row. Brand text wins when present;
// otherwise the brand is guessed from the leading title tokens. Short first
// tokens ("Dr", "La", "The") pull in the next token too.
func Resolve(brandText *string, title string) string {
	if brandText != nil {
		if b := strings.TrimSpace(*brandText); b != "" {
			return b
		}
	}
	words := strings.Fields(title)
	if len(words) == 0 {
		return Unknown
	}
	if len(words) >= 2 && utf8.RuneCountInString(words[0]) <= 3 {
		return words[0] + " " + words[1]
	}
	return words[0]
}

// IsKBeauty reports whether name is a Korean beauty brand.
func IsKBeauty(name string) bool {
	key := normalize(name)
	if key == "" {
		return false
	}
	if _, ok := kbeautyBrands[key]; ok {
		return true
	}
	if containsHangul(name) {
		return true
	}
	_, ok := brandToCompany[key]
	return ok
}

// CompanyName returns the parent company's legal name for a brand.
func CompanyName(name string) (string, bool) {
	key := normalize(name)
	if key == "" {
		return "", false
	}
	c, ok := brandToCompany[key]
	return c, ok
}

// IsTier1 reports whether company is in the conglomerate exclusion set.
func IsTier1(company string) bool {
	_, ok := tier1Companies[company]
	return ok
}

// IsTier1Brand resolves the brand's company and checks the exclusion set.
func IsTier1Brand(name string) bool {
	c, ok := CompanyName(name)
	return ok && IsTier1(c)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func containsHangul(s string) bool {
	for _, r := range s {
		if r >= 0xAC00 && r <= 0xD7A3 {
			return true
		}
	}
	return false
}
