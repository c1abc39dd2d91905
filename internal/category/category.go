// Package category maps UI category keys onto the tags used in storage.
//
// Raw ranking rows carry inconsistent category labels, sometimes with a
// single colon-delimited subcategory suffix ("skincare:toner").
package category

import "strings"

var storageTags = map[string]string{
	"skincare":           "skincare",
	"haircare":           "hair",
	"makeup":             "makeup",
	"fragrance":          "fragrance",
	"skincare_device":    "skincare_device",
	"beauty_home_device": "beauty_home_device",
	"beauty_device":      "skincare_device",
}

var skincareAliases = []string{"skincare", "beauty", "personal_care", "derma", "k_beauty", "bestsellers"}

var aliases = map[string][]string{
	"haircare":           {"hair", "haircare"},
	"hair":               {"hair", "haircare"},
	"skincare":           skincareAliases,
	"beauty":             skincareAliases,
	"makeup":             {"makeup"},
	"fragrance":          {"fragrance"},
	"skincare_device":    {"skincare_device"},
	"beauty_home_device": {"beauty_home_device"},
}

// Keys lists the UI category keys in display order.
var Keys = []string{"skincare", "haircare", "makeup", "fragrance", "skincare_device", "beauty_home_device"}

var labels = map[string]string{
	"Skincare":           "skincare",
	"Haircare":           "haircare",
	"Makeup":             "makeup",
	"Fragrance":          "fragrance",
	"Skincare Device":    "skincare_device",
	"Beauty Home Device": "beauty_home_device",
}

// Resolve maps a UI key to the tag stored on brands.category.
func Resolve(key string) string {
	if tag, ok := storageTags[key]; ok {
		return tag
	}
	return key
}

// Aliases returns the raw ranking-row tags that belong to main.
func Aliases(main string) []string {
	a, ok := aliases[main]
	if !ok {
		return []string{main}
	}
	return append([]string(nil), a...)
}

// Matches reports whether a raw row category belongs to one of aliases:
// an exact match or the alias followed by ":".
func Matches(raw string, aliases []string) bool {
	for _, a := range aliases {
		if raw == a || strings.HasPrefix(raw, a+":") {
			return true
		}
	}
	return false
}

// LikePatterns returns the SQL LIKE patterns for the subcategory variants.
func LikePatterns(aliases []string) []string {
	out := make([]string, 0, len(aliases))
	for _, a := range aliases {
		out = append(out, escapeLike(a)+":%")
	}
	return out
}

// Normalize turns a request parameter ("Skincare", "skincare") into a UI key.
// Unknown values pass through unchanged.
func Normalize(param string) string {
	p := strings.TrimSpace(param)
	if p == "" {
		return "skincare"
	}
	for _, k := range Keys {
		if p == k {
			return k
		}
	}
	if k, ok := labels[strings.ToUpper(p[:1])+p[1:]]; ok {
		return k
	}
	return p
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
