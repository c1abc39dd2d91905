// Package adspend scores how organic a company's growth is from its
// advertising intensity.
//
// Figures come from DART 2024 annual reports. Ratio and absolute spend both
// matter: 아모레퍼시픽 spends 14.2% of revenue, which looks moderate, but that
// is 5,518억원.
package adspend

import (
	"kbradar/internal/brands"

	"github.com/dustin/go-humanize"
)

const DataAsOf = "2024"

type Level string

const (
	LevelHigh    Level = "high"
	LevelMid     Level = "mid"
	LevelLow     Level = "low"
	LevelUnknown Level = "unknown"
)

// CompanyAdData is one company's advertising figures. Amounts are in 억원.
type CompanyAdData struct {
	AdRatio float64 `json:"ad_ratio"`
	AdSpend float64 `json:"ad_spend"`
	Revenue float64 `json:"revenue"`
}

// Unlisted companies do not file annual reports and are absent.
var companyAdData = map[string]CompanyAdData{
	"에이피알":     {AdRatio: 19.6, AdSpend: 1419, Revenue: 7228},
	"마녀공장":     {AdRatio: 18.4, AdSpend: 236, Revenue: 1279},
	"클리오":      {AdRatio: 16.1, AdSpend: 565, Revenue: 3514},
	"아모레퍼시픽":   {AdRatio: 14.2, AdSpend: 5518, Revenue: 38851},
	"네오팜":      {AdRatio: 8.6, AdSpend: 103, Revenue: 1190},
	"LG생활건강":   {AdRatio: 7.3, AdSpend: 5000, Revenue: 68119},
	"CSA 코스믹":  {AdRatio: 7.0, AdSpend: 26, Revenue: 364},
	"에이블씨엔씨":   {AdRatio: 6.4, AdSpend: 168, Revenue: 2640},
	"브이티":      {AdRatio: 5.3, AdSpend: 227, Revenue: 4317},
	"토니모리":     {AdRatio: 4.8, AdSpend: 84, Revenue: 1770},
	"아이패밀리에스씨": {AdRatio: 4.3, AdSpend: 88, Revenue: 2049},
	"한국콜마":     {AdRatio: 2.0, AdSpend: 495, Revenue: 24521},
	"코스맥스":     {AdRatio: 0.2, AdSpend: 42, Revenue: 21661},
}

func Lookup(company string) (CompanyAdData, bool) {
	d, ok := companyAdData[company]
	return d, ok
}

// LookupBrand resolves the brand's company first.
func LookupBrand(brand string) (string, CompanyAdData, bool) {
	company, ok := brands.CompanyName(brand)
	if !ok {
		return "", CompanyAdData{}, false
	}
	d, ok := companyAdData[company]
	return company, d, ok
}

// LevelOf classifies ad intensity. A huge absolute budget is high even at a
// moderate ratio; low needs both a small ratio and a small budget.
func LevelOf(company string) Level {
	d, ok := companyAdData[company]
	if !ok {
		return LevelUnknown
	}
	switch {
	case d.AdRatio > 12 || d.AdSpend >= 1000:
		return LevelHigh
	case d.AdRatio < 5 && d.AdSpend < 200:
		return LevelLow
	default:
		return LevelMid
	}
}

// OrganicMultiplier is 0..1, higher meaning more organic. Unknown companies
// get a neutral 0.5.
func OrganicMultiplier(company string) float64 {
	d, ok := companyAdData[company]
	if !ok {
		return 0.5
	}
	ratioScore := clamp01(1 - d.AdRatio/20)

	var penalty float64
	switch {
	case d.AdSpend >= 1000:
		penalty = 0.3
	case d.AdSpend >= 500:
		penalty = 0.2
	case d.AdSpend >= 100:
		penalty = 0.1
	}
	return clamp01(ratioScore - penalty)
}

// Badge is the display label for a level: "Organic", "Paid" or empty.
func Badge(l Level) string {
	switch l {
	case LevelLow:
		return "Organic"
	case LevelHigh:
		return "Paid"
	default:
		return ""
	}
}

// FormatSpend renders a company's spend as "5,518억".
func FormatSpend(company string) (string, bool) {
	d, ok := companyAdData[company]
	if !ok {
		return "", false
	}
	return humanize.Comma(int64(d.AdSpend)) + "억", true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
