package models

// Records returned to the presentation layer.

type RankingItem struct {
	Rank        int      `json:"rank"`
	Brand       string   `json:"brand"`
	Title       string   `json:"title"`
	Subcategory string   `json:"subcategory,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Currency    string   `json:"currency"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"review_count,omitempty"`
	WowChange   int      `json:"wow_change"`
	IsNew       bool     `json:"is_new"`
	IsKBeauty   bool     `json:"is_kbeauty"`
}

type ConsistentRanker struct {
	RankingItem
	Appearances    int `json:"appearances"`
	TotalSnapshots int `json:"total_snapshots"`
	BestRank       int `json:"best_rank"`
}

type TopRankerItem struct {
	BrandID     string   `json:"brand_id"`
	BrandName   string   `json:"brand_name"`
	BrandNameKR string   `json:"brand_name_kr,omitempty"`
	WeeksInTop  int      `json:"weeks_in_top"`
	BestRank    int      `json:"best_rank"`
	Platforms   []string `json:"platforms"`
	Explanation string   `json:"explanation"`
}

type ClimberItem struct {
	BrandID             string `json:"brand_id"`
	BrandName           string `json:"brand_name"`
	BrandNameKR         string `json:"brand_name_kr,omitempty"`
	WowChange           int    `json:"wow_change"`
	Streak              int    `json:"streak"`
	FourWeekImprovement *int   `json:"four_week_improvement,omitempty"`
	Explanation         string `json:"explanation"`
}

type NewEntrantItem struct {
	BrandID     string   `json:"brand_id"`
	BrandName   string   `json:"brand_name"`
	BrandNameKR string   `json:"brand_name_kr,omitempty"`
	EntryRank   *int     `json:"entry_rank,omitempty"`
	Platforms   []string `json:"platforms"`
	Explanation string   `json:"explanation"`
}

type CrossBorderItem struct {
	BrandID            string   `json:"brand_id"`
	BrandName          string   `json:"brand_name"`
	BrandNameKR        string   `json:"brand_name_kr,omitempty"`
	Regions            []string `json:"regions"`
	PlatformsPerRegion Markets  `json:"platforms_per_region"`
	CrossBorderScore   float64  `json:"cross_border_score"`
	Explanation        string   `json:"explanation"`
}

type HiddenGemItem struct {
	BrandID          string   `json:"brand_id"`
	BrandName        string   `json:"brand_name"`
	BrandNameKR      string   `json:"brand_name_kr,omitempty"`
	CompanyName      string   `json:"company_name,omitempty"`
	Category         string   `json:"category,omitempty"`
	NewLeaderScore   float64  `json:"new_leader_score"`
	GrowthScore      float64  `json:"growth_score"`
	CrossBorderScore float64  `json:"cross_border_score"`
	LeaderScore      float64  `json:"leader_score"`
	CompositeScore   float64  `json:"composite_score"`
	Platforms        []string `json:"platforms"`
	BestRank         *int     `json:"best_rank,omitempty"`
	Explanation      string   `json:"explanation"`
}

type DrilldownWeek struct {
	WeekStart      string  `json:"week_start"`
	GlobalBestRank *int    `json:"global_best_rank,omitempty"`
	LeaderScore    float64 `json:"leader_score"`
	GrowthScore    float64 `json:"growth_score"`
	OliveYoung     *int    `json:"oliveyoung,omitempty"`
	AmazonUS       *int    `json:"amazon_us,omitempty"`
	AmazonAE       *int    `json:"amazon_ae,omitempty"`
	SephoraUS      *int    `json:"sephora_us,omitempty"`
	Ulta           *int    `json:"ulta,omitempty"`
	TikTokShop     *int    `json:"tiktokshop,omitempty"`
	NoonAE         *int    `json:"noon_ae,omitempty"`
}

type BrandDrilldown struct {
	BrandID                string          `json:"brand_id"`
	BrandName              string          `json:"brand_name"`
	BrandNameKR            string          `json:"brand_name_kr,omitempty"`
	CompanyName            string          `json:"company_name,omitempty"`
	IsKBeauty              bool            `json:"is_kbeauty"`
	History                []DrilldownWeek `json:"history"`
	LatestExplanation      string          `json:"latest_explanation"`
	LatestLeaderScore      float64         `json:"latest_leader_score"`
	LatestGrowthScore      float64         `json:"latest_growth_score"`
	LatestNewLeaderScore   float64         `json:"latest_new_leader_score"`
	LatestCrossBorderScore float64         `json:"latest_cross_border_score"`
	MarketsPresent         Markets         `json:"markets_present"`
}

type SearchResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameKR string `json:"name_kr,omitempty"`
	Type   string `json:"type"`
}

type CompanyDetail struct {
	Profile    CompanyProfile     `json:"profile"`
	Brands     []CompanyBrand     `json:"brands"`
	Financials []CompanyFinancial `json:"financials"`
	Market     *CompanyMarket     `json:"market"`
	AdExpense  *CompanyAdExpense  `json:"ad_expense"`
}

// CompanyAdExpense amounts are in 억원.
type CompanyAdExpense struct {
	AdRatio           float64 `json:"ad_ratio"`
	AdSpend           float64 `json:"ad_spend"`
	Revenue           float64 `json:"revenue"`
	Level             string  `json:"level"`
	Badge             string  `json:"badge,omitempty"`
	OrganicMultiplier float64 `json:"organic_multiplier"`
	FormattedSpend    string  `json:"formatted_spend"`
	DataAsOf          string  `json:"data_as_of"`
}

type BrandProduct struct {
	Platform    string   `json:"platform"`
	Region      string   `json:"region"`
	Title       string   `json:"title"`
	Rank        int      `json:"rank"`
	Price       *float64 `json:"price,omitempty"`
	Currency    string   `json:"currency"`
	Category    string   `json:"category"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"review_count,omitempty"`
}

type PlatformDiagnostic struct {
	Platform       string   `json:"platform"`
	TotalViews     *float64 `json:"total_views,omitempty"`
	TotalSaves     *float64 `json:"total_saves,omitempty"`
	TotalShares    *float64 `json:"total_shares,omitempty"`
	SaveChangePct  *float64 `json:"save_change_pct,omitempty"`
	ShareChangePct *float64 `json:"share_change_pct,omitempty"`
	ViewChangePct  *float64 `json:"view_change_pct,omitempty"`
	SignalTypes    []string `json:"signal_types"`
}

type SocialSignalItem struct {
	SocialHypothesis
	AdjustedConfidence float64              `json:"adjusted_confidence"`
	AdLevel            string               `json:"ad_level"`
	AdBadge            string               `json:"ad_badge,omitempty"`
	AdRatio            *float64             `json:"ad_ratio,omitempty"`
	AdSpend            *float64             `json:"ad_spend,omitempty"`
	CompanyName        string               `json:"company_name,omitempty"`
	IsKBeauty          bool                 `json:"is_kbeauty"`
	PlatformBreakdown  []PlatformDiagnostic `json:"platform_breakdown"`
}

// RegionColumn is one region's set of platform views on the dashboard.
type RegionColumn struct {
	Region    string         `json:"region"`
	Name      string         `json:"name"`
	NameKR    string         `json:"name_kr"`
	Platforms []PlatformView `json:"platforms"`
}

type PlatformView struct {
	Platform string `json:"platform"`
	Name     string `json:"name"`
	Mode     string `json:"mode"`
	Items    any    `json:"items"`
}
