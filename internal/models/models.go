package models

import "time"

// CommerceRankingRow is one product on one platform's ranking at one
// snapshot date. SnapshotDate is ISO YYYY-MM-DD so string order is date order.
type CommerceRankingRow struct {
	Platform     string   `json:"platform"`
	Region       string   `json:"region"`
	Category     string   `json:"category"`
	SnapshotDate string   `json:"snapshot_date"`
	RankPosition int      `json:"rank_position"`
	BrandText    *string  `json:"brand_text,omitempty"`
	Title        string   `json:"title"`
	Price        *float64 `json:"price,omitempty"`
	Currency     string   `json:"currency"`
	Rating       *float64 `json:"rating,omitempty"`
	ReviewCount  *int     `json:"review_count,omitempty"`
}

// Markets maps a region code to the platform keys a brand ranked on.
// A nil Markets means the source column was NULL.
type Markets map[string][]string

type WeeklyBrandMetric struct {
	BrandID                string  `json:"brand_id"`
	WeekStart              string  `json:"week_start"`
	GlobalBestRank         *int    `json:"global_best_rank,omitempty"`
	LeaderScore            float64 `json:"leader_score"`
	GrowthScore            float64 `json:"growth_score"`
	NewLeaderScore         float64 `json:"new_leader_score"`
	CrossBorderScore       float64 `json:"cross_border_score"`
	WowRankChange          *int    `json:"wow_rank_change,omitempty"`
	ConsecutiveWeeksRising int     `json:"consecutive_weeks_rising"`
	FourWeekImprovement    *int    `json:"four_week_improvement,omitempty"`
	IsNewEntrant           bool    `json:"is_new_entrant"`
	MarketsPresent         Markets `json:"markets_present"`
	Explanation            string  `json:"explanation"`

	OliveYoungBestRank *int `json:"oliveyoung_best_rank,omitempty"`
	AmazonUSBestRank   *int `json:"amazon_us_best_rank,omitempty"`
	AmazonAEBestRank   *int `json:"amazon_ae_best_rank,omitempty"`
	SephoraUSBestRank  *int `json:"sephora_us_best_rank,omitempty"`
	UltaBestRank       *int `json:"ulta_best_rank,omitempty"`
	TikTokShopBestRank *int `json:"tiktokshop_best_rank,omitempty"`
	NoonAEBestRank     *int `json:"noon_ae_best_rank,omitempty"`

	// Joined from brands.
	BrandName     string `json:"brand_name"`
	BrandNameKR   string `json:"brand_name_kr,omitempty"`
	BrandCategory string `json:"brand_category,omitempty"`
}

type Brand struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	NameKR   string `json:"name_kr,omitempty"`
	Category string `json:"category,omitempty"`
}

type SocialHypothesis struct {
	ID            string               `json:"id"`
	EntityName    string               `json:"entity_name"`
	EntityType    string               `json:"entity_type"`
	Prediction    string               `json:"prediction"`
	Confidence    float64              `json:"confidence"`
	Signals       []SocialSignalDetail `json:"signals"`
	Status        string               `json:"status"`
	ActualOutcome string               `json:"actual_outcome,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	ValidateBy    string               `json:"validate_by,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type SocialSignalDetail struct {
	EntityName     string          `json:"entity_name"`
	Platform       string          `json:"platform"`
	SignalType     string          `json:"signal_type"`
	SignalStrength float64         `json:"signal_strength"`
	ChangeRate     float64         `json:"change_rate"`
	DetectedAt     string          `json:"detected_at"`
	Metadata       *SignalMetadata `json:"metadata,omitempty"`
}

type SignalMetadata struct {
	RawMetrics *RawMetrics `json:"raw_metrics,omitempty"`
}

type RawMetrics struct {
	TotalViews     *float64 `json:"total_views,omitempty"`
	TotalSaves     *float64 `json:"total_saves,omitempty"`
	TotalShares    *float64 `json:"total_shares,omitempty"`
	TotalLikes     *float64 `json:"total_likes,omitempty"`
	TotalComments  *float64 `json:"total_comments,omitempty"`
	ViewChangePct  *float64 `json:"view_change_pct,omitempty"`
	SaveChangePct  *float64 `json:"save_change_pct,omitempty"`
	ShareChangePct *float64 `json:"share_change_pct,omitempty"`
	MentionCount   *float64 `json:"mention_count,omitempty"`
}

type CompanyProfile struct {
	CompanyID          string            `json:"company_id"`
	LegalName          string            `json:"legal_name"`
	WebsiteURL         string            `json:"website_url,omitempty"`
	HQLocation         string            `json:"hq_location,omitempty"`
	FoundedYear        *int              `json:"founded_year,omitempty"`
	Ticker             string            `json:"ticker,omitempty"`
	PublicCompany      bool              `json:"public_company"`
	EmployeeCountRange string            `json:"employee_count_range,omitempty"`
	Executives         map[string]string `json:"executives,omitempty"`
}

type CompanyFinancial struct {
	SnapshotDate     string   `json:"snapshot_date"`
	Source           string   `json:"source"`
	Revenue          *float64 `json:"revenue,omitempty"`
	OperatingProfit  *float64 `json:"operating_profit,omitempty"`
	NetIncome        *float64 `json:"net_income,omitempty"`
	OperatingMargin  *float64 `json:"operating_margin,omitempty"`
	YoYRevenueGrowth *float64 `json:"yoy_revenue_growth,omitempty"`
}

type CompanyMarket struct {
	SnapshotDatetime time.Time `json:"snapshot_datetime"`
	Ticker           string    `json:"ticker"`
	CurrentPrice     *float64  `json:"current_price,omitempty"`
	MarketCap        *float64  `json:"market_cap,omitempty"`
	DayChangePct     *float64  `json:"day_change_pct,omitempty"`
	Volume           *int64    `json:"volume,omitempty"`
	High52W          *float64  `json:"high_52w,omitempty"`
	Low52W           *float64  `json:"low_52w,omitempty"`
	Currency         string    `json:"currency,omitempty"`
}

type CompanyBrand struct {
	BrandID     string `json:"brand_id"`
	BrandName   string `json:"brand_name"`
	BrandNameKR string `json:"brand_name_kr,omitempty"`
	Category    string `json:"category,omitempty"`
	LatestRank  *int   `json:"latest_rank,omitempty"`
}
