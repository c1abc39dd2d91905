package signals

import (
	"context"
	"strings"

	"kbradar/internal/adspend"
	"kbradar/internal/brands"
	"kbradar/internal/category"
	"kbradar/internal/models"
)

// hypothesisWindow is how many predictions are read before category
// filtering and truncation.
const hypothesisWindow = 100

// SocialSignals returns social predictions with confidence discounted by the
// owning company's ad intensity.
func (s *Service) SocialSignals(ctx context.Context, cat string, limit int) []models.SocialSignalItem {
	rows, err := s.social.ListHypotheses(ctx, hypothesisWindow)
	if err != nil {
		s.degrade("social_signals", err, "category", cat)
		return []models.SocialSignalItem{}
	}

	if cat != "" && len(rows) > 0 {
		keep, err := s.socialCategoryFilter(ctx, cat, rows)
		if err != nil {
			s.degrade("social_signals", err, "category", cat)
			return []models.SocialSignalItem{}
		}
		if keep != nil {
			filtered := rows[:0:0]
			for _, h := range rows {
				if _, ok := keep[strings.ToLower(h.EntityName)]; ok {
					filtered = append(filtered, h)
				}
			}
			rows = filtered
		}
	}
	rows = truncate(rows, limit)

	out := make([]models.SocialSignalItem, 0, len(rows))
	for _, h := range rows {
		out = append(out, annotateHypothesis(h))
	}
	return out
}

// socialCategoryFilter returns the lowercased entity names in the category.
// A nil set means no entity resolved to a known brand and nothing is
// filtered.
func (s *Service) socialCategoryFilter(ctx context.Context, cat string, rows []models.SocialHypothesis) (map[string]struct{}, error) {
	names := make([]string, 0, len(rows))
	for _, h := range rows {
		names = append(names, h.EntityName)
	}
	known, err := s.brands.ListBrandsByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(known) == 0 {
		return nil, nil
	}
	aliases := category.Aliases(category.Normalize(cat))
	keep := make(map[string]struct{})
	for _, b := range known {
		for _, a := range aliases {
			if b.Category == a {
				keep[strings.ToLower(b.Name)] = struct{}{}
				break
			}
		}
	}
	return keep, nil
}

func annotateHypothesis(h models.SocialHypothesis) models.SocialSignalItem {
	company, data, ok := adspend.LookupBrand(h.EntityName)
	level := adspend.LevelOf(company)
	item := models.SocialSignalItem{
		SocialHypothesis:   h,
		AdjustedConfidence: h.Confidence * adspend.OrganicMultiplier(company),
		AdLevel:            string(level),
		AdBadge:            adspend.Badge(level),
		CompanyName:        company,
		IsKBeauty:          brands.IsKBeauty(h.EntityName),
		PlatformBreakdown:  platformBreakdown(h.Signals),
	}
	if ok {
		ratio, spend := data.AdRatio, data.AdSpend
		item.AdRatio = &ratio
		item.AdSpend = &spend
	}
	return item
}

// platformBreakdown groups signals per platform in first-seen order. Metrics
// come from the first signal on that platform carrying raw metrics.
func platformBreakdown(signals []models.SocialSignalDetail) []models.PlatformDiagnostic {
	index := map[string]int{}
	out := make([]models.PlatformDiagnostic, 0)
	for _, sig := range signals {
		i, ok := index[sig.Platform]
		if !ok {
			i = len(out)
			index[sig.Platform] = i
			out = append(out, models.PlatformDiagnostic{Platform: sig.Platform, SignalTypes: []string{}})
		}
		d := &out[i]
		if sig.SignalType != "" && !containsString(d.SignalTypes, sig.SignalType) {
			d.SignalTypes = append(d.SignalTypes, sig.SignalType)
		}
		if d.TotalViews == nil && sig.Metadata != nil && sig.Metadata.RawMetrics != nil {
			rm := sig.Metadata.RawMetrics
			d.TotalViews = rm.TotalViews
			d.TotalSaves = rm.TotalSaves
			d.TotalShares = rm.TotalShares
			d.ViewChangePct = rm.ViewChangePct
			d.SaveChangePct = rm.SaveChangePct
			d.ShareChangePct = rm.ShareChangePct
		}
	}
	return out
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
