package storage

import (
	"context"
	"fmt"

	"kbradar/internal/models"
)

type SocialRepo struct {
	db *DB
}

func NewSocialRepo(db *DB) *SocialRepo {
	return &SocialRepo{db: db}
}

// ListHypotheses returns predictions ordered by confidence, highest first.
func (r *SocialRepo) ListHypotheses(ctx context.Context, limit int) ([]models.SocialHypothesis, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id::text, entity_name, COALESCE(entity_type,'brand'), COALESCE(prediction,''), COALESCE(confidence,0)::float8,
       signals::text, COALESCE(status,'pending'), COALESCE(actual_outcome,''), COALESCE(notes,''),
       COALESCE(validate_by::text,''), created_at
FROM social_hypotheses
ORDER BY confidence DESC NULLS LAST, created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list social hypotheses: %w", err)
	}
	defer rows.Close()

	out := make([]models.SocialHypothesis, 0)
	for rows.Next() {
		var h models.SocialHypothesis
		var signals *string
		if err := rows.Scan(&h.ID, &h.EntityName, &h.EntityType, &h.Prediction, &h.Confidence,
			&signals, &h.Status, &h.ActualOutcome, &h.Notes, &h.ValidateBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan social hypothesis: %w", err)
		}
		h.Signals = []models.SocialSignalDetail{}
		if signals != nil {
			if parsed, err := parseSignals([]byte(*signals)); err == nil {
				h.Signals = parsed
			}
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate social hypotheses: %w", err)
	}
	return out, nil
}
