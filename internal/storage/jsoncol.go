package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"kbradar/internal/models"
)

// Some writers store JSON columns as an encoded JSON string rather than an
// object. unwrapJSON peels that layer so callers see one representation.
func unwrapJSON(raw []byte) []byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return raw
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return raw
	}
	return bytes.TrimSpace([]byte(inner))
}

func isNullJSON(raw []byte) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// parseMarkets decodes markets_present. Region entries that are not string
// arrays are dropped; a NULL column yields nil.
func parseMarkets(raw []byte) (models.Markets, error) {
	raw = unwrapJSON(raw)
	if isNullJSON(raw) {
		return nil, nil
	}
	var loose map[string]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, fmt.Errorf("decode markets_present: %w", err)
	}
	out := make(models.Markets, len(loose))
	for region, v := range loose {
		var platforms []string
		if err := json.Unmarshal(v, &platforms); err != nil || platforms == nil {
			continue
		}
		out[region] = platforms
	}
	return out, nil
}

func parseSignals(raw []byte) ([]models.SocialSignalDetail, error) {
	raw = unwrapJSON(raw)
	if isNullJSON(raw) {
		return []models.SocialSignalDetail{}, nil
	}
	var out []models.SocialSignalDetail
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode signals: %w", err)
	}
	if out == nil {
		out = []models.SocialSignalDetail{}
	}
	return out, nil
}

func parseStringMap(raw []byte) (map[string]string, error) {
	raw = unwrapJSON(raw)
	if isNullJSON(raw) {
		return nil, nil
	}
	var out map[string]string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode string map: %w", err)
	}
	return out, nil
}
