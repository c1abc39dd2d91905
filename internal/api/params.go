package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"kbradar/internal/category"
	"kbradar/internal/dashboard"
	"kbradar/internal/util"

	"github.com/go-playground/validator/v10"
)

const (
	searchLimit  = 10
	productLimit = 10
)

type searchQuery struct {
	Q string `json:"q" validate:"min=1,max=100"`
}

type rankingQuery struct {
	Platform string `json:"platform" validate:"required,platform"`
	Region   string `json:"region" validate:"required"`
	Cat      string `json:"cat"`
	Mode     string `json:"mode" validate:"oneof=ranking top-rankers climbers new-entrants"`
	Limit    int    `json:"limit" validate:"min=1,max=100"`
}

type listQuery struct {
	Cat   string `json:"cat"`
	Limit int    `json:"limit" validate:"min=1,max=100"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		_, ok := category.LookupPlatform(fl.Field().String())
		return ok
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// paramError turns validation failures into a user-safe ErrInvalidParam.
func paramError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", util.ErrInvalidParam, err)
	}
	fe := verrs[0]
	switch fe.Field() {
	case "platform":
		return fmt.Errorf("%w: unknown platform %q", util.ErrInvalidParam, fe.Value())
	case "mode":
		return fmt.Errorf("%w: unknown mode %q", util.ErrInvalidParam, fe.Value())
	case "limit":
		return fmt.Errorf("%w: limit out of range", util.ErrInvalidParam)
	default:
		return fmt.Errorf("%w: %s failed %s", util.ErrInvalidParam, fe.Field(), fe.Tag())
	}
}

// queryLimit parses ?limit=, falling back to def when absent. Unparseable
// values become -1 so validation rejects them.
func queryLimit(r *http.Request, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}

func (s *Server) parseRankingQuery(r *http.Request) (rankingQuery, error) {
	q := r.URL.Query()
	rq := rankingQuery{
		Platform: strings.TrimSpace(q.Get("platform")),
		Region:   strings.ToUpper(strings.TrimSpace(q.Get("region"))),
		Cat:      category.Normalize(q.Get("cat")),
		Mode:     strings.TrimSpace(q.Get("mode")),
		Limit:    queryLimit(r, s.cfg.DefaultLimit),
	}
	if rq.Mode == "" {
		rq.Mode = dashboard.ModeRanking
	}
	if p, ok := category.LookupPlatform(rq.Platform); ok && rq.Region == "" {
		rq.Region = p.Region
	}
	if err := s.validate.Struct(rq); err != nil {
		return rankingQuery{}, paramError(err)
	}
	return rq, nil
}

func (s *Server) parseListQuery(r *http.Request, def int) (listQuery, error) {
	lq := listQuery{
		Cat:   strings.TrimSpace(r.URL.Query().Get("cat")),
		Limit: queryLimit(r, def),
	}
	if lq.Cat != "" {
		lq.Cat = category.Normalize(lq.Cat)
	}
	if err := s.validate.Struct(lq); err != nil {
		return listQuery{}, paramError(err)
	}
	return lq, nil
}

type regionQuery struct {
	Cat   string `json:"cat"`
	Mode  string `json:"mode" validate:"oneof=ranking top-rankers climbers new-entrants"`
	Limit int    `json:"limit" validate:"min=1,max=100"`
}

func (s *Server) parseRegionQuery(r *http.Request) (regionQuery, error) {
	q := r.URL.Query()
	rq := regionQuery{
		Cat:   category.Normalize(q.Get("cat")),
		Mode:  strings.TrimSpace(q.Get("mode")),
		Limit: queryLimit(r, s.cfg.DefaultLimit),
	}
	if rq.Mode == "" {
		rq.Mode = dashboard.ModeRanking
	}
	if err := s.validate.Struct(rq); err != nil {
		return regionQuery{}, paramError(err)
	}
	return rq, nil
}
