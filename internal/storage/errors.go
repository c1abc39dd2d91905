package storage

import (
	"errors"
	"fmt"
	"strings"

	"kbradar/internal/util"

	"github.com/jackc/pgx/v5"
)

// wrapNotFound maps pgx.ErrNoRows onto util.ErrNotFound.
func wrapNotFound(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, util.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func containsPattern(s string) string {
	return "%" + escapeLike(strings.TrimSpace(s)) + "%"
}
