package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrSpotNotFound    = errors.New("spot not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrSpotTokenExists = errors.New("spot token already exists")
)

// isUniqueViolation matches both the translated gorm error and a raw pgx error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
