// Package repository holds the Postgres-backed stores. Profiles and users go
// through GORM, the jump and mark logs through sqlx.
package repository

import (
	"database/sql"
	stderrors "errors"

	"athletics-backend/apperr"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// translate maps driver errors onto the store sentinels and adds context.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) || stderrors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(apperr.ErrNotFound, msg)
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return errors.Wrapf(apperr.ErrDuplicate, "%s: %s", msg, pqErr.Constraint)
	}
	return errors.Wrap(err, msg)
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}
