package dataclient

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"serverless-crud-api/internal/apperrors"
)

// classify maps a driver error onto one of the apperrors sentinels
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.ErrTimeout
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch {
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique,
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return apperrors.ErrDuplicateEntry
		case sqliteErr.Code == sqlite3.ErrConstraint:
			return apperrors.ErrConstraint
		case sqliteErr.Code == sqlite3.ErrBusy, sqliteErr.Code == sqlite3.ErrLocked:
			return apperrors.ErrTimeout
		case sqliteErr.Code == sqlite3.ErrCantOpen:
			return apperrors.ErrConnection
		}
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return apperrors.ErrDuplicateEntry
		case strings.HasPrefix(pgErr.Code, "23"):
			return apperrors.ErrConstraint
		case strings.HasPrefix(pgErr.Code, "08"):
			return apperrors.ErrConnection
		case pgErr.Code == "57014":
			return apperrors.ErrTimeout
		}
		return nil
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return apperrors.ErrConnection
	}

	return nil
}

// wrap turns a driver error into a DataAccess error
func wrap(op string, err error) error {
	return apperrors.DataAccess(op, "database", classify(err), err)
}
