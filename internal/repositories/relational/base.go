package relational

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"serverless-crud-api/internal/apperrors"
	"serverless-crud-api/internal/dataclient"
	"serverless-crud-api/internal/identifier"
)

// Deps carries the collaborators every repository needs
type Deps struct {
	Client dataclient.Client
	IDs    identifier.Generator
	Clock  func() time.Time
	Logger *logrus.Logger
}

func (d Deps) withDefaults() Deps {
	if d.IDs == nil {
		d.IDs = identifier.NewUUIDGenerator()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	return d
}

// BaseRepository provides common functionality for all relational repositories
type BaseRepository[T any] struct {
	client    dataclient.Client
	table     string
	ids       identifier.Generator
	clock     func() time.Time
	logger    *logrus.Logger
	mapRecord func(dataclient.Record) (*T, error)
}

// NewBaseRepository creates a new base repository
func NewBaseRepository[T any](deps Deps, table string, mapRecord func(dataclient.Record) (*T, error)) *BaseRepository[T] {
	deps = deps.withDefaults()
	return &BaseRepository[T]{
		client:    deps.Client,
		table:     table,
		ids:       deps.IDs,
		clock:     deps.Clock,
		logger:    deps.Logger,
		mapRecord: mapRecord,
	}
}

// now returns the current time in UTC, truncated to what the database keeps
func (r *BaseRepository[T]) now() time.Time {
	return r.clock().UTC().Truncate(time.Microsecond)
}

// queryOne runs a query expected to match at most one row
func (r *BaseRepository[T]) queryOne(ctx context.Context, operation, id, query string, params ...dataclient.Param) (*T, error) {
	start := time.Now()
	records, err := r.client.ExecuteQuery(ctx, query, params...)
	r.logQuery(operation, len(records), time.Since(start), err)
	if err != nil {
		return nil, r.wrap(operation, id, err)
	}
	return r.first(operation, id, records)
}

// queryMany runs a query and maps every row. It never returns a nil slice.
func (r *BaseRepository[T]) queryMany(ctx context.Context, operation, query string, params ...dataclient.Param) ([]*T, error) {
	start := time.Now()
	records, err := r.client.ExecuteQuery(ctx, query, params...)
	r.logQuery(operation, len(records), time.Since(start), err)
	if err != nil {
		return nil, r.wrap(operation, "", err)
	}

	entities := make([]*T, 0, len(records))
	for _, record := range records {
		entity, err := r.mapRecord(record)
		if err != nil {
			return nil, r.wrap(operation, "", err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// execReturning runs a mutating statement with a RETURNING clause and maps
// the returned row. No row means the target did not exist.
func (r *BaseRepository[T]) execReturning(ctx context.Context, operation, id, query string, params ...dataclient.Param) (*T, error) {
	start := time.Now()
	result, err := r.client.ExecuteStatement(ctx, query, params...)
	var n int
	if result != nil {
		n = int(result.NumberOfRecordsUpdated)
	}
	r.logQuery(operation, n, time.Since(start), err)
	if err != nil {
		return nil, r.wrap(operation, id, err)
	}
	return r.first(operation, id, result.Records)
}

// deleteByID deletes a row and reports whether anything was removed
func (r *BaseRepository[T]) deleteByID(ctx context.Context, id string) (bool, error) {
	query := "DELETE FROM " + r.table + " WHERE id = :id"

	start := time.Now()
	result, err := r.client.ExecuteStatement(ctx, query, dataclient.String("id", id))
	var n int
	if result != nil {
		n = int(result.NumberOfRecordsUpdated)
	}
	r.logQuery("delete", n, time.Since(start), err)
	if err != nil {
		return false, r.wrap("delete", id, err)
	}
	return result.NumberOfRecordsUpdated > 0, nil
}

func (r *BaseRepository[T]) first(operation, id string, records []dataclient.Record) (*T, error) {
	if len(records) == 0 {
		return nil, nil
	}
	entity, err := r.mapRecord(records[0])
	if err != nil {
		return nil, r.wrap(operation, id, err)
	}
	return entity, nil
}

func (r *BaseRepository[T]) wrap(operation, id string, err error) error {
	wrapped := apperrors.DataAccess(operation, r.table, nil, err)
	wrapped.ID = id
	return wrapped
}

// logQuery logs a repository operation with its execution time
func (r *BaseRepository[T]) logQuery(operation string, rows int, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"rows":      rows,
		"duration":  duration,
	}

	if err != nil {
		r.logger.WithFields(fields).WithError(err).Warn("Repository operation failed")
	} else {
		r.logger.WithFields(fields).Debug("Repository operation completed")
	}
}
