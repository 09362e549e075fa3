package dataclient

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// PgxClient executes statements through a pgx connection pool. Placeholders
// are rewritten from :name to pgx's @name form and bound as pgx.NamedArgs.
type PgxClient struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

// NewPgxClient wraps an open pool
func NewPgxClient(pool *pgxpool.Pool, logger *logrus.Logger) *PgxClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &PgxClient{pool: pool, logger: logger}
}

// Driver returns "postgres"
func (c *PgxClient) Driver() string {
	return DriverPostgres
}

// Ping checks that the database is reachable
func (c *PgxClient) Ping(ctx context.Context) error {
	if err := c.pool.Ping(ctx); err != nil {
		return wrap("ping", err)
	}
	return nil
}

// Close closes the pool
func (c *PgxClient) Close() error {
	c.pool.Close()
	return nil
}

// ExecuteQuery runs a query and returns its rows keyed by column name
func (c *PgxClient) ExecuteQuery(ctx context.Context, query string, params ...Param) ([]Record, error) {
	start := time.Now()
	records, err := c.query(ctx, query, params)
	logStatement(c.logger, DriverPostgres, query, params, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ExecuteStatement runs a mutating statement
func (c *PgxClient) ExecuteStatement(ctx context.Context, query string, params ...Param) (*StatementResult, error) {
	start := time.Now()
	result, err := c.exec(ctx, query, params)
	logStatement(c.logger, DriverPostgres, query, params, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *PgxClient) query(ctx context.Context, query string, params []Param) ([]Record, error) {
	sql, args, err := c.prepare(query, params)
	if err != nil {
		return nil, err
	}

	rows, err := c.pool.Query(ctx, sql, args)
	if err != nil {
		return nil, wrap("query", err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, wrap("scan", err)
	}

	records := make([]Record, 0, len(maps))
	for _, m := range maps {
		record := make(Record, len(m))
		for col, v := range m {
			nv, err := normalize(v)
			if err != nil {
				return nil, wrap("scan", fmt.Errorf("column %s: %w", col, err))
			}
			record[col] = nv
		}
		records = append(records, record)
	}
	return records, nil
}

func (c *PgxClient) exec(ctx context.Context, query string, params []Param) (*StatementResult, error) {
	if hasReturning(query) {
		records, err := c.query(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return &StatementResult{Records: records, NumberOfRecordsUpdated: int64(len(records))}, nil
	}

	sql, args, err := c.prepare(query, params)
	if err != nil {
		return nil, err
	}

	tag, err := c.pool.Exec(ctx, sql, args)
	if err != nil {
		return nil, wrap("exec", err)
	}
	return &StatementResult{Records: []Record{}, NumberOfRecordsUpdated: tag.RowsAffected()}, nil
}

func (c *PgxClient) prepare(query string, params []Param) (string, pgx.NamedArgs, error) {
	sql, names := rewriteNamed(query, '@')
	bound, err := bindParams(names, params)
	if err != nil {
		return "", nil, wrap("bind", err)
	}
	return sql, pgx.NamedArgs(bound), nil
}
