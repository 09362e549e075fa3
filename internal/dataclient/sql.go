package dataclient

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// sqliteTimestampFormat is fixed-width so text ordering matches time ordering
const sqliteTimestampFormat = "2006-01-02 15:04:05.000000"

// SQLClient executes statements through database/sql. The sqlite3 driver
// understands :name placeholders natively, so queries are passed through.
type SQLClient struct {
	db     *sql.DB
	driver string
	logger *logrus.Logger
}

// NewSQLClient wraps an open *sql.DB
func NewSQLClient(db *sql.DB, driver string, logger *logrus.Logger) *SQLClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLClient{db: db, driver: driver, logger: logger}
}

// DB returns the underlying connection pool
func (c *SQLClient) DB() *sql.DB {
	return c.db
}

// Driver returns the database/sql driver name
func (c *SQLClient) Driver() string {
	return c.driver
}

// Ping checks that the database is reachable
func (c *SQLClient) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return wrap("ping", err)
	}
	return nil
}

// Close closes the connection pool
func (c *SQLClient) Close() error {
	return c.db.Close()
}

// ExecuteQuery runs a query and returns its rows keyed by column name
func (c *SQLClient) ExecuteQuery(ctx context.Context, query string, params ...Param) ([]Record, error) {
	start := time.Now()
	records, err := c.query(ctx, query, params)
	logStatement(c.logger, c.driver, query, params, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ExecuteStatement runs a mutating statement. Statements with a RETURNING
// clause report the returned rows and count them as updated.
func (c *SQLClient) ExecuteStatement(ctx context.Context, query string, params ...Param) (*StatementResult, error) {
	start := time.Now()
	result, err := c.exec(ctx, query, params)
	logStatement(c.logger, c.driver, query, params, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *SQLClient) query(ctx context.Context, query string, params []Param) ([]Record, error) {
	args, err := c.args(query, params)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("query", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

func (c *SQLClient) exec(ctx context.Context, query string, params []Param) (*StatementResult, error) {
	if hasReturning(query) {
		records, err := c.query(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return &StatementResult{Records: records, NumberOfRecordsUpdated: int64(len(records))}, nil
	}

	args, err := c.args(query, params)
	if err != nil {
		return nil, err
	}

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("exec", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, wrap("exec", err)
	}
	return &StatementResult{Records: []Record{}, NumberOfRecordsUpdated: affected}, nil
}

func (c *SQLClient) args(query string, params []Param) ([]any, error) {
	_, names := rewriteNamed(query, ':')
	bound, err := bindParams(names, params)
	if err != nil {
		return nil, wrap("bind", err)
	}

	args := make([]any, 0, len(names))
	for _, name := range names {
		v := bound[name]
		if t, ok := v.(time.Time); ok {
			v = t.UTC().Format(sqliteTimestampFormat)
		}
		args = append(args, sql.Named(name, v))
	}
	return args, nil
}

func scanRows(rows *sql.Rows) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, wrap("columns", err)
	}

	records := []Record{}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, wrap("scan", err)
		}

		record := make(Record, len(columns))
		for i, col := range columns {
			v, err := normalize(values[i])
			if err != nil {
				return nil, wrap("scan", fmt.Errorf("column %s: %w", col, err))
			}
			record[col] = v
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap("rows", err)
	}
	return records, nil
}

func logStatement(logger *logrus.Logger, driver, query string, params []Param, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": statementVerb(query),
		"driver":    driver,
		"query":     query,
		"params":    paramNames(params),
		"duration":  duration,
	}

	if err != nil {
		logger.WithFields(fields).WithError(err).Error("Statement failed")
		return
	}
	logger.WithFields(fields).Debug("Statement executed")
}
