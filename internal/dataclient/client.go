package dataclient

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Record is a single result row keyed by column name
type Record map[string]any

// StatementResult is the outcome of a mutating statement
type StatementResult struct {
	// Records holds the rows produced by a RETURNING clause, if any
	Records []Record
	// NumberOfRecordsUpdated is the number of rows the statement touched
	NumberOfRecordsUpdated int64
}

// Param is a named statement parameter, referenced in SQL as :name
type Param struct {
	Name  string
	Value any
}

// Client executes parameterized SQL against the backing database
type Client interface {
	ExecuteQuery(ctx context.Context, query string, params ...Param) ([]Record, error)
	ExecuteStatement(ctx context.Context, query string, params ...Param) (*StatementResult, error)
}

// Database is a Client that owns a connection pool
type Database interface {
	Client
	Driver() string
	Ping(ctx context.Context) error
	Close() error
}

// String creates a string parameter
func String(name, value string) Param {
	return Param{Name: name, Value: value}
}

// NullableString creates a string parameter that binds NULL for a nil pointer
func NullableString(name string, value *string) Param {
	if value == nil {
		return Null(name)
	}
	return Param{Name: name, Value: *value}
}

// Long creates an integer parameter
func Long(name string, value int64) Param {
	return Param{Name: name, Value: value}
}

// Double creates a floating point parameter
func Double(name string, value float64) Param {
	return Param{Name: name, Value: value}
}

// Decimal creates an exact numeric parameter, bound as its string form
func Decimal(name string, value decimal.Decimal) Param {
	return Param{Name: name, Value: value.String()}
}

// Timestamp creates a timestamp parameter, always normalized to UTC
func Timestamp(name string, value time.Time) Param {
	return Param{Name: name, Value: value.UTC()}
}

// Null creates a NULL parameter
func Null(name string) Param {
	return Param{Name: name, Value: nil}
}
