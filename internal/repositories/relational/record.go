package relational

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"serverless-crud-api/internal/dataclient"
)

// timestampLayouts are the text forms timestamps come back in from sqlite
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02",
}

func column(record dataclient.Record, name string) (any, error) {
	v, ok := record[name]
	if !ok {
		return nil, fmt.Errorf("missing column %s", name)
	}
	return v, nil
}

func stringField(record dataclient.Record, name string) (string, error) {
	v, err := column(record, name)
	if err != nil {
		return "", err
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case nil:
		return "", fmt.Errorf("column %s is NULL", name)
	default:
		return fmt.Sprint(val), nil
	}
}

// optionalStringField maps NULL to nil
func optionalStringField(record dataclient.Record, name string) (*string, error) {
	v, err := column(record, name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	s, err := stringField(record, name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func int64Field(record dataclient.Record, name string) (int64, error) {
	v, err := column(record, name)
	if err != nil {
		return 0, err
	}
	switch val := v.(type) {
	case int64:
		return val, nil
	case float64:
		return int64(val), nil
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", name, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("column %s: unexpected type %T", name, v)
	}
}

func decimalField(record dataclient.Record, name string) (decimal.Decimal, error) {
	v, err := column(record, name)
	if err != nil {
		return decimal.Zero, err
	}
	switch val := v.(type) {
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero, fmt.Errorf("column %s: %w", name, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	default:
		return decimal.Zero, fmt.Errorf("column %s: unexpected type %T", name, v)
	}
}

func timeField(record dataclient.Record, name string) (time.Time, error) {
	v, err := column(record, name)
	if err != nil {
		return time.Time{}, err
	}
	switch val := v.(type) {
	case time.Time:
		return val.UTC(), nil
	case string:
		for _, layout := range timestampLayouts {
			if t, err := time.ParseInLocation(layout, val, time.UTC); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("column %s: unrecognized timestamp %q", name, val)
	default:
		return time.Time{}, fmt.Errorf("column %s: unexpected type %T", name, v)
	}
}
