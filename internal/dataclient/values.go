package dataclient

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// normalize converts a driver value into one of string, int64, float64,
// bool, time.Time or nil.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil, string, int64, float64, bool, time.Time:
		return val, nil
	case []byte:
		return string(val), nil
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case uint8:
		return int64(val), nil
	case uint16:
		return int64(val), nil
	case uint32:
		return int64(val), nil
	case float32:
		return float64(val), nil
	case driver.Valuer:
		inner, err := val.Value()
		if err != nil {
			return nil, err
		}
		if _, again := inner.(driver.Valuer); again {
			return nil, fmt.Errorf("unsupported value type %T", v)
		}
		return normalize(inner)
	case fmt.Stringer:
		return val.String(), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
