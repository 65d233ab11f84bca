package conv

import (
	"encoding/json"
	"strconv"
)

// AsInt converts numeric values into int, returns 0 when conversion is not possible
func AsInt(v interface{}) int {
	switch actual := v.(type) {
	case int:
		return actual
	case int8:
		return int(actual)
	case int16:
		return int(actual)
	case int32:
		return int(actual)
	case int64:
		return int(actual)
	case uint:
		return int(actual)
	case uint8:
		return int(actual)
	case uint16:
		return int(actual)
	case uint32:
		return int(actual)
	case uint64:
		return int(actual)
	case float32:
		return int(actual)
	case float64:
		return int(actual)
	case json.Number:
		i, _ := actual.Int64()
		return int(i)
	case string:
		i, _ := strconv.Atoi(actual)
		return i
	}
	return 0
}
