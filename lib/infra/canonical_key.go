package infra

import (
	"fmt"
	"strconv"
)

// CanonicalKey normalizes a caller provided key into the string form
// used for storage and comparison. Keys which render the same string
// are the same entry, e.g. 42, int64(42) and "42".
// Floats use the shortest form (1.0 is "1"), bools are "true" and
// "false", and nil is the empty key.
func CanonicalKey(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case []byte:
		return string(k)
	case fmt.Stringer:
		return k.String()
	case int:
		return strconv.FormatInt(int64(k), 10)
	case int8:
		return strconv.FormatInt(int64(k), 10)
	case int16:
		return strconv.FormatInt(int64(k), 10)
	case int32:
		return strconv.FormatInt(int64(k), 10)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint:
		return strconv.FormatUint(uint64(k), 10)
	case uint8:
		return strconv.FormatUint(uint64(k), 10)
	case uint16:
		return strconv.FormatUint(uint64(k), 10)
	case uint32:
		return strconv.FormatUint(uint64(k), 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	case uintptr:
		return strconv.FormatUint(uint64(k), 10)
	case float32:
		return strconv.FormatFloat(float64(k), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(k)
	case nil:
		return ""
	default:
	}
	return fmt.Sprint(key)
}
