package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Typed accessors for validated maps. A missing key reports ok=false; the
// type assertions are safe because the coercers produced the values.

func GetString(values map[string]any, key string) (string, bool) {
	v, ok := values[key].(string)
	return v, ok
}

func GetInt(values map[string]any, key string) (int, bool) {
	v, ok := values[key].(int)
	return v, ok
}

func GetBool(values map[string]any, key string) (bool, bool) {
	v, ok := values[key].(bool)
	return v, ok
}

func GetAmount(values map[string]any, key string) (decimal.Decimal, bool) {
	v, ok := values[key].(decimal.Decimal)
	return v, ok
}

func GetTime(values map[string]any, key string) (time.Time, bool) {
	v, ok := values[key].(time.Time)
	return v, ok
}

// IntOr returns the validated value or fallback when the key is absent.
func IntOr(values map[string]any, key string, fallback int) int {
	if v, ok := GetInt(values, key); ok {
		return v
	}
	return fallback
}

// BoolOr returns the validated value or fallback when the key is absent.
func BoolOr(values map[string]any, key string, fallback bool) bool {
	if v, ok := GetBool(values, key); ok {
		return v
	}
	return fallback
}

// StringOr returns the validated value or fallback when the key is absent.
func StringOr(values map[string]any, key string, fallback string) string {
	if v, ok := GetString(values, key); ok {
		return v
	}
	return fallback
}
