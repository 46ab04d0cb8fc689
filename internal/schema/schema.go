// Package schema implements declarative input validation for request bodies
// and query strings. A schema lists the known fields with a coercer each;
// validation trims, parses and range-checks every present field, collects one
// FieldError per failing field, and silently drops unrecognized keys.
// Validation is synchronous and never touches the data store.
package schema

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"finbook/internal/apierr"

	"github.com/shopspring/decimal"
)

// Coercer turns a raw input value into its typed form or reports a
// field-level failure. path is the dotted location of the value.
type Coercer func(path string, raw any) (any, *apierr.FieldError)

type Field struct {
	Name     string
	Required bool
	Coerce   Coercer
	// Object, when set, validates the field as a nested object; failures
	// inside it are reported with dotted paths.
	Object *Object
}

type Object struct {
	fields []Field
}

func NewObject(fields ...Field) Object {
	return Object{fields: fields}
}

// Validate checks input against the schema. The returned map contains only
// known, successfully coerced fields.
func (o Object) Validate(input any) (map[string]any, []apierr.FieldError) {
	return o.validate("", input)
}

func (o Object) validate(prefix string, input any) (map[string]any, []apierr.FieldError) {
	object, ok := input.(map[string]any)
	if !ok {
		field := prefix
		if field == "" {
			field = "unknown"
		}
		return nil, []apierr.FieldError{{Field: field, Message: "Must be an object"}}
	}
	out := make(map[string]any, len(o.fields))
	var details []apierr.FieldError
	for _, f := range o.fields {
		path := joinPath(prefix, f.Name)
		raw, present := object[f.Name]
		if !present || raw == nil {
			if f.Required {
				details = append(details, apierr.FieldError{Field: path, Message: "Required field is missing"})
			}
			continue
		}
		if f.Object != nil {
			nested, nestedDetails := f.Object.validate(path, raw)
			if len(nestedDetails) > 0 {
				details = append(details, nestedDetails...)
				continue
			}
			out[f.Name] = nested
			continue
		}
		value, fieldErr := f.Coerce(path, raw)
		if fieldErr != nil {
			details = append(details, *fieldErr)
			continue
		}
		out[f.Name] = value
	}
	return out, details
}

// ValidateQuery validates URL query parameters. Only the first value of each
// parameter is considered.
func (o Object) ValidateQuery(values url.Values) (map[string]any, []apierr.FieldError) {
	input := make(map[string]any, len(values))
	for key := range values {
		input[key] = values.Get(key)
	}
	return o.Validate(input)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func fail(path, message string) (any, *apierr.FieldError) {
	return nil, &apierr.FieldError{Field: path, Message: message}
}

// String requires a string value, trims it and enforces length bounds on the
// trimmed form.
func String(min, max int) Coercer {
	return func(path string, raw any) (any, *apierr.FieldError) {
		s, ok := raw.(string)
		if !ok {
			return fail(path, "Must be a string")
		}
		s = strings.TrimSpace(s)
		if len(s) < min {
			return fail(path, fmt.Sprintf("Must be at least %d characters", min))
		}
		if len(s) > max {
			return fail(path, fmt.Sprintf("Must be at most %d characters", max))
		}
		return s, nil
	}
}

// Enum requires a string from a fixed set.
func Enum(values ...string) Coercer {
	return func(path string, raw any) (any, *apierr.FieldError) {
		s, ok := raw.(string)
		if !ok {
			return fail(path, "Must be a string")
		}
		s = strings.TrimSpace(s)
		for _, v := range values {
			if s == v {
				return s, nil
			}
		}
		return fail(path, "Must be one of: "+strings.Join(values, ", "))
	}
}

// Int accepts a JSON number or a query-string digit sequence, requires
// integer-ness and enforces the inclusive range.
func Int(min, max int) Coercer {
	return func(path string, raw any) (any, *apierr.FieldError) {
		value, ok := toInt(raw)
		if !ok {
			return fail(path, "Must be an integer")
		}
		if value < min || value > max {
			return fail(path, fmt.Sprintf("Must be an integer between %d and %d", min, max))
		}
		return value, nil
	}
}

// ID requires a positive integer identifier.
func ID() Coercer {
	return func(path string, raw any) (any, *apierr.FieldError) {
		value, ok := toInt(raw)
		if !ok || value <= 0 {
			return fail(path, "Must be a positive integer")
		}
		return value, nil
	}
}

// Bool accepts only the literals "true" and "false" (or a JSON boolean).
// Anything else is a validation failure, never a default.
func Bool() Coercer {
	return func(path string, raw any) (any, *apierr.FieldError) {
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			if v == "true" {
				return true, nil
			}
			if v == "false" {
				return false, nil
			}
		}
		return fail(path, "Must be 'true' or 'false'")
	}
}

// Amount requires a positive decimal with at most two fractional digits.
func Amount() Coercer {
	return func(path string, raw any) (any, *apierr.FieldError) {
		var parsed decimal.Decimal
		var err error
		switch v := raw.(type) {
		case json.Number:
			parsed, err = decimal.NewFromString(v.String())
		case string:
			parsed, err = decimal.NewFromString(strings.TrimSpace(v))
		default:
			return fail(path, "Must be a number")
		}
		if err != nil {
			return fail(path, "Must be a number")
		}
		if parsed.LessThanOrEqual(decimal.Zero) {
			return fail(path, "Must be a positive amount")
		}
		if parsed.Exponent() < -2 {
			return fail(path, "Must have at most two decimal places")
		}
		return parsed, nil
	}
}

// DateTime requires an RFC 3339 timestamp.
func DateTime() Coercer {
	return func(path string, raw any) (any, *apierr.FieldError) {
		s, ok := raw.(string)
		if !ok {
			return fail(path, "Must be a date-time string")
		}
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
		if err != nil {
			return fail(path, "Must be a valid RFC 3339 date-time")
		}
		return parsed, nil
	}
}

func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case json.Number:
		parsed, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
