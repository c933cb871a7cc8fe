package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"model-mapper/internal/match"
	"model-mapper/options"
)

var (
	ErrInvalidCast = errors.New("invalid cast")
	ErrUnknownType = errors.New("unknown type")
)

// CastError reports a value that cannot be coerced to a kind. Value holds the
// stringified offending input.
type CastError struct {
	Kind  KindEnum
	Value string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cannot cast `%s` to %s", e.Value, e.Kind)
}

func (e *CastError) Unwrap() error {
	return ErrInvalidCast
}

var (
	truthy = map[string]struct{}{"true": {}, "t": {}, "yes": {}, "y": {}, "1": {}}
	falsy  = map[string]struct{}{"false": {}, "f": {}, "no": {}, "n": {}, "0": {}}
)

var kindAliases = map[string]KindEnum{
	"string":    KindString,
	"str":       KindString,
	"text":      KindString,
	"integer":   KindInteger,
	"int":       KindInteger,
	"int64":     KindInteger,
	"long":      KindInteger,
	"float":     KindFloat,
	"float64":   KindFloat,
	"double":    KindFloat,
	"decimal":   KindFloat,
	"number":    KindFloat,
	"boolean":   KindBoolean,
	"bool":      KindBoolean,
	"time":      KindTime,
	"datetime":  KindTime,
	"timestamp": KindTime,
	"date":      KindDate,
	"duration":  KindDuration,
	"raw":       KindRaw,
	"any":       KindAny,
	"hash":      KindAny,
}

// ParseKind resolves a type name (case and separator insensitive) to a kind.
func ParseKind(name string) (KindEnum, error) {
	if k, ok := kindAliases[match.NormalizeIdent(name)]; ok {
		return k, nil
	}

	return 0, fmt.Errorf("%w: `%s`", ErrUnknownType, name)
}

// Cast coerces v to kind using the default cast categories.
func Cast(kind KindEnum, v any) (any, error) {
	return CastWith(kind, v, options.CategoryDefault)
}

// CastWith coerces v to kind, applying only the lenient conversions enabled in
// allowed. A nil input always casts to nil.
//
// Result types: KindString and KindRaw give string, KindInteger int64,
// KindFloat float64, KindBoolean bool, KindTime and KindDate time.Time,
// KindDuration time.Duration, KindAny the input unchanged.
func CastWith(kind KindEnum, v any, allowed options.CategoryEnum) (any, error) {
	v = deref(v)
	if v == nil {
		return nil, nil
	}

	switch kind {
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, kind)
	case KindAny:
		return v, nil
	case KindString, KindRaw:
		return castString(kind, v, allowed)
	case KindInteger:
		return castInteger(v, allowed)
	case KindFloat:
		return castFloat(v, allowed)
	case KindBoolean:
		return castBoolean(v, allowed)
	case KindTime:
		return castTime(KindTime, v, allowed)
	case KindDate:
		t, err := castTime(KindDate, v, allowed)
		if err != nil {
			return nil, err
		}

		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
	case KindDuration:
		return castDuration(v, allowed)
	}
}

// Format renders an already cast value as text, the way text-based formats
// (markup content, attributes) carry it.
func Format(kind KindEnum, v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		if kind == KindDate {
			return val.Format(DateLayout)
		}

		return val.Format(time.RFC3339Nano)
	case time.Duration:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func invalid(kind KindEnum, v any) error {
	return &CastError{Kind: kind, Value: fmt.Sprint(v)}
}

func deref(v any) any {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}

	if rv.IsNil() {
		return nil
	}

	// Pointers to scalars are read through; other pointers (URLs, paths)
	// stay intact so their String method remains reachable.
	if FromReflectType(rv.Type().Elem()) == 0 {
		return v
	}

	return deref(rv.Elem().Interface())
}

func castString(kind KindEnum, v any, allowed options.CategoryEnum) (any, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	case time.Time:
		if allowed.Has(options.CategoryDatetime) {
			return val.Format(time.RFC3339Nano), nil
		}
	case fmt.Stringer:
		if allowed.Has(options.CategoryStringer) {
			return val.String(), nil
		}
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.String:
		return rv.String(), nil
	case FromReflectType(rv.Type()) != 0 && allowed.Has(options.CategoryNumberText):
		return fmt.Sprint(v), nil
	}

	return nil, invalid(kind, v)
}

func castInteger(v any, allowed options.CategoryEnum) (any, error) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, invalid(KindInteger, v)
		}

		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return integral(rv.Float(), v)
	case reflect.String:
		if !allowed.Has(options.CategoryTextNumber) {
			break
		}

		s := strings.TrimSpace(rv.String())
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}

		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return integral(f, v)
		}
	}

	return nil, invalid(KindInteger, v)
}

func integral(f float64, orig any) (any, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return nil, invalid(KindInteger, orig)
	}

	return int64(f), nil
}

func castFloat(v any, allowed options.CategoryEnum) (any, error) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.String:
		if !allowed.Has(options.CategoryTextNumber) {
			break
		}

		if f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64); err == nil {
			return f, nil
		}
	}

	return nil, invalid(KindFloat, v)
}

func castBoolean(v any, allowed options.CategoryEnum) (any, error) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		if !allowed.Has(options.CategoryTextualBool) {
			break
		}

		token := strings.ToLower(strings.TrimSpace(rv.String()))
		if _, ok := truthy[token]; ok {
			return true, nil
		}

		if _, ok := falsy[token]; ok {
			return false, nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !allowed.Has(options.CategoryNumericBool) {
			break
		}

		switch rv.Int() {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	}

	return nil, invalid(KindBoolean, v)
}

func castTime(kind KindEnum, v any, allowed options.CategoryEnum) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		if !allowed.Has(options.CategoryDatetime) {
			break
		}

		s := strings.TrimSpace(val)
		for _, layout := range []string{time.RFC3339Nano, DateLayout, "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}

	return time.Time{}, invalid(kind, v)
}

func castDuration(v any, allowed options.CategoryEnum) (any, error) {
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		if !allowed.Has(options.CategoryDuration) {
			break
		}

		if d, err := time.ParseDuration(strings.TrimSpace(val)); err == nil {
			return d, nil
		}
	}

	return nil, invalid(KindDuration, v)
}
