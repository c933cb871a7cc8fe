package primitive

import (
	"reflect"
	"time"
)

//go:generate go tool stringer -type=KindEnum -linecomment -output=kind_string.go

// KindEnum names a scalar attribute type.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindString   // string
	KindInteger  // integer
	KindFloat    // float
	KindBoolean  // boolean
	KindTime     // time
	KindDate     // date
	KindDuration // duration
	KindRaw      // raw
	KindAny      // any

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// DateLayout is the textual layout of KindDate values.
const DateLayout = time.DateOnly

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInteger, KindFloat:
		return true
	}
}

func (k KindEnum) IsInteger() bool {
	return k == KindInteger
}

func (k KindEnum) IsFloat() bool {
	return k == KindFloat
}

// IsTemporal reports kinds carried as time.Time or time.Duration.
func (k KindEnum) IsTemporal() bool {
	switch k {
	default:
		return false
	case KindTime, KindDate, KindDuration:
		return true
	}
}

// IsTextual reports kinds whose cast result is a Go string.
func (k KindEnum) IsTextual() bool {
	switch k {
	default:
		return false
	case KindString, KindRaw:
		return true
	}
}

// FromReflectType classifies a Go type into the kind its values cast to
// without loss. Returns 0 for types that have no scalar kind (slices, maps,
// structs other than time.Time).
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	switch rtype {
	case reflect.TypeOf(time.Time{}):
		return KindTime
	case reflect.TypeOf(time.Duration(0)):
		return KindDuration
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBoolean
	case reflect.String:
		return KindString
	}
}
