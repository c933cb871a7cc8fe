package document

import (
	"fmt"
	"reflect"
	"slices"
	"time"
)

// FromValue converts a plain Go value (maps with string keys, slices,
// scalars) into a key-value tree. Map keys are sorted since Go maps carry no
// order.
func FromValue(v any) *Node {
	switch val := v.(type) {
	case nil:
		return NewNull()
	case *Node:
		return val
	case string, bool, int64, float64:
		return NewScalar(val)
	case time.Time:
		return NewScalar(val.Format(time.RFC3339Nano))
	case time.Duration:
		return NewScalar(val.String())
	case map[string]any:
		out := NewMapping()

		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		for _, k := range keys {
			out.Set(k, FromValue(val[k]))
		}

		return out
	case []any:
		out := NewSequence()
		for _, item := range val {
			out.Append(FromValue(item))
		}

		return out
	}

	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) *Node {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return NewNull()
		}

		return FromValue(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewScalar(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewScalar(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return NewScalar(rv.Float())
	case reflect.String:
		return NewScalar(rv.String())
	case reflect.Bool:
		return NewScalar(rv.Bool())
	case reflect.Slice, reflect.Array:
		out := NewSequence()
		for i := range rv.Len() {
			out.Append(FromValue(rv.Index(i).Interface()))
		}

		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}

		m := make(map[string]any, rv.Len())
		for iter := rv.MapRange(); iter.Next(); {
			m[iter.Key().String()] = iter.Value().Interface()
		}

		return FromValue(m)
	}

	return NewScalar(fmt.Sprint(rv.Interface()))
}

// Interface converts a key-value tree back to plain Go values: mappings to
// map[string]any, sequences to []any, scalars to their value, null to nil.
// Markup nodes yield their text content.
func (n *Node) Interface() any {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case KindMapping:
		out := make(map[string]any, len(n.Children))
		for _, c := range n.Children {
			out[c.Name] = c.Interface()
		}

		return out
	case KindSequence:
		out := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			out = append(out, c.Interface())
		}

		return out
	case KindScalar:
		return n.Value
	case KindNull:
		return nil
	default:
		return n.TextContent()
	}
}
