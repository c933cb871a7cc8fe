package model

import (
	"fmt"

	"model-mapper/internal/match"
	"model-mapper/primitive"
	"model-mapper/registry"
)

// Type is the semantic type of an attribute: a scalar kind or a nested
// model.
type Type struct {
	kind  primitive.KindEnum
	model *Model
}

// Scalar returns the type of a scalar kind.
func Scalar(kind primitive.KindEnum) Type {
	return Type{kind: kind}
}

// Nested returns the type of a nested model.
func Nested(m *Model) Type {
	return Type{model: m}
}

// Kind returns the scalar kind, 0 for nested models.
func (t Type) Kind() primitive.KindEnum { return t.kind }

// Model returns the nested model, nil for scalars.
func (t Type) Model() *Model { return t.model }

// IsModel reports a nested model type.
func (t Type) IsModel() bool { return t.model != nil }

// IsValid reports a usable type.
func (t Type) IsValid() bool {
	return t.model != nil || t.kind.IsValid()
}

func (t Type) String() string {
	if t.model != nil {
		return t.model.Name()
	}

	return t.kind.String()
}

// TypeOf resolves a type name: scalar kinds first, then models registered
// in reg. Unknown names fail with registry.ErrUnknownType.
func TypeOf(reg *registry.Register, name string) (Type, error) {
	if kind, err := primitive.ParseKind(name); err == nil {
		return Scalar(kind), nil
	}

	candidates := make([]string, 0, primitive.KindTotal)
	for k := primitive.KindEnum(1); int(k) < primitive.KindTotal; k++ {
		candidates = append(candidates, k.String())
	}

	if reg != nil {
		if m, err := registry.Get[*Model](reg, name); err == nil {
			return Nested(m), nil
		}

		candidates = append(candidates, reg.List()...)
	}

	key := registry.Key(name)

	return Type{}, fmt.Errorf("%w `%s`%s", registry.ErrUnknownType, key, match.Hint(key, candidates))
}

// typeFrom accepts a Type, a primitive.KindEnum, a *Model or a type name.
func typeFrom(reg *registry.Register, typ any) (Type, error) {
	var t Type

	switch v := typ.(type) {
	case Type:
		t = v
	case primitive.KindEnum:
		t = Scalar(v)
	case *Model:
		t = Nested(v)
	case string:
		return TypeOf(reg, v)
	default:
		return Type{}, fmt.Errorf("%w `%v`", registry.ErrUnknownType, typ)
	}

	if !t.IsValid() {
		return Type{}, fmt.Errorf("%w `%s`", registry.ErrUnknownType, t)
	}

	return t, nil
}
