package schemafile

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"model-mapper/internal/common"
)

// File is a parsed declaration file.
type File struct {
	// Register names the register the models are declared in. Empty means
	// the default register.
	Register string      `yaml:"register,omitempty"`
	Models   []ModelDecl `yaml:"models"`
}

// ModelDecl declares one model.
type ModelDecl struct {
	Name       string                 `yaml:"name"`
	Extends    string                 `yaml:"extends,omitempty"`
	Namespace  *NamespaceDecl         `yaml:"namespace,omitempty"`
	Attributes []AttributeDecl        `yaml:"attributes,omitempty"`
	Choices    []ChoiceDecl           `yaml:"choices,omitempty"`
	Mappings   map[string]RuleSetDecl `yaml:"mappings,omitempty"`
}

// NamespaceDecl is an XML namespace. An empty URI removes an inherited one.
type NamespaceDecl struct {
	URI    string `yaml:"uri"`
	Prefix string `yaml:"prefix,omitempty"`
}

// AttributeDecl declares one attribute.
type AttributeDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	// Cardinality is "one" or "optional" (the default) for scalars.
	Cardinality string `yaml:"cardinality,omitempty"`
	// Collection holds [min, max]; a negative max is unbounded.
	Collection      []int `yaml:"collection,omitempty"`
	InitializeEmpty bool  `yaml:"initialize_empty,omitempty"`
	Default         any   `yaml:"default,omitempty"`
	Values          []any `yaml:"values,omitempty"`
	// Strict disables lenient casts (numbers from text, textual booleans).
	Strict bool `yaml:"strict,omitempty"`
}

// ChoiceDecl declares a choice group. A missing max is unbounded.
type ChoiceDecl struct {
	Min        int          `yaml:"min"`
	Max        *int         `yaml:"max,omitempty"`
	Attributes StringArray  `yaml:"attributes,omitempty"`
	Choices    []ChoiceDecl `yaml:"choices,omitempty"`
}

// RuleSetDecl declares the mapping of one format.
type RuleSetDecl struct {
	Root      string         `yaml:"root,omitempty"`
	Namespace *NamespaceDecl `yaml:"namespace,omitempty"`
	Ordered   bool           `yaml:"ordered,omitempty"`
	Mixed     bool           `yaml:"mixed,omitempty"`

	Elements   []RuleDecl `yaml:"elements,omitempty"`
	Attributes []RuleDecl `yaml:"attributes,omitempty"`
	Content    string     `yaml:"content,omitempty"`
	Map        []RuleDecl `yaml:"map,omitempty"`
	Raw        []RuleDecl `yaml:"raw,omitempty"`
	Whole      string     `yaml:"whole,omitempty"`
}

// RuleDecl declares one rule. Name lists the candidate names; the first one
// is written. A raw rule without a name takes the remainder.
type RuleDecl struct {
	Name          StringArray        `yaml:"name,omitempty"`
	To            string             `yaml:"to"`
	Delegate      string             `yaml:"delegate,omitempty"`
	RenderNil     string             `yaml:"render_nil,omitempty"`
	RenderEmpty   string             `yaml:"render_empty,omitempty"`
	RenderDefault bool               `yaml:"render_default,omitempty"`
	Namespace     *NamespaceDecl     `yaml:"namespace,omitempty"`
	Transform     string             `yaml:"transform,omitempty"`
	ChildMappings []ChildMappingDecl `yaml:"child_mappings,omitempty"`
}

// ChildMappingDecl maps a dotted path (or $key, $value) of each entry to an
// attribute of the nested model.
type ChildMappingDecl struct {
	Attr string `yaml:"attr"`
	Path string `yaml:"path"`
}

// StringArray is a string slice that can be unmarshaled from a single string
// or a list.
type StringArray []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringArray{str}
		} else {
			*s = StringArray{}
		}

		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil
	default:
		return fmt.Errorf("%w, got %v at line %d", errStringArray, node.Kind, node.Line)
	}
}

var errStringArray = errors.New("expected string or list of strings")

// MarshalYAML writes a single name as a plain string.
func (s StringArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}
