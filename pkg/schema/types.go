package schema

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/aretw0/tableau/pkg/domain"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "size").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values. Whole floats are accepted since JSON
// decoding produces float64.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// SizeType validates a width or height: a non-negative int or "N%".
type SizeType struct{}

func (t *SizeType) Name() string { return "size" }

func (t *SizeType) Validate(value any) error {
	s, ok := domain.ParseSize(value)
	if !ok {
		return fmt.Errorf("expected int or percentage, got %T", value)
	}
	if s.Value < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// ColorType validates anything domain.ParseColor accepts.
type ColorType struct{}

func (t *ColorType) Name() string { return "color" }

func (t *ColorType) Validate(value any) error {
	_, err := domain.ParseColor(value)
	return err
}

// KindType validates an entity kind name.
type KindType struct{}

func (t *KindType) Name() string { return "kind" }

func (t *KindType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if !domain.Kind(s).Valid() {
		return fmt.Errorf("unknown kind %q", s)
	}
	return nil
}

// ListType validates lists of a specific element type.
type ListType struct {
	elemType Type
}

func (t *ListType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *ListType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected list, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elemType.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// RangeType bounds an integer type.
type RangeType struct {
	base     Type
	min, max int
}

func (t *RangeType) Name() string {
	return fmt.Sprintf("%s[%d..%d]", t.base.Name(), t.min, t.max)
}

func (t *RangeType) Validate(value any) error {
	if err := t.base.Validate(value); err != nil {
		return err
	}
	n, _ := domain.Description{"v": value}.Int("v")
	if n < t.min || n > t.max {
		return fmt.Errorf("out of range [%d, %d]", t.min, t.max)
	}
	return nil
}

// EnumType accepts one of a fixed set of strings.
type EnumType struct {
	values []string
}

func (t *EnumType) Name() string { return fmt.Sprintf("one of %v", t.values) }

func (t *EnumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if !slices.Contains(t.values, s) {
		return fmt.Errorf("expected one of %v", t.values)
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Size creates a width/height validator.
func Size() Type { return &SizeType{} }

// Color creates a colour validator.
func Color() Type { return &ColorType{} }

// Kind creates an entity kind validator.
func Kind() Type { return &KindType{} }

// List creates a list validator for elements of the given type.
func List(elemType Type) Type {
	return &ListType{elemType: elemType}
}

// Range bounds base to [min, max].
func Range(base Type, min, max int) Type {
	return &RangeType{base: base, min: min, max: max}
}

// Enum creates a validator for a fixed set of strings.
func Enum(values ...string) Type {
	return &EnumType{values: values}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}
