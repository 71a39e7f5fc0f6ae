package schema

import (
	"testing"
)

func TestTypes(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		value   any
		wantErr bool
	}{
		{"string", String(), "hello", false},
		{"string rejects int", String(), 42, true},
		{"int", Int(), 42, false},
		{"int accepts whole float", Int(), float64(42), false},
		{"int rejects fraction", Int(), 42.5, true},
		{"int rejects string", Int(), "42", true},
		{"bool", Bool(), true, false},
		{"bool rejects nil", Bool(), nil, true},
		{"size int", Size(), 100, false},
		{"size percent", Size(), "50%", false},
		{"size negative", Size(), -1, true},
		{"size word", Size(), "wide", true},
		{"color hex", Color(), "#ff0000", false},
		{"color list", Color(), []any{1, 2, 3}, false},
		{"color short list", Color(), []any{1, 2}, true},
		{"kind", Kind(), "Button", false},
		{"kind unknown", Kind(), "Sprite", true},
		{"list", List(String()), []any{"a", "b"}, false},
		{"list bad element", List(String()), []any{"a", 1}, true},
		{"list not a list", List(String()), "a", true},
		{"range inside", Range(Int(), 0, 255), 128, false},
		{"range above", Range(Int(), 0, 255), 300, true},
		{"range wrong base", Range(Int(), 0, 255), "x", true},
		{"enum", Enum("fade", "slide"), "fade", false},
		{"enum other", Enum("fade", "slide"), "zoom", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.Validate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("%s.Validate(%v) error = %v, wantErr %v", tt.typ.Name(), tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestTypeNames(t *testing.T) {
	if got := List(Int()).Name(); got != "[int]" {
		t.Errorf("List(Int()).Name() = %q", got)
	}
	if got := Range(Int(), 0, 9).Name(); got != "int[0..9]" {
		t.Errorf("Range name = %q", got)
	}
	custom := Custom("even", func(v any) error { return nil })
	if custom.Name() != "even" {
		t.Errorf("Custom name = %q", custom.Name())
	}
}
