package schema

import (
	"sort"

	"github.com/aretw0/tableau/pkg/domain"
)

// Schema is a map of description keys to their expected types.
type Schema map[string]Type

// Validate checks the keys of data that the schema knows about. Keys listed
// in required must be present; every other key is optional. Unknown keys are
// not reported.
func Validate(schema Schema, data domain.Description, required ...string) error {
	return ValidateAt("", schema, data, required...)
}

// ValidateAt is Validate with every failure reported under path.
func ValidateAt(path string, schema Schema, data domain.Description, required ...string) error {
	var errs []error

	for _, key := range required {
		if _, ok := data[key]; !ok {
			errs = append(errs, &ValidationError{Path: path, Key: key, Reason: "required"})
		}
	}

	keys := make([]string, 0, len(schema))
	for key := range schema {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value, ok := data[key]
		if !ok {
			continue
		}
		if err := schema[key].Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Path:   path,
				Key:    key,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Merge returns a schema holding the keys of every argument. Later schemas
// win on conflicts.
func Merge(schemas ...Schema) Schema {
	out := make(Schema)
	for _, s := range schemas {
		for k, t := range s {
			out[k] = t
		}
	}
	return out
}
