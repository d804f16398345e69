// Package result adapts rows returned by the engine into typed result values.
package result

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const tagName = "mapstructure"

// ErrMissingField indicates a row lacks a field required by the target result type.
var ErrMissingField = errors.New("result row is missing required fields")

// Decode converts a row into T. Field names are taken from mapstructure tags; fields
// tagged omitempty are optional, every other field must be present in the row.
func Decode[T any](row map[string]any) (T, error) {
	var out T
	if missing := missingFields(reflect.TypeOf(out), row); len(missing) > 0 {
		return out, fmt.Errorf("%w: %T needs %s", ErrMissingField, out, strings.Join(missing, ", "))
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          tagName,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return out, fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(row); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}

// Merge combines rows left to right; later rows win on key collisions.
func Merge(rows ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, row := range rows {
		for k, v := range row {
			out[k] = v
		}
	}
	return out
}

func missingFields(t reflect.Type, row map[string]any) []string {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var missing []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get(tagName), ",")
		if name == "-" {
			continue
		}
		if strings.Contains(opts, "squash") {
			missing = append(missing, missingFields(f.Type, row)...)
			continue
		}
		if strings.Contains(opts, "omitempty") {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if _, ok := row[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// ToMap flattens a result value back into a row keyed by its mapstructure tags.
func ToMap(v any) (map[string]any, error) {
	out := map[string]any{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: tagName,
	})
	if err != nil {
		return nil, fmt.Errorf("build encoder: %w", err)
	}
	if err := dec.Decode(v); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return out, nil
}
