package params

import (
	"reflect"
	"strings"
	"unicode"
)

// Valuer is implemented by option types that hold either a plain tag or a structured
// configuration. GDSValue returns the wire value, or nil when the option is unset.
type Valuer interface {
	GDSValue() any
}

// ToGDSConfig turns named arguments into the configuration map expected by the engine.
// Unset values (nil, nil pointers, nil slices and maps, unset Valuers) are dropped,
// pointers are dereferenced and snake_case names become camelCase. Order is preserved.
func ToGDSConfig(args ...Arg) *Map {
	cfg := &Map{}
	for _, arg := range args {
		v, ok := resolve(arg.Value)
		if !ok {
			continue
		}
		cfg.Set(ToCamelCase(arg.Name), v)
	}
	return cfg
}

func resolve(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(*Map); ok {
		return m, m != nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	if valuer, ok := v.(Valuer); ok {
		return resolve(valuer.GDSValue())
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return resolve(rv.Elem().Interface())
	case reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return nil, false
		}
	}
	return v, true
}

// ToCamelCase converts snake_case to camelCase. Names without underscores are
// returned unchanged.
func ToCamelCase(name string) string {
	if !strings.Contains(name, "_") {
		return name
	}
	parts := strings.Split(name, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// ToSnakeCase converts camelCase to snake_case.
func ToSnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
