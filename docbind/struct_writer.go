package docbind

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/arthur-debert/docbind/types"
)

// StructWriter converts Go values into Document/List trees by reflection.
// Every document produced from a named struct type carries a
// type-discriminator key (the mapper's key, value = the Go type string) so
// the store can reconstruct the original type on read-back.
//
// StructWriter implements TypeMapperProvider; route its output through a
// converting accessor before using it as a query parameter.
type StructWriter struct {
	mapper *KeyTypeMapper
}

// NewStructWriter creates a writer recording type information under
// DefaultTypeKey.
func NewStructWriter() *StructWriter {
	return NewStructWriterWithKey(DefaultTypeKey)
}

// NewStructWriterWithKey creates a writer recording type information under
// the given key. An empty key falls back to DefaultTypeKey.
func NewStructWriterWithKey(key string) *StructWriter {
	return &StructWriter{mapper: NewKeyTypeMapper(key)}
}

// TypeMapper implements TypeMapperProvider.
func (w *StructWriter) TypeMapper() TypeMapper {
	return w.mapper
}

// ConvertValue implements Writer.
func (w *StructWriter) ConvertValue(value interface{}) (interface{}, error) {
	return convertReflect(reflect.ValueOf(value), w.mapper.Key())
}

// PlainWriter converts values exactly like StructWriter but embeds no type
// information and exposes no TypeMapperProvider capability.
type PlainWriter struct{}

// NewPlainWriter creates a writer without type-mapping support.
func NewPlainWriter() *PlainWriter {
	return &PlainWriter{}
}

// ConvertValue implements Writer.
func (w *PlainWriter) ConvertValue(value interface{}) (interface{}, error) {
	return convertReflect(reflect.ValueOf(value), "")
}

var timeType = reflect.TypeOf(time.Time{})

// convertReflect builds the native representation of v. When typeKey is
// non-empty, documents produced from named struct types record the Go type
// string under that key.
func convertReflect(v reflect.Value, typeKey string) (interface{}, error) {
	if !v.IsValid() {
		return nil, nil
	}

	// Unwrap interfaces and pointers; nil converts to nil.
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}

	if v.Type() == timeType {
		return v.Interface(), nil
	}

	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.String:
		return v.String(), nil
	case reflect.Slice, reflect.Array:
		return convertList(v, typeKey)
	case reflect.Map:
		return convertMap(v, typeKey)
	case reflect.Struct:
		return convertStruct(v, typeKey)
	default:
		return nil, fmt.Errorf("cannot convert value of kind %s", v.Kind())
	}
}

func convertList(v reflect.Value, typeKey string) (interface{}, error) {
	// Byte slices are an opaque scalar, not a list.
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		return v.Interface(), nil
	}

	list := make(types.List, v.Len())
	for i := 0; i < v.Len(); i++ {
		converted, err := convertReflect(v.Index(i), typeKey)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		list[i] = converted
	}
	return list, nil
}

func convertMap(v reflect.Value, typeKey string) (interface{}, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("cannot convert map with %s keys, only string keys are supported", v.Type().Key())
	}

	doc := make(types.Document, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		converted, err := convertReflect(iter.Value(), typeKey)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", iter.Key().String(), err)
		}
		doc[iter.Key().String()] = converted
	}
	return doc, nil
}

func convertStruct(v reflect.Value, typeKey string) (interface{}, error) {
	typ := v.Type()
	doc := make(types.Document, typ.NumField()+1)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Tag.Get("doc")
		if name == "-" {
			continue
		}
		if name == "" {
			name = toSnakeCase(field.Name)
		}

		converted, err := convertReflect(v.Field(i), typeKey)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		doc[name] = converted
	}

	// Anonymous struct types have no stable name worth recording.
	if typeKey != "" && typ.Name() != "" {
		doc[typeKey] = typ.String()
	}

	return doc, nil
}

// toSnakeCase converts a CamelCase field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	result.Grow(len(s) + 10)

	for i, r := range s {
		if i > 0 && isUpper(r) {
			prevIsLower := isLower(rune(s[i-1]))
			nextIsLower := i+1 < len(s) && isLower(rune(s[i+1]))

			if prevIsLower || nextIsLower {
				result.WriteRune('_')
			}
		}
		result.WriteRune(toLower(r))
	}

	return result.String()
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func toLower(r rune) rune {
	if isUpper(r) {
		return r + ('a' - 'A')
	}
	return r
}
