package docbind

// Writer converts arbitrary Go values into the store's native
// representation (types.Document, types.List, or scalars).
type Writer interface {
	// ConvertValue converts the given value. The returned structure is
	// freshly built and never aliases the input.
	ConvertValue(value interface{}) (interface{}, error)
}

// TypeMapper decides whether a document key carries type-discriminator
// metadata.
type TypeMapper interface {
	IsTypeKey(key string) bool
}

// TypeMapperProvider is an optional capability of a Writer. Writers that
// embed type information into converted documents implement it so callers
// can strip that information back out.
//
// Detection happens via interface upgrade:
//
//	if provider, ok := writer.(TypeMapperProvider); ok { ... }
//
// Writers without the capability simply don't implement it; stripping is
// silently skipped for them.
type TypeMapperProvider interface {
	TypeMapper() TypeMapper
}

// DefaultTypeKey is the reserved document key used for type-discriminator
// metadata when no custom key is configured.
const DefaultTypeKey = "_type"

// KeyTypeMapper recognizes a single reserved key as the type key.
type KeyTypeMapper struct {
	key string
}

// NewKeyTypeMapper creates a mapper for the given reserved key.
// An empty key falls back to DefaultTypeKey.
func NewKeyTypeMapper(key string) *KeyTypeMapper {
	if key == "" {
		key = DefaultTypeKey
	}
	return &KeyTypeMapper{key: key}
}

// IsTypeKey implements TypeMapper.
func (m *KeyTypeMapper) IsTypeKey(key string) bool {
	return key == m.key
}

// Key returns the reserved key this mapper recognizes.
func (m *KeyTypeMapper) Key() string {
	return m.key
}
