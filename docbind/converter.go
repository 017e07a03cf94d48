package docbind

import (
	"github.com/arthur-debert/docbind/types"
)

// Convert converts value with the given writer and, when the writer
// provides a type mapper, strips type-discriminator keys from the result.
//
// Writers without the TypeMapperProvider capability, and providers that
// return a nil mapper, degrade to plain conversion. That is a policy
// branch, not an error: the result is simply the writer's output.
func Convert(writer Writer, value interface{}) (interface{}, error) {
	converted, err := writer.ConvertValue(value)
	if err != nil {
		return nil, err
	}

	provider, ok := writer.(TypeMapperProvider)
	if !ok {
		return converted, nil
	}

	return StripTypeInfo(converted, provider.TypeMapper()), nil
}

// StripTypeInfo removes type-discriminator keys from node, recursing
// through nested documents and lists. List nodes are walked element by
// element, including a list at the top level. Scalar nodes and a nil
// mapper pass through untouched.
//
// The walk mutates documents in place; node must be a freshly converted
// structure, never one aliased to caller-visible state. Each document is
// visited in a single pass and at most one type key is removed per
// document: when several keys at the same level match the mapper, only the
// last one encountered during enumeration is removed.
func StripTypeInfo(node interface{}, mapper TypeMapper) interface{} {
	if mapper == nil {
		return node
	}

	if list, ok := node.(types.List); ok {
		for _, element := range list {
			StripTypeInfo(element, mapper)
		}
		return list
	}

	doc, ok := node.(types.Document)
	if !ok {
		return node
	}

	var keyToRemove string
	found := false
	for key, value := range doc {
		if mapper.IsTypeKey(key) {
			keyToRemove = key
			found = true
		}

		if list, ok := value.(types.List); ok {
			for _, element := range list {
				StripTypeInfo(element, mapper)
			}
		} else {
			StripTypeInfo(value, mapper)
		}
	}

	if found {
		delete(doc, keyToRemove)
	}

	return doc
}
