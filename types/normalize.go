package types

// Normalize rewrites a value tree decoded from JSON into the native
// Document/List representation: map[string]interface{} nodes become
// Documents and []interface{} nodes become Lists, recursively. Values
// already in native form pass through.
func Normalize(value interface{}) interface{} {
	switch typed := value.(type) {
	case Document:
		for k, v := range typed {
			typed[k] = Normalize(v)
		}
		return typed
	case map[string]interface{}:
		doc := make(Document, len(typed))
		for k, v := range typed {
			doc[k] = Normalize(v)
		}
		return doc
	case List:
		for i, v := range typed {
			typed[i] = Normalize(v)
		}
		return typed
	case []interface{}:
		list := make(List, len(typed))
		for i, v := range typed {
			list[i] = Normalize(v)
		}
		return list
	default:
		return value
	}
}
