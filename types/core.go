package types

import "time"

// Document is the store's native key/value representation of a converted
// value. Keys are field names; values are scalars, nested Documents, or
// Lists of either.
type Document map[string]interface{}

// List is the store's native representation of an ordered sequence.
// Elements may be scalars, Documents, or further Lists.
type List []interface{}

// Clone returns a deep copy of the document. Nested Documents and Lists
// are copied recursively; scalar values are shared.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	for i, v := range l {
		out[i] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch typed := v.(type) {
	case Document:
		return typed.Clone()
	case List:
		return typed.Clone()
	default:
		return v
	}
}

// Record is a stored document with its identity and timestamps.
type Record struct {
	UUID      string    `json:"uuid"`
	Fields    Document  `json:"fields"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderClause represents a single ordering term.
type OrderClause struct {
	Field      string
	Descending bool
}

// Sort is an ordered list of clauses applied left to right.
type Sort []OrderClause

// IsSorted reports whether any ordering was requested.
func (s Sort) IsSorted() bool {
	return len(s) > 0
}

// Pageable describes a result window.
// A nil *Pageable means no paging was requested.
type Pageable struct {
	// Offset is the number of results to skip.
	Offset int
	// Limit is the maximum number of results to return.
	// Zero or negative means no limit.
	Limit int
}

// Window applies the page to a result count and returns the [start, end)
// slice bounds, clamped to the available range.
func (p *Pageable) Window(total int) (int, int) {
	if p == nil {
		return 0, total
	}
	start := p.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if p.Limit > 0 && start+p.Limit < total {
		end = start + p.Limit
	}
	return start, end
}
