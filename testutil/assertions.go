// Package testutil provides shared test assertions for docbind packages.
package testutil

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/arthur-debert/docbind/docbind"
	"github.com/arthur-debert/docbind/types"
)

// AssertRecordCount checks that the slice contains the expected number of records.
func AssertRecordCount(t *testing.T, recs []types.Record, expected int, context ...string) {
	t.Helper()
	if len(recs) != expected {
		ctx := ""
		if len(context) > 0 {
			ctx = " " + context[0]
		}
		t.Errorf("expected %d records%s, got %d", expected, ctx, len(recs))
	}
}

// AssertRecordExists verifies that a record with the given UUID is in the slice.
func AssertRecordExists(t *testing.T, recs []types.Record, uuid string) {
	t.Helper()
	for _, rec := range recs {
		if rec.UUID == uuid {
			return
		}
	}
	t.Errorf("record %s not found in results", uuid)
}

// AssertRecordNotExists verifies that a record with the given UUID is not in the slice.
func AssertRecordNotExists(t *testing.T, recs []types.Record, uuid string) {
	t.Helper()
	for _, rec := range recs {
		if rec.UUID == uuid {
			t.Errorf("record %s should not be in results", uuid)
			return
		}
	}
}

// AssertDocumentEqual fails when the two values are not structurally equal.
func AssertDocumentEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("documents differ:\n  got:  %#v\n  want: %#v", got, want)
	}
}

// AssertNoTypeKeys walks the value tree and fails if any document node
// still contains a key the mapper flags as a type key.
func AssertNoTypeKeys(t *testing.T, value interface{}, mapper docbind.TypeMapper) {
	t.Helper()
	assertNoTypeKeys(t, value, mapper, "$")
}

func assertNoTypeKeys(t *testing.T, value interface{}, mapper docbind.TypeMapper, path string) {
	t.Helper()
	switch typed := value.(type) {
	case types.Document:
		for key, nested := range typed {
			if mapper.IsTypeKey(key) {
				t.Errorf("type key %q still present at %s", key, path)
			}
			assertNoTypeKeys(t, nested, mapper, path+"."+key)
		}
	case types.List:
		for i, element := range typed {
			assertNoTypeKeys(t, element, mapper, fmt.Sprintf("%s[%d]", path, i))
		}
	}
}
