package query

import (
	"reflect"
	"testing"
)

func TestParseSort(t *testing.T) {
	cases := []struct {
		name    string
		sort    string
		allowed []string
		want    []string
	}{
		{"empty sort", "", []string{"a", "b"}, []string{}},
		{"ascending and descending", "a,-b", []string{"a", "b"}, []string{"a", "b DESC"}},
		{"disallowed field dropped", "name,-b,c", []string{"name", "c"}, []string{"name", "c"}},
		{"order preserved", "-c,a", []string{"a", "c"}, []string{"c DESC", "a"}},
		{"nothing allowed", "x,y", []string{"a"}, []string{}},
		{"descending only", "-name", []string{"name"}, []string{"name DESC"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := QuerySearch{Sort: tc.sort}
			if got := q.ParseSort(tc.allowed); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSortAsOrderByArgs(t *testing.T) {
	q := QuerySearch{}
	if got := q.SortAsOrderByArgs([]string{"a", "b"}, "a"); got != "a" {
		t.Fatalf("expected default %q, got %q", "a", got)
	}

	q = QuerySearch{Sort: "a,-b"}
	if got := q.SortAsOrderByArgs([]string{"a", "b"}, "a"); got != "a, b DESC" {
		t.Fatalf("expected %q, got %q", "a, b DESC", got)
	}

	// Only disallowed fields: the default is returned verbatim.
	q = QuerySearch{Sort: "name,-b,c"}
	if got := q.SortAsOrderByArgs([]string{"a", "h"}, "c"); got != "c" {
		t.Fatalf("expected default %q, got %q", "c", got)
	}
}
