package ordered_test

import (
	"testing"

	"github.com/gx-org/halide-simplify/base/ordered"
)

type entry struct {
	k string
	v int
}

func TestMap(t *testing.T) {
	tests := []struct {
		entries []entry
		want    []entry
	}{
		{
			entries: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "c", v: 3},
			},
			want: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "c", v: 3},
			},
		},
		{
			entries: []entry{
				{k: "a", v: 1},
				{k: "b", v: 2},
				{k: "a", v: 3},
			},
			want: []entry{
				{k: "a", v: 3},
				{k: "b", v: 2},
			},
		},
		{
			entries: []entry{
				{k: "a", v: 1},
				{k: "a", v: 2},
				{k: "a", v: 3},
				{k: "a", v: 4},
			},
			want: []entry{
				{k: "a", v: 4},
			},
		},
	}
	for ti, test := range tests {
		m := ordered.NewMap[string, int]()
		for _, entry := range test.entries {
			m.Store(entry.k, entry.v)
		}
		if m.Size() != len(test.want) {
			t.Errorf("test %d: map has %d entries but want %d", ti, m.Size(), len(test.want))
			continue
		}

		// Clone the map before the tests.
		m = m.Clone()

		// Iterate from the key.
		i := 0
		m.Keys()(func(gotK string) bool {
			gotV, _ := m.Load(gotK)
			wantK, wantV := test.want[i].k, test.want[i].v
			if gotV != wantV {
				t.Errorf("test %d entry %d: got %s->%d but want %s->%d", ti, i, gotK, gotV, wantK, wantV)
			}
			i++
			return true
		})

		// Iterate over all the items.
		i = 0
		m.Iter()(func(gotK string, gotV int) bool {
			wantK, wantV := test.want[i].k, test.want[i].v
			if gotK != wantK || gotV != wantV {
				t.Errorf("test %d entry %d: got %s->%d but want %s->%d", ti, i, gotK, gotV, wantK, wantV)
			}
			i++
			return true
		})

		// Iterate over all the values.
		i = 0
		m.Values()(func(gotV int) bool {
			wantK, wantV := test.want[i].k, test.want[i].v
			if gotV != wantV {
				t.Errorf("test %d entry %d: got .->%d but want %s->%d", ti, i, gotV, wantK, wantV)
			}
			i++
			return true
		})
	}
}

func TestMapDelete(t *testing.T) {
	m := ordered.NewMap[string, int]()
	m.Store("a", 1)
	m.Store("b", 2)
	m.Store("c", 3)
	m.Delete("b")
	if m.Size() != 2 {
		t.Fatalf("got %d entries after delete, want 2", m.Size())
	}
	if _, ok := m.Load("b"); ok {
		t.Fatalf("key b still present after delete")
	}
	var gotKeys []string
	m.Keys()(func(k string) bool {
		gotKeys = append(gotKeys, k)
		return true
	})
	want := []string{"a", "c"}
	if len(gotKeys) != len(want) || gotKeys[0] != want[0] || gotKeys[1] != want[1] {
		t.Fatalf("got keys %v, want %v", gotKeys, want)
	}
	// Deleting an absent key is a no-op.
	m.Delete("z")
	if m.Size() != 2 {
		t.Fatalf("got %d entries after no-op delete, want 2", m.Size())
	}
}
