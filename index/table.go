package index

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/mzml/errs"
	"github.com/arloliu/mzml/internal/collision"
	"github.com/arloliu/mzml/internal/hash"
)

type entry struct {
	refID  string
	offset int64
}

// Table maps element ids to byte offsets.
//
// Entries are keyed by the xxHash64 of the id. Ids whose key is already owned
// by a different id are kept in an exact-string overflow map, so lookups are
// always exact. When the same id appears more than once, the entry parsed
// last wins and Duplicates reports how many entries were overwritten.
//
// A Table is immutable after construction and safe for concurrent reads.
type Table struct {
	name       string
	key        func(string) uint64
	byKey      map[uint64]entry
	overflow   map[string]int64
	sorted     []int64 // final offsets in ascending order
	duplicates int
	collisions int
}

// NewTable builds a table from the entries of sec, in document order.
func NewTable(sec Section) (*Table, error) {
	return newTable(sec, hash.Key)
}

// EmptyTable returns a table with no entries.
func EmptyTable(name string) *Table {
	return &Table{name: name, key: hash.Key, byKey: map[uint64]entry{}}
}

func newTable(sec Section, key func(string) uint64) (*Table, error) {
	t := &Table{
		name:  sec.Name,
		key:   key,
		byKey: make(map[uint64]entry, len(sec.Offsets)),
	}
	tracker := collision.NewTracker(len(sec.Offsets))

	for _, off := range sec.Offsets {
		if off.Offset < 0 {
			return nil, fmt.Errorf("%w: %s index entry %q has negative offset %d",
				errs.ErrFormat, sec.Name, off.RefID, off.Offset)
		}

		k := key(off.RefID)
		switch tracker.Track(off.RefID, k) {
		case collision.New:
			t.byKey[k] = entry{refID: off.RefID, offset: off.Offset}
		case collision.Duplicate:
			t.byKey[k] = entry{refID: off.RefID, offset: off.Offset}
			t.duplicates++
		case collision.Collision:
			if t.overflow == nil {
				t.overflow = make(map[string]int64)
			}
			if _, seen := t.overflow[off.RefID]; seen {
				t.duplicates++
			}
			t.overflow[off.RefID] = off.Offset
		}
	}
	t.collisions = tracker.Collisions()

	t.sorted = make([]int64, 0, t.Len())
	for _, off := range t.All() {
		t.sorted = append(t.sorted, off)
	}
	slices.Sort(t.sorted)

	return t, nil
}

// Name returns the index section name ("spectrum" or "chromatogram").
func (t *Table) Name() string {
	return t.name
}

// Lookup returns the byte offset of id.
func (t *Table) Lookup(id string) (int64, bool) {
	if e, ok := t.byKey[t.key(id)]; ok && e.refID == id {
		return e.offset, true
	}
	off, ok := t.overflow[id]

	return off, ok
}

// Len returns the number of distinct ids.
func (t *Table) Len() int {
	return len(t.byKey) + len(t.overflow)
}

// Duplicates returns how many entries were overwritten by a later entry with the same id.
func (t *Table) Duplicates() int {
	return t.duplicates
}

// Collisions returns how many entries landed in the overflow map.
func (t *Table) Collisions() int {
	return t.collisions
}

// All returns an iterator over (id, offset) pairs in unspecified order.
func (t *Table) All() iter.Seq2[string, int64] {
	return func(yield func(string, int64) bool) {
		for _, e := range t.byKey {
			if !yield(e.refID, e.offset) {
				return
			}
		}
		for id, off := range t.overflow {
			if !yield(id, off) {
				return
			}
		}
	}
}

// Map returns a copy of the table as a plain map.
func (t *Table) Map() map[string]int64 {
	m := make(map[string]int64, t.Len())
	for id, off := range t.All() {
		m[id] = off
	}

	return m
}

// next returns the smallest offset in the table strictly greater than offset.
func (t *Table) next(offset int64) (int64, bool) {
	i, _ := slices.BinarySearch(t.sorted, offset+1)
	if i >= len(t.sorted) {
		return 0, false
	}

	return t.sorted[i], true
}
