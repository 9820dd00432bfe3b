package collision

// Tracker records which id owns each 64-bit key while an offset table is
// built. Distinct ids sharing a key are collisions; the table stores the
// later one in an exact-string overflow map. Re-adding the same id is a
// duplicate, which the caller resolves as last-wins.
type Tracker struct {
	owners     map[uint64]string // key → first id seen with that key
	collisions int
}

// Result classifies a tracked id.
type Result uint8

const (
	New       Result = iota // first time this key is seen
	Duplicate               // same id seen before
	Collision               // key already owned by a different id
)

// NewTracker creates a new tracker sized for n ids.
func NewTracker(n int) *Tracker {
	return &Tracker{
		owners: make(map[uint64]string, n),
	}
}

// Track records id under key and classifies it.
//
// An id that collided once keeps colliding on later calls; the caller looks
// it up in its overflow map and decides whether it is also a duplicate there.
func (t *Tracker) Track(id string, key uint64) Result {
	owner, exists := t.owners[key]
	if !exists {
		t.owners[key] = id
		return New
	}
	if owner == id {
		return Duplicate
	}
	t.collisions++

	return Collision
}

// Collisions returns how many Track calls hit a key owned by a different id.
func (t *Tracker) Collisions() int {
	return t.collisions
}

// Reset clears all tracked keys while keeping map capacity.
func (t *Tracker) Reset() {
	clear(t.owners)
	t.collisions = 0
}
