// Package forward implements the two-hash cuckoo forwarding cache used to
// populate the hardware fast-path forwarding table (spec §4.E).
package forward

import "encoding/binary"

// Key and Value are raw 4-byte IPv4 addresses, as stored in the cache.
type Key = [4]byte
type Value = [4]byte

var zeroKey Key

// RowCount is the number of rows in the table (1024 rows x 4 slots each =
// 4096 slots total).
const RowCount = 1024
const rowMask = RowCount - 1

// slotsPerRow is the number of (key, value) pairs per row.
const slotsPerRow = 4

// shiftDepth is the default bounded displacement depth (spec §4.E step 3).
const shiftDepth = 3

// row is one bucket of 4 (key, value) pairs. Key [0,0,0,0] marks an empty
// slot.
type row struct {
	keys   [slotsPerRow]Key
	values [slotsPerRow]Value
}

func (r *row) lookup(k Key) (Value, bool) {
	for i := range r.keys {
		if r.keys[i] == k {
			return r.values[i], true
		}
	}
	return Value{}, false
}

func (r *row) modify(k Key, v Value) bool {
	for i := range r.keys {
		if r.keys[i] == k {
			r.values[i] = v
			return true
		}
	}
	return false
}

func (r *row) insert(k Key, v Value) bool {
	for i := range r.keys {
		if r.keys[i] == zeroKey {
			r.keys[i] = k
			r.values[i] = v
			return true
		}
	}
	return false
}

func (r *row) remove(k Key) bool {
	for i := range r.keys {
		if r.keys[i] == k {
			r.keys[i] = zeroKey
			return true
		}
	}
	return false
}

// Table is the fixed-capacity two-hash cuckoo hash table (spec §4.E).
type Table struct {
	rows [RowCount]row
	kick uint8 // advanced on every random eviction (spec §9)
}

// NewTable constructs an empty cuckoo table.
func NewTable() *Table {
	return &Table{}
}

// rowIDs computes the two candidate row indices for key k: bits [0,10) and
// bits [16,26) of a 32-bit little-endian view of the key. This hash is
// intentionally weak (spec §4.E): it collides easily for structured IP
// ranges, and a production deployment should substitute a real mixing hash
// without changing the table's contract.
func rowIDs(k Key) (int, int) {
	h := binary.LittleEndian.Uint32(k[:])
	return int(h & rowMask), int((h >> 16) & rowMask)
}

// Insert places (k, v) into the table. k must not be the zero key. With
// random_evict=false, Insert returns false once the table cannot place the
// key via direct insertion or bounded-depth displacement, rather than
// silently overwriting an unrelated entry; with random_evict=true it always
// succeeds, evicting a pseudo-random existing entry as a last resort.
func (t *Table) Insert(k Key, v Value, randomEvict bool) bool {
	if k == zeroKey {
		panic("forward: cannot insert the zero key")
	}

	r1, r2 := rowIDs(k)

	if t.rows[r1].modify(k, v) {
		return true
	}
	if t.rows[r2].modify(k, v) {
		return true
	}

	if t.rows[r1].insert(k, v) {
		return true
	}
	if t.rows[r2].insert(k, v) {
		return true
	}

	for _, rid := range [2]int{r1, r2} {
		if slot, ok := t.shift(rid, shiftDepth); ok {
			t.rows[rid].keys[slot] = k
			t.rows[rid].values[slot] = v
			return true
		}
	}

	if randomEvict {
		t.kick = (t.kick + 1) & 7
		rid := r1
		if t.kick > 3 {
			rid = r2
		}
		slot := int(t.kick & 3)
		t.rows[rid].keys[slot] = k
		t.rows[rid].values[slot] = v
		return true
	}

	return false
}

// shift tries to free a slot in row rowID by recursively relocating one of
// its occupants to that occupant's alternate row, to bounded depth. It
// mirrors the original forward.rs::shift: the first occupant that can be
// relocated onward frees its slot in rowID, and that freed slot index is
// returned for the caller to install the new key into.
func (t *Table) shift(rowID int, depth int) (int, bool) {
	r := &t.rows[rowID]
	for i := range r.keys {
		if r.keys[i] == zeroKey {
			return i, true
		}
	}

	if depth == 0 {
		return 0, false
	}

	for i := range r.keys {
		k := r.keys[i]
		ra, rb := rowIDs(k)
		if ra == rb {
			continue
		}
		if rb == rowID {
			ra, rb = rb, ra
		}

		if slot, ok := t.shift(rb, depth-1); ok {
			t.rows[rb].keys[slot] = r.keys[i]
			t.rows[rb].values[slot] = r.values[i]
			return i, true
		}
	}

	return 0, false
}

// Lookup scans row h1, then h2, for key k.
func (t *Table) Lookup(k Key) (Value, bool) {
	r1, r2 := rowIDs(k)
	if v, ok := t.rows[r1].lookup(k); ok {
		return v, true
	}
	return t.rows[r2].lookup(k)
}

// Remove clears key k from whichever of its two candidate rows holds it.
func (t *Table) Remove(k Key) bool {
	r1, r2 := rowIDs(k)
	if t.rows[r1].remove(k) {
		return true
	}
	return t.rows[r2].remove(k)
}
