package slabmap

// advance moves idx forward from its current position to the next
// occupied slot, skipping vacant runs in O(1) per run rather than per
// slot, and returns the new index (or len(slots) if none remain). It is
// the cursor primitive shared by every iterator in this file.
func advance[V any](slots []slot[V], idx int) int {
	n := len(slots)
	for idx < n {
		switch slots[idx].tag {
		case occupied:
			return idx
		case vacantHead:
			idx += slots[idx].meta + 2
		default: // vacantTail
			idx++
		}
	}

	return n
}

// Iter is a pull-style iterator over key/value pairs in key order,
// grounded on the push/pull split the original crate's Iter type makes
// explicit. Obtain one with [SlabMap.Iter]; the zero value is not
// usable.
type Iter[V any] struct {
	slots []slot[V]
	idx   int
	n     int
}

// Iter returns a pull iterator positioned before the first occupied key.
// It holds a snapshot of s's current slot layout; mutating s while an
// Iter from it is in use has undefined results.
func (s *SlabMap[V]) Iter() *Iter[V] {
	return &Iter[V]{slots: s.slots, idx: 0, n: s.len}
}

// Next advances the iterator and returns the next key/value pair, or
// (0, nil, false) once exhausted.
func (it *Iter[V]) Next() (int, *V, bool) {
	it.idx = advance(it.slots, it.idx)
	if it.idx >= len(it.slots) {
		return 0, nil, false
	}

	key := it.idx
	it.n--
	it.idx++

	return key, &it.slots[key].value, true
}

// SizeHint returns the exact number of pairs remaining, matching the
// original crate's ExactSizeIterator guarantee: no upper-bound
// uncertainty, since occupied slots are counted eagerly on construction.
func (it *Iter[V]) SizeHint() int { return it.n }

// Keys returns the keys of every occupied slot, in ascending order.
func (s *SlabMap[V]) Keys() []int {
	keys := make([]int, 0, s.len)
	for idx := advance(s.slots, 0); idx < len(s.slots); idx = advance(s.slots, idx+1) {
		keys = append(keys, idx)
	}

	return keys
}

// Values returns a copy of every occupied value, in key order.
func (s *SlabMap[V]) Values() []V {
	values := make([]V, 0, s.len)
	for idx := advance(s.slots, 0); idx < len(s.slots); idx = advance(s.slots, idx+1) {
		values = append(values, s.slots[idx].value)
	}

	return values
}

// ValuesMut returns a pointer to every occupied value, in key order,
// collapsing the original crate's separate IterMut/ValuesMut into one
// Go-idiomatic form: a *V already permits in-place mutation.
func (s *SlabMap[V]) ValuesMut() []*V {
	ptrs := make([]*V, 0, s.len)
	for idx := advance(s.slots, 0); idx < len(s.slots); idx = advance(s.slots, idx+1) {
		ptrs = append(ptrs, &s.slots[idx].value)
	}

	return ptrs
}

// All returns a range-over-func sequence of key/value pairs in key
// order, for use in `for k, v := range s.All()`. The yielded pointer
// aliases the slot in place and is safe to mutate through; it is only
// valid for the duration of that loop iteration.
func (s *SlabMap[V]) All() func(yield func(int, *V) bool) {
	return func(yield func(int, *V) bool) {
		for idx := advance(s.slots, 0); idx < len(s.slots); idx = advance(s.slots, idx+1) {
			if !yield(idx, &s.slots[idx].value) {
				return
			}
		}
	}
}
