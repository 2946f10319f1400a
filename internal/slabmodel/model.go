// Package slabmodel provides a deliberately simple, independent reference
// model of a slab-backed associative container's observable behavior, for
// comparison against the real implementation in property-based tests.
//
// Model does not use run-length encoding: every vacant slot threads its
// own "next" pointer individually. This is slower but far easier to audit
// than the real package's compacted free-list representation, and it
// still reproduces the same externally visible key-assignment order,
// since that order depends only on LIFO-vs-ascending free-list discipline,
// not on run compaction.
package slabmodel

const none = -1

type entry[V any] struct {
	value    V
	occupied bool
	freeNext int
}

// Model is an independent slab-map reference implementation.
type Model[V any] struct {
	slots    []entry[V]
	freeHead int
	length   int
}

// New returns an empty Model.
func New[V any]() *Model[V] {
	return &Model[V]{freeHead: none}
}

// Len returns the number of occupied keys.
func (m *Model[V]) Len() int { return m.length }

// FreeHead returns the key the next Insert will return, or none if the
// backing array would have to grow to satisfy it.
func (m *Model[V]) FreeHead() int { return m.freeHead }

// Insert stores value at the free list's head key (LIFO: the most
// recently freed slot, matching the real push_free/pop_free discipline)
// or appends if the free list is empty.
func (m *Model[V]) Insert(value V) int {
	var key int

	if m.freeHead != none {
		key = m.freeHead
		m.freeHead = m.slots[key].freeNext
	} else {
		key = len(m.slots)
		m.slots = append(m.slots, entry[V]{})
	}

	m.slots[key] = entry[V]{value: value, occupied: true}
	m.length++

	return key
}

// Get returns the value at key, if occupied.
func (m *Model[V]) Get(key int) (V, bool) {
	var zero V
	if key < 0 || key >= len(m.slots) || !m.slots[key].occupied {
		return zero, false
	}

	return m.slots[key].value, true
}

// Remove deletes the value at key, truncating the array if key was the
// last slot (cascading through any exposed trailing vacants) or if the
// map becomes empty, mirroring the real container's tail invariant.
func (m *Model[V]) Remove(key int) (V, bool) {
	var zero V
	if key < 0 || key >= len(m.slots) || !m.slots[key].occupied {
		return zero, false
	}

	value := m.slots[key].value

	if key+1 == len(m.slots) {
		m.slots = m.slots[:key]
		m.length--

		if m.length == 0 {
			m.Clear()
		} else {
			m.trimTrailingVacants()
		}

		return value, true
	}

	// key is not the last slot, and the last slot is always occupied, so
	// length cannot reach 0 here.
	m.slots[key] = entry[V]{freeNext: m.freeHead}
	m.freeHead = key
	m.length--

	return value, true
}

// trimTrailingVacants repeatedly pops a vacant tail slot and unlinks it
// from the free list, restoring the invariant that the array never ends
// in a vacant slot.
func (m *Model[V]) trimTrailingVacants() {
	for len(m.slots) > 0 && !m.slots[len(m.slots)-1].occupied {
		tail := len(m.slots) - 1
		m.unlink(tail)
		m.slots = m.slots[:tail]
	}
}

func (m *Model[V]) unlink(key int) {
	if m.freeHead == key {
		m.freeHead = m.slots[key].freeNext
		return
	}

	for cur := m.freeHead; cur != none; cur = m.slots[cur].freeNext {
		if m.slots[cur].freeNext == key {
			m.slots[cur].freeNext = m.slots[key].freeNext
			return
		}
	}
}

// Clear drops every value and resets the model to empty.
func (m *Model[V]) Clear() {
	m.slots = nil
	m.freeHead = none
	m.length = 0
}

// Retain keeps only keys for which keep returns true, then rebuilds the
// free list in ascending positional order, matching what the real
// container's compaction pass does to free_head.
func (m *Model[V]) Retain(keep func(key int, value V) bool) {
	for key := range m.slots {
		if m.slots[key].occupied && !keep(key, m.slots[key].value) {
			var zero V
			m.slots[key] = entry[V]{value: zero}
			m.length--
		}
	}

	m.Optimize()
}

// Optimize rebuilds the free list into ascending positional order and
// truncates any trailing vacant run, matching the real container's
// compacted form.
func (m *Model[V]) Optimize() {
	runStart := len(m.slots)
	for i := len(m.slots) - 1; i >= 0; i-- {
		if m.slots[i].occupied {
			break
		}
		runStart = i
	}

	m.slots = m.slots[:runStart]

	m.freeHead = none
	prev := none

	for i := 0; i < len(m.slots); i++ {
		if m.slots[i].occupied {
			continue
		}

		if prev == none {
			m.freeHead = i
		} else {
			m.slots[prev].freeNext = i
		}

		prev = i
	}

	if prev != none {
		m.slots[prev].freeNext = none
	}
}

// Pairs returns every occupied (key, value) in ascending key order.
func (m *Model[V]) Pairs() ([]int, []V) {
	keys := make([]int, 0, m.length)
	values := make([]V, 0, m.length)

	for key, e := range m.slots {
		if e.occupied {
			keys = append(keys, key)
			values = append(values, e.value)
		}
	}

	return keys, values
}
