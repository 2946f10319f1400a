package slabmap

// popFree consumes the free list's head run and returns its index. It
// never allocates and touches at most two slots: the head slot and, if
// the head run is longer than one, the slot immediately after it (which
// becomes the new head). See spec.md §4.2.
func (s *SlabMap[V]) popFree() int {
	head := s.freeHead
	sl := &s.slots[head]

	switch sl.tag {
	case vacantHead:
		bodyLen := sl.meta
		if bodyLen > 0 {
			s.slots[head+1] = slot[V]{tag: vacantHead, meta: bodyLen - 1}
		}

		s.freeHead = head + 1
	default: // vacantTail
		s.freeHead = sl.meta
	}

	return head
}

// writeRun writes the canonical encoding of the vacant run
// [head, tailExclusive) and stitches it into the free list after
// prevTail (or sets freeHead if prevTail is noneIndex). It returns the
// index of the run's tail slot, for use as the next call's prevTail.
func (s *SlabMap[V]) writeRun(head, tailExclusive, prevTail int) int {
	tail := tailExclusive - 1

	if tailExclusive-head == 1 {
		s.slots[head] = slot[V]{tag: vacantTail, meta: noneIndex}
	} else {
		s.slots[head] = slot[V]{tag: vacantHead, meta: tailExclusive - head - 2}
		s.slots[tail] = slot[V]{tag: vacantTail, meta: noneIndex}
	}

	if prevTail == noneIndex {
		s.freeHead = head
	} else {
		s.slots[prevTail].meta = head
	}

	return tail
}

// Retain keeps only the occupied slots for which keep returns true,
// dropping the rest and rebuilding the free list into its densest form
// in a single O(slots) pass. keep may mutate the value it's given; it
// must not call any mutating method on s.
func (s *SlabMap[V]) Retain(keep func(key int, value *V) bool) {
	s.compactPass(keep)
}

// Optimize rebuilds the free-list encoding into its densest form,
// merging adjacent vacant runs so later iteration skips them in O(1)
// per run instead of per slot. It is a no-op, O(1), if the map is
// already in compacted form (churn == 0).
func (s *SlabMap[V]) Optimize() {
	if s.churn == 0 {
		return
	}

	s.compactPass(func(int, *V) bool { return true })
}

// compactPass is the shared algorithm behind Retain and Optimize,
// described in spec.md §4.4. It walks the slot array once, closing and
// rewriting vacant runs as it encounters occupied slots, and truncates
// any trailing vacant run entirely at the end.
func (s *SlabMap[V]) compactPass(keep func(key int, value *V) bool) {
	n := len(s.slots)
	idx := 0
	runStart := 0
	prevTail := noneIndex
	newLen := 0

	s.freeHead = noneIndex

	for idx < n {
		sl := &s.slots[idx]

		switch sl.tag {
		case vacantTail:
			idx++
		case vacantHead:
			idx += sl.meta + 2
		case occupied:
			if keep(idx, &sl.value) {
				if runStart < idx {
					prevTail = s.writeRun(runStart, idx, prevTail)
				}

				idx++
				runStart = idx
				newLen++
			} else {
				var zero V
				sl.value = zero
				sl.tag = vacantTail
				sl.meta = noneIndex
				idx++
			}
		}
	}

	for i := runStart; i < len(s.slots); i++ {
		s.slots[i] = slot[V]{}
	}

	s.slots = s.slots[:runStart]
	s.churn = 0
	s.len = newLen
}

// trimTrailingVacantRuns is called after a tail Remove truncates the
// array's literal last slot. If that exposes an already-vacant slot as
// the new last slot — possible when an earlier interior Remove left a
// hole next to what was then the tail — the run ending there is excised
// from the free list and the array is truncated back to that run's
// head, repeating until the last slot is occupied or the map is empty.
// This is the fix spec.md §9's "older variant" note calls for: a correct
// implementation never leaves a vacant slot at the end of the array.
func (s *SlabMap[V]) trimTrailingVacantRuns() {
	for len(s.slots) > 0 && s.slots[len(s.slots)-1].tag != occupied {
		tailIdx := len(s.slots) - 1
		head := s.unlinkRunEndingAt(tailIdx)
		s.slots = s.slots[:head]
	}
}

// unlinkRunEndingAt removes, from the free list, the run whose tail slot
// sits at tailIdx, and returns that run's head index. The walk visits
// only live free-list runs (bounded by churn-ish outstanding holes), not
// the whole slot array.
func (s *SlabMap[V]) unlinkRunEndingAt(tailIdx int) int {
	prevTail := noneIndex
	cur := s.freeHead

	for cur != noneIndex {
		head := cur
		tail := head

		if s.slots[head].tag == vacantHead {
			tail = head + s.slots[head].meta + 1
		}

		next := s.slots[tail].meta

		if tail == tailIdx {
			if prevTail == noneIndex {
				s.freeHead = next
			} else {
				s.slots[prevTail].meta = next
			}

			return head
		}

		prevTail = tail
		cur = next
	}

	// Unreachable if invariants hold: every vacant slot belongs to
	// exactly one free-list run. Fall back to treating it as a
	// singleton so the caller still makes forward progress.
	return tailIdx
}
