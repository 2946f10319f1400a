package slabmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimize_IdempotentAndSecondCallIsNoop(t *testing.T) {
	s := New[int]()
	for i := 0; i < 50; i++ {
		s.Insert(i)
	}
	for i := 0; i < 50; i += 2 {
		s.Remove(i)
	}

	s.Optimize()
	require.Equal(t, 0, s.churn)

	before := append([]slot[int](nil), s.slots...)
	beforeFreeHead := s.freeHead

	s.Optimize()

	require.Equal(t, before, s.slots)
	require.Equal(t, beforeFreeHead, s.freeHead)
	require.Equal(t, 0, s.churn)
}

func TestOptimize_NoopOnFreshContainer(t *testing.T) {
	s := New[int]()
	s.Insert(1)
	s.Insert(2)

	require.Equal(t, 0, s.churn)
	s.Optimize()
	require.Equal(t, 0, s.churn)
}

func TestRemove_TailInvariantHoldsAfterEveryOperation(t *testing.T) {
	s := New[int]()
	for i := 0; i < 30; i++ {
		s.Insert(i)
	}

	removeOrder := []int{5, 29, 10, 28, 27, 0, 1, 2, 15}
	for _, key := range removeOrder {
		s.Remove(key)

		if len(s.slots) > 0 {
			require.Equal(t, occupied, s.slots[len(s.slots)-1].tag, "after removing %d", key)
		}
	}
}

func TestReusePolicy_InsertReturnsFreeHead(t *testing.T) {
	s := New[int]()
	s.Insert(0)
	s.Insert(1)
	s.Insert(2)

	s.Remove(1)
	require.Equal(t, 1, s.freeHead)

	got := s.Insert(99)
	require.Equal(t, 1, got)
}

func TestIterationCost_BoundedAfterOptimize(t *testing.T) {
	s := New[int]()
	for i := 0; i < 200; i++ {
		s.Insert(i)
	}
	for i := 1; i < 200; i += 2 {
		s.Remove(i)
	}

	s.Optimize()

	touched := 0
	for idx := 0; idx < len(s.slots); {
		touched++
		switch s.slots[idx].tag {
		case occupied:
			idx++
		case vacantHead:
			idx += s.slots[idx].meta + 2
		default:
			idx++
		}
	}

	require.LessOrEqual(t, touched, 2*s.Len()+1)
}

func TestRetain_PredicateCanMutateValueInPlace(t *testing.T) {
	s := New[int]()
	for i := 0; i < 5; i++ {
		s.Insert(i)
	}

	s.Retain(func(_ int, v *int) bool {
		*v *= 100
		return true
	})

	require.Equal(t, []int{0, 100, 200, 300, 400}, s.Values())
}
