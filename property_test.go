package slabmap

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/frozenlib/slabmap/internal/slabmodel"
	"github.com/google/go-cmp/cmp"
)

// This file contains the core state-model property test.
//
// We apply identical operations to:
//  1. a deliberately simple, independent reference model, and
//  2. the real implementation,
//
// and assert that every operation's direct result and the resulting
// observable state match.

func TestSlabMap_MatchesModel_Property(t *testing.T) {
	seedCount := 50
	opsPerSeed := 300

	for i := 0; i < seedCount; i++ {
		seed := int64(i + 1)

		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			t.Parallel()

			rng := rand.New(rand.NewSource(seed))

			real := New[int]()
			model := slabmodel.New[int]()

			var liveKeys []int

			for op := 0; op < opsPerSeed; op++ {
				switch pick(rng, liveKeys) {
				case opInsert:
					value := rng.Intn(1_000_000)

					wantKey := model.Insert(value)
					gotKey := real.Insert(value)

					if wantKey != gotKey {
						t.Fatalf("op %d: Insert key mismatch: model=%d real=%d", op, wantKey, gotKey)
					}

					liveKeys = append(liveKeys, gotKey)

				case opRemove:
					key := randKey(rng, liveKeys)

					wantValue, wantOK := model.Remove(key)
					gotValue, gotOK := real.Remove(key)

					if wantOK != gotOK || wantValue != gotValue {
						t.Fatalf("op %d: Remove(%d) mismatch: model=(%d,%v) real=(%d,%v)", op, key, wantValue, wantOK, gotValue, gotOK)
					}

					liveKeys = removeKey(liveKeys, key)

				case opGet:
					key := randKey(rng, liveKeys)

					wantValue, wantOK := model.Get(key)
					gotPtr, gotOK := real.Get(key)

					if wantOK != gotOK {
						t.Fatalf("op %d: Get(%d) presence mismatch: model=%v real=%v", op, key, wantOK, gotOK)
					}

					if wantOK && wantValue != *gotPtr {
						t.Fatalf("op %d: Get(%d) value mismatch: model=%d real=%d", op, key, wantValue, *gotPtr)
					}

				case opOptimize:
					model.Optimize()
					real.Optimize()

				case opRetain:
					threshold := rng.Intn(1_000_000)
					model.Retain(func(_ int, v int) bool { return v < threshold })
					real.Retain(func(_ int, v *int) bool { return *v < threshold })

					liveKeys = liveKeys[:0]
					wantKeys, _ := model.Pairs()
					liveKeys = append(liveKeys, wantKeys...)

				case opClear:
					model.Clear()
					real.Clear()
					liveKeys = nil
				}

				assertSameObservableState(t, op, model, real)
			}
		})
	}
}

type opKind int

const (
	opInsert opKind = iota
	opRemove
	opGet
	opOptimize
	opRetain
	opClear
)

// weights are cumulative thresholds out of 100: Insert 40%, Remove 30%,
// Get 15%, Optimize 9%, Retain 5%, Clear 1%.
var opWeights = [...]struct {
	upto int
	kind opKind
}{
	{40, opInsert},
	{70, opRemove},
	{85, opGet},
	{94, opOptimize},
	{99, opRetain},
	{100, opClear},
}

func pick(rng *rand.Rand, liveKeys []int) opKind {
	if len(liveKeys) == 0 {
		if rng.Intn(2) == 0 {
			return opInsert
		}

		return opOptimize
	}

	roll := rng.Intn(100)
	for _, w := range opWeights {
		if roll < w.upto {
			return w.kind
		}
	}

	return opClear
}

func randKey(rng *rand.Rand, liveKeys []int) int {
	if len(liveKeys) > 0 && rng.Intn(100) < 80 {
		return liveKeys[rng.Intn(len(liveKeys))]
	}

	return rng.Intn(2000) - 500
}

func removeKey(liveKeys []int, key int) []int {
	for i, k := range liveKeys {
		if k == key {
			return append(liveKeys[:i], liveKeys[i+1:]...)
		}
	}

	return liveKeys
}

func assertSameObservableState[V any](t *testing.T, op int, model *slabmodel.Model[V], real *SlabMap[V]) {
	t.Helper()

	if model.Len() != real.Len() {
		t.Fatalf("op %d: Len mismatch: model=%d real=%d", op, model.Len(), real.Len())
	}

	wantKeys, wantValues := model.Pairs()
	gotKeys, gotValues := real.Keys(), real.Values()

	if diff := cmp.Diff(wantKeys, gotKeys); diff != "" {
		t.Fatalf("op %d: keys mismatch (-model +real):\n%s", op, diff)
	}

	if diff := cmp.Diff(wantValues, gotValues); diff != "" {
		t.Fatalf("op %d: values mismatch (-model +real):\n%s", op, diff)
	}

	if real.len != len(gotKeys) {
		t.Fatalf("op %d: invariant 1 violated: len=%d occupied=%d", op, real.len, len(gotKeys))
	}

	if len(real.slots) > 0 && real.slots[len(real.slots)-1].tag != occupied {
		t.Fatalf("op %d: invariant 3 violated: trailing slot is vacant", op)
	}

	if real.churn == 0 && model.FreeHead() != real.freeHead {
		t.Fatalf("op %d: free_head mismatch in compacted form: model=%d real=%d", op, model.FreeHead(), real.freeHead)
	}
}
