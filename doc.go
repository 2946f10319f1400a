// Package slabmap provides a slab-backed associative container: a dense,
// index-addressable array that assigns a small integer key on insertion and
// recycles freed slots so keys stay small and lookups stay O(1).
//
// It is built for workloads that hold a population of long-lived values
// (connections, tasks, handles, graph nodes) and iterate over all live
// values at high frequency — the opposite of a generic hash map's access
// pattern.
//
// # Basic usage
//
//	s := slabmap.New[string]()
//	keyA := s.Insert("aaa")
//	keyB := s.Insert("bbb")
//
//	v, ok := s.Get(keyA)
//	// *v: "aaa", ok: true
//
//	s.Remove(keyA)
//
//	for k, v := range s.All() {
//	    fmt.Println(k, *v)
//	}
//
// # Optimize
//
// Repeated [SlabMap.Remove] calls leave behind a free list of singleton
// holes; iteration still works but degrades toward a full array scan.
// Calling [SlabMap.Optimize] after a burst of removals coalesces adjacent
// holes into runs that later iteration skips in O(1) per run. Optimize is
// O(1) when the map is already in compacted form (no unreconciled
// interior removals since the last compaction), so calling it
// defensively after every removal burst is cheap.
//
// # Concurrency
//
// SlabMap is a single-owner, non-concurrent value. There is no internal
// locking; callers sharing a SlabMap across goroutines must provide their
// own synchronization.
package slabmap
