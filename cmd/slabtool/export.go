package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/frozenlib/slabmap"
	"github.com/natefinch/atomic"
)

// exportEntry is one record in a snapshot file.
type exportEntry struct {
	Key   int    `json:"key"`
	Value string `json:"value"`
}

// exportSnapshot writes every occupied (key, value) pair in s to path as
// indented JSON. The write is atomic: a concurrent reader of path either
// sees the previous file in full or the new one in full, never a
// partially written file.
func exportSnapshot(s *slabmap.SlabMap[string], path string) (int, error) {
	keys, values := s.Keys(), s.Values()

	entries := make([]exportEntry, len(keys))
	for i := range keys {
		entries[i] = exportEntry{Key: keys[i], Value: values[i]}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := atomic.WriteFile(path, strings.NewReader(string(data))); err != nil {
		return 0, fmt.Errorf("writing snapshot: %w", err)
	}

	return len(entries), nil
}
