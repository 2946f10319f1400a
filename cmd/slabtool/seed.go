package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/frozenlib/slabmap"
	"github.com/tailscale/hujson"
)

// seedEntry is one record in a seed file. Key is optional: a file may
// either specify a key for every entry (to reproduce an exact layout,
// including deliberate gaps) or omit it everywhere (sequential insert).
// Mixing the two within one file is rejected.
type seedEntry struct {
	Key   *int   `json:"key,omitempty"`
	Value string `json:"value"`
}

// loadSeedFile parses a JSONC (JSON-with-comments, trailing commas
// allowed) array of seed entries.
func loadSeedFile(path string) ([]seedEntry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-supplied on purpose
	if err != nil {
		return nil, err
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var entries []seedEntry
	if err := json.Unmarshal(standardized, &entries); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return entries, nil
}

// applySeed loads entries into a container. If every entry specifies a
// key, a fresh container is built via FromPairs so the exact layout
// (including any gaps between keys) is reproduced; the returned map
// replaces s. If no entry specifies a key, values are appended to s in
// file order via sequential Insert calls instead.
func applySeed(s *slabmap.SlabMap[string], path string) (*slabmap.SlabMap[string], int, error) {
	entries, err := loadSeedFile(path)
	if err != nil {
		return nil, 0, err
	}

	if len(entries) == 0 {
		return s, 0, nil
	}

	keyed := entries[0].Key != nil
	for _, e := range entries {
		if (e.Key != nil) != keyed {
			return nil, 0, fmt.Errorf("seed file mixes entries with and without an explicit key")
		}
	}

	if !keyed {
		for _, e := range entries {
			s.Insert(e.Value)
		}

		return s, len(entries), nil
	}

	pairs := make([]slabmap.KeyValue[string], len(entries))
	for i, e := range entries {
		pairs[i] = slabmap.KeyValue[string]{Key: *e.Key, Value: e.Value}
	}

	return slabmap.FromPairs(pairs, 0), len(entries), nil
}
