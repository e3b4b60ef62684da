// Package signatures holds the known-bad hash table and exact-match
// detection. A match is a strong positive; the absence of a match says
// nothing about a file.
package signatures

import (
	"strings"

	"github.com/FastFilter/xorfilter"
	"github.com/cespare/xxhash/v2"
)

// MatchConfidence is reported on every signature hit.
const MatchConfidence = 95

// Store maps lower-case hex content hashes (xxh64 or sha256) to threat
// labels. Read-only after construction, safe for concurrent scans. An xor
// filter over the keys answers most negative lookups without touching the
// map.
type Store struct {
	entries map[string]string
	filter  *xorfilter.Xor8
}

// New builds a store from a hash-to-label mapping. The mapping is copied;
// keys are normalized to lower case.
func New(entries map[string]string) *Store {
	s := &Store{entries: make(map[string]string, len(entries))}
	for hash, label := range entries {
		hash = strings.ToLower(strings.TrimSpace(hash))
		if hash == "" {
			continue
		}
		s.entries[hash] = label
	}
	s.filter = buildFilter(s.entries)
	return s
}

// Merge returns a new store containing this store's entries plus extra;
// extra wins on key collisions. Existing stores are never mutated.
func (s *Store) Merge(extra map[string]string) *Store {
	combined := make(map[string]string, s.Len()+len(extra))
	if s != nil {
		for hash, label := range s.entries {
			combined[hash] = label
		}
	}
	for hash, label := range extra {
		combined[strings.ToLower(strings.TrimSpace(hash))] = label
	}
	return New(combined)
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Lookup returns the label for a hex hash, if known.
func (s *Store) Lookup(hash string) (string, bool) {
	if s == nil || len(s.entries) == 0 {
		return "", false
	}
	hash = strings.ToLower(strings.TrimSpace(hash))
	if s.filter != nil && !s.filter.Contains(xxhash.Sum64String(hash)) {
		return "", false
	}
	label, ok := s.entries[hash]
	return label, ok
}

func buildFilter(entries map[string]string) *xorfilter.Xor8 {
	if len(entries) == 0 {
		return nil
	}
	seen := make(map[uint64]struct{}, len(entries))
	keys := make([]uint64, 0, len(entries))
	for hash := range entries {
		k := xxhash.Sum64String(hash)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	filter, err := xorfilter.Populate(keys)
	if err != nil {
		// Fall back to plain map lookups.
		return nil
	}
	return filter
}
