package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// legacyFile mirrors the old browser-era persisted layout: a single
// "wordDurations" key holding one integer of milliseconds per word.
type legacyFile struct {
	WordDurations []int64 `json:"wordDurations"`
}

// LoadLegacyDurations reads a legacy duration file and returns a table
// of exactly count entries. A missing or malformed file, or a stored
// table whose length does not match count, falls back to all zeros; the
// returned error is diagnostic only and must never interrupt the caller.
func LoadLegacyDurations(path string, count int) ([]int64, error) {
	zeros := make([]int64, count)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return zeros, nil
		}
		return zeros, fmt.Errorf("failed to read legacy durations: %w", err)
	}
	var parsed legacyFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return zeros, fmt.Errorf("failed to parse legacy durations: %w", err)
	}
	if len(parsed.WordDurations) != count {
		return zeros, fmt.Errorf("legacy durations length %d does not match %d words", len(parsed.WordDurations), count)
	}
	durations := make([]int64, count)
	for i, v := range parsed.WordDurations {
		if v < 0 {
			v = 0
		}
		durations[i] = v
	}
	return durations, nil
}
