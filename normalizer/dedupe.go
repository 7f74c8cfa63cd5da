package normalizer

import (
	"slices"

	"github.com/gewnthar/airportmin/models"
)

// DedupeFrequencies collapses entries sharing a kHz value and returns them in
// ascending kHz order. A typed entry always beats an untyped one; among typed
// entries the first in input order wins, so callers must pass entries in
// source row order for the result to be reproducible.
func DedupeFrequencies(entries []models.FrequencyEntry) []models.FrequencyEntry {
	byKHz := make(map[int]models.FrequencyEntry, len(entries))
	for _, e := range entries {
		kept, seen := byKHz[e.KHz]
		if !seen || (!kept.HasType() && e.HasType()) {
			byKHz[e.KHz] = e
		}
	}

	out := make([]models.FrequencyEntry, 0, len(byKHz))
	for _, e := range byKHz {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b models.FrequencyEntry) int {
		return a.KHz - b.KHz
	})
	return out
}
