package fuzzyfinder

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type Rank struct {
	// Source is used as the source for matching.
	Source string

	// Target is the word matched against.
	Target string

	// Distance is the Levenshtein distance between Source and Target.
	Distance int

	// Location of Target in original list
	OriginalIndex int
}

// RankFind matches case and diacritics insensitively and sorts by distance.
func RankFind(keys []string, query string) []Rank {
	ranksLib := fuzzy.RankFindNormalizedFold(query, keys)
	sort.Stable(ranksLib)
	ranks := make([]Rank, ranksLib.Len())
	for i, r := range ranksLib {
		ranks[i] = Rank{
			Source:        r.Source,
			Target:        r.Target,
			Distance:      r.Distance,
			OriginalIndex: r.OriginalIndex,
		}
	}
	return ranks
}

// Filter keeps the items whose key fuzzily matches query, best match first.
// An empty query returns items unchanged.
func Filter[T any](items []T, query string, key func(T) string) []T {
	if query == "" {
		return items
	}
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = key(item)
	}
	ranks := RankFind(keys, query)
	out := make([]T, len(ranks))
	for i, r := range ranks {
		out[i] = items[r.OriginalIndex]
	}
	return out
}
