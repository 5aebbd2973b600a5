package util

import (
	"cmp"
	"math"
	"slices"
)

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// RoundUpTo rounds n up to the next multiple of multiplier.
func RoundUpTo(n, multiplier float64) float64 {
	return math.Ceil(n/multiplier) * multiplier
}
