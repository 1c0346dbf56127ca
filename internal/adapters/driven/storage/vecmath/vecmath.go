// Package vecmath holds the distance and ranking helpers shared by the
// vector store adapters.
package vecmath

import (
	"sort"
	"strings"

	"github.com/vishwapandiyan/Resume-screener/internal/core/domain"
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
)

// SquaredL2 returns the squared Euclidean distance between a and b.
// Vectors of different length are compared over the shorter prefix, with
// the remaining components of the longer vector counted against zero.
func SquaredL2(a, b []float32) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	for _, v := range a[n:] {
		sum += float64(v) * float64(v)
	}
	for _, v := range b[n:] {
		sum += float64(v) * float64(v)
	}
	return sum
}

// Matches reports whether chunk passes the candidate and contains filters of q.
// The contains filter is case-insensitive.
func Matches(chunk *domain.Chunk, q driven.VectorQuery) bool {
	if q.CandidateID != "" && chunk.CandidateID != q.CandidateID {
		return false
	}
	if q.Contains != "" && !strings.Contains(strings.ToLower(chunk.Text), strings.ToLower(q.Contains)) {
		return false
	}
	return true
}

// Nearest sorts matches by ascending distance (ties by chunk ID) and keeps the first k.
func Nearest(matches []driven.VectorMatch, k int) []driven.VectorMatch {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Chunk.ID < matches[j].Chunk.ID
	})
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}
