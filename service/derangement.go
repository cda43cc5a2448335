package service

import (
	"math/rand"

	"santa/models"
)

// derangementMaxAttempts bounds the rejection-sampling loop. A uniform
// random permutation of n >= 2 elements is fixed-point-free with
// probability at least 1/2 (converging to 1/e as n grows), so 100 attempts
// push the failure probability below 2^-100 for any group size.
const derangementMaxAttempts = 100

// BuildDerangement maps every id to another id from the same set such that
// no id maps to itself. It knows nothing about storage; ids are opaque.
//
// The permutation is sampled uniformly and rejected until it has no fixed
// point, which keeps the result exact and unbiased at the cost of a
// theoretical budget-exhaustion failure, reported as ErrUnsatisfiable.
// Fewer than two ids is unsatisfiable by definition.
func BuildDerangement(ids []int64) ([]models.Pair, error) {
	if len(ids) < 2 {
		return nil, ErrUnsatisfiable
	}

	shuffled := make([]int64, len(ids))
	copy(shuffled, ids)

	for attempt := 0; attempt < derangementMaxAttempts; attempt++ {
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		if hasFixedPoint(ids, shuffled) {
			continue
		}

		pairs := make([]models.Pair, len(ids))
		for i, santaID := range ids {
			pairs[i] = models.Pair{SantaID: santaID, RecipientID: shuffled[i]}
		}
		return pairs, nil
	}

	return nil, ErrUnsatisfiable
}

func hasFixedPoint(ids, shuffled []int64) bool {
	for i := range ids {
		if ids[i] == shuffled[i] {
			return true
		}
	}
	return false
}
