package superaln

import "fmt"

// Identity computes the normalized identity in [0,1] between two equal
// length super-alignment sequences, one gene partition at a time.
//
// A gene for which either sequence is nothing but gaps carries no signal
// for the pair, so its whole column range is excluded from the
// denominator. Within an informative gene, a matching pair of real
// characters scores one; a coincidental double gap is excluded from the
// denominator instead of counting as a match; mismatches, including gap
// against base, count against the pair.
func Identity(seqA, seqB string, partitions []Partition) (float64, error) {
	if len(seqA) != len(seqB) {
		return 0, fmt.Errorf("sequences are %d and %d wide: %w", len(seqA), len(seqB), ErrLengthMismatch)
	}

	denominator := len(seqA)
	score := 0

	for _, p := range partitions {
		subA := seqA[p.Start:p.End]
		subB := seqB[p.Start:p.End]

		if allGaps(subA) || allGaps(subB) {
			denominator -= p.End - p.Start
			continue
		}

		for i := 0; i < len(subA); i++ {
			if subA[i] != subB[i] {
				continue
			}
			if subA[i] == GapChar {
				denominator--
			} else {
				score++
			}
		}
	}

	if denominator == 0 {
		return 0, ErrNoInformativeSites
	}

	return float64(score) / float64(denominator), nil
}
