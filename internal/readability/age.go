package readability

import (
	"fmt"
	"math"
)

// ageTable maps rounded scores 1..14 to reader ages.
var ageTable = [...]int{6, 7, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 24, 25}

// MinAgeIndex and MaxAgeIndex bound the rounded scores that have an age.
const (
	MinAgeIndex = 1
	MaxAgeIndex = len(ageTable)
)

// MapAge rounds score half-up and returns the reader age for it.
//
// Design decision: Half-up means x.5 always rounds toward positive infinity
// (2.5 -> 3, -0.5 -> 0), which differs from math.Round for negative halves.
// Out-of-table indices return ErrScoreOutOfRange rather than a clamped age.
func MapAge(score float64) (int, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("%w: %v", ErrScoreOutOfRange, score)
	}
	// Check the float first: converting a huge score to int is not portable.
	if score < float64(MinAgeIndex)-0.5 || score >= float64(MaxAgeIndex)+0.5 {
		return 0, fmt.Errorf("%w: %.2f rounds outside %d..%d", ErrScoreOutOfRange, score, MinAgeIndex, MaxAgeIndex)
	}
	index := RoundHalfUp(score)
	return ageTable[index-1], nil
}

// RoundHalfUp rounds x to the nearest integer, with halves going up.
func RoundHalfUp(x float64) int {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return int(r)
}
