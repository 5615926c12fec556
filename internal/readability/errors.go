package readability

import "errors"

// ErrDegenerateInput is returned when a document has zero words or zero
// sentences. Every formula divides by at least one of these counts.
var ErrDegenerateInput = errors.New("document has no words or no sentences")

// ErrScoreOutOfRange is returned when a score rounds to an index outside the
// age table, or is not a finite number.
var ErrScoreOutOfRange = errors.New("score out of supported range")
