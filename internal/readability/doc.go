// Package readability computes readability scores and reader ages.
//
// A Document tokenizes its text once, then evaluates any of the four
// supported formulas against the cached counts:
//
//   - Automated Readability Index (ARI)
//   - Flesch-Kincaid grade level (FK)
//   - Simple Measure of Gobbledygook (SMOG)
//   - Coleman-Liau index (CL)
//
// Each raw score is rounded half-up and mapped to an approximate reader age
// through a fixed 14-entry table. Scores that round outside [1, 14] have no
// age and are reported with ErrScoreOutOfRange instead of being clamped.
//
// Documents without words or without sentence terminators cannot be scored
// and yield ErrDegenerateInput before any formula runs.
//
// Example usage:
//
//	doc := readability.NewDocument(text)
//	summary, err := doc.ScoreAll()
//	if errors.Is(err, readability.ErrDegenerateInput) {
//	    // nothing to score
//	}
package readability
