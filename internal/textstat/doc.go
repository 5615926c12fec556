// Package textstat tokenizes raw text and estimates syllables.
//
// Tokenization produces three ordered sequences from one string:
//   - Sentences: segments between runs of '.', '?' and '!'
//   - Words: segments between runs of Unicode separators
//   - Characters: every non-whitespace code point
//
// Splitting keeps a leading empty segment and drops trailing empty ones, so
// counts match "number of segments produced by splitting" as the readability
// formulas expect.
//
// Syllables are approximated by counting vowel clusters after trimming a
// trailing silent "e". This is a heuristic, not dictionary syllabification,
// and its edge cases are part of the observable behavior.
//
// Everything in this package is a pure function of its input.
package textstat
