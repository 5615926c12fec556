package textstat

// Mode selects what Estimate accumulates.
type Mode int

const (
	// ModeSyllables sums the syllable estimate of every word, at least one
	// per word.
	ModeSyllables Mode = iota

	// ModePolysyllables counts words with more than two syllables.
	ModePolysyllables
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeSyllables:
		return "syllables"
	case ModePolysyllables:
		return "polysyllables"
	default:
		return "unknown"
	}
}

// Estimate accumulates syllables or polysyllabic words over words.
func Estimate(words []string, mode Mode) int {
	total := 0
	for _, w := range words {
		n := Syllables(w)
		switch mode {
		case ModeSyllables:
			total += max(n, 1)
		case ModePolysyllables:
			if n > 2 {
				total++
			}
		}
	}
	return total
}

// Syllables returns the raw vowel-cluster count of word after trimming a
// silent "e". It may be zero; Estimate applies the one-syllable floor.
func Syllables(word string) int {
	return CountVowelClusters(TrimSilentE(word))
}

// TrimSilentE removes a trailing silent "e".
//
// A word of at least one rune followed by "e" and one of '.', '?', '!', ','
// loses its last two runes. Otherwise a word of at least one rune followed
// by a final "e" loses that "e". Only lowercase "e" is trimmed.
func TrimSilentE(word string) string {
	r := []rune(word)
	n := len(r)
	switch {
	case n >= 3 && r[n-2] == 'e' && isClauseEnd(r[n-1]):
		return string(r[:n-2])
	case n >= 2 && r[n-1] == 'e':
		return string(r[:n-1])
	default:
		return word
	}
}

// CountVowelClusters counts vowels that are last in the word or followed by
// a non-vowel.
func CountVowelClusters(word string) int {
	r := []rune(word)
	count := 0
	for i, c := range r {
		if !IsVowel(c) {
			continue
		}
		if i == len(r)-1 || !IsVowel(r[i+1]) {
			count++
		}
	}
	return count
}

// IsVowel reports whether r is one of a, e, i, o, u, y in either case.
func IsVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y',
		'A', 'E', 'I', 'O', 'U', 'Y':
		return true
	default:
		return false
	}
}

func isClauseEnd(r rune) bool {
	return r == '.' || r == '?' || r == '!' || r == ','
}
