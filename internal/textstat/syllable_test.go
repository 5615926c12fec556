package textstat

import "testing"

func TestEstimate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		words []string
		mode  Mode
		want  int
	}{
		{name: "cat syllables", words: []string{"cat"}, mode: ModeSyllables, want: 1},
		{name: "silent e before period", words: []string{"like."}, mode: ModeSyllables, want: 1},
		{name: "beautiful is polysyllabic", words: []string{"beautiful"}, mode: ModePolysyllables, want: 1},
		{name: "cat is not polysyllabic", words: []string{"cat"}, mode: ModePolysyllables, want: 0},
		{name: "no vowel counts as one", words: []string{"hmm", "psst"}, mode: ModeSyllables, want: 2},
		{name: "trimmed to nothing counts as one", words: []string{"the"}, mode: ModeSyllables, want: 1},
		{name: "sums across words", words: []string{"beautiful", "day"}, mode: ModeSyllables, want: 4},
		{name: "polysyllable counted once", words: []string{"unbelievability"}, mode: ModePolysyllables, want: 1},
		{name: "empty word list", words: nil, mode: ModeSyllables, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Estimate(tc.words, tc.mode)
			if got != tc.want {
				t.Errorf("Estimate(%q, %s) = %d, want %d", tc.words, tc.mode, got, tc.want)
			}
		})
	}
}

func TestTrimSilentE(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		word string
		want string
	}{
		{word: "like", want: "lik"},
		{word: "like.", want: "lik"},
		{word: "like?", want: "lik"},
		{word: "like!", want: "lik"},
		{word: "like,", want: "lik"},
		{word: "like;", want: "like;"},
		{word: "the", want: "th"},
		{word: "be", want: "b"},
		{word: "e", want: "e"},
		{word: "e.", want: "e."},
		{word: "LIKE", want: "LIKE"},
		{word: "cat", want: "cat"},
		{word: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			t.Parallel()

			if got := TrimSilentE(tc.word); got != tc.want {
				t.Errorf("TrimSilentE(%q) = %q, want %q", tc.word, got, tc.want)
			}
		})
	}
}

func TestCountVowelClusters(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		word string
		want int
	}{
		{word: "cat", want: 1},
		{word: "beautiful", want: 3},
		{word: "queue", want: 1},
		{word: "yellow", want: 2},
		{word: "AEIOU", want: 1},
		{word: "banana", want: 3},
		{word: "hmm", want: 0},
		{word: "", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			t.Parallel()

			if got := CountVowelClusters(tc.word); got != tc.want {
				t.Errorf("CountVowelClusters(%q) = %d, want %d", tc.word, got, tc.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	if ModeSyllables.String() != "syllables" {
		t.Errorf("expected syllables, got %s", ModeSyllables.String())
	}
	if ModePolysyllables.String() != "polysyllables" {
		t.Errorf("expected polysyllables, got %s", ModePolysyllables.String())
	}
	if Mode(42).String() != "unknown" {
		t.Errorf("expected unknown, got %s", Mode(42).String())
	}
}
