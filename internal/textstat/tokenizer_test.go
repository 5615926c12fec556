package textstat

import (
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	t.Run("two short sentences", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize("Hi. Bye!")

		if len(tokens.Sentences) != 2 {
			t.Errorf("expected 2 sentences, got %d (%q)", len(tokens.Sentences), tokens.Sentences)
		}
		wantWords := []string{"Hi.", "Bye!"}
		if !slices.Equal(tokens.Words, wantWords) {
			t.Errorf("expected words %q, got %q", wantWords, tokens.Words)
		}
		// H, i, ., B, y, e, !
		if len(tokens.Characters) != 7 {
			t.Errorf("expected 7 characters, got %d (%q)", len(tokens.Characters), tokens.Characters)
		}
	})

	t.Run("same text yields same tokens", func(t *testing.T) {
		t.Parallel()

		text := "The quick brown fox.  It jumped!\nDid it? Yes..."
		first := Tokenize(text)
		second := Tokenize(text)

		if !slices.Equal(first.Sentences, second.Sentences) {
			t.Errorf("sentences differ: %q vs %q", first.Sentences, second.Sentences)
		}
		if !slices.Equal(first.Words, second.Words) {
			t.Errorf("words differ: %q vs %q", first.Words, second.Words)
		}
		if !slices.Equal(first.Characters, second.Characters) {
			t.Errorf("characters differ: %q vs %q", first.Characters, second.Characters)
		}
	})
}

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
		want []string
	}{
		{name: "no terminator", text: "no punctuation here", want: nil},
		{name: "empty", text: "", want: nil},
		{name: "single sentence", text: "One.", want: []string{"One"}},
		{name: "run of terminators", text: "Wait?! What...", want: []string{"Wait", " What"}},
		{name: "leading terminator kept", text: ".Hi. There", want: []string{"", "Hi", " There"}},
		{name: "text after last terminator", text: "A. B", want: []string{"A", " B"}},
		{name: "only terminators", text: "...", want: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := SplitSentences(tc.text)
			if !slices.Equal(got, tc.want) {
				t.Errorf("SplitSentences(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestSplitWords(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "single word", text: "word", want: []string{"word"}},
		{name: "mixed white space", text: "a \t b\n\nc", want: []string{"a", "b", "c"}},
		{name: "no-break space", text: "a\u00a0b", want: []string{"a", "b"}},
		{name: "ideographic space", text: "a\u3000b", want: []string{"a", "b"}},
		{name: "trailing space dropped", text: "a b  ", want: []string{"a", "b"}},
		{name: "leading space kept", text: " a", want: []string{"", "a"}},
		{name: "punctuation attached", text: "Hello, world!", want: []string{"Hello,", "world!"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := SplitWords(tc.text)
			if !slices.Equal(got, tc.want) {
				t.Errorf("SplitWords(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestSplitCharacters(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "white space only", text: " \t\n", want: []string{}},
		{name: "ascii", text: "a b.", want: []string{"a", "b", "."}},
		{name: "multibyte", text: "\u00e9 \u00fc", want: []string{"\u00e9", "\u00fc"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := SplitCharacters(tc.text)
			if !slices.Equal(got, tc.want) {
				t.Errorf("SplitCharacters(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}
