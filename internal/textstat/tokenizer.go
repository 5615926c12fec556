package textstat

import "unicode"

// Tokens is the tokenization of one text.
type Tokens struct {
	// Sentences are the segments between sentence terminators.
	Sentences []string

	// Words are the segments between separator runs. Punctuation stays attached.
	Words []string

	// Characters holds one entry per non-whitespace code point.
	Characters []string
}

// Tokenize splits text into sentences, words and characters.
func Tokenize(text string) Tokens {
	return Tokens{
		Sentences:  SplitSentences(text),
		Words:      SplitWords(text),
		Characters: SplitCharacters(text),
	}
}

// IsSentenceTerminator reports whether r ends a sentence.
func IsSentenceTerminator(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}

// IsSeparator reports whether r separates words: any white space or any
// rune in the Unicode separator category (Zs, Zl, Zp).
func IsSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r)
}

// SplitSentences splits text on runs of '.', '?' and '!'.
// Text without any terminator has no sentences.
func SplitSentences(text string) []string {
	segments, found := splitRuns(text, IsSentenceTerminator)
	if !found {
		return nil
	}
	return segments
}

// SplitWords splits text on runs of separators.
func SplitWords(text string) []string {
	segments, _ := splitRuns(text, IsSeparator)
	return segments
}

// SplitCharacters drops all white space and returns the remaining code
// points, one per entry.
func SplitCharacters(text string) []string {
	chars := make([]string, 0, len(text))
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		chars = append(chars, string(r))
	}
	return chars
}
