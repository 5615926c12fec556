package textstat

// splitRuns splits s at every maximal run of runes for which isDelim is true.
// A leading empty segment is kept when s starts with a delimiter; trailing
// empty segments are removed. The second result reports whether any
// delimiter was seen.
func splitRuns(s string, isDelim func(rune) bool) ([]string, bool) {
	var segments []string
	found := false
	inRun := false
	start := 0

	for i, r := range s {
		if isDelim(r) {
			if !inRun {
				segments = append(segments, s[start:i])
				inRun = true
				found = true
			}
			continue
		}
		if inRun {
			start = i
			inRun = false
		}
	}
	if !inRun {
		segments = append(segments, s[start:])
	}

	for len(segments) > 0 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	return segments, found
}
