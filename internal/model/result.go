package model

// Counts holds the aggregate statistics of a tokenized document.
// Every readability formula is a pure function of these numbers.
type Counts struct {
	// Sentences is the number of segments produced by sentence splitting.
	Sentences int `json:"sentences"`

	// Words is the number of segments produced by separator splitting.
	Words int `json:"words"`

	// Characters is the number of non-whitespace code points.
	Characters int `json:"characters"`

	// Syllables is the estimated syllable total across all words.
	Syllables int `json:"syllables"`

	// Polysyllables is the number of words with more than two syllables.
	Polysyllables int `json:"polysyllables"`
}

// Result is the outcome of one metric on one document.
type Result struct {
	// Metric is the formula that produced Score.
	Metric Metric `json:"metric"`

	// Score is the raw, unrounded formula output.
	Score float64 `json:"score"`

	// Age is the approximate reader age. Only meaningful when AgeDefined is true.
	Age int `json:"age,omitempty"`

	// AgeDefined is false when the rounded score falls outside the age table.
	AgeDefined bool `json:"age_defined"`
}

// Summary is the outcome of one selector dispatch.
type Summary struct {
	// Selector is the dispatch that produced the results.
	Selector Selector `json:"selector"`

	// Results holds one entry per evaluated metric, in evaluation order.
	Results []Result `json:"results"`

	// MeanAge is the arithmetic mean of the four ages for SelectAll.
	MeanAge float64 `json:"mean_age,omitempty"`

	// MeanDefined is true only for SelectAll when every age is defined.
	MeanDefined bool `json:"mean_defined"`
}

// Result returns the result for metric m, if it was evaluated.
func (s Summary) Result(m Metric) (Result, bool) {
	for _, r := range s.Results {
		if r.Metric == m {
			return r, true
		}
	}
	return Result{}, false
}
