package readability

import (
	"fmt"
	"math"

	"github.com/nao1215/readscore/internal/model"
)

// Formula coefficients. Divisions use float64 and nothing is rounded here.
const (
	ariCharsPerWord     = 4.71
	ariWordsPerSentence = 0.5
	ariOffset           = 21.43

	fkWordsPerSentence = 0.39
	fkSyllablesPerWord = 11.8
	fkOffset           = 15.59

	smogFactor     = 1.043
	smogSampleSize = 30.0
	smogOffset     = 3.1291

	clLetters   = 0.0588
	clSentences = 0.296
	clOffset    = 15.8
)

// ARI computes 4.71*(C/W) + 0.5*(W/St) - 21.43.
func ARI(c model.Counts) float64 {
	chars := float64(c.Characters)
	words := float64(c.Words)
	sentences := float64(c.Sentences)
	return ariCharsPerWord*(chars/words) + ariWordsPerSentence*(words/sentences) - ariOffset
}

// FleschKincaid computes 0.39*(W/St) + 11.8*(Syl/W) - 15.59.
func FleschKincaid(c model.Counts) float64 {
	words := float64(c.Words)
	sentences := float64(c.Sentences)
	syllables := float64(c.Syllables)
	return fkWordsPerSentence*(words/sentences) + fkSyllablesPerWord*(syllables/words) - fkOffset
}

// SMOG computes 1.043*sqrt(Poly*30/St) + 3.1291.
func SMOG(c model.Counts) float64 {
	poly := float64(c.Polysyllables)
	sentences := float64(c.Sentences)
	return smogFactor*math.Sqrt(poly*smogSampleSize/sentences) + smogOffset
}

// ColemanLiau computes 0.0588*L - 0.296*S - 15.8 where L is characters per
// hundred words and S is sentences per hundred words.
func ColemanLiau(c model.Counts) float64 {
	words := float64(c.Words)
	l := float64(c.Characters) / words * 100
	s := float64(c.Sentences) / words * 100
	return clLetters*l - clSentences*s - clOffset
}

// Compute evaluates metric m over c.
// It returns ErrDegenerateInput when c has no words or no sentences.
func Compute(m model.Metric, c model.Counts) (float64, error) {
	if err := checkCounts(c); err != nil {
		return 0, err
	}
	switch m {
	case model.MetricARI:
		return ARI(c), nil
	case model.MetricFK:
		return FleschKincaid(c), nil
	case model.MetricSMOG:
		return SMOG(c), nil
	case model.MetricCL:
		return ColemanLiau(c), nil
	default:
		return 0, fmt.Errorf("%w: metric %d", model.ErrUnrecognizedSelector, int(m))
	}
}

func checkCounts(c model.Counts) error {
	if c.Words <= 0 || c.Sentences <= 0 {
		return fmt.Errorf("%w: words=%d sentences=%d", ErrDegenerateInput, c.Words, c.Sentences)
	}
	return nil
}
