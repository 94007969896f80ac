package sentiment

import (
	"context"
	_ "embed"
)

//go:embed data/pattern_polarity.txt
var patternLexiconRaw string

// negationPolarityFactor flips a negated polarity, dampened the way the
// reference pattern lexicon does ("not good" is mildly negative, not the
// mirror image of "good").
const negationPolarityFactor = -0.5

// intensifiers scale the polarity of the following lexicon word.
var intensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "extremely": 1.5, "incredibly": 1.5,
	"absolutely": 1.4, "totally": 1.3, "super": 1.4, "quite": 1.1,
	"pretty": 1.1, "fairly": 0.9, "somewhat": 0.7, "slightly": 0.6,
	"barely": 0.5, "rather": 1.1, "too": 1.2,
}

// PatternScorer averages the polarity of matched lexicon words, the way the
// pattern-based polarity tool does: each sentiment-bearing word contributes
// its polarity (scaled by intensifiers, flipped by negations) and the score
// is the mean contribution.
type PatternScorer struct {
	lexicon map[string]float64
}

// NewPatternScorer parses the embedded polarity lexicon.
func NewPatternScorer() (*PatternScorer, error) {
	lexicon, err := parseLexicon(patternLexiconRaw)
	if err != nil {
		return nil, err
	}
	return &PatternScorer{lexicon: lexicon}, nil
}

func (s *PatternScorer) Name() string { return "textblob" }

// Score returns the mean polarity of matched words in [-1, 1]. Text with no
// lexicon matches, including empty text, scores 0.
func (s *PatternScorer) Score(_ context.Context, text string) (float64, error) {
	tokens := tokenize(text)

	var sum float64
	var matched int
	for i, token := range tokens {
		polarity, ok := s.lexicon[token]
		if !ok {
			continue
		}
		if i > 0 {
			if scale, ok := intensifiers[tokens[i-1]]; ok {
				polarity *= scale
			}
		}
		if negatedAt(tokens, i) {
			polarity *= negationPolarityFactor
		}
		sum += polarity
		matched++
	}
	if matched == 0 {
		return 0, nil
	}
	return clamp(sum/float64(matched), -1, 1), nil
}

// negatedAt reports whether any of the two tokens before pos is a negation.
func negatedAt(tokens []string, pos int) bool {
	for back := 1; back <= 2 && pos-back >= 0; back++ {
		if isNegation(tokens[pos-back]) {
			return true
		}
	}
	return false
}
