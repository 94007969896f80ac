package sentiment

import (
	"context"
	_ "embed"
	"math"
)

//go:embed data/vader_lexicon.txt
var vaderLexiconRaw string

const (
	// vaderAlpha normalizes the summed valence into [-1, 1], matching the
	// compound-score normalization of the reference tool.
	vaderAlpha = 15.0
	// negationDampener flips and dampens a negated valence.
	negationDampener = -0.74
	// boosterIncrement is the valence adjustment contributed by an
	// intensifier ("very good") or dampener ("slightly bad").
	boosterIncrement = 0.293
	// contextWindow is how many preceding tokens are checked for negations
	// and boosters.
	contextWindow = 3
)

// boosters adjust the intensity of a following sentiment-bearing word.
// Positive entries intensify, negative entries dampen.
var boosters = map[string]float64{
	"absolutely": 1, "amazingly": 1, "completely": 1, "considerably": 1,
	"decidedly": 1, "deeply": 1, "especially": 1, "exceptionally": 1,
	"extremely": 1, "greatly": 1, "highly": 1, "hugely": 1, "incredibly": 1,
	"majorly": 1, "really": 1, "remarkably": 1, "so": 1, "substantially": 1,
	"thoroughly": 1, "totally": 1, "tremendously": 1, "unbelievably": 1,
	"utterly": 1, "very": 1,
	"almost": -1, "barely": -1, "hardly": -1, "kinda": -1, "kind": -1,
	"less": -1, "little": -1, "marginally": -1, "occasionally": -1,
	"partly": -1, "scarcely": -1, "slightly": -1, "somewhat": -1,
	"sort": -1, "sorta": -1,
}

// VaderScorer is a rule-enhanced lexicon scorer producing a compound-style
// polarity in [-1, 1]. The lexicon is loaded once at construction and shared
// read-only across all calls.
type VaderScorer struct {
	lexicon map[string]float64
}

// NewVaderScorer parses the embedded valence lexicon. A parse failure means
// the binary shipped with broken assets and should abort startup.
func NewVaderScorer() (*VaderScorer, error) {
	lexicon, err := parseLexicon(vaderLexiconRaw)
	if err != nil {
		return nil, err
	}
	return &VaderScorer{lexicon: lexicon}, nil
}

func (s *VaderScorer) Name() string { return "vader" }

// Score sums lexicon valences, adjusted for preceding boosters and negations,
// and squashes the total into [-1, 1]. Empty or unmatched text scores 0.
func (s *VaderScorer) Score(_ context.Context, text string) (float64, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0, nil
	}

	var total float64
	for i, token := range tokens {
		valence, ok := s.lexicon[token]
		if !ok {
			continue
		}
		total += s.adjustValence(valence, tokens, i)
	}
	if total == 0 {
		return 0, nil
	}

	compound := total / math.Sqrt(total*total+vaderAlpha)
	return clamp(compound, -1, 1), nil
}

// adjustValence applies booster and negation context from the preceding
// window to a base valence.
func (s *VaderScorer) adjustValence(valence float64, tokens []string, pos int) float64 {
	for back := 1; back <= contextWindow && pos-back >= 0; back++ {
		prev := tokens[pos-back]
		if direction, ok := boosters[prev]; ok {
			boost := direction * boosterIncrement
			if valence < 0 {
				boost = -boost
			}
			// Boosters further away contribute less.
			valence += boost * (1 - 0.25*float64(back-1))
		}
		if isNegation(prev) {
			valence *= negationDampener
		}
	}
	return valence
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
