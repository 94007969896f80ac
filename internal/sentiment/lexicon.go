package sentiment

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// parseLexicon reads an embedded "term<TAB>value" lexicon file. Blank lines
// and lines starting with '#' are skipped. A malformed line is a packaging
// defect, reported so startup can fail fast.
func parseLexicon(raw string) (map[string]float64, error) {
	lexicon := make(map[string]float64)
	scanner := bufio.NewScanner(strings.NewReader(raw))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		term, value, found := strings.Cut(text, "\t")
		if !found {
			return nil, fmt.Errorf("lexicon line %d: missing tab separator", line)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		lexicon[strings.ToLower(strings.TrimSpace(term))] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	if len(lexicon) == 0 {
		return nil, fmt.Errorf("lexicon is empty")
	}
	return lexicon, nil
}

// tokenize lowercases the text and splits it into word tokens, keeping
// apostrophes inside words (don't, can't) and dropping everything else.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// negations flip the valence of a nearby sentiment-bearing word.
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "none": true, "neither": true,
	"nor": true, "cannot": true, "can't": true, "won't": true, "don't": true,
	"doesn't": true, "didn't": true, "isn't": true, "wasn't": true,
	"aren't": true, "couldn't": true, "shouldn't": true, "wouldn't": true,
	"hardly": true, "barely": true, "without": true,
}

func isNegation(token string) bool { return negations[token] }
