package markov

import (
	"math"
	"sort"
)

// sampleWeighted chooses one token from a token -> count table, biased by
// temperature. Each count c is transformed to c^(1/temperature): values
// below 1 sharpen the distribution toward frequent tokens, 1 reproduces
// frequency-proportional sampling, and values above 1 flatten it toward
// uniform.
//
// Tokens are walked in sorted order so that, given a fixed random draw,
// the selection is deterministic. The draw r lies in [0, total); the
// first token whose running weight sum reaches r wins. If floating-point
// rounding exhausts the walk, the last token is the defined tie-break.
func sampleWeighted(counts map[string]int, temperature float64, rng func() float64) (string, error) {
	if len(counts) == 0 {
		return "", newValidationError("cannot sample from an empty transition table")
	}

	tokens := make([]string, 0, len(counts))
	for token := range counts {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	weights := make([]float64, len(tokens))
	var total float64
	for i, token := range tokens {
		w := math.Pow(float64(counts[token]), 1.0/temperature)
		weights[i] = w
		total += w
	}

	r := rng() * total
	var running float64
	for i, token := range tokens {
		running += weights[i]
		if running >= r {
			return token, nil
		}
	}

	return tokens[len(tokens)-1], nil
}
