package markov

import (
	"log/slog"
	"sort"
	"strings"
)

// GenerateOptions configures a single generation run. Construct it with
// DefaultGenerateOptions and override fields as needed; the zero value
// fails validation.
type GenerateOptions struct {
	// MinLength is the minimum number of tokens generated before a
	// sentence boundary may stop the run. Must be at least 1.
	MinLength int
	// MaxLength is the hard upper bound on generated tokens. Must be at
	// least MinLength.
	MaxLength int
	// Temperature scales sampling sharpness; see sampleWeighted. Must be
	// greater than 0.
	Temperature float64
	// EndOnSentence stops generation at the first sentence-ending token
	// once MinLength tokens have been produced.
	EndOnSentence bool
}

// DefaultGenerateOptions returns the documented option defaults:
// MinLength 10, MaxLength 50, Temperature 1.0, EndOnSentence true.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		MinLength:     10,
		MaxLength:     50,
		Temperature:   1.0,
		EndOnSentence: true,
	}
}

// Validate checks every option constraint and reports the first violation
// as a ValidationError naming the offending option.
func (o GenerateOptions) Validate() error {
	if o.MinLength < 1 {
		return newValidationError("minLength must be at least 1, got %d", o.MinLength)
	}
	if o.MaxLength < o.MinLength {
		return newValidationError("maxLength must be at least minLength (%d), got %d", o.MinLength, o.MaxLength)
	}
	if o.Temperature <= 0 {
		return newValidationError("temperature must be greater than 0, got %v", o.Temperature)
	}
	return nil
}

// Generate produces a token sequence by repeated weighted sampling over
// the transition table and returns it joined by single spaces.
//
// If startPhrase is non-empty it is case-normalized and matched against
// the trained keys; a phrase with no matching key fails with a
// ValidationError. An empty startPhrase selects a random start sequence.
// The seed n-gram always opens the output, so the result holds at least
// Order tokens. Generation stops at MaxLength, at a sentence boundary
// once MinLength is reached (when EndOnSentence is set), or at a key with
// no recorded continuation, whichever comes first. A dead-end key is
// normal termination, not an error.
func (m *Model) Generate(startPhrase string, opts GenerateOptions) (string, error) {
	if len(m.transitions) == 0 {
		return "", newValidationError("Model must be trained before generating text")
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}

	startKey, err := m.resolveStartKey(startPhrase)
	if err != nil {
		return "", err
	}

	generated := strings.Split(startKey, " ")
	currentKey := startKey

	for len(generated) < opts.MaxLength {
		successors, ok := m.transitions[currentKey]
		if !ok {
			m.logger.Debug("Generation terminated at a dead-end key",
				slog.String("last_key", currentKey),
				slog.Int("generated_length", len(generated)),
			)
			break
		}

		next, err := sampleWeighted(successors, opts.Temperature, m.rng)
		if err != nil {
			return "", coerceValidationError(err)
		}

		generated = append(generated, next)
		currentKey = strings.Join(generated[len(generated)-m.order:], " ")

		if opts.EndOnSentence && len(generated) >= opts.MinLength && m.tokenizer.EndsSentence(next) {
			break
		}
	}

	m.logger.Debug("Generation completed",
		slog.String("start_key", startKey),
		slog.Int("generated_length", len(generated)),
		slog.Int("max_length", opts.MaxLength),
	)

	return strings.Join(generated, " "), nil
}

// resolveStartKey picks the seed n-gram for a generation run.
//
// Start phrases are looked up case-insensitively: the lowercased phrase
// is first tried as an exact key, then matched against the stored keys in
// sorted order, since training preserves the casing of its input. With no
// phrase, a key is drawn uniformly from the recorded start sequences.
func (m *Model) resolveStartKey(startPhrase string) (string, error) {
	if startPhrase == "" {
		keys := make([]string, 0, len(m.startKeys))
		for key := range m.startKeys {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return keys[m.randIndex(len(keys))], nil
	}

	wanted := strings.ToLower(strings.TrimSpace(startPhrase))
	if _, ok := m.transitions[wanted]; ok {
		return wanted, nil
	}

	keys := make([]string, 0, len(m.transitions))
	for key := range m.transitions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.ToLower(key) == wanted {
			return key, nil
		}
	}

	return "", newValidationError("Start phrase not found in training data")
}

// randIndex draws a uniform index in [0, n) from the model's random
// source.
func (m *Model) randIndex(n int) int {
	i := int(m.rng() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
