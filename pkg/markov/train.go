package markov

import (
	"log/slog"
	"strings"
)

// Train tokenizes text and accumulates its n-gram transition statistics
// into the Model. Each overlapping window of Order tokens becomes a key
// whose following token is counted; keys followed by a sentence-ending
// token are recorded as end sequences, and the n-gram opening the text as
// well as the n-gram after each sentence terminator are recorded as start
// sequences.
//
// Training is cumulative, not deduplicating: training twice on the same
// text doubles every affected count. Validation happens before any
// mutation, so a failed call leaves the Model untouched.
func (m *Model) Train(text string) error {
	tokens, err := m.tokenizer.Tokenize(text)
	if err != nil {
		return err
	}
	if len(tokens) < m.order+1 {
		return newValidationError("training text must contain at least %d tokens for order %d, got %d", m.order+1, m.order, len(tokens))
	}

	m.totalTokens += len(tokens)
	m.startKeys[strings.Join(tokens[:m.order], " ")] = struct{}{}

	for i := 0; i+m.order < len(tokens); i++ {
		key := strings.Join(tokens[i:i+m.order], " ")
		next := tokens[i+m.order]

		if m.tokenizer.EndsSentence(next) {
			m.endKeys[key] = struct{}{}
			// The n-gram opening the following sentence is a valid
			// generation start, same as the n-gram opening the text.
			if i+m.order+1+m.order <= len(tokens) {
				m.startKeys[strings.Join(tokens[i+m.order+1:i+m.order+1+m.order], " ")] = struct{}{}
			}
		}

		successors, ok := m.transitions[key]
		if !ok {
			successors = make(map[string]int)
			m.transitions[key] = successors
		}
		successors[next]++
	}

	m.logger.Debug("Training pass completed",
		slog.Int("tokens", len(tokens)),
		slog.Int("vocabulary_size", len(m.transitions)),
		slog.Int("total_tokens", m.totalTokens),
	)

	return nil
}
