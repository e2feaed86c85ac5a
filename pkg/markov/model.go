package markov

import (
	"io"
	"log/slog"
	"math/rand/v2"
)

const (
	// MinOrder is the smallest chain order accepted by NewModel.
	MinOrder = 1
	// MaxOrder is the largest chain order accepted by NewModel.
	MaxOrder = 5
)

// Model holds the transition statistics of a fixed-order Markov chain.
// It is the main entry point for the library: text is fed in with Train
// and new text is sampled out with Generate.
//
// A Model is exclusively owned by its creator. Its maps and sets only
// grow for the lifetime of the value; nothing is ever deleted. Train
// mutates shared state and Generate reads it without snapshot isolation,
// so concurrent use on one Model must be serialized by the caller.
type Model struct {
	order       int
	transitions map[string]map[string]int
	startKeys   map[string]struct{}
	endKeys     map[string]struct{}
	totalTokens int

	tokenizer Tokenizer
	rng       func() float64
	logger    *slog.Logger
}

// NewModel creates an empty Model with the given chain order. The order
// is fixed for the lifetime of the Model and must lie in
// [MinOrder, MaxOrder]; anything else fails with a ValidationError.
func NewModel(order int) (*Model, error) {
	if order < MinOrder || order > MaxOrder {
		return nil, newValidationError("order must be an integer between %d and %d, got %d", MinOrder, MaxOrder, order)
	}
	return &Model{
		order:       order,
		transitions: make(map[string]map[string]int),
		startKeys:   make(map[string]struct{}),
		endKeys:     make(map[string]struct{}),
		tokenizer:   NewDefaultTokenizer(),
		rng:         rand.Float64,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Order returns the fixed chain order set at construction.
func (m *Model) Order() int { return m.order }

// TotalTokens returns the running count of tokens ingested across all
// training calls. It is monotonic and never reset.
func (m *Model) TotalTokens() int { return m.totalTokens }

// Successors returns a copy of the next-token frequency table recorded
// for the given n-gram key, or nil if the key was never observed.
func (m *Model) Successors(key string) map[string]int {
	successors, ok := m.transitions[key]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(successors))
	for token, count := range successors {
		out[token] = count
	}
	return out
}

// SetLogger sets the logger for the Model. By default, all logs are
// discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// SetRandSource replaces the uniform [0,1) random source used for start
// selection and weighted sampling. It defaults to math/rand/v2. Supplying
// a fixed source makes generation fully deterministic, which is how the
// package tests pin expected output.
func (m *Model) SetRandSource(rng func() float64) {
	if rng != nil {
		m.rng = rng
	}
}

// SetTokenizer replaces the tokenizer used by Train. The default is
// NewDefaultTokenizer(). Swapping tokenizers after training has begun is
// allowed but keys recorded under the old tokenization remain.
func (m *Model) SetTokenizer(tokenizer Tokenizer) {
	if tokenizer != nil {
		m.tokenizer = tokenizer
	}
}
