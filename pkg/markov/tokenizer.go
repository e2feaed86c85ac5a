package markov

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Tokenizer is an interface that defines the contract for splitting raw
// training text into tokens. This keeps the core model logic independent
// of the specific tokenization strategy.
type Tokenizer interface {
	// Tokenize converts raw text into an ordered token sequence. It fails
	// with a ValidationError when the input is empty or whitespace-only.
	Tokenize(text string) ([]string, error)
	// EndsSentence reports whether a token terminates a sentence.
	EndsSentence(token string) bool
}

// DefaultTokenizer is the default implementation of the Tokenizer
// interface. It collapses runs of whitespace, detaches sentence-ending
// punctuation from any text that follows it, and splits on whitespace.
// Punctuation stays fused to the preceding word when no space separated
// them, so some tokens end with a sentence terminator.
type DefaultTokenizer struct {
	enders          string
	whitespaceRegex *regexp.Regexp
	enderRegex      *regexp.Regexp
}

// TokenizerOption is a function that configures a DefaultTokenizer.
type TokenizerOption func(*DefaultTokenizer)

// WithSentenceEnders sets the characters treated as sentence terminators.
// Default: ".!?"
func WithSentenceEnders(enders string) TokenizerOption {
	return func(t *DefaultTokenizer) {
		t.enders = enders
		t.enderRegex = regexp.MustCompile("([" + regexp.QuoteMeta(enders) + "])")
	}
}

// NewDefaultTokenizer creates a tokenizer with default settings, which can
// be overridden by providing one or more TokenizerOption functions.
func NewDefaultTokenizer(opts ...TokenizerOption) *DefaultTokenizer {
	t := &DefaultTokenizer{
		enders:          ".!?",
		whitespaceRegex: regexp.MustCompile(`\s+`),
		enderRegex:      regexp.MustCompile(`([.!?])`),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Tokenize normalizes and splits text into tokens. It returns a
// ValidationError for empty or whitespace-only input.
func (t *DefaultTokenizer) Tokenize(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, newValidationError("training text must be a non-empty string")
	}

	normalized := t.whitespaceRegex.ReplaceAllString(text, " ")
	// A trailing space after each terminator splits "end.Start" into
	// "end." and "Start" while leaving "end." itself intact.
	normalized = t.enderRegex.ReplaceAllString(normalized, "$1 ")

	return strings.Fields(strings.TrimSpace(normalized)), nil
}

// EndsSentence reports whether the token's last rune is a sentence
// terminator.
func (t *DefaultTokenizer) EndsSentence(token string) bool {
	if token == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(token)
	return strings.ContainsRune(t.enders, last)
}
