package markov

import (
	"strings"
	"testing"
)

// zeroRand is a stub random source that always draws 0, so every sampling
// step picks the first token in enumeration order. Tests use it to pin
// exact generation output.
func zeroRand() float64 { return 0 }

func newTestModel(t *testing.T, order int) *Model {
	t.Helper()
	m, err := NewModel(order)
	if err != nil {
		t.Fatalf("NewModel(%d) failed: %v", order, err)
	}
	return m
}

func newTrainedModel(t *testing.T, order int, text string) *Model {
	t.Helper()
	m := newTestModel(t, order)
	if err := m.Train(text); err != nil {
		t.Fatalf("setup: Train() failed: %v", err)
	}
	return m
}

// benchmarkCorpus builds a repetitive but branching corpus large enough
// for stable benchmark numbers.
func benchmarkCorpus() string {
	var sb strings.Builder
	sentences := []string{
		"the quick brown fox jumps over the lazy dog.",
		"the lazy dog sleeps under the old oak tree.",
		"a quick fox runs through the quiet forest!",
		"who watches the watchers watch the quiet forest?",
	}
	for i := 0; i < 250; i++ {
		sb.WriteString(sentences[i%len(sentences)])
		sb.WriteString(" ")
	}
	return sb.String()
}
