package markov

import (
	"strings"
	"testing"
)

func TestGenerateRequiresTraining(t *testing.T) {
	m := newTestModel(t, 2)

	_, err := m.Generate("", DefaultGenerateOptions())
	if err == nil {
		t.Fatal("expected an error from an untrained model, got nil")
	}
	if !IsValidationError(err) {
		t.Errorf("expected a ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "must be trained") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestGenerateOptionValidation(t *testing.T) {
	m := newTrainedModel(t, 1, "a b c d e.")

	testCases := []struct {
		name          string
		mutate        func(*GenerateOptions)
		errorContains string
	}{
		{
			name:          "minLength below 1",
			mutate:        func(o *GenerateOptions) { o.MinLength = 0 },
			errorContains: "minLength",
		},
		{
			name:          "maxLength below minLength",
			mutate:        func(o *GenerateOptions) { o.MaxLength = 5 },
			errorContains: "maxLength",
		},
		{
			name:          "temperature zero",
			mutate:        func(o *GenerateOptions) { o.Temperature = 0 },
			errorContains: "temperature",
		},
		{
			name:          "temperature negative",
			mutate:        func(o *GenerateOptions) { o.Temperature = -0.5 },
			errorContains: "temperature",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultGenerateOptions()
			tc.mutate(&opts)

			_, err := m.Generate("", opts)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !IsValidationError(err) {
				t.Errorf("expected a ValidationError, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.errorContains) {
				t.Errorf("expected error to contain %q, got %q", tc.errorContains, err.Error())
			}
		})
	}
}

func TestGenerateFromStartPhrase(t *testing.T) {
	m := newTrainedModel(t, 1, "This is a test.")

	opts := DefaultGenerateOptions()
	opts.MinLength = 1
	opts.EndOnSentence = false

	output, err := m.Generate("This", opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.HasPrefix(output, "This") {
		t.Errorf("expected output to begin with the start phrase, got %q", output)
	}
	// Every key has a single successor, so the whole walk is forced.
	if output != "This is a test." {
		t.Errorf("Generate() = %q, want %q", output, "This is a test.")
	}
}

func TestGenerateStartPhraseNotFound(t *testing.T) {
	m := newTrainedModel(t, 1, "This is a test.")

	_, err := m.Generate("purple monkey", DefaultGenerateOptions())
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !strings.Contains(err.Error(), "Start phrase not found in training data") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestGenerateCaseInsensitiveStartPhrase(t *testing.T) {
	m := newTrainedModel(t, 2, "The quick brown fox jumps over the lazy dog.")
	m.SetRandSource(zeroRand)

	opts := DefaultGenerateOptions()
	opts.MinLength = 1
	opts.EndOnSentence = false

	output, err := m.Generate("THE QUICK", opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// The matched key keeps its training-time casing.
	if output != "The quick brown fox jumps over the lazy dog." {
		t.Errorf("Generate() = %q", output)
	}
}

func TestGenerateDeterministicWithZeroDraw(t *testing.T) {
	m := newTrainedModel(t, 1, "a b. a c.")
	m.SetRandSource(zeroRand)

	opts := DefaultGenerateOptions()
	opts.MinLength = 1
	opts.MaxLength = 5
	opts.EndOnSentence = false

	output, err := m.Generate("", opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// Start key "a", then always the first sorted successor: "b." over "c.".
	if output != "a b. a b. a" {
		t.Errorf("Generate() = %q, want %q", output, "a b. a b. a")
	}
}

func TestGenerateEndOnSentence(t *testing.T) {
	m := newTrainedModel(t, 1, "a b. a c.")
	m.SetRandSource(zeroRand)

	opts := DefaultGenerateOptions()
	opts.MinLength = 1
	opts.EndOnSentence = true

	output, err := m.Generate("", opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if output != "a b." {
		t.Errorf("Generate() = %q, want %q", output, "a b.")
	}
}

func TestGenerateMinLengthDefersSentenceStop(t *testing.T) {
	m := newTrainedModel(t, 1, "a b. a b. a b.")
	m.SetRandSource(zeroRand)

	opts := DefaultGenerateOptions()
	opts.MinLength = 4
	opts.MaxLength = 10
	opts.EndOnSentence = true

	output, err := m.Generate("", opts)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// "a b." at length 2 is below MinLength, so the walk continues to the
	// next sentence boundary.
	if output != "a b. a b." {
		t.Errorf("Generate() = %q, want %q", output, "a b. a b.")
	}
}

func TestGenerateLengthBounds(t *testing.T) {
	m := newTrainedModel(t, 2,
		"The quick brown fox jumps over the lazy dog. The dog barks at the fox. The fox runs away quickly.")

	opts := DefaultGenerateOptions()
	opts.MinLength = 1
	opts.MaxLength = 8
	opts.EndOnSentence = false

	for i := 0; i < 25; i++ {
		output, err := m.Generate("", opts)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		tokens := strings.Fields(output)
		if len(tokens) > opts.MaxLength {
			t.Fatalf("generated %d tokens, above MaxLength %d: %q", len(tokens), opts.MaxLength, output)
		}
		if len(tokens) < m.Order() {
			t.Fatalf("generated %d tokens, below the order %d seed: %q", len(tokens), m.Order(), output)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	m, err := NewModel(2)
	if err != nil {
		b.Fatalf("NewModel failed: %v", err)
	}
	if err := m.Train(benchmarkCorpus()); err != nil {
		b.Fatalf("Train() setup for benchmark failed: %v", err)
	}

	genOpts := map[string]GenerateOptions{
		"Defaults": DefaultGenerateOptions(),
		"Sharp":    {MinLength: 1, MaxLength: 50, Temperature: 0.5, EndOnSentence: false},
		"Flat":     {MinLength: 1, MaxLength: 50, Temperature: 2.0, EndOnSentence: false},
	}

	for name, opts := range genOpts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s, err := m.Generate("", opts)
				if err != nil {
					b.Fatalf("Generate() failed: %v", err)
				}
				b.SetBytes(int64(len(s)))
			}
		})
	}
}
