package markov

import (
	"reflect"
	"testing"
)

func TestNewModel(t *testing.T) {
	for order := MinOrder; order <= MaxOrder; order++ {
		m, err := NewModel(order)
		if err != nil {
			t.Errorf("NewModel(%d): expected no error, got %v", order, err)
			continue
		}
		if m.Order() != order {
			t.Errorf("NewModel(%d): Order() = %d", order, m.Order())
		}
	}

	for _, order := range []int{-1, 0, 6, 100} {
		_, err := NewModel(order)
		if err == nil {
			t.Errorf("NewModel(%d): expected an error, got nil", order)
			continue
		}
		if !IsValidationError(err) {
			t.Errorf("NewModel(%d): expected a ValidationError, got %v", order, err)
		}
	}
}

func TestSuccessors(t *testing.T) {
	m := newTrainedModel(t, 1, "a b a c")

	got := m.Successors("a")
	want := map[string]int{"b": 1, "c": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Successors(\"a\") = %v, want %v", got, want)
	}

	if m.Successors("unseen") != nil {
		t.Error("expected nil for an unseen key")
	}

	// The returned table is a copy; writes must not reach the model.
	got["b"] = 99
	if m.Successors("a")["b"] != 1 {
		t.Error("mutating the returned successor table leaked into the model")
	}
}

func TestSettersIgnoreNil(t *testing.T) {
	m := newTestModel(t, 1)
	m.SetLogger(nil)
	m.SetRandSource(nil)
	m.SetTokenizer(nil)

	if err := m.Train("still works fine."); err != nil {
		t.Fatalf("Train() after nil setters failed: %v", err)
	}
	if _, err := m.Generate("", DefaultGenerateOptions()); err != nil {
		t.Fatalf("Generate() after nil setters failed: %v", err)
	}
}
