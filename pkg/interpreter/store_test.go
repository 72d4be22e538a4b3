package interpreter_test

import (
	"errors"
	"kizhi/pkg/interpreter"
	"testing"
)

func TestStoreSub(t *testing.T) {
	tests := []struct {
		start       map[string]int
		sub         int
		present     bool
		expected    error
		value       int
		description string
	}{
		{map[string]int{"x": 5}, 2, true, nil, 3, "plain decrement"},
		{map[string]int{"x": 5}, 5, true, nil, 0, "down to zero"},
		{map[string]int{"x": 5}, 6, true, interpreter.ErrUnderflow, 5, "underflow keeps value"},
		{map[string]int{}, 0, false, nil, 0, "absent name by zero"},
		{map[string]int{}, 3, false, nil, 0, "absent name"},
	}

	for _, test := range tests {
		s := interpreter.NewStore()
		for name, v := range test.start {
			s.Set(name, v)
		}

		present, err := s.Sub("x", test.sub)
		if present != test.present {
			t.Errorf("%s: expected present %v, got %v", test.description, test.present, present)
		}
		if !errors.Is(err, test.expected) {
			t.Errorf("%s: expected error %v, got %v", test.description, test.expected, err)
		}

		v, ok := s.Get("x")
		if ok != test.present {
			t.Errorf("%s: Sub must not create or drop x, present %v", test.description, ok)
		}
		if v != test.value {
			t.Errorf("%s: expected x = %d, got %d", test.description, test.value, v)
		}
	}
}
