package interpreter_test

import (
	"errors"
	"kizhi/pkg/interpreter"
	"testing"
)

func loadBlocks(t *testing.T, it *interpreter.Interpreter, blocks ...string) error {
	t.Helper()
	if err := it.ExecuteLine("set code"); err != nil {
		t.Fatal(err)
	}

	for _, block := range blocks {
		if err := it.ExecuteLine(block); err != nil {
			return err
		}
	}

	return it.ExecuteLine("end set code")
}

func TestFunctionIndicesAreAbsolute(t *testing.T) {
	it, _ := newTestInterpreter()
	if err := loadBlocks(t, it, "set a 1\ndef first\n    print a", "def second\n    print a"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	expected := map[string]int{"first": 1, "second": 3}
	funcs := it.Functions()
	for name, idx := range expected {
		if funcs[name] != idx {
			t.Errorf("function %s: expected index %d, got %d", name, idx, funcs[name])
		}
	}
	if n := len(it.Lines()); n != 5 {
		t.Errorf("expected 5 lines, got %d", n)
	}
}

func TestFunctionDefinitionDetection(t *testing.T) {
	tests := []struct {
		code        string
		expected    map[string]int
		description string
	}{
		{"def f", map[string]int{"f": 0}, "bare def"},
		{"def   f  extra", map[string]int{"f": 0}, "extra spacing and tokens"},
		{"define f", map[string]int{}, "keyword prefix only"},
		{"    def f", map[string]int{}, "indented def"},
		{"print a\ndef g\n    print a", map[string]int{"g": 1}, "def after a statement"},
	}

	for _, test := range tests {
		it, _ := newTestInterpreter()
		if err := loadBlocks(t, it, test.code); err != nil {
			t.Errorf("%s: unexpected error %v", test.description, err)
			continue
		}

		funcs := it.Functions()
		if len(funcs) != len(test.expected) {
			t.Errorf("%s: expected %v, got %v", test.description, test.expected, funcs)
			continue
		}
		for name, idx := range test.expected {
			if got, ok := funcs[name]; !ok || got != idx {
				t.Errorf("%s: expected %s at %d, got %d (%v)", test.description, name, idx, got, ok)
			}
		}
	}
}

func TestDuplicateFunctionName(t *testing.T) {
	tests := []struct {
		blocks      []string
		description string
	}{
		{[]string{"def f\n    print a\ndef f\n    print b"}, "same block"},
		{[]string{"def f\n    print a", "def f\n    print b"}, "later block"},
	}

	for _, test := range tests {
		it, _ := newTestInterpreter()
		err := loadBlocks(t, it, test.blocks...)
		if !errors.Is(err, interpreter.ErrDuplicateName) {
			t.Errorf("%s: expected ErrDuplicateName, got %v", test.description, err)
			continue
		}

		// the failing block is not appended
		expectedLines := 0
		if len(test.blocks) > 1 {
			expectedLines = 2
		}
		if n := len(it.Lines()); n != expectedLines {
			t.Errorf("%s: expected %d lines after rejected block, got %d", test.description, expectedLines, n)
		}
	}
}

func TestRedefinitionAllowed(t *testing.T) {
	it, out := newTestInterpreter(interpreter.WithRedefinition(true))
	if err := loadBlocks(t, it, "def f\n    print a", "def f\n    print b\nset b 8\ncall f"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if idx := it.Functions()["f"]; idx != 2 {
		t.Errorf("expected later definition at 2, got %d", idx)
	}
	if err := it.ExecuteLine("run"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "8\n" {
		t.Errorf("expected the later body to run, got %q", out.String())
	}
}

func TestDefWithoutName(t *testing.T) {
	it, _ := newTestInterpreter()
	err := loadBlocks(t, it, "set a 1\ndef")
	if !errors.Is(err, interpreter.ErrMalformedStatement) {
		t.Fatalf("expected ErrMalformedStatement, got %v", err)
	}
	if n := len(it.Lines()); n != 0 {
		t.Errorf("expected rejected block to leave no lines, got %d", n)
	}
}

func TestCRLFSource(t *testing.T) {
	it, out := newTestInterpreter()
	if err := runProgram(t, it, "set a 5\r\ndef test\r\n    print a\r\ncall test\r\n"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if out.String() != "5\n" {
		t.Errorf("expected %q, got %q", "5\n", out.String())
	}
}
