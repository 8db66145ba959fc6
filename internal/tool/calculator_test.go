package tool

import (
	"context"
	"strings"
	"testing"
)

func calcRun(t *testing.T, expr string) Result {
	t.Helper()
	res, err := NewCalculator().Execute(context.Background(), map[string]any{"expression": expr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res
}

func TestCalculator_Evaluate(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"2 + 2", "4"},
		{"2 + 2 * 3", "8"},
		{"(2 + 2) * 3", "12"},
		{"(10 + 5) ** 2", "225"},
		{"10 / 4", "2.5"},
		{"-3 + 5", "2"},
		{"7 % 3", "1"},
		{"2 ** 3 ** 2", "512"}, // right-associative
		{"-(2 + 3)", "-5"},
		{"1.5 * 2", "3"},
		{"0.1 + 0.2", "0.30000000000000004"}, // float arithmetic, reported as-is
		{"  42  ", "42"},
	}

	for _, tc := range cases {
		res := calcRun(t, tc.expr)
		if !res.Success {
			t.Errorf("%q: unexpected failure: %s", tc.expr, res.Error)
			continue
		}
		if res.Output != tc.want {
			t.Errorf("%q: expected %s, got %s", tc.expr, tc.want, res.Output)
		}
	}
}

func TestCalculator_DivisionByZero(t *testing.T) {
	res := calcRun(t, "1 / 0")
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "division by zero") {
		t.Errorf("expected division by zero error, got %q", res.Error)
	}
}

func TestCalculator_ModuloByZero(t *testing.T) {
	if res := calcRun(t, "5 % 0"); res.Success {
		t.Error("expected failure")
	}
}

func TestCalculator_SyntaxErrors(t *testing.T) {
	for _, expr := range []string{"2 +", "(1 + 2", "2 2", "hello", "", "1 + * 2"} {
		if res := calcRun(t, expr); res.Success {
			t.Errorf("%q: expected failure, got output %s", expr, res.Output)
		}
	}
}

func TestCalculator_MissingExpression(t *testing.T) {
	res, err := NewCalculator().Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "expression") {
		t.Errorf("expected missing-parameter error, got %q", res.Error)
	}
}

func TestCalculator_NonStringExpression(t *testing.T) {
	res, err := NewCalculator().Execute(context.Background(), map[string]any{"expression": 42.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Error("expected failure for non-string expression")
	}
}

func TestCalculator_Schema(t *testing.T) {
	schema := Schema(NewCalculator())
	required, ok := schema.Parameters["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "expression" {
		t.Errorf("expected expression required, got %v", schema.Parameters["required"])
	}
}
