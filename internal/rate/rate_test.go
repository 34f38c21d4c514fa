package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want float64
	}{
		{name: "simple fraction", expr: "1/128", want: 0.0078125},
		{name: "integer literal", expr: "42", want: 42},
		{name: "addition", expr: "1+2", want: 3},
		{name: "subtraction", expr: "10-4", want: 6},
		{name: "multiplication", expr: "3*7", want: 21},
		{name: "precedence", expr: "1+2*3", want: 7},
		{name: "parentheses", expr: "(1+2)*3", want: 9},
		{name: "nested parentheses", expr: "((3+1))/512", want: 0.0078125},
		{name: "whitespace", expr: " 1 / 128 ", want: 0.0078125},
		{name: "unary minus", expr: "-3+5", want: 2},
		{name: "decimal literal", expr: "0.5*4", want: 2},
		{name: "rounded to nine digits", expr: "1/3", want: 0.333333333},
		{name: "repeating division", expr: "2/3", want: 0.666666667},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEvaluateRejectsNonArithmetic(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "identifier", expr: "os.remove('x')"},
		{name: "function call", expr: "eval(1)"},
		{name: "bare name", expr: "Thieving"},
		{name: "empty", expr: ""},
		{name: "only spaces", expr: "   "},
		{name: "trailing garbage", expr: "1/128abc"},
		{name: "dangling operator", expr: "1+"},
		{name: "double dot literal", expr: "1.2.3"},
		{name: "unclosed paren", expr: "(1+2"},
		{name: "stray paren", expr: "1+2)"},
		{name: "division by zero", expr: "1/0"},
		{name: "quote", expr: "'1'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.expr)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidExpression)
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	first, err := Evaluate("(1+3)/512")
	require.NoError(t, err)
	for range 10 {
		again, err := Evaluate("(1+3)/512")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
