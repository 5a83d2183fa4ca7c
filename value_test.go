package varconf

import (
	"errors"
	"testing"
)

func newValueParser() *valueParser {
	return &valueParser{maxDepth: DefaultMaxDepth, refs: true}
}

func TestValueParser_Composite(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
	}{
		{"'(1 2 3)", Array{Integer(1), Integer(2), Integer(3)}},
		{"'( )", Array{}},
		{"'(a true \"x y\" -1)", Array{String("a"), Boolean(true), String("x y"), Integer(-1)}},
		{"'('(1) '(2 3))", Array{Array{Integer(1)}, Array{Integer(2), Integer(3)}}},
		{"(1 (2))", Array{Integer(1), Array{Integer(2)}}},
		{"table([ a = 1 , b = x ])", tableOf("a", Integer(1), "b", String("x"))},
		{"table( [a = 1] )", tableOf("a", Integer(1))},
		{"table([a = 1, a = 2])", tableOf("a", Integer(2))},
		{"table([s = \"a=b, c\"])", tableOf("s", String("a=b, c"))},
		{
			"table([inner = table([deep = '(x)])])",
			tableOf("inner", tableOf("deep", Array{String("x")})),
		},
		{"'(table([a = 1]) table([a = 2]))", Array{tableOf("a", Integer(1)), tableOf("a", Integer(2))}},
	}

	for _, test := range tests {
		result, err := newValueParser().parse(test.input, 0)
		if err != nil {
			t.Errorf("parse(%s) failed: %v", test.input, err)
			continue
		}
		if !Equal(result, test.expected) {
			t.Errorf("parse(%s): expected %#v, got %#v", test.input, test.expected, result)
		}
	}
}

func TestValueParser_TableKeyOrder(t *testing.T) {
	result, err := newValueParser().parse("table([z = 1, a = 2, m = 3])", 0)
	if err != nil {
		t.Fatalf("parse() failed: %v", err)
	}
	keys := result.(*Table).Keys()
	expected := []string{"z", "a", "m"}
	for i, key := range expected {
		if keys[i] != key {
			t.Errorf("Expected key[%d] '%s', got '%s'", i, key, keys[i])
		}
	}
}

func TestValueParser_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"'(1 2", ErrUnterminatedComposite},
		{"'(1 2]", ErrUnterminatedComposite},
		{"table([a = 1)", ErrUnterminatedComposite},
		{"table([a = 1]", ErrUnterminatedComposite},
		{"table(a = 1)", ErrInvalidScalar},
		{"table([a = 1] b)", ErrInvalidScalar},
		{"table([a = 1]) c", ErrInvalidScalar},
		{"table([a])", ErrInvalidName},
		{"table([\"a\" = 1])", ErrInvalidName},
		{"'(1 @)", ErrInvalidScalar},
		{"", ErrInvalidScalar},
	}

	for _, test := range tests {
		_, err := newValueParser().parse(test.input, 0)
		if !errors.Is(err, test.want) {
			t.Errorf("parse(%q): expected %v, got %v", test.input, test.want, err)
		}
	}
}

func TestValueParser_Depth(t *testing.T) {
	vp := &valueParser{maxDepth: 2, refs: true}

	if _, err := vp.parse("table([a = '(1)])", 0); err != nil {
		t.Errorf("Expected two levels to parse, got %v", err)
	}
	if _, err := vp.parse("table([a = '('(1))])", 0); !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("Expected ErrNestingTooDeep, got %v", err)
	}
}
