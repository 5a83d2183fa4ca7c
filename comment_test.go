package varconf

import (
	"errors"
	"reflect"
	"testing"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		input  string
		lines  []string
		origin []int
	}{
		{"a = 1", []string{"a = 1"}, []int{1}},
		{"a = <# note #>1", []string{"a = 1"}, []int{1}},
		{"<# one\ntwo #>a = 1\nb = 2", []string{"a = 1", "b = 2"}, []int{1, 3}},
		{"a <# x #> b <# y #> c", []string{"a  b  c"}, []int{1}},
		{"a = 1\r\nb = 2", []string{"a = 1", "b = 2"}, []int{1, 2}},
		{"x = \"<# not special? #>\"", []string{"x = \"\""}, []int{1}},
	}

	for _, test := range tests {
		src, err := stripComments(test.input)
		if err != nil {
			t.Errorf("stripComments(%q) failed: %v", test.input, err)
			continue
		}
		if !reflect.DeepEqual(src.lines, test.lines) {
			t.Errorf("stripComments(%q): expected lines %q, got %q", test.input, test.lines, src.lines)
		}
		if !reflect.DeepEqual(src.origin, test.origin) {
			t.Errorf("stripComments(%q): expected origins %v, got %v", test.input, test.origin, src.origin)
		}
	}
}

func TestStripComments_Unterminated(t *testing.T) {
	_, err := stripComments("a = 1\nb = 2 <# never\nclosed")
	if !errors.Is(err, ErrUnterminatedComment) {
		t.Fatalf("Expected ErrUnterminatedComment, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Line != 2 {
		t.Errorf("Expected error on line 2, got %v", err)
	}
}
