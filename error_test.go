package resyntax

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestCaret(t *testing.T) {
	cases := []struct {
		pattern  string
		pos      int
		expected string
	}{
		{"a(b", 1, " ^"},
		{"a(b", 0, "^"},
		{"\ta(b", 2, "\t ^"},
		{"日本(x", 2, "    ^"},
		{"ｘ(", 1, "  ^"},
		{"é(x", 2, " ^"},
		{"ab", 2, "  ^"},
	}
	for _, c := range cases {
		t.Run(c.pattern, func(t *testing.T) {
			err := &Error{Pos: c.pos, Kind: ErrorKind{Code: UnclosedParen}}
			expected := c.pattern + "\n" + c.expected + "\nerror: unclosed group: \"(\" without matching \")\""
			assert.Equal(t, err.Caret(c.pattern), expected)
		})
	}
}

func TestCaretAfterTab(t *testing.T) {
	flags := Flags{Unicode: true, IgnoreWhitespace: true}
	err := parseErr(t, "\t(a", flags)
	assert.Equal(t, err.Pos, 1)
	assert.Equal(t, err.Caret("\t(a"), "\t(a\n\t^\nerror: unclosed group: \"(\" without matching \")\"")
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, UnexpectedEscapeEof.String(), "UnexpectedEscapeEof")
	assert.Equal(t, EmptyClass.String(), "EmptyClass")
	assert.Equal(t, ErrorCode(0).String(), "ErrorCode(0)")
	assert.Equal(t, ErrorCode(200).String(), "ErrorCode(200)")
}
