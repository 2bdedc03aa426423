package resyntax

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestParseFlags(t *testing.T) {
	cases := []struct {
		letters  string
		expected Flags
	}{
		{"", Flags{}},
		{"u", DefaultFlags},
		{"imsUxu", Flags{
			CaseInsensitive:   true,
			Multiline:         true,
			DotMatchesNewline: true,
			SwapGreed:         true,
			IgnoreWhitespace:  true,
			Unicode:           true,
		}},
		{"xi", Flags{CaseInsensitive: true, IgnoreWhitespace: true}},
	}
	for _, c := range cases {
		t.Run(c.letters, func(t *testing.T) {
			flags, err := ParseFlags(c.letters)
			assert.NilError(t, err)
			assert.DeepEqual(t, flags, c.expected)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	_, err := ParseFlags("iz")
	assert.DeepEqual(t, err, error(&FlagsError{Letter: 'z'}))
	assert.Error(t, err, `resyntax: invalid flag 'z'`)

	_, err = ParseFlags("imi")
	assert.DeepEqual(t, err, error(&FlagsError{Letter: 'i', Duplicate: true}))
	assert.Error(t, err, `resyntax: duplicate flag 'i'`)
}

func TestFlagsString(t *testing.T) {
	assert.Equal(t, Flags{}.String(), "")
	assert.Equal(t, DefaultFlags.String(), "u")
	assert.Equal(t, Flags{Unicode: true, CaseInsensitive: true, SwapGreed: true, AllowMixedUTF8: true}.String(), "iUu")

	for _, letters := range []string{"", "i", "msx", "imsUxu"} {
		flags, err := ParseFlags(letters)
		assert.NilError(t, err)
		assert.Equal(t, flags.String(), letters)
	}
}
