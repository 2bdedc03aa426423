package resyntax

import (
	"slices"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// The 14 POSIX classes usable as [:name:] inside brackets.
var asciiClasses = map[string]CharClass{
	"alnum":  {{'0', '9'}, {'A', 'Z'}, {'a', 'z'}},
	"alpha":  {{'A', 'Z'}, {'a', 'z'}},
	"ascii":  {{0x00, 0x7f}},
	"blank":  {{'\t', '\t'}, {' ', ' '}},
	"cntrl":  {{0x00, 0x1f}, {0x7f, 0x7f}},
	"digit":  {{'0', '9'}},
	"graph":  {{'!', '~'}},
	"lower":  {{'a', 'z'}},
	"print":  {{' ', '~'}},
	"punct":  {{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'}},
	"space":  {{'\t', '\r'}, {' ', ' '}},
	"upper":  {{'A', 'Z'}},
	"word":   {{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}},
	"xdigit": {{'0', '9'}, {'A', 'F'}, {'a', 'f'}},
}

// asciiClass looks up a POSIX class by name. The result may be modified.
func asciiClass(name string) (CharClass, bool) {
	c, ok := asciiClasses[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(c), true
}

var perlWordTable = rangetable.Merge(unicode.L, unicode.M, unicode.Nd, unicode.Pc)

// perlClass returns the class for \d, \s or \w (named by its lowercase
// letter), from the Unicode tables or from the ASCII ones.
func perlClass(letter rune, unicodeMode bool) CharClass {
	if !unicodeMode {
		var name string
		switch letter {
		case 'd':
			name = "digit"
		case 's':
			name = "space"
		default:
			name = "word"
		}
		c, _ := asciiClass(name)
		return c
	}
	switch letter {
	case 'd':
		return fromRangeTable(unicode.Nd)
	case 's':
		return fromRangeTable(unicode.White_Space)
	}
	return fromRangeTable(perlWordTable)
}

// unicodeClass looks up a general category, script or property by name,
// e.g. "L", "Lu", "Greek" or "White_Space". "Any" names every scalar value.
func unicodeClass(name string) (CharClass, bool) {
	if name == "Any" {
		return slices.Clone(scalarValues), true
	}
	for _, tables := range [...]map[string]*unicode.RangeTable{
		unicode.Categories,
		unicode.Scripts,
		unicode.Properties,
	} {
		if t, ok := tables[name]; ok {
			return fromRangeTable(t), true
		}
	}
	return nil, false
}

func fromRangeTable(t *unicode.RangeTable) CharClass {
	var ranges []ClassRange
	add := func(lo, hi, stride uint32) {
		if stride == 1 {
			ranges = append(ranges, ClassRange{Start: rune(lo), End: rune(hi)})
			return
		}
		for c := lo; c <= hi; c += stride {
			ranges = append(ranges, ClassRange{Start: rune(c), End: rune(c)})
		}
	}
	for _, r := range t.R16 {
		add(uint32(r.Lo), uint32(r.Hi), uint32(r.Stride))
	}
	for _, r := range t.R32 {
		add(r.Lo, r.Hi, r.Stride)
	}
	return newClass(ranges...)
}
