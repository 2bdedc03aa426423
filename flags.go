package resyntax

// Flags is the set of options that change how a pattern is parsed.
// Flags are copied by value: a group that changes them works on its own
// copy and the enclosing copy is restored when the group closes.
// The zero value parses in byte mode; most callers start from DefaultFlags.
type Flags struct {
	// Literals and classes match case-insensitively ("i" flag).
	CaseInsensitive bool

	// "^" and "$" match at line boundaries ("m" flag).
	Multiline bool

	// "." matches "\n" ("s" flag).
	DotMatchesNewline bool

	// Repetition operators are lazy by default and greedy with a trailing
	// "?" ("U" flag).
	SwapGreed bool

	// Unescaped whitespace and "#" comments are ignored ("x" flag).
	IgnoreWhitespace bool

	// Literals and classes are Unicode scalar values ("u" flag).
	// When cleared, they are bytes.
	Unicode bool

	// Byte-mode constructs may match bytes that are not valid UTF-8.
	// There is no inline letter for this option.
	AllowMixedUTF8 bool
}

// DefaultFlags enables Unicode mode and nothing else.
var DefaultFlags = Flags{Unicode: true}

// set turns the option named by an inline flag letter on or off.
// It reports false for letters that don't name an option.
func (f *Flags) set(letter rune, on bool) bool {
	switch letter {
	case 'i':
		f.CaseInsensitive = on
	case 'm':
		f.Multiline = on
	case 's':
		f.DotMatchesNewline = on
	case 'U':
		f.SwapGreed = on
	case 'x':
		f.IgnoreWhitespace = on
	case 'u':
		f.Unicode = on
	default:
		return false
	}
	return true
}

// ParseFlags builds Flags from a string of inline flag letters
// ("i", "m", "s", "U", "x", "u"), starting from the zero value.
func ParseFlags(str string) (Flags, error) {
	var flags Flags
	seen := map[rune]bool{}
	for _, char := range str {
		if !flags.set(char, true) {
			return Flags{}, &FlagsError{Letter: char}
		}
		if seen[char] {
			return Flags{}, &FlagsError{Letter: char, Duplicate: true}
		}
		seen[char] = true
	}
	return flags, nil
}

// String returns the inline letters of the enabled options, in the order
// ParseFlags accepts them.
func (f Flags) String() string {
	var res []byte
	for _, opt := range [...]struct {
		on     bool
		letter byte
	}{
		{f.CaseInsensitive, 'i'},
		{f.Multiline, 'm'},
		{f.DotMatchesNewline, 's'},
		{f.SwapGreed, 'U'},
		{f.IgnoreWhitespace, 'x'},
		{f.Unicode, 'u'},
	} {
		if opt.on {
			res = append(res, opt.letter)
		}
	}
	return string(res)
}
