package resyntax

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// ErrPatternTooLarge is returned when a pattern is too long for positions
// to be represented. It is never an *Error.
var ErrPatternTooLarge = errors.New("resyntax: pattern too large")

// ErrorCode identifies the kind of a parse error.
type ErrorCode uint8

const (
	UnexpectedEscapeEof ErrorCode = iota + 1
	UnrecognizedEscape
	UnclosedHex
	InvalidBase16
	InvalidScalarValue
	UnexpectedTwoDigitHexEof
	UnclosedUnicodeName
	UnrecognizedUnicodeClass
	UnicodeNotAllowed
	InvalidUtf8
	RepeaterExpectsExpr
	RepeaterUnexpectedExpr
	MissingBase10
	InvalidBase10
	UnclosedRepeat
	InvalidRepeatRange
	EmptyAlternate
	UnopenedParen
	UnclosedParen
	EmptyGroup
	DuplicateCaptureName
	InvalidCaptureName
	UnclosedCaptureName
	EmptyCaptureName
	UnrecognizedFlag
	UnexpectedFlagEof
	DoubleFlagNegation
	EmptyFlagNegation
	UnexpectedClassEof
	InvalidClassEscape
	InvalidClassRange
	UnsupportedClassChar
	EmptyClass
)

var errorCodeNames = [...]string{
	UnexpectedEscapeEof:      "UnexpectedEscapeEof",
	UnrecognizedEscape:       "UnrecognizedEscape",
	UnclosedHex:              "UnclosedHex",
	InvalidBase16:            "InvalidBase16",
	InvalidScalarValue:       "InvalidScalarValue",
	UnexpectedTwoDigitHexEof: "UnexpectedTwoDigitHexEof",
	UnclosedUnicodeName:      "UnclosedUnicodeName",
	UnrecognizedUnicodeClass: "UnrecognizedUnicodeClass",
	UnicodeNotAllowed:        "UnicodeNotAllowed",
	InvalidUtf8:              "InvalidUtf8",
	RepeaterExpectsExpr:      "RepeaterExpectsExpr",
	RepeaterUnexpectedExpr:   "RepeaterUnexpectedExpr",
	MissingBase10:            "MissingBase10",
	InvalidBase10:            "InvalidBase10",
	UnclosedRepeat:           "UnclosedRepeat",
	InvalidRepeatRange:       "InvalidRepeatRange",
	EmptyAlternate:           "EmptyAlternate",
	UnopenedParen:            "UnopenedParen",
	UnclosedParen:            "UnclosedParen",
	EmptyGroup:               "EmptyGroup",
	DuplicateCaptureName:     "DuplicateCaptureName",
	InvalidCaptureName:       "InvalidCaptureName",
	UnclosedCaptureName:      "UnclosedCaptureName",
	EmptyCaptureName:         "EmptyCaptureName",
	UnrecognizedFlag:         "UnrecognizedFlag",
	UnexpectedFlagEof:        "UnexpectedFlagEof",
	DoubleFlagNegation:       "DoubleFlagNegation",
	EmptyFlagNegation:        "EmptyFlagNegation",
	UnexpectedClassEof:       "UnexpectedClassEof",
	InvalidClassEscape:       "InvalidClassEscape",
	InvalidClassRange:        "InvalidClassRange",
	UnsupportedClassChar:     "UnsupportedClassChar",
	EmptyClass:               "EmptyClass",
}

func (c ErrorCode) String() string {
	if int(c) < len(errorCodeNames) && errorCodeNames[c] != "" {
		return errorCodeNames[c]
	}
	return fmt.Sprintf("ErrorCode(%d)", uint8(c))
}

// ErrorKind is an ErrorCode together with the values it refers to.
// Only the fields relevant to Code are set.
type ErrorKind struct {
	Code ErrorCode

	// UnrecognizedEscape, UnrecognizedFlag, UnsupportedClassChar
	Char rune
	// InvalidBase16, InvalidBase10, UnrecognizedUnicodeClass and the
	// capture name errors
	Name string
	// InvalidScalarValue
	Value uint32
	// InvalidRepeatRange
	Min, Max uint32
	// InvalidClassRange
	Start, End rune
	// RepeaterUnexpectedExpr, InvalidClassEscape
	Expr Expr
}

func (k ErrorKind) message() string {
	switch k.Code {
	case UnexpectedEscapeEof:
		return `incomplete escape sequence: unexpected end of pattern after \`
	case UnrecognizedEscape:
		return fmt.Sprintf(`unrecognized escape sequence \%c`, k.Char)
	case UnclosedHex:
		return `unclosed hexadecimal literal: expected "}"`
	case InvalidBase16:
		return fmt.Sprintf("invalid hexadecimal number %q", k.Name)
	case InvalidScalarValue:
		return fmt.Sprintf("0x%X is not a Unicode scalar value", k.Value)
	case UnexpectedTwoDigitHexEof:
		return "unexpected end of pattern in two digit hexadecimal literal"
	case UnclosedUnicodeName:
		return `unclosed Unicode class name: expected "}"`
	case UnrecognizedUnicodeClass:
		return fmt.Sprintf("unrecognized Unicode class %q", k.Name)
	case UnicodeNotAllowed:
		return "Unicode is not allowed when Unicode mode is disabled"
	case InvalidUtf8:
		return "construct may match invalid UTF-8"
	case RepeaterExpectsExpr:
		return "repetition operator missing expression"
	case RepeaterUnexpectedExpr:
		return fmt.Sprintf("repetition operator cannot be applied to %s", exprName(k.Expr))
	case MissingBase10:
		return "missing number in counted repetition"
	case InvalidBase10:
		return fmt.Sprintf("invalid decimal number %q", k.Name)
	case UnclosedRepeat:
		return `unclosed counted repetition: expected "}"`
	case InvalidRepeatRange:
		return fmt.Sprintf("invalid repetition range {%d,%d}: minimum exceeds maximum", k.Min, k.Max)
	case EmptyAlternate:
		return "alternation with an empty branch"
	case UnopenedParen:
		return `unopened group: ")" without matching "("`
	case UnclosedParen:
		return `unclosed group: "(" without matching ")"`
	case EmptyGroup:
		return "empty group"
	case DuplicateCaptureName:
		return fmt.Sprintf("duplicate capture group name %q", k.Name)
	case InvalidCaptureName:
		return fmt.Sprintf("invalid capture group name %q", k.Name)
	case UnclosedCaptureName:
		return fmt.Sprintf(`unclosed capture group name %q: expected ">"`, k.Name)
	case EmptyCaptureName:
		return "empty capture group name"
	case UnrecognizedFlag:
		return fmt.Sprintf("unrecognized flag %q", k.Char)
	case UnexpectedFlagEof:
		return "unexpected end of pattern in flag group"
	case DoubleFlagNegation:
		return "flag group negated twice"
	case EmptyFlagNegation:
		return "flag group without flags"
	case UnexpectedClassEof:
		return `unclosed character class: expected "]"`
	case InvalidClassEscape:
		return fmt.Sprintf("%s is not allowed in a character class", exprName(k.Expr))
	case InvalidClassRange:
		return fmt.Sprintf("invalid character class range %q-%q", k.Start, k.End)
	case UnsupportedClassChar:
		return fmt.Sprintf("%q%q is not supported in a character class, escape it", k.Char, k.Char)
	case EmptyClass:
		return "character class matches nothing"
	}
	return k.Code.String()
}

// Error is a pattern syntax error.
type Error struct {
	// Pos is the offset of the error, in scalar values.
	Pos int
	// Surround is the text of the pattern around Pos.
	Surround string
	Kind     ErrorKind
}

func (e *Error) Error() string {
	return fmt.Sprintf("regex parse error near %q at offset %d: %s", e.Surround, e.Pos, e.Kind.message())
}

var _ error = (*Error)(nil)

// Caret renders pattern with a caret under the error position. Tabs
// before the position are copied, wide characters take two columns and
// combining marks none.
func (e *Error) Caret(pattern string) string {
	var b strings.Builder
	b.WriteString(pattern)
	b.WriteByte('\n')
	chars := []rune(pattern)
	for _, c := range chars[:min(e.Pos, len(chars))] {
		switch {
		case c == '\t':
			b.WriteByte('\t')
		case unicode.In(c, unicode.Mn, unicode.Me):
		case isWide(c):
			b.WriteString("  ")
		default:
			b.WriteByte(' ')
		}
	}
	b.WriteString("^\n")
	b.WriteString("error: ")
	b.WriteString(e.Kind.message())
	return b.String()
}

func isWide(c rune) bool {
	switch width.LookupRune(c).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// FlagsError reports a bad letter given to ParseFlags.
type FlagsError struct {
	Letter    rune
	Duplicate bool
}

func (e *FlagsError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("resyntax: duplicate flag %q", e.Letter)
	}
	return fmt.Sprintf("resyntax: invalid flag %q", e.Letter)
}
