package resyntax

import "fmt"

// Expr is a node of the syntax tree produced by Parse.
//
// The concrete types are Empty, Literal, LiteralBytes, AnyChar,
// AnyCharNoNL, AnyByte, AnyByteNoNL, CharClass, ByteClass, StartText,
// EndText, StartLine, EndLine, WordBoundary, NotWordBoundary,
// WordBoundaryAscii, NotWordBoundaryAscii, Group, Repeat, Concat and
// Alternate. The tree never shares nodes.
type Expr interface {
	isExpr()
}

// Empty matches the empty string.
type Empty struct{}

// Literal is a sequence of scalar values.
type Literal struct {
	Chars           []rune
	CaseInsensitive bool
}

// LiteralBytes is a sequence of bytes (Unicode mode off).
type LiteralBytes struct {
	Bytes           []byte
	CaseInsensitive bool
}

// AnyChar matches any scalar value.
type AnyChar struct{}

// AnyCharNoNL matches any scalar value except "\n".
type AnyCharNoNL struct{}

// AnyByte matches any byte.
type AnyByte struct{}

// AnyByteNoNL matches any byte except "\n".
type AnyByteNoNL struct{}

type (
	StartText            struct{}
	EndText              struct{}
	StartLine            struct{}
	EndLine              struct{}
	WordBoundary         struct{}
	NotWordBoundary      struct{}
	WordBoundaryAscii    struct{}
	NotWordBoundaryAscii struct{}
)

// Group is a parenthesized expression. Index is the capture index,
// starting at 1, or 0 for a non-capturing group. Name is set for
// (?P<name>...) groups.
type Group struct {
	Expr  Expr
	Index int
	Name  string
}

// Capturing reports whether the group records a submatch.
func (g Group) Capturing() bool {
	return g.Index > 0
}

// Repeat applies a repetition operator to Expr.
type Repeat struct {
	Expr     Expr
	Repeater Repeater
	Greedy   bool
}

// RepeatOp is the kind of a repetition operator.
type RepeatOp uint8

const (
	ZeroOrOne  RepeatOp = iota // ?
	ZeroOrMore                 // *
	OneOrMore                  // +
	Range                      // {m}, {m,} or {m,n}
)

// Repeater describes a repetition operator. Min, Max and Bounded are only
// meaningful for Range: {m} has Min == Max, {m,} has Bounded == false.
type Repeater struct {
	Op      RepeatOp
	Min     uint32
	Max     uint32
	Bounded bool
}

func (op RepeatOp) String() string {
	switch op {
	case ZeroOrOne:
		return "ZeroOrOne"
	case ZeroOrMore:
		return "ZeroOrMore"
	case OneOrMore:
		return "OneOrMore"
	case Range:
		return "Range"
	}
	return fmt.Sprintf("RepeatOp(%d)", uint8(op))
}

// String returns the operator as written in a pattern, without the lazy
// marker.
func (r Repeater) String() string {
	switch r.Op {
	case ZeroOrOne:
		return "?"
	case ZeroOrMore:
		return "*"
	case OneOrMore:
		return "+"
	}
	if !r.Bounded {
		return fmt.Sprintf("{%d,}", r.Min)
	}
	if r.Min == r.Max {
		return fmt.Sprintf("{%d}", r.Min)
	}
	return fmt.Sprintf("{%d,%d}", r.Min, r.Max)
}

// Concat is a sequence of two or more expressions.
type Concat []Expr

// Alternate is a choice between two or more expressions.
type Alternate []Expr

func (Empty) isExpr()                {}
func (Literal) isExpr()              {}
func (LiteralBytes) isExpr()         {}
func (AnyChar) isExpr()              {}
func (AnyCharNoNL) isExpr()          {}
func (AnyByte) isExpr()              {}
func (AnyByteNoNL) isExpr()          {}
func (CharClass) isExpr()            {}
func (ByteClass) isExpr()            {}
func (StartText) isExpr()            {}
func (EndText) isExpr()              {}
func (StartLine) isExpr()            {}
func (EndLine) isExpr()              {}
func (WordBoundary) isExpr()         {}
func (NotWordBoundary) isExpr()      {}
func (WordBoundaryAscii) isExpr()    {}
func (NotWordBoundaryAscii) isExpr() {}
func (Group) isExpr()                {}
func (Repeat) isExpr()               {}
func (Concat) isExpr()               {}
func (Alternate) isExpr()            {}

// canRepeat reports whether a repetition operator may be applied to e.
func canRepeat(e Expr) bool {
	switch e.(type) {
	case Empty, Repeat, Concat, Alternate:
		return false
	}
	return true
}

// concatOf builds the expression for a run of expressions given in
// reverse textual order, as they come off the stack.
func concatOf(rev []Expr) Expr {
	switch len(rev) {
	case 0:
		return Empty{}
	case 1:
		return rev[0]
	}
	res := make(Concat, len(rev))
	for i, e := range rev {
		res[len(rev)-1-i] = e
	}
	return res
}

// exprName is a short description of e for error messages.
func exprName(e Expr) string {
	switch e := e.(type) {
	case Empty:
		return "empty expression"
	case Literal, LiteralBytes:
		return "literal"
	case AnyChar, AnyCharNoNL, AnyByte, AnyByteNoNL:
		return "any character"
	case CharClass, ByteClass:
		return "character class"
	case StartText:
		return `\A`
	case EndText:
		return `\z`
	case StartLine:
		return "^"
	case EndLine:
		return "$"
	case WordBoundary, WordBoundaryAscii:
		return `\b`
	case NotWordBoundary, NotWordBoundaryAscii:
		return `\B`
	case Group:
		return "group"
	case Repeat:
		switch e.Repeater.Op {
		case ZeroOrOne:
			return "repetition (?)"
		case ZeroOrMore:
			return "repetition (*)"
		case OneOrMore:
			return "repetition (+)"
		}
		return "counted repetition"
	case Concat:
		return "concatenation"
	case Alternate:
		return "alternation"
	}
	return "expression"
}
