package resyntax

import (
	"strconv"
	"strings"
	"unicode"
)

// popRepeatable pops the expression a repetition operator applies to.
func (p *parser) popRepeatable() (Expr, error) {
	if p.stack.empty() || p.stack.peek().marker != nil {
		return nil, p.err(RepeaterExpectsExpr)
	}
	e := p.stack.pop().expr
	if !canRepeat(e) {
		return nil, p.errAt(p.pos, ErrorKind{Code: RepeaterUnexpectedExpr, Expr: e})
	}
	return e, nil
}

// greedy consumes an optional lazy marker "?" following an operator.
func (p *parser) greedy() bool {
	return !p.matchLiteral("?") != p.flags.SwapGreed
}

func (p *parser) parseSimpleRepeat(op RepeatOp) (Expr, error) {
	e, err := p.popRepeatable()
	if err != nil {
		return nil, err
	}
	p.advance()
	return Repeat{Expr: e, Repeater: Repeater{Op: op}, Greedy: p.greedy()}, nil
}

// parseCountedRepeat parses {m}, {m,} and {m,n}.
func (p *parser) parseCountedRepeat() (Expr, error) {
	e, err := p.popRepeatable()
	if err != nil {
		return nil, err
	}
	p.advance()
	digits := p.scanNumber(func(c rune) bool { return c != ',' && c != '}' })
	if digits == "" {
		return nil, p.err(MissingBase10)
	}
	n, err := p.parseDecimal(digits)
	if err != nil {
		return nil, err
	}
	rep := Repeater{Op: Range, Min: n, Max: n, Bounded: true}
	if p.matchLiteral(",") {
		digits = p.scanNumber(func(c rune) bool { return c != '}' })
		if digits == "" {
			rep.Max, rep.Bounded = 0, false
		} else {
			if rep.Max, err = p.parseDecimal(digits); err != nil {
				return nil, err
			}
			if rep.Min > rep.Max {
				return nil, p.errAt(p.pos, ErrorKind{Code: InvalidRepeatRange, Min: rep.Min, Max: rep.Max})
			}
		}
	}
	if !p.matchLiteral("}") {
		return nil, p.err(UnclosedRepeat)
	}
	return Repeat{Expr: e, Repeater: rep, Greedy: p.greedy()}, nil
}

// scanNumber consumes the run of characters satisfying pred. In extended
// mode the surrounding whitespace is dropped.
func (p *parser) scanNumber(pred func(rune) bool) string {
	s, _ := p.advanceWhile(pred)
	if p.flags.IgnoreWhitespace {
		s = strings.TrimFunc(s, unicode.IsSpace)
	}
	return s
}

func (p *parser) parseDecimal(digits string) (uint32, error) {
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, p.errAt(p.pos, ErrorKind{Code: InvalidBase10, Name: digits})
	}
	return uint32(n), nil
}
