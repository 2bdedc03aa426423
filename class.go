package resyntax

import (
	"unicode"
	"unicode/utf8"
)

type bracketKind uint8

const (
	// "[" or "[^"
	bracketOpen bracketKind = iota
	// a member of the class being built
	bracketSet
	// "&&"
	bracketIntersect
)

// bracketItem is an element of the bracket stack used while parsing a
// character class.
type bracketItem struct {
	kind    bracketKind
	negated bool
	set     CharClass
}

func setItem(cls CharClass) bracketItem {
	return bracketItem{kind: bracketSet, set: cls}
}

// parseClass parses a bracketed character class starting at "[".
// Nested classes push onto the bracket stack instead of recursing.
func (p *parser) parseClass() (Expr, error) {
	var brackets stack[bracketItem]
	p.openBracket(&brackets)
	for {
		p.skipClassSpace()
		if p.atEnd() {
			return nil, p.err(UnexpectedClassEof)
		}
		if p.matchLiteral("&&") {
			brackets.push(bracketItem{kind: bracketIntersect})
			continue
		}
		switch p.current() {
		case '[':
			if cls, ok := p.maybeParseASCII(); ok {
				brackets.push(setItem(cls))
				continue
			}
			p.openBracket(&brackets)
		case ']':
			pos := p.pos
			p.advance()
			cls := closeBracket(&brackets)
			if cls.isEmpty() {
				return nil, p.errAt(pos, ErrorKind{Code: EmptyClass})
			}
			if brackets.empty() {
				return p.classExpr(pos, cls)
			}
			brackets.push(setItem(cls))
		default:
			cls, err := p.parseClassMember()
			if err != nil {
				return nil, err
			}
			brackets.push(setItem(cls))
		}
	}
}

// openBracket consumes "[" or "[^". A leading run of "-", or else a
// leading "]", is literal.
func (p *parser) openBracket(brackets *stack[bracketItem]) {
	p.advance()
	brackets.push(bracketItem{kind: bracketOpen, negated: p.matchLiteral("^")})
	var lits CharClass
	for p.matchLiteral("-") {
		lits = CharClass{{Start: '-', End: '-'}}
	}
	if lits == nil && p.matchLiteral("]") {
		lits = CharClass{{Start: ']', End: ']'}}
	}
	if lits != nil {
		brackets.push(setItem(p.foldCase(lits)))
	}
}

// closeBracket pops the bracket stack down to the innermost open bracket
// and combines what it pops: unions first, then intersections, then
// negation.
func closeBracket(brackets *stack[bracketItem]) CharClass {
	var union CharClass
	var intersect []CharClass
	for {
		item := brackets.pop()
		switch item.kind {
		case bracketSet:
			union = union.union(item.set)
		case bracketIntersect:
			intersect = append(intersect, union)
			union = nil
		case bracketOpen:
			for _, other := range intersect {
				union = union.intersect(other)
			}
			if item.negated {
				union = union.negate()
			}
			return union
		}
	}
}

func isASCIILetter(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// maybeParseASCII parses [:name:] or [:^name:]. If the input is anything
// else, it consumes nothing and returns nil, false.
func (p *parser) maybeParseASCII() (CharClass, bool) {
	save := p.pos
	if !p.matchLiteral("[:") {
		return nil, false
	}
	negate := p.matchLiteral("^")
	name, _ := p.advanceWhile(isASCIILetter)
	cls, ok := asciiClass(name)
	if !ok || !p.matchLiteral(":]") {
		p.pos = save
		return nil, false
	}
	return p.classTransform(negate, cls), true
}

// parseClassMember parses a single character, a range or a class escape
// inside brackets.
func (p *parser) parseClassMember() (CharClass, error) {
	pos := p.pos
	var start rune
	if p.current() == '\\' {
		e, err := p.parseEscape()
		if err != nil {
			return nil, err
		}
		switch e := e.(type) {
		case CharClass:
			return e, nil
		case ByteClass:
			return e.toCharClass(), nil
		case Literal:
			start = e.Chars[0]
		case LiteralBytes:
			start = rune(e.Bytes[0])
		default:
			return nil, p.errAt(pos, ErrorKind{Code: InvalidClassEscape, Expr: e})
		}
	} else {
		start = p.advance()
		if (start == '-' || start == '~') && !p.atEnd() && p.current() == start {
			return nil, p.errAt(pos, ErrorKind{Code: UnsupportedClassChar, Char: start})
		}
		if !p.flags.Unicode && start >= utf8.RuneSelf {
			return nil, p.errAt(pos, ErrorKind{Code: InvalidUtf8})
		}
	}
	end, err := p.parseClassRangeEnd(start)
	if err != nil {
		return nil, err
	}
	return p.foldCase(CharClass{{Start: start, End: end}}), nil
}

// parseClassRangeEnd parses the "-end" part of a range starting at start.
// If what follows is not a range, it consumes nothing and returns start.
func (p *parser) parseClassRangeEnd(start rune) (rune, error) {
	save := p.pos
	p.skipClassSpace()
	if !p.matchLiteral("-") {
		p.pos = save
		return start, nil
	}
	p.skipClassSpace()
	if p.atEnd() {
		return 0, p.err(UnexpectedClassEof)
	}
	if p.current() == ']' {
		p.pos = save
		return start, nil
	}
	pos := p.pos
	var end rune
	if p.current() == '\\' {
		e, err := p.parseEscape()
		if err != nil {
			return 0, err
		}
		switch e := e.(type) {
		case Literal:
			end = e.Chars[0]
		case LiteralBytes:
			end = rune(e.Bytes[0])
		default:
			p.pos = save
			return start, nil
		}
	} else {
		end = p.advance()
		if !p.flags.Unicode && end >= utf8.RuneSelf {
			return 0, p.errAt(pos, ErrorKind{Code: InvalidUtf8})
		}
	}
	if end < start {
		return 0, p.errAt(pos, ErrorKind{Code: InvalidClassRange, Start: start, End: end})
	}
	return end, nil
}

func (p *parser) foldCase(cls CharClass) CharClass {
	if p.flags.CaseInsensitive {
		return cls.caseFold()
	}
	return cls
}

// skipClassSpace skips whitespace inside brackets in extended mode.
func (p *parser) skipClassSpace() {
	for p.flags.IgnoreWhitespace && !p.atEnd() && unicode.IsSpace(p.current()) {
		p.advance()
	}
}
