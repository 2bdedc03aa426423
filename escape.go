package resyntax

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Characters that are always literal when escaped.
const punctuation = `\.+*?()|[]{}^$#&-~`

func isPunct(c rune) bool {
	return strings.ContainsRune(punctuation, c)
}

func isOctalDigit(c rune) bool {
	return '0' <= c && c <= '7'
}

var controlEscapes = map[rune]rune{
	'a': '\a',
	'f': '\f',
	't': '\t',
	'n': '\n',
	'r': '\r',
	'v': '\v',
}

// literal turns the scalar value c found at pos into a literal in the
// current mode.
func (p *parser) literal(pos int, c rune) (Expr, error) {
	if p.flags.Unicode {
		return Literal{Chars: []rune{c}, CaseInsensitive: p.flags.CaseInsensitive}, nil
	}
	if c >= utf8.RuneSelf {
		return nil, p.errAt(pos, ErrorKind{Code: UnicodeNotAllowed})
	}
	return LiteralBytes{Bytes: []byte{byte(c)}, CaseInsensitive: p.flags.CaseInsensitive}, nil
}

// codeLiteral is literal for a value written as an octal or hexadecimal
// escape. In byte mode such an escape may name any byte, but bytes above
// 0x7F need AllowMixedUTF8.
func (p *parser) codeLiteral(pos int, v uint32) (Expr, error) {
	if p.flags.Unicode {
		return Literal{Chars: []rune{rune(v)}, CaseInsensitive: p.flags.CaseInsensitive}, nil
	}
	if v > 0xff {
		return nil, p.errAt(pos, ErrorKind{Code: UnicodeNotAllowed})
	}
	if v >= utf8.RuneSelf && !p.flags.AllowMixedUTF8 {
		return nil, p.errAt(pos, ErrorKind{Code: InvalidUtf8})
	}
	return LiteralBytes{Bytes: []byte{byte(v)}, CaseInsensitive: p.flags.CaseInsensitive}, nil
}

// parseEscape parses an escape sequence starting at "\".
func (p *parser) parseEscape() (Expr, error) {
	start := p.pos
	p.advance()
	if p.atEnd() {
		return nil, p.err(UnexpectedEscapeEof)
	}
	c := p.current()
	if isPunct(c) || (p.flags.IgnoreWhitespace && unicode.IsSpace(c)) {
		p.advance()
		return p.literal(start, c)
	}
	switch c {
	case 'a', 'f', 't', 'n', 'r', 'v':
		p.advance()
		return p.literal(start, controlEscapes[c])
	case 'A':
		p.advance()
		return StartText{}, nil
	case 'z':
		p.advance()
		return EndText{}, nil
	case 'b':
		p.advance()
		if p.flags.Unicode {
			return WordBoundary{}, nil
		}
		return WordBoundaryAscii{}, nil
	case 'B':
		p.advance()
		if p.flags.Unicode {
			return NotWordBoundary{}, nil
		}
		return NotWordBoundaryAscii{}, nil
	case '0', '1', '2', '3', '4', '5', '6', '7':
		var v uint32
		for i := 0; i < 3 && !p.atEnd() && isOctalDigit(p.current()); i++ {
			v = v*8 + uint32(p.advance()-'0')
		}
		return p.codeLiteral(start, v)
	case 'x':
		p.advance()
		return p.parseHex(start)
	case 'p', 'P':
		return p.parseUnicodeClass(start, c == 'P')
	case 'd', 's', 'w', 'D', 'S', 'W':
		p.advance()
		cls := perlClass(unicode.ToLower(c), p.flags.Unicode)
		return p.classExpr(start, p.classTransform(unicode.IsUpper(c), cls))
	}
	return nil, p.errAt(p.pos, ErrorKind{Code: UnrecognizedEscape, Char: c})
}

// parseHex is called after "\x" and parses either \x{...} or \xNN.
func (p *parser) parseHex(start int) (Expr, error) {
	if p.matchLiteral("{") {
		digits, _ := p.advanceWhile(func(c rune) bool { return c != '}' })
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return nil, p.errAt(p.pos, ErrorKind{Code: InvalidBase16, Name: digits})
		}
		if !p.matchLiteral("}") {
			return nil, p.err(UnclosedHex)
		}
		if !utf8.ValidRune(rune(n)) {
			return nil, p.errAt(start, ErrorKind{Code: InvalidScalarValue, Value: uint32(n)})
		}
		return p.codeLiteral(start, uint32(n))
	}
	var digits [2]rune
	for i := range digits {
		if p.atEnd() {
			return nil, p.err(UnexpectedTwoDigitHexEof)
		}
		digits[i] = p.advance()
	}
	n, err := strconv.ParseUint(string(digits[:]), 16, 8)
	if err != nil {
		return nil, p.errAt(p.pos, ErrorKind{Code: InvalidBase16, Name: string(digits[:])})
	}
	return p.codeLiteral(start, uint32(n))
}

// parseUnicodeClass parses \pN, \p{Name} and their negated \P forms.
func (p *parser) parseUnicodeClass(start int, negate bool) (Expr, error) {
	if !p.flags.Unicode {
		return nil, p.errAt(start, ErrorKind{Code: UnicodeNotAllowed})
	}
	p.advance()
	var name string
	if p.matchLiteral("{") {
		name, _ = p.advanceWhile(func(c rune) bool { return c != '}' })
		if !p.matchLiteral("}") {
			return nil, p.err(UnclosedUnicodeName)
		}
	} else {
		if p.atEnd() {
			return nil, p.err(UnexpectedEscapeEof)
		}
		name = string(p.advance())
	}
	cls, ok := unicodeClass(name)
	if !ok {
		return nil, p.errAt(start, ErrorKind{Code: UnrecognizedUnicodeClass, Name: name})
	}
	return p.classTransform(negate, cls), nil
}

// classTransform case-folds cls if the case-insensitive flag is set and
// then negates it if asked to.
func (p *parser) classTransform(negate bool, cls CharClass) CharClass {
	if p.flags.CaseInsensitive {
		cls = cls.caseFold()
	}
	if negate {
		cls = cls.negate()
	}
	return cls
}

// byteLimit is the largest byte a byte-mode class may keep.
func (p *parser) byteLimit() byte {
	if p.flags.AllowMixedUTF8 {
		return 0xff
	}
	return utf8.RuneSelf - 1
}

// classExpr turns a finished class into an expression, lowering it to a
// ByteClass in byte mode.
func (p *parser) classExpr(pos int, cls CharClass) (Expr, error) {
	if p.flags.Unicode {
		return cls, nil
	}
	bytes := cls.toByteClass(p.byteLimit())
	if len(bytes) == 0 {
		return nil, p.errAt(pos, ErrorKind{Code: EmptyClass})
	}
	return bytes, nil
}
