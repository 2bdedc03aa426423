// Package resyntax parses regular expressions into a syntax tree.
//
// Parsing never recurses on the nesting depth of the pattern: groups,
// alternations and bracketed classes are all built on explicit stacks, so
// deeply nested input cannot exhaust the call stack.
package resyntax

import "unicode"

// buildItem is an element of the expression stack: either a finished
// expression or the marker left by an open group.
type buildItem struct {
	expr   Expr
	marker *groupMarker
}

type groupMarker struct {
	index int
	name  string
	// position of the "("
	pos int
	// flags to restore when the group closes
	flags Flags
}

type parser struct {
	scanner
	flags Flags
	stack stack[buildItem]
	caps  int
	names []string
}

// Parse parses pattern with the given initial flags.
// Syntax errors are returned as *Error.
func Parse(pattern string, flags Flags) (expr Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(patternTooLarge); !ok {
				panic(r)
			}
			expr, err = nil, ErrPatternTooLarge
		}
	}()
	p := &parser{
		scanner: newScanner(pattern),
		flags:   flags,
	}
	return p.parse()
}

func (p *parser) err(code ErrorCode) *Error {
	return p.errAt(p.pos, ErrorKind{Code: code})
}

func (p *parser) errAt(pos int, kind ErrorKind) *Error {
	return &Error{
		Pos:      pos,
		Surround: p.surround(pos),
		Kind:     kind,
	}
}

func (p *parser) parse() (Expr, error) {
	for {
		p.skipIgnored()
		if p.atEnd() {
			break
		}
		var (
			e   Expr
			err error
		)
		switch p.current() {
		case '\\':
			e, err = p.parseEscape()
		case '|':
			err = p.alternate()
			if err == nil {
				p.advance()
			}
		case '?':
			e, err = p.parseSimpleRepeat(ZeroOrOne)
		case '*':
			e, err = p.parseSimpleRepeat(ZeroOrMore)
		case '+':
			e, err = p.parseSimpleRepeat(OneOrMore)
		case '{':
			e, err = p.parseCountedRepeat()
		case '(':
			err = p.parseGroup()
		case ')':
			e, err = p.closeParen()
			if err == nil {
				p.advance()
			}
		case '[':
			e, err = p.parseClass()
		case '^':
			p.advance()
			if p.flags.Multiline {
				e = StartLine{}
			} else {
				e = StartText{}
			}
		case '$':
			p.advance()
			if p.flags.Multiline {
				e = EndLine{}
			} else {
				e = EndText{}
			}
		case '.':
			e, err = p.parseDot()
		default:
			pos := p.pos
			e, err = p.literal(pos, p.advance())
		}
		if err != nil {
			return nil, err
		}
		if e != nil {
			p.stack.push(buildItem{expr: e})
		}
	}
	return p.finish()
}

// skipIgnored skips whitespace and "#" comments in extended mode.
func (p *parser) skipIgnored() {
	for p.flags.IgnoreWhitespace && !p.atEnd() {
		c := p.current()
		if unicode.IsSpace(c) {
			p.advance()
			continue
		}
		if c != '#' {
			return
		}
		for !p.atEnd() && p.advance() != '\n' {
		}
	}
}

func (p *parser) parseDot() (Expr, error) {
	if !p.flags.Unicode && !p.flags.AllowMixedUTF8 {
		return nil, p.err(InvalidUtf8)
	}
	p.advance()
	switch {
	case p.flags.Unicode && p.flags.DotMatchesNewline:
		return AnyChar{}, nil
	case p.flags.Unicode:
		return AnyCharNoNL{}, nil
	case p.flags.DotMatchesNewline:
		return AnyByte{}, nil
	}
	return AnyByteNoNL{}, nil
}

// parseGroup handles "(". It pushes a group marker, or for a bare flag
// group like (?i) only changes the current flags.
func (p *parser) parseGroup() error {
	open := p.pos
	p.advance()
	var name string
	if p.matchLiteral("?P<") {
		var err error
		if name, err = p.parseCaptureName(); err != nil {
			return err
		}
	} else if p.matchLiteral("?") {
		return p.parseGroupFlags(open)
	}
	p.caps = checkedAdd(p.caps, 1)
	p.stack.push(buildItem{marker: &groupMarker{
		index: p.caps,
		name:  name,
		pos:   open,
		flags: p.flags,
	}})
	return nil
}

func isCaptureNameChar(c rune) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// parseCaptureName is called after "(?P<" and consumes the name and ">".
func (p *parser) parseCaptureName() (string, error) {
	start := p.pos
	name, _ := p.advanceWhile(func(c rune) bool { return c != '>' })
	if p.atEnd() {
		return "", p.errAt(p.pos, ErrorKind{Code: UnclosedCaptureName, Name: name})
	}
	if name == "" {
		return "", p.err(EmptyCaptureName)
	}
	valid := name[0] < '0' || name[0] > '9'
	for _, c := range name {
		valid = valid && isCaptureNameChar(c)
	}
	if !valid {
		return "", p.errAt(p.pos, ErrorKind{Code: InvalidCaptureName, Name: name})
	}
	for _, n := range p.names {
		if n == name {
			return "", p.errAt(start, ErrorKind{Code: DuplicateCaptureName, Name: name})
		}
	}
	p.advance()
	p.names = append(p.names, name)
	return name, nil
}

// parseGroupFlags is called after "(?". Flags before a "-" are set, flags
// after it are cleared.
func (p *parser) parseGroupFlags(open int) error {
	saved := p.flags
	on := true
	sawFlag := false
	for {
		if p.atEnd() {
			return p.err(UnexpectedFlagEof)
		}
		c := p.current()
		switch c {
		case '-':
			if !on {
				return p.err(DoubleFlagNegation)
			}
			on = false
			sawFlag = false
		case ')':
			if !sawFlag {
				return p.err(EmptyFlagNegation)
			}
			p.advance()
			return nil
		case ':':
			if !on && !sawFlag {
				return p.err(EmptyFlagNegation)
			}
			p.advance()
			p.stack.push(buildItem{marker: &groupMarker{
				pos:   open,
				flags: saved,
			}})
			return nil
		default:
			if !p.flags.set(c, on) {
				return p.errAt(p.pos, ErrorKind{Code: UnrecognizedFlag, Char: c})
			}
			sawFlag = true
		}
		p.advance()
	}
}

// alternate folds everything since the last group marker or alternation
// into a new branch. It is called on "|", which is left unconsumed.
func (p *parser) alternate() error {
	var concat []Expr
	for {
		if p.stack.empty() {
			if len(concat) == 0 {
				return p.err(EmptyAlternate)
			}
			p.stack.push(buildItem{expr: Alternate{concatOf(concat)}})
			return nil
		}
		item := p.stack.peek()
		if item.marker != nil {
			if len(concat) == 0 {
				return p.err(EmptyAlternate)
			}
			p.stack.push(buildItem{expr: Alternate{concatOf(concat)}})
			return nil
		}
		p.stack.pop()
		if alts, ok := item.expr.(Alternate); ok {
			if len(concat) == 0 {
				return p.err(EmptyAlternate)
			}
			p.stack.push(buildItem{expr: append(alts, concatOf(concat))})
			return nil
		}
		concat = append(concat, item.expr)
	}
}

// closeParen folds the stack down to the innermost group marker on ")",
// which is left unconsumed, and restores the flags saved by the marker.
func (p *parser) closeParen() (Expr, error) {
	var concat []Expr
	for {
		if p.stack.empty() {
			return nil, p.err(UnopenedParen)
		}
		item := p.stack.pop()
		if m := item.marker; m != nil {
			if len(concat) == 0 {
				return nil, p.err(EmptyGroup)
			}
			return p.group(m, concatOf(concat)), nil
		}
		alts, ok := item.expr.(Alternate)
		if !ok {
			concat = append(concat, item.expr)
			continue
		}
		if len(concat) == 0 {
			return nil, p.err(EmptyAlternate)
		}
		alts = append(alts, concatOf(concat))
		if p.stack.empty() {
			return nil, p.err(UnopenedParen)
		}
		return p.group(p.stack.pop().marker, alts), nil
	}
}

func (p *parser) group(m *groupMarker, e Expr) Expr {
	p.flags = m.flags
	return Group{Expr: e, Index: m.index, Name: m.name}
}

// finish folds the whole stack at the end of the pattern.
func (p *parser) finish() (Expr, error) {
	var concat []Expr
	for {
		if p.stack.empty() {
			return concatOf(concat), nil
		}
		item := p.stack.pop()
		if m := item.marker; m != nil {
			return nil, p.errAt(m.pos, ErrorKind{Code: UnclosedParen})
		}
		alts, ok := item.expr.(Alternate)
		if !ok {
			concat = append(concat, item.expr)
			continue
		}
		if len(concat) == 0 {
			return nil, p.err(EmptyAlternate)
		}
		alts = append(alts, concatOf(concat))
		if p.stack.empty() {
			return alts, nil
		}
		return nil, p.errAt(p.stack.pop().marker.pos, ErrorKind{Code: UnclosedParen})
	}
}
