package resyntax

import "math"

// patternTooLarge is raised as a panic value when position arithmetic
// overflows. Parse turns it into ErrPatternTooLarge.
type patternTooLarge struct{}

func checkedAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		panic(patternTooLarge{})
	}
	return a + b
}

// scanner is a cursor over the scalar values of a pattern.
// Positions count scalar values, not bytes.
type scanner struct {
	chars []rune
	pos   int
}

func newScanner(pattern string) scanner {
	return scanner{chars: []rune(pattern)}
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.chars)
}

// current must not be called at the end of input.
func (s *scanner) current() rune {
	if s.atEnd() {
		panic("resyntax: current() called at end of pattern")
	}
	return s.chars[s.pos]
}

// peek returns the scalar value n positions ahead of the cursor.
// If that is past the end, returns 0, false
func (s *scanner) peek(n int) (rune, bool) {
	pos := checkedAdd(s.pos, n)
	if pos >= len(s.chars) {
		return 0, false
	}
	return s.chars[pos], true
}

func (s *scanner) advance() rune {
	r := s.current()
	s.pos = checkedAdd(s.pos, 1)
	return r
}

// advanceWhile consumes the longest run of scalar values satisfying pred.
// Returns "", false if the run is empty.
func (s *scanner) advanceWhile(pred func(rune) bool) (string, bool) {
	start := s.pos
	for !s.atEnd() && pred(s.chars[s.pos]) {
		s.pos = checkedAdd(s.pos, 1)
	}
	if s.pos == start {
		return "", false
	}
	return string(s.chars[start:s.pos]), true
}

func (s *scanner) peekLiteral(lit string) bool {
	pos := s.pos
	for _, r := range lit {
		if pos >= len(s.chars) || s.chars[pos] != r {
			return false
		}
		pos = checkedAdd(pos, 1)
	}
	return true
}

// matchLiteral consumes lit if the input continues with it.
func (s *scanner) matchLiteral(lit string) bool {
	if !s.peekLiteral(lit) {
		return false
	}
	for range lit {
		s.pos = checkedAdd(s.pos, 1)
	}
	return true
}

// surround returns up to 5 scalar values on either side of pos.
func (s *scanner) surround(pos int) string {
	lo := max(pos-5, 0)
	hi := min(pos+6, len(s.chars))
	if lo >= hi {
		return ""
	}
	return string(s.chars[lo:hi])
}

type stack[T any] []T

func (s *stack[T]) push(v T) { *s = append(*s, v) }

func (s *stack[T]) empty() bool { return len(*s) == 0 }

func (s *stack[T]) peek() T { return (*s)[len(*s)-1] }

func (s *stack[T]) pop() T {
	i := len(*s) - 1
	v := (*s)[i]
	var zero T
	(*s)[i] = zero
	*s = (*s)[:i]
	return v
}
