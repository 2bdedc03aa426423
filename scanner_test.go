package resyntax

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"
)

func TestScanner(t *testing.T) {
	s := newScanner("aé☺b")
	assert.Equal(t, len(s.chars), 4)
	assert.Equal(t, s.current(), 'a')

	c, ok := s.peek(2)
	assert.Assert(t, ok)
	assert.Equal(t, c, '☺')
	_, ok = s.peek(4)
	assert.Assert(t, !ok)

	assert.Equal(t, s.advance(), 'a')
	assert.Assert(t, s.peekLiteral("é☺"))
	assert.Assert(t, !s.matchLiteral("éb"))
	assert.Equal(t, s.pos, 1)
	assert.Assert(t, s.matchLiteral("é☺"))
	assert.Equal(t, s.pos, 3)

	run, ok := s.advanceWhile(func(c rune) bool { return c == 'x' })
	assert.Assert(t, !ok)
	assert.Equal(t, run, "")
	run, ok = s.advanceWhile(func(c rune) bool { return c == 'b' })
	assert.Assert(t, ok)
	assert.Equal(t, run, "b")
	assert.Assert(t, s.atEnd())
	assert.Assert(t, !s.peekLiteral("b"))
}

func TestScannerCurrentAtEnd(t *testing.T) {
	s := newScanner("")
	assert.Assert(t, s.atEnd())
	defer func() {
		assert.Assert(t, recover() != nil)
	}()
	s.current()
}

func TestSurround(t *testing.T) {
	s := newScanner("0123456789abcdef")
	assert.Equal(t, s.surround(0), "012345")
	assert.Equal(t, s.surround(8), "3456789abcd")
	assert.Equal(t, s.surround(15), "abcdef")
	assert.Equal(t, s.surround(16), "bcdef")

	empty := newScanner("")
	assert.Equal(t, empty.surround(0), "")
}

func TestCheckedAdd(t *testing.T) {
	assert.Equal(t, checkedAdd(1, 2), 3)
	assert.Equal(t, checkedAdd(math.MaxInt-1, 1), math.MaxInt)
	defer func() {
		assert.Equal(t, recover(), any(patternTooLarge{}))
	}()
	checkedAdd(math.MaxInt, 1)
}

func TestStack(t *testing.T) {
	var s stack[int]
	assert.Assert(t, s.empty())
	s.push(1)
	s.push(2)
	assert.Equal(t, s.peek(), 2)
	assert.Equal(t, s.pop(), 2)
	assert.Equal(t, s.pop(), 1)
	assert.Assert(t, s.empty())
}
