package resyntax

import (
	"slices"
	"unicode"
)

// ClassRange is an inclusive range of scalar values.
type ClassRange struct {
	Start rune
	End   rune
}

// CharClass is a set of scalar values: non-overlapping, non-adjacent
// ranges sorted in ascending order.
type CharClass []ClassRange

// ByteRange is an inclusive range of bytes.
type ByteRange struct {
	Start byte
	End   byte
}

// ByteClass is a set of bytes with the same layout as CharClass.
type ByteClass []ByteRange

const (
	// Range of scalar values that take part in simple case folding.
	minFold = 0x0041
	maxFold = 0x1e943
)

var scalarValues = CharClass{
	{Start: 0, End: 0xd7ff},
	{Start: 0xe000, End: unicode.MaxRune},
}

// newClass builds a CharClass from ranges in any order.
func newClass(ranges ...ClassRange) CharClass {
	res := slices.Clone(ranges)
	slices.SortFunc(res, func(a, b ClassRange) int {
		return int(a.Start) - int(b.Start)
	})
	return merge(res)
}

// merge collapses overlapping and adjacent ranges of a slice sorted by Start.
func merge(sorted []ClassRange) CharClass {
	if len(sorted) == 0 {
		return nil
	}
	chars := CharClass{sorted[0]}
	for _, next := range sorted[1:] {
		r := &chars[len(chars)-1]
		if next.End <= r.End {
			continue
		}
		if next.Start <= r.End+1 {
			r.End = next.End
			continue
		}
		chars = append(chars, next)
	}
	return chars
}

func (c CharClass) isEmpty() bool {
	return len(c) == 0
}

func (c CharClass) union(other CharClass) CharClass {
	if len(c) == 0 {
		return slices.Clone(other)
	}
	if len(other) == 0 {
		return slices.Clone(c)
	}
	sorted := make([]ClassRange, 0, len(c)+len(other))
	i := 0
	j := 0
	for i < len(c) || j < len(other) {
		if i < len(c) && (j >= len(other) || c[i].Start < other[j].Start) {
			sorted = append(sorted, c[i])
			i++
		} else {
			sorted = append(sorted, other[j])
			j++
		}
	}
	return merge(sorted)
}

func (c CharClass) intersect(other CharClass) CharClass {
	var chars CharClass
	i := 0
	j := 0
	for i < len(c) && j < len(other) {
		a := c[i]
		b := other[j]

		lo := max(a.Start, b.Start)
		hi := min(a.End, b.End)

		if lo <= hi {
			chars = append(chars, ClassRange{Start: lo, End: hi})
		}

		if a.End < b.End {
			i++
		} else {
			j++
		}
	}
	return chars
}

// negate complements c over the scalar values (surrogates excluded).
func (c CharClass) negate() CharClass {
	var gaps CharClass
	next := rune(0)
	for _, r := range c {
		if r.Start > next {
			gaps = append(gaps, ClassRange{Start: next, End: r.Start - 1})
		}
		next = r.End + 1
	}
	if next <= unicode.MaxRune {
		gaps = append(gaps, ClassRange{Start: next, End: unicode.MaxRune})
	}
	return gaps.intersect(scalarValues)
}

// caseFold adds to c every scalar value that simple-folds to one of its
// members.
func (c CharClass) caseFold() CharClass {
	res := slices.Clone([]ClassRange(c))
	for _, r := range c {
		lo := max(r.Start, minFold)
		hi := min(r.End, maxFold)
		for ch := lo; ch <= hi; ch++ {
			for f := unicode.SimpleFold(ch); f != ch; f = unicode.SimpleFold(f) {
				res = append(res, ClassRange{Start: f, End: f})
			}
		}
	}
	return newClass(res...)
}

// toByteClass keeps the members of c up to and including limit.
func (c CharClass) toByteClass(limit byte) ByteClass {
	var res ByteClass
	for _, r := range c.intersect(CharClass{{Start: 0, End: rune(limit)}}) {
		res = append(res, ByteRange{Start: byte(r.Start), End: byte(r.End)})
	}
	return res
}

// Contains reports whether r is a member of c.
func (c CharClass) Contains(r rune) bool {
	lo := 0
	hi := len(c)
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if c[m].Start <= r && r <= c[m].End {
			return true
		}
		if r < c[m].Start {
			hi = m
		} else {
			lo = m + 1
		}
	}
	return false
}

func (b ByteClass) toCharClass() CharClass {
	res := make(CharClass, len(b))
	for i, r := range b {
		res[i] = ClassRange{Start: rune(r.Start), End: rune(r.End)}
	}
	return res
}

// Contains reports whether c is a member of b.
func (b ByteClass) Contains(c byte) bool {
	for _, r := range b {
		if r.Start <= c && c <= r.End {
			return true
		}
	}
	return false
}
