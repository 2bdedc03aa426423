package command

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/xlab/treeprint"
	"gopkg.in/yaml.v2"

	"github.com/auvred/resyntax"
)

// maxShownRanges is how many ranges of a class are printed before the
// rest is summarized.
const maxShownRanges = 8

func typeName(e resyntax.Expr) string {
	return reflect.TypeOf(e).Name()
}

func children(e resyntax.Expr) []resyntax.Expr {
	switch e := e.(type) {
	case resyntax.Group:
		return []resyntax.Expr{e.Expr}
	case resyntax.Repeat:
		return []resyntax.Expr{e.Expr}
	case resyntax.Concat:
		return e
	case resyntax.Alternate:
		return e
	}
	return nil
}

func formatRange[T rune | byte](start, end T) string {
	if start == end {
		return fmt.Sprintf("%q", rune(start))
	}
	return fmt.Sprintf("%q-%q", rune(start), rune(end))
}

func formatRanges(ranges []string) string {
	if len(ranges) > maxShownRanges {
		rest := len(ranges) - maxShownRanges
		ranges = append(ranges[:maxShownRanges:maxShownRanges], fmt.Sprintf("... %d more", rest))
	}
	return "[" + strings.Join(ranges, " ") + "]"
}

func classRanges(e resyntax.Expr) []string {
	var res []string
	switch e := e.(type) {
	case resyntax.CharClass:
		for _, r := range e {
			res = append(res, formatRange(r.Start, r.End))
		}
	case resyntax.ByteClass:
		for _, r := range e {
			res = append(res, formatRange(r.Start, r.End))
		}
	}
	return res
}

// describe returns the one-line description of e, without its children.
func describe(e resyntax.Expr) string {
	var details string
	switch e := e.(type) {
	case resyntax.Literal:
		details = fmt.Sprintf("%q", string(e.Chars))
		if e.CaseInsensitive {
			details += " (?i)"
		}
	case resyntax.LiteralBytes:
		details = fmt.Sprintf("%q", e.Bytes)
		if e.CaseInsensitive {
			details += " (?i)"
		}
	case resyntax.CharClass, resyntax.ByteClass:
		details = formatRanges(classRanges(e))
	case resyntax.Group:
		switch {
		case e.Name != "":
			details = fmt.Sprintf("#%d <%s>", e.Index, e.Name)
		case e.Capturing():
			details = fmt.Sprintf("#%d", e.Index)
		default:
			details = "(?:)"
		}
	case resyntax.Repeat:
		details = e.Repeater.String()
		if !e.Greedy {
			details += "?"
		}
	}
	if details == "" {
		return typeName(e)
	}
	return typeName(e) + " " + details
}

// foldExpr computes a value for e bottom-up: build is called once per node
// with the values already computed for its children. The walk keeps its
// own stack, so nesting depth does not grow the call stack.
func foldExpr[T any](e resyntax.Expr, build func(e resyntax.Expr, children []T) T) T {
	type frame struct {
		e    resyntax.Expr
		subs []resyntax.Expr
		done []T
	}
	stack := []*frame{{e: e, subs: children(e)}}
	for {
		top := stack[len(stack)-1]
		if len(top.done) < len(top.subs) {
			next := top.subs[len(top.done)]
			stack = append(stack, &frame{e: next, subs: children(next)})
			continue
		}
		v := build(top.e, top.done)
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return v
		}
		parent := stack[len(stack)-1]
		parent.done = append(parent.done, v)
	}
}

func asTree(e resyntax.Expr) treeprint.Tree {
	type pending struct {
		e      resyntax.Expr
		parent treeprint.Tree
	}
	var todo []pending
	// children go on in reverse so that they come off in order
	push := func(parent treeprint.Tree, subs []resyntax.Expr) {
		for i := len(subs) - 1; i >= 0; i-- {
			todo = append(todo, pending{e: subs[i], parent: parent})
		}
	}
	root := treeprint.NewWithRoot(describe(e))
	push(root, children(e))
	for len(todo) > 0 {
		next := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		push(next.parent.AddBranch(describe(next.e)), children(next.e))
	}
	return root
}

// ToTree renders e as an indented tree.
func ToTree(e resyntax.Expr) string {
	return asTree(e).String()
}

func asMapSlice(e resyntax.Expr) yaml.MapSlice {
	return foldExpr(e, mapSlice)
}

// mapSlice describes a single node whose children are already described.
func mapSlice(e resyntax.Expr, items []yaml.MapSlice) yaml.MapSlice {
	m := yaml.MapSlice{{Key: "type", Value: typeName(e)}}
	add := func(key string, value any) {
		m = append(m, yaml.MapItem{Key: key, Value: value})
	}
	switch e := e.(type) {
	case resyntax.Literal:
		add("chars", string(e.Chars))
		add("case_insensitive", e.CaseInsensitive)
	case resyntax.LiteralBytes:
		add("bytes", fmt.Sprintf("%q", e.Bytes))
		add("case_insensitive", e.CaseInsensitive)
	case resyntax.CharClass, resyntax.ByteClass:
		add("ranges", classRanges(e))
	case resyntax.Group:
		add("index", e.Index)
		if e.Name != "" {
			add("name", e.Name)
		}
	case resyntax.Repeat:
		add("op", e.Repeater.Op.String())
		if e.Repeater.Op == resyntax.Range {
			add("min", e.Repeater.Min)
			if e.Repeater.Bounded {
				add("max", e.Repeater.Max)
			}
		}
		add("greedy", e.Greedy)
	}
	if len(items) > 0 {
		add("children", items)
	}
	return m
}

// ToYAML renders e as a YAML document that keeps field order.
func ToYAML(e resyntax.Expr) (string, error) {
	out, err := yaml.Marshal(asMapSlice(e))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
