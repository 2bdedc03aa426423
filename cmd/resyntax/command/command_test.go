package command

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
	"gotest.tools/v3/assert"

	"github.com/auvred/resyntax"
)

// run executes the root command with fresh flag values.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	rootArgs.Flags = resyntax.DefaultFlags.String()
	rootArgs.AllowMixedUTF8 = false
	parseArgs.Output = "tree"
	genArgs.Package = "main"
	genArgs.Name = "Pattern"
	genArgs.Output = ""

	var stdout, stderr bytes.Buffer
	Root.SetOut(&stdout)
	Root.SetErr(&stderr)
	Root.SetArgs(args)
	err := Root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		e        resyntax.Expr
		expected string
	}{
		{resyntax.Empty{}, "Empty"},
		{resyntax.Literal{Chars: []rune("ab")}, `Literal "ab"`},
		{resyntax.Literal{Chars: []rune("a"), CaseInsensitive: true}, `Literal "a" (?i)`},
		{resyntax.LiteralBytes{Bytes: []byte{0xff}}, `LiteralBytes "\xff"`},
		{resyntax.CharClass{{Start: 'a', End: 'z'}, {Start: '_', End: '_'}}, `CharClass ['a'-'z' '_']`},
		{resyntax.ByteClass{{Start: 0, End: 9}}, `ByteClass ['\x00'-'\t']`},
		{resyntax.Group{Expr: resyntax.Empty{}, Index: 2}, "Group #2"},
		{resyntax.Group{Expr: resyntax.Empty{}, Index: 1, Name: "x"}, "Group #1 <x>"},
		{resyntax.Group{Expr: resyntax.Empty{}}, "Group (?:)"},
		{resyntax.Repeat{Repeater: resyntax.Repeater{Op: resyntax.ZeroOrMore}, Greedy: true}, "Repeat *"},
		{resyntax.Repeat{Repeater: resyntax.Repeater{Op: resyntax.Range, Min: 2, Max: 4, Bounded: true}}, "Repeat {2,4}?"},
		{resyntax.WordBoundary{}, "WordBoundary"},
	}
	for _, c := range cases {
		assert.Equal(t, describe(c.e), c.expected)
	}

	var many resyntax.CharClass
	for c := 'a'; c < 'a'+20; c += 2 {
		many = append(many, resyntax.ClassRange{Start: c, End: c})
	}
	assert.Assert(t, strings.HasSuffix(describe(many), "... 2 more]"))
}

func TestParseTree(t *testing.T) {
	stdout, _, err := run(t, "parse", "a(?P<x>b|c)*")
	assert.NilError(t, err)
	for _, line := range []string{
		"Concat",
		`Literal "a"`,
		"Repeat *",
		"Group #1 <x>",
		"Alternate",
		`Literal "b"`,
		`Literal "c"`,
	} {
		assert.Assert(t, strings.Contains(stdout, line), "missing %q in\n%s", line, stdout)
	}
	assert.Assert(t, strings.HasPrefix(stdout, "Concat\n"))
}

type yamlNode struct {
	Type     string     `yaml:"type"`
	Chars    string     `yaml:"chars"`
	Ranges   []string   `yaml:"ranges"`
	Index    int        `yaml:"index"`
	Op       string     `yaml:"op"`
	Min      int        `yaml:"min"`
	Max      int        `yaml:"max"`
	Greedy   bool       `yaml:"greedy"`
	Children []yamlNode `yaml:"children"`
}

func TestParseYAML(t *testing.T) {
	stdout, _, err := run(t, "parse", "--output", "yaml", "(x){2,3}?")
	assert.NilError(t, err)

	var root yamlNode
	assert.NilError(t, yaml.Unmarshal([]byte(stdout), &root))
	assert.DeepEqual(t, root, yamlNode{
		Type: "Repeat",
		Op:   "Range",
		Min:  2,
		Max:  3,
		Children: []yamlNode{{
			Type:     "Group",
			Index:    1,
			Children: []yamlNode{{Type: "Literal", Chars: "x"}},
		}},
	})
	assert.Assert(t, strings.Index(stdout, "type:") < strings.Index(stdout, "op:"))
}

func TestParseByteMode(t *testing.T) {
	stdout, _, err := run(t, "parse", "--flags", "", "--output", "yaml", "[^a]")
	assert.NilError(t, err)
	var root yamlNode
	assert.NilError(t, yaml.Unmarshal([]byte(stdout), &root))
	assert.DeepEqual(t, root, yamlNode{Type: "ByteClass", Ranges: []string{`'\x00'-'` + "`'", `'b'-'\x7f'`}})

	_, stderr, err := run(t, "parse", "--flags", "", ".")
	assert.ErrorContains(t, err, "1 of 1 patterns failed to parse")
	assert.Assert(t, strings.Contains(stderr, "error: construct may match invalid UTF-8"))

	_, _, err = run(t, "parse", "--flags", "", "--allow-mixed-utf8", ".")
	assert.NilError(t, err)
}

func TestParseError(t *testing.T) {
	stdout, stderr, err := run(t, "parse", "ab", "a(b")
	assert.ErrorContains(t, err, "1 of 2 patterns failed to parse")
	assert.Equal(t, stdout, "Concat\n├── Literal \"a\"\n└── Literal \"b\"\n")
	assert.Assert(t, strings.Contains(stderr, "a(b\n ^\nerror: unclosed group"), stderr)
}

func TestParseBadFlags(t *testing.T) {
	_, _, err := run(t, "parse", "--flags", "q", "a")
	assert.Error(t, err, `resyntax: invalid flag 'q'`)

	_, _, err = run(t, "parse", "--output", "json", "a")
	assert.ErrorContains(t, err, `unknown output format "json"`)
}

func TestGen(t *testing.T) {
	stdout, _, err := run(t, "gen", "--package", "words", "--name", "Word", `(?i)\w+|[a-c]{2,}?`)
	assert.NilError(t, err)

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "word_gen.go", stdout, parser.ParseComments)
	assert.NilError(t, err, stdout)
	assert.Equal(t, f.Name.Name, "words")
	assert.Equal(t, len(f.Imports), 1)
	assert.Equal(t, f.Imports[0].Path.Value, `"github.com/auvred/resyntax"`)

	assert.Assert(t, strings.HasPrefix(stdout, "// Code generated by resyntax gen. DO NOT EDIT."))
	compact := strings.Join(strings.Fields(stdout), "")
	for _, s := range []string{
		"varWordresyntax.Expr=resyntax.Alternate{",
		"resyntax.Repeat{",
		"Op:resyntax.OneOrMore",
		"Op:resyntax.Range",
		"Min:2",
		"resyntax.CharClass{",
		"{'A','C'}",
	} {
		assert.Assert(t, strings.Contains(compact, s), "missing %q in\n%s", s, stdout)
	}
	assert.Assert(t, !strings.Contains(compact, "Max:"))
}

func TestGenToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pattern_gen.go")
	stdout, _, err := run(t, "gen", "-o", out, "(?-u)a")
	assert.NilError(t, err)
	assert.Equal(t, stdout, "")

	content, err := os.ReadFile(out)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(content), "package main"))
	compact := strings.Join(strings.Fields(string(content)), "")
	assert.Assert(t, strings.Contains(compact, "resyntax.LiteralBytes{Bytes:[]byte{byte(0x61)}"), string(content))
}

func TestGenErrors(t *testing.T) {
	_, _, err := run(t, "gen", "--name", "not-an-ident", "a")
	assert.ErrorContains(t, err, `invalid variable name "not-an-ident"`)

	_, stderr, err := run(t, "gen", "a**")
	assert.ErrorContains(t, err, "repetition operator cannot be applied to repetition (*)")
	assert.Assert(t, strings.Contains(stderr, "a**\n  ^"))
}

func TestFoldExprOrder(t *testing.T) {
	e, err := resyntax.Parse("a(b|c)d", resyntax.DefaultFlags)
	assert.NilError(t, err)
	actual := foldExpr(e, func(e resyntax.Expr, subs []string) string {
		if len(subs) == 0 {
			return describe(e)
		}
		return typeName(e) + "(" + strings.Join(subs, ", ") + ")"
	})
	assert.Equal(t, actual, `Concat(Literal "a", Group(Alternate(Literal "b", Literal "c")), Literal "d")`)
}

func TestDeeplyNestedWalks(t *testing.T) {
	const n = 100000
	pattern := strings.Repeat("(?:", n) + "a" + strings.Repeat(")", n)
	e, err := resyntax.Parse(pattern, resyntax.DefaultFlags)
	assert.NilError(t, err)

	depth := foldExpr(e, func(e resyntax.Expr, subs []int) int {
		if len(subs) == 0 {
			return 0
		}
		return subs[0] + 1
	})
	assert.Equal(t, depth, n)

	// building the tree is iterative; rendering is left to treeprint
	assert.Assert(t, asTree(e) != nil)
	assert.Assert(t, foldExpr(e, exprCode) != nil)
	assert.Equal(t, len(asMapSlice(e)), 3)
}
