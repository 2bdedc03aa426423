package command

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"reflect"

	"github.com/dave/jennifer/jen"
	"github.com/spf13/cobra"

	"github.com/auvred/resyntax"
)

const resyntaxPath = "github.com/auvred/resyntax"

var (
	genArgs = struct {
		Package string
		Name    string
		Output  string
	}{
		Package: "main",
		Name:    "Pattern",
	}

	Gen = &cobra.Command{
		Use:   "gen <pattern>",
		Short: "Generate Go source declaring the syntax tree of a pattern.",
		Long: "Parses the pattern and writes a Go file that declares a package-level variable " +
			"holding its syntax tree as a resyntax.Expr composite literal.",
		Example: "resyntax gen --package words --name Word -o word_gen.go '\\w+'",
		Args:    cobra.ExactArgs(1),
		RunE:    commandGen,
	}
)

func commandGen(cmd *cobra.Command, args []string) error {
	if !token.IsIdentifier(genArgs.Package) {
		return fmt.Errorf("invalid package name %q", genArgs.Package)
	}
	if !token.IsIdentifier(genArgs.Name) {
		return fmt.Errorf("invalid variable name %q", genArgs.Name)
	}
	flags, err := parseFlags()
	if err != nil {
		return err
	}
	pattern := cmd.Flags().Arg(0)
	e, err := resyntax.Parse(pattern, flags)
	if err != nil {
		if perr, ok := err.(*resyntax.Error); ok {
			fmt.Fprintln(cmd.ErrOrStderr(), perr.Caret(pattern))
		}
		return err
	}

	f := GenerateFile(genArgs.Package, genArgs.Name, pattern, flags, e)

	var w io.Writer = cmd.OutOrStdout()
	if genArgs.Output != "" {
		out, err := os.Create(genArgs.Output)
		if err != nil {
			return err
		}
		defer out.Close()
		w = out
	}
	return f.Render(w)
}

// GenerateFile builds a Go file in package pkg that declares the variable
// name holding e, the parsed form of pattern.
func GenerateFile(pkg, name, pattern string, flags resyntax.Flags, e resyntax.Expr) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by resyntax gen. DO NOT EDIT.")
	f.Comment(fmt.Sprintf("%s is the syntax tree of %q parsed with flags %q.", name, pattern, flags))
	f.Var().Id(name).Qual(resyntaxPath, "Expr").Op("=").Add(foldExpr(e, exprCode))
	return f
}

// exprCode builds the composite literal for e from the literals already
// built for its children.
func exprCode(e resyntax.Expr, subs []jen.Code) jen.Code {
	typ := jen.Qual(resyntaxPath, reflect.TypeOf(e).Name())
	switch e := e.(type) {
	case resyntax.Literal:
		chars := make([]jen.Code, len(e.Chars))
		for i, c := range e.Chars {
			chars[i] = jen.LitRune(c)
		}
		d := jen.Dict{jen.Id("Chars"): jen.Index().Rune().Values(chars...)}
		if e.CaseInsensitive {
			d[jen.Id("CaseInsensitive")] = jen.True()
		}
		return typ.Values(d)
	case resyntax.LiteralBytes:
		bytes := make([]jen.Code, len(e.Bytes))
		for i, b := range e.Bytes {
			bytes[i] = jen.LitByte(b)
		}
		d := jen.Dict{jen.Id("Bytes"): jen.Index().Byte().Values(bytes...)}
		if e.CaseInsensitive {
			d[jen.Id("CaseInsensitive")] = jen.True()
		}
		return typ.Values(d)
	case resyntax.CharClass:
		ranges := make([]jen.Code, len(e))
		for i, r := range e {
			ranges[i] = jen.Values(jen.LitRune(r.Start), jen.LitRune(r.End))
		}
		return typ.Values(ranges...)
	case resyntax.ByteClass:
		ranges := make([]jen.Code, len(e))
		for i, r := range e {
			ranges[i] = jen.Values(jen.LitByte(r.Start), jen.LitByte(r.End))
		}
		return typ.Values(ranges...)
	case resyntax.Group:
		d := jen.Dict{jen.Id("Expr"): subs[0]}
		if e.Capturing() {
			d[jen.Id("Index")] = jen.Lit(e.Index)
		}
		if e.Name != "" {
			d[jen.Id("Name")] = jen.Lit(e.Name)
		}
		return typ.Values(d)
	case resyntax.Repeat:
		rep := jen.Dict{jen.Id("Op"): jen.Qual(resyntaxPath, e.Repeater.Op.String())}
		if e.Repeater.Op == resyntax.Range {
			rep[jen.Id("Min")] = jen.Lit(int(e.Repeater.Min))
			if e.Repeater.Bounded {
				rep[jen.Id("Max")] = jen.Lit(int(e.Repeater.Max))
				rep[jen.Id("Bounded")] = jen.True()
			}
		}
		d := jen.Dict{
			jen.Id("Expr"):     subs[0],
			jen.Id("Repeater"): jen.Qual(resyntaxPath, "Repeater").Values(rep),
		}
		if e.Greedy {
			d[jen.Id("Greedy")] = jen.True()
		}
		return typ.Values(d)
	case resyntax.Concat, resyntax.Alternate:
		return typ.Values(subs...)
	}
	return typ.Values()
}

func init() {
	Gen.Flags().StringVar(&genArgs.Package, "package", genArgs.Package, "Package name of the generated file.")
	Gen.Flags().StringVar(&genArgs.Name, "name", genArgs.Name, "Name of the generated variable.")
	Gen.Flags().StringVarP(&genArgs.Output, "output", "o", genArgs.Output, "File to write. Defaults to stdout.")

	Root.AddCommand(Gen)
}
