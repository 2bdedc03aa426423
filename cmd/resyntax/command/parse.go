package command

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/auvred/resyntax"
)

var (
	parseArgs = struct {
		Output string
	}{
		Output: "tree",
	}

	Parse = &cobra.Command{
		Use:   "parse <pattern> [<pattern>...]",
		Short: "Parse patterns and print their syntax trees.",
		Long: "Parses each pattern and prints its syntax tree as an indented tree or as YAML.\n\n" +
			"A pattern that fails to parse is printed to stderr with a caret under the error position. " +
			"The command fails if any pattern does.",
		Example: "resyntax parse 'a(?P<x>b|c)*'\n" +
			"resyntax parse --flags '' --output yaml '[^a]+'",
		Args: cobra.MinimumNArgs(1),
		RunE: commandParse,
	}
)

func commandParse(cmd *cobra.Command, args []string) error {
	var render func(resyntax.Expr) (string, error)
	switch parseArgs.Output {
	case "tree":
		render = func(e resyntax.Expr) (string, error) { return ToTree(e), nil }
	case "yaml":
		render = ToYAML
	default:
		return fmt.Errorf("unknown output format %q, want \"tree\" or \"yaml\"", parseArgs.Output)
	}

	flags, err := parseFlags()
	if err != nil {
		return err
	}

	failed := 0
	for _, pattern := range args {
		glog.V(1).Infof("parsing %q with flags %q", pattern, flags)
		e, err := resyntax.Parse(pattern, flags)
		if err != nil {
			failed++
			var perr *resyntax.Error
			if errors.As(err, &perr) {
				fmt.Fprintln(cmd.ErrOrStderr(), perr.Caret(pattern))
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s\nerror: %v\n", pattern, err)
			}
			continue
		}
		out, err := render(e)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d patterns failed to parse", failed, len(args))
	}
	return nil
}

func init() {
	Parse.Flags().StringVarP(&parseArgs.Output, "output", "o", parseArgs.Output, "Output format: \"tree\" or \"yaml\".")

	Root.AddCommand(Parse)
}
