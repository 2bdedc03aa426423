// Package command contains the commands of the resyntax tool.
package command

import (
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/auvred/resyntax"
)

var (
	rootArgs = struct {
		Flags          string
		AllowMixedUTF8 bool
	}{
		Flags: resyntax.DefaultFlags.String(),
	}

	Root = &cobra.Command{
		Use:   "resyntax",
		Short: "resyntax parses regular expressions into syntax trees.",
		Long: "`resyntax` parses regular expressions and prints the resulting syntax tree, " +
			"or generates Go source that declares it.\n\n" +
			"Patterns are parsed with the inline flag letters given by --flags (any of \"imsUxu\"). " +
			"Leaving out \"u\" parses in byte mode.",
		SilenceUsage: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			glog.Flush()
		},
	}
)

// parseFlags returns the parser flags selected on the command line.
func parseFlags() (resyntax.Flags, error) {
	flags, err := resyntax.ParseFlags(rootArgs.Flags)
	if err != nil {
		return resyntax.Flags{}, err
	}
	flags.AllowMixedUTF8 = rootArgs.AllowMixedUTF8
	return flags, nil
}

func registerFlags(fs *pflag.FlagSet) {
	fs.StringVar(&rootArgs.Flags, "flags", rootArgs.Flags, "Initial inline flags, e.g. \"iu\". Without \"u\" patterns are parsed in byte mode.")
	fs.BoolVar(&rootArgs.AllowMixedUTF8, "allow-mixed-utf8", rootArgs.AllowMixedUTF8, "Allow byte-mode constructs that may match invalid UTF-8.")
}

func init() {
	registerFlags(Root.PersistentFlags())
}
