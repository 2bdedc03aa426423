package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/auvred/resyntax/cmd/resyntax/command"
)

func main() {
	// glog registers its flags on the standard flag set.
	command.Root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	// keep glog from complaining about logging before flag.Parse
	args := os.Args[:]
	os.Args = os.Args[:1]
	flag.Parse()
	os.Args = args

	if err := command.Root.Execute(); err != nil {
		glog.Error(err)
		glog.Flush()
		os.Exit(1)
	}
}
