package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/midbel/cli"
)

var errFail = errors.New("fail")

var (
	summary = "jsonq helps to query and transform json documents"
	help    = ""
)

func main() {
	var (
		set  = cli.NewFlagSet("jsonq")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"format"}, &cli.Command{Handler: &formatCmd})
	root.Register([]string{"exec"}, &cli.Command{Handler: &queryCmd})
	root.Register([]string{"query"}, &cli.Command{Handler: &queryCmd})
	root.Register([]string{"query", "execute"}, &cli.Command{Handler: &queryCmd})
	root.Register([]string{"functions"}, &cli.Command{Handler: &functionsCmd})

	return root
}
