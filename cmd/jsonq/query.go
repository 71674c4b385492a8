package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/midbel/jsonq/query"
)

var (
	queryCmd     QueryCmd
	functionsCmd FunctionsCmd
)

type QueryCmd struct {
	Noout bool
	Timed bool
	InputOptions
	OutputOptions
}

const queryInfo = "query took %s matching %q"

func (q *QueryCmd) Run(args []string) error {
	set := flag.NewFlagSet("query", flag.ContinueOnError)
	set.BoolVar(&q.Noout, "quiet", false, "suppress output - default is to print the result")
	set.BoolVar(&q.Timed, "time", false, "print the time taken by the query")
	set.BoolVar(&q.Yaml, "y", false, "read input document as yaml")
	set.BoolVar(&q.Extended, "x", false, "read input document as json5")
	set.BoolVar(&q.Compact, "compact", false, "write compact output")
	set.StringVar(&q.OutFile, "f", "", "specify the path to the file where the result will be written")

	if err := set.Parse(args); err != nil {
		return err
	}
	doc, err := loadDocument(set.Arg(1), q.InputOptions)
	if err != nil {
		return err
	}
	now := time.Now()
	path, err := query.Parse(set.Arg(0))
	if err != nil {
		return err
	}
	result, err := path.Apply(doc)
	if err != nil {
		return err
	}
	elapsed := time.Since(now)
	if !q.Noout {
		if err := writeResult(result, q.OutputOptions); err != nil {
			return err
		}
	}
	if q.Timed {
		fmt.Fprintf(os.Stdout, queryInfo, elapsed, set.Arg(0))
		fmt.Fprintln(os.Stdout)
	}
	if result == nil {
		return errFail
	}
	return nil
}

type FunctionsCmd struct{}

func (c *FunctionsCmd) Run(args []string) error {
	set := flag.NewFlagSet("functions", flag.ContinueOnError)
	if err := set.Parse(args); err != nil {
		return err
	}
	for _, n := range query.Functions() {
		fmt.Fprintln(os.Stdout, n)
	}
	return nil
}
