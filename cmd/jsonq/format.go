package main

import (
	"flag"
)

var formatCmd FormatCmd

type FormatCmd struct {
	InputOptions
	OutputOptions
}

func (f *FormatCmd) Run(args []string) error {
	set := flag.NewFlagSet("format", flag.ContinueOnError)

	set.BoolVar(&f.Yaml, "y", false, "read input document as yaml")
	set.BoolVar(&f.Extended, "x", false, "read input document as json5")
	set.BoolVar(&f.Compact, "compact", false, "write compact output")
	set.StringVar(&f.OutFile, "f", "", "specify the path to the file where the document will be written")

	if err := set.Parse(args); err != nil {
		return err
	}

	doc, err := loadDocument(set.Arg(0), f.InputOptions)
	if err != nil {
		return err
	}
	return writeResult(doc, f.OutputOptions)
}
