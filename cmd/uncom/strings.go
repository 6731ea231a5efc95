package main

import (
	"flag"
	"fmt"
)

func cmdStrings(args []string) error {
	fs := flag.NewFlagSet("strings", flag.ExitOnError)
	in := fs.String("in", "", "input .COM file")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("strings: --in is required")
	}

	d, err := loadImage(*in)
	if err != nil {
		return err
	}

	for _, s := range d.Strings {
		fmt.Printf("%s..%s  %s\n", s.Start, s.End, s.DBStatement())
	}
	return nil
}
