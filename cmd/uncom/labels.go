package main

import (
	"flag"
	"fmt"
)

func cmdLabels(args []string) error {
	fs := flag.NewFlagSet("labels", flag.ExitOnError)
	in := fs.String("in", "", "input .COM file")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("labels: --in is required")
	}

	d, err := loadImage(*in)
	if err != nil {
		return err
	}

	for _, l := range d.Labels {
		fmt.Printf("%s  %s\n", l.Addr, l.String())
	}
	return nil
}
