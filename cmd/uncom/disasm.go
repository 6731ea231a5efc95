package main

import (
	"flag"
	"fmt"
	"os"
)

func cmdDisasm(args []string) error {
	fs := flag.NewFlagSet("disasm", flag.ExitOnError)
	in := fs.String("in", "", "input .COM file")
	out := fs.String("out", "", "output file (default stdout)")
	opts := listingFlags(fs)
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("disasm: --in is required")
	}

	d, err := loadImage(*in)
	if err != nil {
		return err
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("disasm: create %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}

	return d.Render(w, opts())
}
