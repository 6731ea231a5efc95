package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zboralski/lattice/render"

	"uncom/internal/callgraph"
)

func cmdGraph(args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	in := fs.String("in", "", "input .COM file")
	out := fs.String("out", "", "output file (default stdout)")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("graph: --in is required")
	}

	d, err := loadImage(*in)
	if err != nil {
		return err
	}

	dot := render.DOT(callgraph.Build(d), filepath.Base(*in))
	if *out == "" {
		fmt.Print(dot)
		return nil
	}
	if err := os.WriteFile(*out, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("graph: write %s: %w", *out, err)
	}
	return nil
}
