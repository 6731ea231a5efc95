package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zboralski/lattice/render"

	"uncom/internal/callgraph"
	"uncom/internal/output"
)

// cmdDump writes every analysis artifact for one binary into a directory:
// the rendered listing, the label, syscall and string tables as JSON, and
// the call graph as DOT.
func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	in := fs.String("in", "", "input .COM file")
	out := fs.String("out", "", "output directory")
	opts := listingFlags(fs)
	fs.Parse(args)

	if *in == "" || *out == "" {
		return fmt.Errorf("dump: --in and --out are required")
	}

	d, err := loadImage(*in)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("dump: mkdir %s: %w", *out, err)
	}

	if err := output.WriteListing(*out, d, opts()); err != nil {
		return err
	}
	if err := output.WriteLabelsJSON(*out, d); err != nil {
		return err
	}
	if err := output.WriteSyscallsJSON(*out, d); err != nil {
		return err
	}
	if err := output.WriteStringsJSON(*out, d); err != nil {
		return err
	}

	g := callgraph.Build(d)
	dot := render.DOT(g, filepath.Base(*in))
	path := filepath.Join(*out, "callgraph.dot")
	if err := os.WriteFile(path, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("dump: write %s: %w", path, err)
	}

	fmt.Fprintf(os.Stderr, "analyzed %d bytes; wrote listing.asm, labels.json, syscalls.json, strings.json, callgraph.dot to %s\n",
		len(d.Image().Data), *out)
	return nil
}
