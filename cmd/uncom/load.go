package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"uncom/internal/comfile"
	"uncom/internal/disasm"
)

// loadImage reads and analyzes the input binary. A .COM file is raw machine
// code with no magic to check, so any file is accepted; a missing .com
// extension only earns a warning.
func loadImage(path string) (*disasm.Disassembly, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".com") {
		fmt.Fprintf(os.Stderr, "warn: %s does not have a .com extension; treating it as a flat COM image anyway\n", path)
	}

	img, err := comfile.Read(path)
	if err != nil {
		return nil, err
	}
	return disasm.NewImage(img), nil
}

// listingFlags registers the shared listing option flags on fs and returns
// a function that collects them into disasm.Options after parsing.
func listingFlags(fs *flag.FlagSet) func() disasm.Options {
	labels := fs.Bool("labels", true, "write label declaration lines")
	indent := fs.Bool("indent", true, "indent instructions inside labeled blocks")
	offsets := fs.Bool("offsets", false, "append instruction address comments")
	syscalls := fs.Bool("syscalls", false, "annotate recognized int 21h calls")
	bytes := fs.Bool("bytes", false, "append raw instruction bytes")
	comments := fs.Bool("comments", true, "write analysis comments")

	return func() disasm.Options {
		return disasm.Options{
			WriteLabels:     *labels,
			WriteIndent:     *indent,
			OffsetComments:  *offsets,
			SyscallComments: *syscalls,
			WriteBytes:      *bytes,
			MiscComments:    *comments,
		}
	}
}
