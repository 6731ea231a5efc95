package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "disasm":
		err = cmdDisasm(os.Args[2:])
	case "dump":
		err = cmdDump(os.Args[2:])
	case "strings":
		err = cmdStrings(os.Args[2:])
	case "labels":
		err = cmdLabels(os.Args[2:])
	case "syscalls":
		err = cmdSyscalls(os.Args[2:])
	case "graph":
		err = cmdGraph(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `uncom: DOS .COM disassembler and annotator

Usage:
  uncom disasm   --in <prog.com> [--out <file>]   Render the annotated listing
  uncom dump     --in <prog.com> --out <dir>      Write listing + JSON artifacts
  uncom strings  --in <prog.com>                  List extracted string constants
  uncom labels   --in <prog.com>                  List discovered labels
  uncom syscalls --in <prog.com>                  List recognized int 21h calls
  uncom graph    --in <prog.com> [--out <file>]   Write the call graph as DOT

Listing flags (disasm, dump):
  --labels     Write label declaration lines (default true)
  --indent     Indent instructions inside labeled blocks (default true)
  --offsets    Append "; 0x01xx" address comments (default false)
  --syscalls   Annotate recognized int 21h calls (default false)
  --bytes      Append raw instruction bytes (default false)
  --comments   Write analysis comments (default true)
`)
}
