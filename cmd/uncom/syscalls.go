package main

import (
	"flag"
	"fmt"
)

func cmdSyscalls(args []string) error {
	fs := flag.NewFlagSet("syscalls", flag.ExitOnError)
	in := fs.String("in", "", "input .COM file")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("syscalls: --in is required")
	}

	d, err := loadImage(*in)
	if err != nil {
		return err
	}

	for _, s := range d.Syscalls {
		fmt.Printf("%s  %s\n", s.Addr, s.Func.Annotation())
	}
	return nil
}
