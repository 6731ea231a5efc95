// Package callgraph exports discovered call sites as a lattice graph.
package callgraph

import (
	"sort"

	"github.com/zboralski/lattice"

	"uncom/internal/codec"
	"uncom/internal/comfile"
	"uncom/internal/disasm"
)

// Build constructs a call graph from a completed disassembly. Nodes are
// "_start" plus every function label; each near-call site with a resolved
// target becomes an edge whose caller is the nearest preceding function
// label in address order, or "_start" when the site precedes every
// function. Attribution is purely positional over already-discovered
// records; no control flow is computed.
func Build(d *disasm.Disassembly) *lattice.Graph {
	g := &lattice.Graph{}
	g.Nodes = append(g.Nodes, "_start")

	var funcs []disasm.Label
	for _, l := range d.Labels {
		if l.Kind == disasm.LabelFunction {
			g.Nodes = append(g.Nodes, l.Name)
			funcs = append(funcs, l)
		}
	}
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].Addr < funcs[j].Addr })

	for _, inst := range d.Insts {
		if inst.Shape != codec.ShapeNearCall {
			continue
		}
		target, ok := inst.BranchTarget()
		if !ok {
			continue
		}
		// A call target can also be a jump target; only the function
		// label names a node in this graph.
		callee, ok := funcLabelAt(funcs, target)
		if !ok {
			continue
		}
		g.Edges = append(g.Edges, lattice.Edge{
			Caller: callerAt(funcs, inst.Addr),
			Callee: callee,
		})
	}

	g.Dedup()
	return g
}

// funcLabelAt returns the name of the first function label at addr.
func funcLabelAt(funcs []disasm.Label, addr comfile.Address) (string, bool) {
	for _, f := range funcs {
		if f.Addr == addr {
			return f.Name, true
		}
	}
	return "", false
}

// callerAt attributes a call site to the last function label at or before
// its address.
func callerAt(funcs []disasm.Label, addr comfile.Address) string {
	caller := "_start"
	for _, f := range funcs {
		if f.Addr > addr {
			break
		}
		caller = f.Name
	}
	return caller
}
