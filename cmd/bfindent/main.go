// Command bfindent parses a Brainfuck source file and pretty-prints its
// coalesced instruction tree with one line per instruction, indenting
// loop bodies — a debugging aid for inspecting what the loader produced.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tripwire/bf/bf/instr"
	"github.com/tripwire/bf/bf/program"
	"github.com/tripwire/bf/internal/bfio"
)

func main() {
	flag.Parse()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: bfindent <source-file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	src, err := bfio.LoadSource(path)
	if err != nil {
		logger.Error("failed to read source", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}

	p := program.New()
	if err := p.Load(bfio.BytesToBuffer(src)); err != nil {
		logger.Error("failed to parse program", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	printChain(w, p.Instructions(), 0)
}

// printChain walks a Next-linked chain, printing one line per node and
// recursing into loop bodies at depth+1.
func printChain(w *bufio.Writer, n *instr.Node, depth int) {
	for n != nil {
		indent := strings.Repeat("  ", depth)
		if n.Opcode == instr.Nop {
			fmt.Fprintf(w, "%s(nop)\n", indent)
		} else if n.Quantity > 1 {
			fmt.Fprintf(w, "%s%c x%d\n", indent, byte(n.Opcode), n.Quantity)
		} else {
			fmt.Fprintf(w, "%s%c\n", indent, byte(n.Opcode))
		}
		if n.Opcode == instr.LoopBegin {
			printChain(w, n.Loop, depth+1)
		}
		n = n.Next
	}
}
