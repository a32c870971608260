// Command bfminimize parses a Brainfuck source file and re-serializes its
// coalesced instruction tree back to minimal source — one byte per
// opcode, loops re-bracketed, wrapped at a fixed column width — proving
// coalescing loses no program behavior.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tripwire/bf/bf/instr"
	"github.com/tripwire/bf/bf/program"
	"github.com/tripwire/bf/internal/bfio"
)

// lineWidth matches Cattle's own minimize example, which wraps its output
// at 75 columns rather than emitting one unbroken line.
const lineWidth = 75

func main() {
	flag.Parse()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: bfminimize <source-file>")
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

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	ww := &wrappingWriter{w: out}
	if err := writeChain(ww, p.Instructions()); err != nil {
		logger.Error("failed to write minimized program", slog.Any("error", err))
		os.Exit(1)
	}
	if ww.position > 0 {
		out.WriteByte('\n')
	}
}

// wrappingWriter inserts a newline every lineWidth bytes written, the way
// Cattle's minimize example avoids printing one arbitrarily long line.
type wrappingWriter struct {
	w        *bufio.Writer
	position int
}

func (ww *wrappingWriter) writeByte(b byte) error {
	if ww.position >= lineWidth {
		if err := ww.w.WriteByte('\n'); err != nil {
			return err
		}
		ww.position = 0
	}
	if err := ww.w.WriteByte(b); err != nil {
		return err
	}
	ww.position++
	return nil
}

// writeChain walks a Next-linked chain, emitting each opcode Quantity
// times and wrapping loop bodies in '[' ']'.
func writeChain(ww *wrappingWriter, n *instr.Node) error {
	for n != nil {
		switch n.Opcode {
		case instr.Nop:
			// nothing to emit
		case instr.LoopBegin:
			if err := ww.writeByte('['); err != nil {
				return err
			}
			if err := writeChain(ww, n.Loop); err != nil {
				return err
			}
			if err := ww.writeByte(']'); err != nil {
				return err
			}
		case instr.LoopEnd:
			// the enclosing LoopBegin already emits the closing ']'
		default:
			for i := uint64(0); i < n.Quantity; i++ {
				if err := ww.writeByte(byte(n.Opcode)); err != nil {
					return err
				}
			}
		}
		n = n.Next
	}
	return nil
}
