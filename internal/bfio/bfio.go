// Package bfio supplies the default I/O handlers and the shebang-aware
// source loader used by the cmd/bf* example executables. None of this is
// part of the core (bf/...); it is the "external collaborator" plumbing
// spec.md §1 and §6 describe: the core mediates I/O through handlers, but
// does not ship any particular handler implementation itself.
package bfio

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tripwire/bf/bf/bferr"
	"github.com/tripwire/bf/bf/buffer"
	"github.com/tripwire/bf/bf/interp"
	"github.com/tripwire/bf/bf/tape"
)

// version is the toolkit's release string. There is no build-time
// injection here; it is a plain constant, as spec.md §6 allows ("version
// string accessors" are an out-of-core concern with no specified
// mechanism).
const version = "0.1.0"

// Version returns the toolkit's version string.
func Version() string {
	return version
}

// LoadSource reads the file at path and strips a single leading shebang
// line ("#!...\n") if present. The loader itself (bf/loader) treats '#'
// like any other byte — a bare "#!" in the middle of a program is a Debug
// instruction followed by the '!' that starts the embedded input;
// stripping only ever applies to a genuine leading shebang line, decided
// here, outside the core.
func LoadSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(string(data), "#!") {
		if idx := strings.IndexByte(string(data), '\n'); idx >= 0 {
			return data[idx+1:], nil
		}
		// A shebang line with no trailing newline is the entire file.
		return nil, nil
	}
	return data, nil
}

// BytesToBuffer copies a []byte into a *buffer.Buffer the loader can
// consume.
func BytesToBuffer(data []byte) *buffer.Buffer {
	b := buffer.New(uint64(len(data)))
	signed := make([]int8, len(data))
	for i, c := range data {
		signed[i] = int8(c)
	}
	b.SetContents(signed)
	return b
}

// DefaultInputHandler reads one byte from ctx (a *bufio.Reader) and feeds it
// to the interpreter. On EOF it feeds a size-0 buffer, which the
// interpreter's read sub-algorithm treats as "no more input this round".
func DefaultInputHandler(i *interp.Interpreter, ctx any) error {
	r := ctx.(*bufio.Reader)
	b, err := r.ReadByte()
	if err != nil {
		i.Feed(buffer.New(0))
		return nil
	}
	buf := buffer.New(1)
	buf.Set(0, int8(b))
	i.Feed(buf)
	return nil
}

// DefaultOutputHandler writes a single byte to ctx (an io.Writer).
func DefaultOutputHandler(i *interp.Interpreter, b int8, ctx any) error {
	w := ctx.(io.Writer)
	_, err := w.Write([]byte{byte(b)})
	return err
}

// DefaultDebugHandler logs the current tape position and cell value to
// ctx (a *slog.Logger) at Debug level, then dumps the whole tape as ASCII
// art to stderr with the current cell bracketed, the way the reference
// Cattle library's own default debug handler does: save the cursor with
// a bookmark, walk left to the beginning counting steps, print each
// visited cell (its character if graphical, else its hex byte) separated
// by spaces, mark the current cell with '<' '>', and restore the cursor
// from the bookmark before returning.
func DefaultDebugHandler(i *interp.Interpreter, ctx any) error {
	logger := ctx.(*slog.Logger)
	tp := i.Tape()
	logger.Debug("debug trap",
		slog.Int64("position", tp.Position()),
		slog.Int64("value", int64(tp.GetValue())),
	)
	return dumpTape(tp, os.Stderr)
}

// dumpTape walks tp from the cursor back to its beginning and renders
// every visited cell as "[... <cell> ...]", restoring the cursor via the
// bookmark stack before returning.
func dumpTape(tp *tape.Tape, w io.Writer) error {
	tp.PushBookmark()
	defer tp.PopBookmark()

	steps := 0
	for !tp.IsAtBeginning() {
		tp.MoveLeft()
		steps++
	}

	if err := writeByte(w, '['); err != nil {
		return err
	}
	for {
		if steps == 0 {
			if err := writeByte(w, '<'); err != nil {
				return err
			}
		}

		v := tp.GetValue()
		if isGraphic(v) {
			if err := writeByte(w, byte(v)); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(w, "0x%X", uint8(v)); err != nil {
			return bferr.IO("debug tape dump failed", err)
		}

		if steps == 0 {
			if err := writeByte(w, '>'); err != nil {
				return err
			}
		}
		if tp.IsAtEnd() {
			break
		}

		if err := writeByte(w, ' '); err != nil {
			return err
		}
		tp.MoveRight()
		steps--
	}

	if err := writeByte(w, ']'); err != nil {
		return err
	}
	return writeByte(w, '\n')
}

// isGraphic reports whether v is a printable, non-space ASCII byte.
func isGraphic(v int8) bool {
	return v > 0x20 && v < 0x7F
}

func writeByte(w io.Writer, b byte) error {
	if _, err := w.Write([]byte{b}); err != nil {
		return bferr.IO("debug tape dump failed", err)
	}
	return nil
}
