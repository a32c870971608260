// Package loader parses raw Brainfuck source bytes into a coalesced
// instruction tree plus a residual embedded-input buffer.
package loader

import (
	"github.com/tripwire/bf/bf/bferr"
	"github.com/tripwire/bf/bf/buffer"
	"github.com/tripwire/bf/bf/instr"
)

// bangByte is the input-section separator.
const bangByte = '!'

// isOpcode reports whether b is one of the nine recognized opcode bytes.
func isOpcode(b int8) bool {
	switch byte(b) {
	case '<', '>', '+', '-', '[', ']', ',', '.', '#':
		return true
	}
	return false
}

// Load parses src into an instruction tree and a residual input buffer.
// It implements spec.md §4.3's three-phase algorithm: a balance pre-pass,
// a recursive structural parse with run-length coalescing of non-bracket
// opcodes, and extraction of everything after the first '!' as embedded
// input.
func Load(src *buffer.Buffer) (*instr.Node, *buffer.Buffer, error) {
	raw := bufferBytes(src)

	if err := checkBalance(raw); err != nil {
		return nil, nil, err
	}

	root, codeEnd := parseChain(raw, 0)

	input := extractInput(raw, codeEnd)

	return root, input, nil
}

// bufferBytes copies a Buffer's contents into a plain []int8 for
// byte-level scanning.
func bufferBytes(b *buffer.Buffer) []int8 {
	out := make([]int8, b.Size())
	for i := range out {
		out[i] = b.Get(uint64(i))
	}
	return out
}

// checkBalance walks raw left-to-right, stopping at the first '!', and
// fails if brackets are not balanced over the scanned prefix.
func checkBalance(raw []int8) error {
	depth := 0
	for _, c := range raw {
		switch byte(c) {
		case bangByte:
			if depth != 0 {
				return bferr.UnbalancedBrackets()
			}
			return nil
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return bferr.UnbalancedBrackets()
			}
		}
	}
	if depth != 0 {
		return bferr.UnbalancedBrackets()
	}
	return nil
}

// parseChain parses a chain of instructions starting at pos, terminated
// by end-of-buffer, a '!', or a matching ']'. It returns the chain's head
// (never nil — an empty region yields a single Nop) and the index where
// parsing stopped: len(raw) if it ran off the end, the index of '!' itself
// if it hit one, or the index after the matching ']'.
func parseChain(raw []int8, pos int) (*instr.Node, int) {
	var head, tail *instr.Node
	link := func(n *instr.Node) {
		if head == nil {
			head = n
			tail = n
		} else {
			tail.Next = n
			tail = n
		}
	}

	for pos < len(raw) {
		c := byte(raw[pos])

		if c == bangByte {
			break
		}

		switch c {
		case '[':
			loopBody, after := parseChain(raw, pos+1)
			n := &instr.Node{Opcode: instr.LoopBegin, Quantity: 1, Loop: loopBody}
			link(n)
			pos = after
			continue

		case ']':
			n := &instr.Node{Opcode: instr.LoopEnd, Quantity: 1}
			link(n)
			pos++
			return headOrNop(head), pos

		case '<', '>', '+', '-', ',', '.', '#':
			op := instr.Opcode(c)
			count := uint64(1)
			next := pos + 1
			for next < len(raw) && byte(raw[next]) == c {
				count++
				next++
			}
			n := &instr.Node{Opcode: op, Quantity: count}
			link(n)
			pos = next
			continue

		default:
			// Comment byte: skip.
			pos++
			continue
		}
	}

	return headOrNop(head), pos
}

// headOrNop returns head if non-nil, else a fresh single Nop instruction,
// per spec.md §4.3's "empty-chain rule".
func headOrNop(head *instr.Node) *instr.Node {
	if head != nil {
		return head
	}
	return instr.New()
}

// extractInput returns the embedded-input buffer: the bytes strictly
// after the first '!' in raw, or a size-0 buffer if there was none or it
// was the last byte. codeEnd is the index returned by the top-level
// parseChain call: either len(raw) (no '!' encountered) or the index of
// the '!' itself.
func extractInput(raw []int8, codeEnd int) *buffer.Buffer {
	if codeEnd >= len(raw) || byte(raw[codeEnd]) != bangByte {
		return buffer.New(0)
	}
	rest := raw[codeEnd+1:]
	in := buffer.New(uint64(len(rest)))
	in.SetContents(rest)
	return in
}
