// Package program owns an instruction tree and its embedded input buffer,
// and drives the loader to populate them.
package program

import (
	"github.com/tripwire/bf/bf/buffer"
	"github.com/tripwire/bf/bf/instr"
	"github.com/tripwire/bf/bf/loader"
)

// Program is a plain container: an instruction tree root plus an input
// buffer. It starts empty (a lone Nop, size-0 input) and is replaced
// wholesale by Load.
type Program struct {
	root  *instr.Node
	input *buffer.Buffer
}

// New returns an empty Program: instruction tree = single Nop, input =
// size-0 buffer.
func New() *Program {
	return &Program{root: instr.New(), input: buffer.New(0)}
}

// Load parses src via the loader and installs the result, replacing any
// prior instruction tree and input. On failure the Program's existing
// state is left unchanged.
func (p *Program) Load(src *buffer.Buffer) error {
	root, input, err := loader.Load(src)
	if err != nil {
		return err
	}
	p.root = root
	p.input = input
	return nil
}

// Instructions returns the root of the instruction tree.
func (p *Program) Instructions() *instr.Node {
	return p.root
}

// Input returns the embedded input buffer.
func (p *Program) Input() *buffer.Buffer {
	return p.input
}

// SetInstructions installs a pre-built instruction tree, for advanced use
// (tests, tooling that synthesizes trees directly).
func (p *Program) SetInstructions(root *instr.Node) {
	p.root = root
}

// SetInput installs a pre-built input buffer, for advanced use.
func (p *Program) SetInput(in *buffer.Buffer) {
	p.input = in
}
