// Package interp implements the tree-walking interpreter: it drives a
// Program's instruction tree against a Tape, mediating all I/O through
// caller-supplied handlers whose failures abort the run.
package interp

import (
	"github.com/tripwire/bf/bf/bferr"
	"github.com/tripwire/bf/bf/buffer"
	"github.com/tripwire/bf/bf/config"
	"github.com/tripwire/bf/bf/instr"
	"github.com/tripwire/bf/bf/program"
	"github.com/tripwire/bf/bf/tape"
)

// eofSentinel is the distinguished "no more input" byte (spec.md §3).
const eofSentinel int8 = -1

// InputHandler is called on a Read instruction when no buffered input
// remains. It is expected to call Interpreter.Feed before returning;
// failing to do so is tolerated and treated as end of input.
type InputHandler func(i *Interpreter, ctx any) error

// OutputHandler is called once per unit of quantity on a Print
// instruction.
type OutputHandler func(i *Interpreter, b int8, ctx any) error

// DebugHandler is called once per unit of quantity on a Debug
// instruction, only when Configuration.DebugEnabled is true.
type DebugHandler func(i *Interpreter, ctx any) error

// Interpreter owns a Configuration, a Program, a Tape, and three optional
// handlers. None of its fields are safe for concurrent use from more than
// one goroutine at a time (spec.md §5).
type Interpreter struct {
	cfg  *config.Configuration
	prog *program.Program
	tp   *tape.Tape

	inputHandler  InputHandler
	inputCtx      any
	outputHandler OutputHandler
	outputCtx     any
	debugHandler  DebugHandler
	debugCtx      any

	// per-run state, reset at the top of every Run call.
	input       *buffer.Buffer
	inputOffset uint64
	hadInput    bool
	endReached  bool
}

// New constructs an Interpreter over the given configuration, program,
// and tape. No handlers are installed; Run will fail the moment it needs
// one that hasn't been set and the program actually exercises it, via the
// same handler-failure path as any other handler error — callers that
// only exercise opcodes they've installed handlers for never notice.
func New(cfg *config.Configuration, prog *program.Program, tp *tape.Tape) *Interpreter {
	return &Interpreter{cfg: cfg, prog: prog, tp: tp}
}

// SetInputHandler installs the handler invoked for Read instructions once
// the embedded input (and any fed input) is exhausted.
func (i *Interpreter) SetInputHandler(h InputHandler, ctx any) {
	i.inputHandler = h
	i.inputCtx = ctx
}

// SetOutputHandler installs the handler invoked for Print instructions.
func (i *Interpreter) SetOutputHandler(h OutputHandler, ctx any) {
	i.outputHandler = h
	i.outputCtx = ctx
}

// SetDebugHandler installs the handler invoked for Debug instructions
// when debugging is enabled.
func (i *Interpreter) SetDebugHandler(h DebugHandler, ctx any) {
	i.debugHandler = h
	i.debugCtx = ctx
}

// Configuration returns the interpreter's configuration.
func (i *Interpreter) Configuration() *config.Configuration { return i.cfg }

// SetConfiguration replaces the interpreter's configuration.
func (i *Interpreter) SetConfiguration(c *config.Configuration) { i.cfg = c }

// Program returns the interpreter's program.
func (i *Interpreter) Program() *program.Program { return i.prog }

// SetProgram replaces the interpreter's program.
func (i *Interpreter) SetProgram(p *program.Program) { i.prog = p }

// Tape returns the interpreter's tape.
func (i *Interpreter) Tape() *tape.Tape { return i.tp }

// SetTape replaces the interpreter's tape.
func (i *Interpreter) SetTape(t *tape.Tape) { i.tp = t }

// Feed replaces the interpreter's input buffer, resetting the input
// cursor and clearing end-of-input. Called by an input handler to supply
// fresh bytes mid-run. Feeding a size-0 buffer is allowed and signals "no
// more input available this round".
func (i *Interpreter) Feed(b *buffer.Buffer) {
	i.input = b
	i.inputOffset = 0
	i.endReached = false
}

// Run walks the program's instruction tree to completion, or until a
// handler fails or an unbalanced-bracket condition is detected at
// runtime. Each call starts fresh with respect to the input cursor and
// loop stack, but the tape retains whatever state a prior failed Run left
// it in (spec.md §7).
func (i *Interpreter) Run() error {
	i.input = i.prog.Input()
	i.inputOffset = 0
	i.hadInput = i.input.Size() > 0
	i.endReached = false

	var stack []*instr.Node
	current := i.prog.Instructions()

	for current != nil {
		switch current.Opcode {
		case instr.Nop:
			// fall through to advance

		case instr.MoveLeft:
			i.tp.MoveLeftBy(current.Quantity)

		case instr.MoveRight:
			i.tp.MoveRightBy(current.Quantity)

		case instr.Increase:
			i.tp.IncreaseBy(current.Quantity)

		case instr.Decrease:
			i.tp.DecreaseBy(current.Quantity)

		case instr.LoopBegin:
			if i.tp.GetValue() != 0 {
				stack = append(stack, current)
				current = current.Loop
				continue
			}
			// zero: skip the body, fall through to advance past the loop

		case instr.LoopEnd:
			if len(stack) == 0 {
				return bferr.UnbalancedBrackets()
			}
			last := len(stack) - 1
			current = stack[last]
			stack = stack[:last]
			continue

		case instr.Read:
			if err := i.execRead(current.Quantity); err != nil {
				return err
			}

		case instr.Print:
			if err := i.execPrint(current.Quantity); err != nil {
				return err
			}

		case instr.Debug:
			if err := i.execDebug(current.Quantity); err != nil {
				return err
			}
		}

		current = current.Next
	}

	if len(stack) != 0 {
		return bferr.UnbalancedBrackets()
	}
	return nil
}

// execPrint calls the output handler once per unit of quantity, stopping
// on the first failure.
func (i *Interpreter) execPrint(quantity uint64) error {
	for n := uint64(0); n < quantity; n++ {
		if i.outputHandler == nil {
			return bferr.IO("no output handler installed", nil)
		}
		if err := i.outputHandler(i, i.tp.GetValue(), i.outputCtx); err != nil {
			return asHandlerError(err)
		}
	}
	return nil
}

// execDebug calls the debug handler once per unit of quantity, but only
// when debugging is enabled; otherwise it is a no-op.
func (i *Interpreter) execDebug(quantity uint64) error {
	if i.cfg == nil || !i.cfg.DebugEnabled {
		return nil
	}
	for n := uint64(0); n < quantity; n++ {
		if i.debugHandler == nil {
			return bferr.IO("no debug handler installed", nil)
		}
		if err := i.debugHandler(i, i.debugCtx); err != nil {
			return asHandlerError(err)
		}
	}
	return nil
}

// execRead runs the read sub-algorithm `quantity` times; only the final
// retrieved byte is committed to the tape (spec.md §4.7 "Repeated
// reads"). This is the later of the two historical variants flagged in
// spec.md §9 (see DESIGN.md).
func (i *Interpreter) execRead(quantity uint64) error {
	var last int8
	for n := uint64(0); n < quantity; n++ {
		b, err := i.readOne()
		if err != nil {
			return err
		}
		last = b
	}
	i.applyReadResult(last)
	return nil
}

// readOne implements the single-character read sub-algorithm of
// spec.md §4.7, returning the byte that was read (possibly eofSentinel).
func (i *Interpreter) readOne() (int8, error) {
	if i.endReached {
		return eofSentinel, nil
	}
	if i.inputOffset < i.input.Size() {
		b := i.input.Get(i.inputOffset)
		i.inputOffset++
		return b, nil
	}
	if i.hadInput {
		i.endReached = true
		return eofSentinel, nil
	}
	if i.inputHandler == nil {
		return 0, bferr.IO("no input handler installed", nil)
	}
	if err := i.inputHandler(i, i.inputCtx); err != nil {
		return 0, asHandlerError(err)
	}
	if i.inputOffset < i.input.Size() {
		b := i.input.Get(i.inputOffset)
		i.inputOffset++
		return b, nil
	}
	i.endReached = true
	return eofSentinel, nil
}

// applyReadResult writes b to the tape, applying the end-of-input policy
// when b is the EOF sentinel.
func (i *Interpreter) applyReadResult(b int8) {
	if b != eofSentinel {
		i.tp.SetValue(b)
		return
	}
	switch i.cfg.EndOfInputAction {
	case config.StoreZero:
		i.tp.SetValue(0)
	case config.StoreEof:
		i.tp.SetValue(eofSentinel)
	case config.DoNothing:
		// leave the cell untouched
	}
}

// asHandlerError normalizes a handler's returned error: a *bferr.Error is
// passed through, anything else becomes a generic I/O error wrapping the
// original, matching spec.md §7's "synthesizes a generic I/O error" rule
// for handlers that fail without populating a structured error.
func asHandlerError(err error) error {
	if err == nil {
		return nil
	}
	if bfe, ok := err.(*bferr.Error); ok {
		return bfe
	}
	return bferr.IO("handler failed", err)
}
