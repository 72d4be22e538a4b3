package interpreter

import (
	"github.com/charmbracelet/log"
)

// run executes the loaded program from the top until it halts
func (i *Interpreter) run() error {
	log.Debug("Run started", "lines", len(i.lines), "functions", len(i.funcs))

	i.steps = 0
	i.returnDepth = -1
	return i.loop()
}

// loop steps until halt or error. A fatal error resets runtime state so
// the next run starts idle.
func (i *Interpreter) loop() error {
	for {
		halted, err := i.Step()
		if err != nil {
			log.Debug("Run aborted", "line", i.pc, "depth", i.calls.Size(), "error", err)
			i.Reset()
			return err
		}

		if halted {
			return nil
		}
	}
}

// Step executes a single line, returning (halted, error)
func (i *Interpreter) Step() (bool, error) {
	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return false, &LineError{Line: i.pc, Source: i.lineAt(i.pc), Err: ErrMaxStepsExceeded}
	}

	halted, err := coreStep(i)
	i.steps++

	return halted, err
}

// coreStep is the fetch, skip, dispatch, advance cycle
func coreStep(i *Interpreter) (bool, error) {
	i.skipFunctionBodies()

	if i.pc >= len(i.lines) {
		i.terminate()
		return true, nil
	}

	line := i.lines[i.pc]
	if err := i.dispatch(line); err != nil {
		return false, &LineError{Line: i.pc, Source: line, Err: err}
	}

	if i.advance() {
		return true, nil
	}

	// wraparound guard
	return i.pc == 0, nil
}

// skipFunctionBodies moves PC past a def line and everything that belongs
// to it, so uncalled functions are not executed by fall-through.
func (i *Interpreter) skipFunctionBodies() {
	if i.pc >= len(i.lines) || !isFunctionDef(i.lines[i.pc]) {
		return
	}

	start := i.pc
	for i.pc < len(i.lines) && (isBlockLine(i.lines[i.pc]) || isFunctionDef(i.lines[i.pc])) {
		i.pc++
	}

	log.Debug("Skipped function bodies", "from", start, "to", i.pc)
}

// advance moves PC to the next line. Falling off the end of an indented
// block, or off the end of the table, returns from the innermost call; a
// call that was itself the last line of a body returns again.
// It reports true when execution should halt.
func (i *Interpreter) advance() bool {
	i.pc++

	for i.pc >= len(i.lines) || i.leavesBlock(i.pc) {
		saved, ok := i.calls.Pop()
		if !ok {
			break
		}

		i.pc = saved + 1
		log.Debug("Return", "to", i.pc, "depth", i.calls.Size())

		if i.calls.Size() == i.returnDepth {
			return true
		}
	}

	if i.pc >= len(i.lines) {
		i.terminate()
		return true
	}

	return false
}

// leavesBlock reports whether the line before pc closes an indented block.
// A def line directly followed by an unindented line is an empty body.
func (i *Interpreter) leavesBlock(pc int) bool {
	prev := i.lines[pc-1]
	return (isBlockLine(prev) || isFunctionDef(prev)) && !isBlockLine(i.lines[pc])
}

// terminate ends a run normally, clearing variables and the call stack
func (i *Interpreter) terminate() {
	log.Debug("Run finished", "steps", i.steps, "variables", i.vars.Len())
	i.Reset()
}

func (i *Interpreter) lineAt(pc int) string {
	if pc < 0 || pc >= len(i.lines) {
		return ""
	}

	return i.lines[pc]
}
