package interpreter

import (
	"io"
	"maps"
	"os"

	"kizhi/pkg/stack"

	"github.com/charmbracelet/log"
)

// DefaultNotFoundMessage is printed when a statement names a missing variable.
const DefaultNotFoundMessage = "Переменная отсутствует в памяти"

// Interpreter loads indented program text and executes it line by line
type Interpreter struct {
	lines []string       // line table
	funcs map[string]int // function name -> index of its def line

	vars  *Store
	calls *stack.Stack[int] // saved PCs of pending calls
	pc    int               // current line index

	loading bool // between "set code" and "end set code"

	// call depth at which an immediate call returns control, -1 during run
	returnDepth int

	meta       map[string]metaFunc
	statements map[string]statementFunc

	out         io.Writer // output writer for print and diagnostics
	notFoundMsg string
	redefine    bool // later def of an existing name wins instead of failing

	maxSteps int // maximum steps per run (0 = unlimited)
	steps    int // steps executed in the current run
}

type Option func(*Interpreter)

// WithWriter sets the output writer for print statements
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithMaxSteps sets a maximum number of steps per run before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithNotFoundMessage replaces the missing-variable diagnostic
func WithNotFoundMessage(msg string) Option {
	return func(i *Interpreter) { i.notFoundMsg = msg }
}

// WithRedefinition lets a later def replace an earlier function of the same name
func WithRedefinition(allow bool) Option {
	return func(i *Interpreter) { i.redefine = allow }
}

// NewInterpreter creates a new Interpreter instance
func NewInterpreter(opts ...Option) *Interpreter {
	it := &Interpreter{
		lines:       make([]string, 0, 16),
		funcs:       make(map[string]int),
		vars:        NewStore(),
		calls:       stack.NewStack[int](),
		returnDepth: -1,
		meta:        newMetaTable(),
		statements:  newStatementTable(),
		out:         nil, // caller should set, or use WithWriter
		notFoundMsg: DefaultNotFoundMessage,
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}

	return it
}

// ExecuteLine accepts one submitted command: a meta-command, a code block
// while loading, or a single statement.
func (i *Interpreter) ExecuteLine(command string) error {
	if command == "" {
		return nil
	}

	if action, ok := i.meta[command]; ok {
		return action(i)
	}

	if i.loading {
		return i.load(splitLines(command))
	}

	return i.executeImmediate(command)
}

// Reset clears runtime state (variables, call stack, PC, counters).
// The loaded program is kept.
func (i *Interpreter) Reset() {
	i.vars.Clear()
	i.calls.Clear()
	i.pc = 0
	i.steps = 0
	i.returnDepth = -1
}

// PC returns the current line index
func (i *Interpreter) PC() int {
	return i.pc
}

// Loading reports whether submitted text is treated as program source
func (i *Interpreter) Loading() bool {
	return i.loading
}

// CallDepth returns the number of pending calls
func (i *Interpreter) CallDepth() int {
	return i.calls.Size()
}

// Lines returns a copy of the line table
func (i *Interpreter) Lines() []string {
	return append([]string(nil), i.lines...)
}

// Functions returns a copy of the function index
func (i *Interpreter) Functions() map[string]int {
	return maps.Clone(i.funcs)
}

// Variables returns a copy of the variable store
func (i *Interpreter) Variables() map[string]int {
	return i.vars.Snapshot()
}

func (i *Interpreter) setCode() error {
	i.loading = true
	return nil
}

func (i *Interpreter) endSetCode() error {
	i.loading = false
	return nil
}

// executeImmediate runs a statement typed outside of a program. A call is
// run to completion through the engine; anything else only touches the store.
func (i *Interpreter) executeImmediate(command string) error {
	name, args := splitStatement(command)
	if name != "call" {
		return i.dispatch(command)
	}

	if len(args) < 1 {
		return errMissingArgs(name)
	}

	idx, ok := i.funcs[args[0]]
	if !ok {
		return undefinedFunction(args[0])
	}

	log.Debug("Immediate call", "function", args[0], "line", idx)

	i.steps = 0
	i.returnDepth = i.calls.Size()
	i.calls.Push(i.pc)
	i.pc = idx

	var err error
	if !i.advance() {
		err = i.loop()
	}

	i.returnDepth = -1
	i.pc = 0
	return err
}
