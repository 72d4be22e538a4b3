package interpreter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

type metaFunc func(*Interpreter) error

type statementFunc func(*Interpreter, []string) error

// newMetaTable maps mode commands, matched against the whole submitted string
func newMetaTable() map[string]metaFunc {
	return map[string]metaFunc{
		"set code":     (*Interpreter).setCode,
		"end set code": (*Interpreter).endSetCode,
		"run":          (*Interpreter).run,
	}
}

// newStatementTable maps statement keywords to their handlers
func newStatementTable() map[string]statementFunc {
	return map[string]statementFunc{
		"set":   setStatement,
		"sub":   subStatement,
		"print": printStatement,
		"rem":   remStatement,
		"call":  callStatement,
	}
}

// splitStatement separates the keyword from its whitespace-separated arguments
func splitStatement(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	return fields[0], fields[1:]
}

// dispatch executes one statement line. Blank lines do nothing.
func (i *Interpreter) dispatch(line string) error {
	name, args := splitStatement(line)
	if name == "" {
		return nil
	}

	handler, ok := i.statements[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	return handler(i, args)
}

func setStatement(i *Interpreter, args []string) error {
	if len(args) < 2 {
		return errMissingArgs("set")
	}

	v, err := parseValue(args[1])
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("%w: %d, value should be greater than 0", ErrInvalidValue, v)
	}

	i.vars.Set(args[0], v)
	return nil
}

func subStatement(i *Interpreter, args []string) error {
	if len(args) < 2 {
		return errMissingArgs("sub")
	}

	v, err := parseValue(args[1])
	if err != nil {
		return err
	}

	name := args[0]
	cur, ok := i.vars.Get(name)
	if !ok {
		i.reportNotFound(name)
		return nil
	}

	if v < 0 {
		return fmt.Errorf("%w: %d, value should not be negative", ErrInvalidValue, v)
	}
	if _, err := i.vars.Sub(name, v); err != nil {
		return fmt.Errorf("%w: %s is %d, cannot subtract %d", err, name, cur, v)
	}

	return nil
}

func printStatement(i *Interpreter, args []string) error {
	if len(args) < 1 {
		return errMissingArgs("print")
	}

	v, ok := i.vars.Get(args[0])
	if !ok {
		i.reportNotFound(args[0])
		return nil
	}

	fmt.Fprintln(i.out, v)
	return nil
}

func remStatement(i *Interpreter, args []string) error {
	if len(args) < 1 {
		return errMissingArgs("rem")
	}

	if !i.vars.Delete(args[0]) {
		i.reportNotFound(args[0])
	}

	return nil
}

// callStatement saves the call line's own index and jumps to the def line;
// the engine's advance then steps into the body.
func callStatement(i *Interpreter, args []string) error {
	if len(args) < 1 {
		return errMissingArgs("call")
	}

	idx, ok := i.funcs[args[0]]
	if !ok {
		return undefinedFunction(args[0])
	}

	log.Debug("Call", "function", args[0], "from", i.pc, "to", idx, "depth", i.calls.Size()+1)

	i.calls.Push(i.pc)
	i.pc = idx
	return nil
}

func (i *Interpreter) reportNotFound(name string) {
	log.Debug("Variable not found", "name", name)
	fmt.Fprintln(i.out, i.notFoundMsg)
}

func parseValue(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, s)
	}

	return v, nil
}

func errMissingArgs(name string) error {
	return fmt.Errorf("%w: %s needs more arguments", ErrMalformedStatement, name)
}

func undefinedFunction(name string) error {
	return fmt.Errorf("%w: %q", ErrUndefinedFunction, name)
}
