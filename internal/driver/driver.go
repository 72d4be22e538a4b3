package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"kizhi/pkg/color"
	"kizhi/pkg/interpreter"

	"github.com/charmbracelet/log"
	"github.com/peterh/liner"
)

const (
	setCode    = "set code"
	endSetCode = "end set code"
	runCommand = "run"

	prompt         = "kizhi> "
	continuePrompt = "....> "

	historyFile = ".kizhi_history"
)

// Driver feeds script text into an interpreter one submission at a time
type Driver struct {
	it *interpreter.Interpreter

	block   []string // lines collected between set code and end set code
	loading bool
}

func New(it *interpreter.Interpreter) *Driver {
	return &Driver{it: it}
}

// RunFile executes the script at path
func (d *Driver) RunFile(path string) error {
	log.Info("Processing file", "file", path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return d.RunReader(f)
}

// RunReader executes a script, stopping at the first fatal error
func (d *Driver) RunReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := d.Feed(scanner.Text()); err != nil {
			return fmt.Errorf("script line %d: %w", lineNo, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	if d.loading {
		log.Warn("Script ended inside a code block", "pending", len(d.block))
		err := d.flush()
		d.loading = false
		return err
	}

	return nil
}

// Feed takes one physical script line. Lines of a code block are held back
// and submitted together when the block closes. Mode commands are matched
// before buffering, the same way the interpreter matches them.
func (d *Driver) Feed(line string) error {
	line = strings.TrimSuffix(line, "\r")

	switch {
	case line == setCode:
		d.loading = true
		return d.it.ExecuteLine(line)

	case line == endSetCode:
		err := d.flush()
		d.loading = false
		if endErr := d.it.ExecuteLine(line); err == nil {
			err = endErr
		}
		return err

	case line == runCommand:
		if err := d.flush(); err != nil {
			return err
		}
		return d.it.ExecuteLine(line)

	case d.loading:
		d.block = append(d.block, line)
		return nil

	default:
		return d.it.ExecuteLine(line)
	}
}

// Loading reports whether a code block is being collected
func (d *Driver) Loading() bool {
	return d.loading
}

// flush submits the pending block lines, leaving the loading flag alone
func (d *Driver) flush() error {
	block := d.block
	d.block = nil

	if len(block) == 0 {
		return nil
	}

	log.Debug("Submitting code block", "lines", len(block))
	return d.it.ExecuteLine(strings.Join(block, "\n"))
}

// LineReader prompts for and returns one line of input
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// Interactive runs a line-edited session on the terminal with history kept
// in the user's home directory.
func (d *Driver) Interactive(out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	return d.Session(&historyPrompt{ln: ln}, out)
}

// Session reads commands from r until EOF or exit, reporting errors to out
// and carrying on. Ctrl-C drops a half-entered code block.
func (d *Driver) Session(r LineReader, out io.Writer) error {
	for {
		p := prompt
		if d.loading {
			p = continuePrompt
		}

		line, err := r.Prompt(p)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			if d.loading {
				log.Debug("Code block abandoned", "pending", len(d.block))
				d.block = nil
			}
			continue
		}
		if err != nil {
			return err
		}

		if !d.loading {
			switch strings.TrimSpace(line) {
			case "exit", "quit":
				return nil
			}
		}

		if err := d.Feed(line); err != nil {
			fmt.Fprintln(out, Describe(err))
		}
	}
}

type historyPrompt struct {
	ln *liner.State
}

func (h *historyPrompt) Prompt(p string) (string, error) {
	line, err := h.ln.Prompt(p)
	if err == nil && strings.TrimSpace(line) != "" {
		h.ln.AppendHistory(line)
	}
	return line, err
}

// Describe renders an error for a terminal user
func Describe(err error) string {
	var lineErr *interpreter.LineError
	if errors.As(err, &lineErr) {
		return color.ErrorAtLine(lineErr.Line, lineErr.Source, lineErr.Err.Error())
	}

	return color.Error(err.Error())
}
