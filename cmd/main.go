package main

import (
	"flag"
	"fmt"
	"os"

	"kizhi/internal/config"
	"kizhi/internal/driver"
	"kizhi/internal/logger"
	"kizhi/pkg/color"
	"kizhi/pkg/interpreter"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// Main entry point for the Kizhi interpreter.
func main() {
	var (
		help       bool
		verbose    bool
		noColor    bool
		configPath string
		maxSteps   int
	)

	flag.BoolVar(&help, "h", false, "Show help")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&noColor, "n", false, "No color")
	flag.StringVar(&configPath, "config", "", "Path to YAML config (default "+config.DefaultPath+" if present)")
	flag.IntVar(&maxSteps, "max-steps", -1, "Maximum steps per run, 0 for unlimited (overrides config)")

	flag.Parse()
	args := flag.Args()

	if help {
		fmt.Printf("Usage: %s [options] [file]\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	path, optional := configPath, false
	if path == "" {
		path, optional = config.DefaultPath, true
	}

	cfg, err := config.Load(path, optional)
	if err != nil {
		logger.Init(verbose, noColor)
		log.Fatal("Invalid configuration", "error", err)
	}

	cfg.Verbose = cfg.Verbose || verbose
	cfg.NoColor = cfg.NoColor || noColor
	if maxSteps >= 0 {
		cfg.MaxSteps = maxSteps
	}

	logger.Init(cfg.Verbose, cfg.NoColor)
	if cfg.NoColor {
		color.EnableColor(false)
	}

	it := interpreter.NewInterpreter(append(cfg.Options(), interpreter.WithWriter(os.Stdout))...)
	d := driver.New(it)

	switch {
	case len(args) > 0:
		err = d.RunFile(args[0])
	case term.IsTerminal(int(os.Stdin.Fd())):
		err = d.Interactive(os.Stdout)
	default:
		err = d.RunReader(os.Stdin)
	}

	if err != nil {
		log.Fatal("Execution failed", "error", err)
	}
}
