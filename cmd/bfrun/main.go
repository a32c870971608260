// Command bfrun loads a Brainfuck source file and runs it against the
// process's stdin/stdout, logging debug traps and fatal errors to stderr
// as structured JSON.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tripwire/bf/bf/config"
	"github.com/tripwire/bf/bf/interp"
	"github.com/tripwire/bf/bf/program"
	"github.com/tripwire/bf/bf/tape"
	"github.com/tripwire/bf/internal/bfio"
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML interpreter configuration file")
	debug := flag.Bool("debug", false, "enable the '#' debug trap (overrides -config)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: bfrun [-config path] [-debug] <source-file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	src, err := bfio.LoadSource(path)
	if err != nil {
		logger.Error("failed to read source", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}

	cfg := config.New()
	if *configPath != "" {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error("failed to load configuration", slog.String("path", *configPath), slog.Any("error", err))
			os.Exit(1)
		}
	}
	if *debug {
		cfg.DebugEnabled = true
	}

	p := program.New()
	if err := p.Load(bfio.BytesToBuffer(src)); err != nil {
		logger.Error("failed to parse program", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}

	it := interp.New(cfg, p, tape.New())
	it.SetInputHandler(bfio.DefaultInputHandler, bufio.NewReader(os.Stdin))
	it.SetOutputHandler(bfio.DefaultOutputHandler, os.Stdout)
	it.SetDebugHandler(bfio.DefaultDebugHandler, logger)

	if err := it.Run(); err != nil {
		logger.Error("program aborted", slog.Any("error", err))
		os.Exit(1)
	}
}
