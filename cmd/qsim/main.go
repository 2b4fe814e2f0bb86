// Command qsim runs a quantum protocol on the state-vector simulator and
// prints the result, or opens the interactive viewer with --tui.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"qstatesim/internal/config"
	"qstatesim/internal/protocols"
	"qstatesim/internal/report"
	"qstatesim/internal/tui"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "qsim:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(stderr, log.Options{
		Level:           cfg.Level(),
		Prefix:          "qsim",
		ReportTimestamp: true,
	})

	runner := protocols.NewRunner(logger, cfg.Dense)
	req := cfg.Request()
	result, err := runner.Run(req)
	if err != nil {
		return err
	}

	if cfg.TUI {
		return tui.Run(tui.New(runner, req, result, logger))
	}
	return report.Write(cfg.Format, stdout, result)
}
