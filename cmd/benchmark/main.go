package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/urfave/cli/v3"
)

const (
	widthKey      = "width"
	heightKey     = "height"
	iterationsKey = "iterations"
	formatKey     = "format"
	configKey     = "config"
	repeatsKey    = "repeats"
	cpuProfileKey = "cpuprofile"

	formatTable    = "table"
	formatMarkdown = "markdown"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure pushpull signal propagation",
		Commands: []*cli.Command{
			propagateCommand(),
			graphCommand(),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  formatKey,
			Usage: "Output format, table or markdown",
			Value: formatTable,
		},
		&cli.StringFlag{
			Name:  cpuProfileKey,
			Usage: "Write a CPU profile to this file",
		},
	}
}

func outputFormat(cmd *cli.Command) (string, error) {
	switch f := cmd.String(formatKey); f {
	case formatTable, formatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q, want %s or %s", f, formatTable, formatMarkdown)
	}
}

// profiled runs fn with CPU profiling when --cpuprofile is set.
func profiled(cmd *cli.Command, fn func() error) error {
	path := cmd.String(cpuProfileKey)
	if path == "" {
		return fn()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return err
	}
	defer pprof.StopCPUProfile()
	return fn()
}
