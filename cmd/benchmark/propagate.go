package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/delaneyj/pushpull/cmd/benchmark/templates"
	"github.com/delaneyj/pushpull/pushpull"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func propagateCommand() *cli.Command {
	return &cli.Command{
		Name:  "propagate",
		Usage: "Write one source feeding width chains of height computeds, each ending in an effect",
		Flags: append([]cli.Flag{
			&cli.UintFlag{
				Name:  widthKey,
				Usage: "Number of chains, 0 sweeps 1, 10, 100 and 1000",
			},
			&cli.UintFlag{
				Name:  heightKey,
				Usage: "Computeds per chain, 0 sweeps 1, 10, 100 and 1000",
			},
			&cli.UintFlag{
				Name:  iterationsKey,
				Usage: "Writes measured per shape",
				Value: uint64(iters),
			},
		}, commonFlags()...),
		Action: propagate,
	}
}

func propagate(ctx context.Context, cmd *cli.Command) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	widths, heights := ww, hh
	if w := cmd.Uint(widthKey); w > 0 {
		widths = []int{int(w)}
	}
	if h := cmd.Uint(heightKey); h > 0 {
		heights = []int{int(h)}
	}
	n := int(cmd.Uint(iterationsKey))
	if n == 0 {
		return fmt.Errorf("--%s must be positive", iterationsKey)
	}

	return profiled(cmd, func() error {
		log.Printf("warming up")
		runPropagate([]int{1}, []int{1}, n)

		rows := runPropagate(widths, heights, n)
		renderPropagate(os.Stdout, format, rows)
		return nil
	})
}

func runPropagate(widths, heights []int, n int) []templates.PropagateRow {
	rows := make([]templates.PropagateRow, 0, len(widths)*len(heights))
	for _, w := range widths {
		for _, h := range heights {
			log.Printf("propagate: %d * %d", w, h)
			rows = append(rows, propagateShape(w, h, n))
		}
	}
	return rows
}

func propagateShape(w, h, n int) templates.PropagateRow {
	tach := tachymeter.New(&tachymeter.Config{Size: n})

	rs := pushpull.NewReactiveSystem()
	src := pushpull.Signal(rs, 1)
	for i := 0; i < w; i++ {
		var last pushpull.Readable[int] = src
		for j := 0; j < h; j++ {
			prev := last
			last = pushpull.Computed(rs, func() int {
				return prev.Value() + 1
			})
		}

		tail := last
		pushpull.Effect(rs, func() pushpull.Cleanup {
			tail.Value()
			return nil
		})
	}

	for i := 0; i < n; i++ {
		start := time.Now()
		rs.Batch(func() {
			src.Update(addOne)
		})
		tach.AddTime(time.Since(start))
	}

	calc := tach.Calc()
	return templates.PropagateRow{
		Name: fmt.Sprintf("propagate: %d * %d", w, h),
		Avg:  calc.Time.Avg,
		Min:  calc.Time.Min,
		P75:  calc.Time.P75,
		P99:  calc.Time.P99,
		Max:  calc.Time.Max,
	}
}

func addOne(v int) int {
	return v + 1
}

func renderPropagate(out io.Writer, format string, rows []templates.PropagateRow) {
	const title = "pushpull signals"
	if format == formatMarkdown {
		templates.WritePropagateReport(out, title, rows)
		return
	}

	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(out)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	for _, r := range rows {
		tbl.AppendRow(table.Row{r.Name, r.Avg, r.Min, r.P75, r.P99, r.Max})
	}
	tbl.Render()
}
