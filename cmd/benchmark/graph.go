package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/pushpull/cmd/benchmark/templates"
	"github.com/delaneyj/pushpull/pushpull"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

func graphCommand() *cli.Command {
	return &cli.Command{
		Name:  "graph",
		Usage: "Run layered graphs of static and dynamic computeds and report the best of several runs",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "YAML file listing graph shapes, defaults to the built-in set",
			},
			&cli.UintFlag{
				Name:  repeatsKey,
				Usage: "Timed runs per graph",
				Value: 5,
			},
		}, commonFlags()...),
		Action: graph,
	}
}

func graph(ctx context.Context, cmd *cli.Command) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	cfgs, err := loadGraphConfigs(cmd.String(configKey))
	if err != nil {
		return err
	}
	repeats := int(cmd.Uint(repeatsKey))
	if repeats == 0 {
		return fmt.Errorf("--%s must be positive", repeatsKey)
	}

	return profiled(cmd, func() error {
		log.Print("Starting graph benchmark, please wait...")
		defer log.Print("Finished graph benchmark")

		rows := make([]templates.GraphRow, 0, len(cfgs))
		for _, cfg := range cfgs {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows = append(rows, benchmarkGraphConfig(cfg, repeats))
		}
		renderGraph(os.Stdout, format, rows)
		return nil
	})
}

func benchmarkGraphConfig(cfg graphConfig, repeats int) templates.GraphRow {
	log.Printf("Running '%s' config", cfg.Name)

	counter := new(int64)
	g := makeGraph(cfg, counter)

	// run once to warm up
	g.run(cfg.Iterations, cfg.ReadFraction)

	best := templates.GraphRow{
		Name:           cfg.Name,
		Width:          cfg.Width,
		TotalLayers:    cfg.TotalLayers,
		NSources:       cfg.NSources,
		ReadFraction:   cfg.ReadFraction,
		StaticFraction: cfg.StaticFraction,
		Iterations:     cfg.Iterations,
		Duration:       time.Duration(math.MaxInt64),
	}
	for i := 0; i < repeats; i++ {
		log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.Name, i+1, repeats, (i+1)*100/repeats)
		*counter = 0
		start := time.Now()
		sum := g.run(cfg.Iterations, cfg.ReadFraction)
		duration := time.Since(start)

		if duration < best.Duration {
			best.Duration = duration
			best.Sum = sum
			best.Count = *counter
		}
	}
	best.UpdateRate = float64(best.Count) / (float64(best.Duration) / float64(time.Millisecond))
	return best
}

type benchmarkGraph struct {
	rs      *pushpull.ReactiveSystem
	sources []*pushpull.WriteableSignal[int]
	layers  [][]*pushpull.ReadonlySignal[int]
}

func makeGraph(cfg graphConfig, counter *int64) *benchmarkGraph {
	rs := pushpull.NewReactiveSystem()
	g := &benchmarkGraph{
		rs:      rs,
		sources: make([]*pushpull.WriteableSignal[int], cfg.Width),
	}

	prevRow := make([]pushpull.Readable[int], cfg.Width)
	for i := range g.sources {
		g.sources[i] = pushpull.Signal(rs, i)
		prevRow[i] = g.sources[i]
	}

	random := rand.New(rand.NewSource(0))
	g.layers = make([][]*pushpull.ReadonlySignal[int], cfg.TotalLayers-1)
	for l := range g.layers {
		row := makeRow(rs, prevRow, cfg, counter, random)
		g.layers[l] = row
		for i, c := range row {
			prevRow[i] = c
		}
	}
	return g
}

func makeRow(rs *pushpull.ReactiveSystem, sources []pushpull.Readable[int], cfg graphConfig, counter *int64, random *rand.Rand) []*pushpull.ReadonlySignal[int] {
	row := make([]*pushpull.ReadonlySignal[int], len(sources))
	for myDex := range sources {
		mySources := make([]pushpull.Readable[int], 0, cfg.NSources)
		for sourceDex := 0; sourceDex < cfg.NSources; sourceDex++ {
			mySources = append(mySources, sources[(myDex+sourceDex)%len(sources)])
		}

		if random.Float64() < cfg.StaticFraction {
			// static node, always reference sources
			row[myDex] = pushpull.Computed(rs, func() int {
				*counter++
				sum := 0
				for _, source := range mySources {
					sum += source.Value()
				}
				return sum
			})
			continue
		}

		first, tail := mySources[0], mySources[1:]
		row[myDex] = pushpull.Computed(rs, func() int {
			*counter++
			sum := first.Value()
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)
			for i, source := range tail {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += source.Value()
			}
			return sum
		})
	}
	return row
}

// run writes one source per iteration and reads some or all of the leaves,
// returning the sum of the leaves read at the end.
func (g *benchmarkGraph) run(iterations int, readFraction float64) int {
	random := rand.New(rand.NewSource(0))
	leaves := g.layers[len(g.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - readFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	for i := 0; i < iterations; i++ {
		sourceDex := i % len(g.sources)
		g.rs.Batch(func() {
			g.sources[sourceDex].SetValue(i + sourceDex)
		})

		for _, leaf := range readLeaves {
			leaf.Value()
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Value()
	}
	return sum
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}

func graphTitle(cfg templates.GraphRow) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.Width, cfg.TotalLayers, cfg.NSources))
	if cfg.StaticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.ReadFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.ReadFraction))
	}
	return sb.String()
}

func renderGraph(out io.Writer, format string, rows []templates.GraphRow) {
	if format == formatMarkdown {
		templates.WriteGraphReport(out, "pushpull layered graphs", rows)
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{
		"framework", "size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "updateRate", "title",
	})
	for _, r := range rows {
		table.Append([]string{
			"pushpull",
			fmt.Sprintf("%dx%d", r.Width, r.TotalLayers),
			fmt.Sprint(r.NSources),
			fmt.Sprint(r.ReadFraction),
			fmt.Sprint(r.StaticFraction),
			humanize.Comma(int64(r.Iterations)),
			r.Name,
			fmt.Sprint(r.Duration),
			humanize.Comma(int64(r.UpdateRate)),
			graphTitle(r),
		})
	}
	table.Render()
}
