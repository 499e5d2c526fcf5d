package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// PropagateRow is one latency line of the propagate benchmark.
type PropagateRow struct {
	Name                    string
	Avg, Min, P75, P99, Max time.Duration
}

// GraphRow is the best run of one layered graph configuration.
type GraphRow struct {
	Name                         string
	Width, TotalLayers, NSources int
	ReadFraction, StaticFraction float64
	Iterations                   int
	Duration                     time.Duration
	Sum                          int
	Count                        int64
	UpdateRate                   float64
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func dur(d time.Duration) string {
	return d.Round(time.Microsecond / 10).String()
}

func percent(f float64) string {
	return fmt.Sprintf("%g%%", 100*f)
}

func comma(v int64) string {
	return humanize.Comma(v)
}
