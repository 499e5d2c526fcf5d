package templates_test

import (
	"testing"
	"time"

	"github.com/delaneyj/pushpull/cmd/benchmark/templates"
	"github.com/stretchr/testify/assert"
)

func TestPropagateReport(t *testing.T) {
	out := templates.PropagateReport("pushpull", []templates.PropagateRow{
		{Name: "propagate: 1 * 10", Avg: 2 * time.Microsecond, Min: time.Microsecond, P75: 2 * time.Microsecond, P99: 3 * time.Microsecond, Max: 4 * time.Microsecond},
		{Name: "a|b", Avg: time.Millisecond},
	})

	assert.Contains(t, out, "## pushpull")
	assert.Contains(t, out, "| propagate: 1 * 10 | 2µs | 1µs | 2µs | 3µs | 4µs |")
	assert.Contains(t, out, `| a\|b | 1ms |`)
}

func TestGraphReport(t *testing.T) {
	out := templates.GraphReport("layered graphs", []templates.GraphRow{{
		Name:           "deep",
		Width:          5,
		TotalLayers:    500,
		NSources:       3,
		ReadFraction:   1,
		StaticFraction: 0.5,
		Iterations:     15000,
		Duration:       1500 * time.Millisecond,
		Sum:            1234567,
		Count:          1000,
		UpdateRate:     666.6,
	}})

	assert.Contains(t, out, "## layered graphs")
	assert.Contains(t, out, "| deep | 5x500 | 3 | 100% | 50% | 15,000 | 1.5s | 1,234,567 | 1,000 | 666 |")
}

func TestReportsDoNotEscapeMarkdown(t *testing.T) {
	prop := templates.PropagateReport("a & b", []templates.PropagateRow{{Name: "<wide> & deep"}})
	assert.Contains(t, prop, "## a & b")
	assert.Contains(t, prop, "| <wide> & deep |")
	assert.NotContains(t, prop, "&amp;")

	graph := templates.GraphReport("<graphs>", []templates.GraphRow{{Name: "x & \"y\""}})
	assert.Contains(t, graph, "## <graphs>")
	assert.Contains(t, graph, `| x & "y" |`)
	assert.NotContains(t, graph, "&lt;")
	assert.NotContains(t, graph, "&quot;")
}
