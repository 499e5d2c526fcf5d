package pushpull_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/pushpull/pushpull"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectLogsDoubledValue(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	a := pushpull.Signal(rs, 1)
	b := pushpull.Computed(rs, func() int { return a.Value() * 2 })

	var logged []int
	pushpull.Effect(rs, func() pushpull.Cleanup {
		logged = append(logged, b.Value())
		return nil
	})
	assert.Equal(t, []int{2}, logged)

	a.SetValue(5)
	assert.Equal(t, []int{2}, logged, "effects wait for the flush")
	assert.Equal(t, 1, rs.Pending())

	rs.FlushEffects()
	assert.Equal(t, []int{2, 10}, logged)
}

func TestEffectWritesCoalesceUntilTick(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	a := pushpull.Signal(rs, 0)

	var seen []int
	pushpull.Effect(rs, func() pushpull.Cleanup {
		seen = append(seen, a.Value())
		return nil
	})

	a.SetValue(1)
	a.SetValue(2)
	a.SetValue(3)
	assert.Equal(t, 1, rs.Tick())
	assert.Equal(t, []int{0, 3}, seen)
	assert.Zero(t, rs.Tick())
}

func TestEffectRunsOnceForDiamond(t *testing.T) {
	rs := pushpull.NewReactiveSystem()

	//     A
	//   /   \
	//  B     C
	//   \   /
	//   effect
	a := pushpull.Signal(rs, 1)
	b := pushpull.Computed(rs, func() int { return a.Value() + 1 })
	c := pushpull.Computed(rs, func() int { return a.Value() * 2 })

	var seen [][2]int
	pushpull.Effect(rs, func() pushpull.Cleanup {
		seen = append(seen, [2]int{b.Value(), c.Value()})
		return nil
	})

	a.SetValue(2)
	rs.FlushEffects()
	assert.Equal(t, [][2]int{{2, 2}, {3, 4}}, seen)
}

func TestEffectSkipsWhenComputedUnchanged(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	a := pushpull.Signal(rs, 1)
	parity := pushpull.Computed(rs, func() bool { return a.Value()%2 == 0 })

	runs := 0
	pushpull.Effect(rs, func() pushpull.Cleanup {
		parity.Value()
		runs++
		return nil
	})

	a.SetValue(3)
	rs.FlushEffects()
	assert.Equal(t, 1, runs)

	a.SetValue(4)
	rs.FlushEffects()
	assert.Equal(t, 2, runs)
}

func TestEffectDynamicDependencies(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	show := pushpull.Signal(rs, false)
	detail := pushpull.Signal(rs, "x")

	runs := 0
	pushpull.Effect(rs, func() pushpull.Cleanup {
		runs++
		if show.Value() {
			detail.Value()
		}
		return nil
	})

	detail.SetValue("y")
	rs.FlushEffects()
	assert.Equal(t, 1, runs)

	show.SetValue(true)
	rs.FlushEffects()
	assert.Equal(t, 2, runs)

	detail.SetValue("z")
	rs.FlushEffects()
	assert.Equal(t, 3, runs)
}

func TestEffectCleanup(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	a := pushpull.Signal(rs, 1)

	var events []string
	dispose := pushpull.Effect(rs, func() pushpull.Cleanup {
		v := a.Value()
		events = append(events, "run")
		return func() {
			events = append(events, "cleanup")
			_ = v
		}
	})

	a.SetValue(2)
	rs.FlushEffects()
	assert.Equal(t, []string{"run", "cleanup", "run"}, events)

	dispose()
	assert.Equal(t, []string{"run", "cleanup", "run", "cleanup"}, events)

	dispose()
	a.SetValue(3)
	rs.FlushEffects()
	assert.Len(t, events, 4)
}

func TestEffectDisposeRemovesPending(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	a := pushpull.Signal(rs, 1)

	runs := 0
	dispose := pushpull.Effect(rs, func() pushpull.Cleanup {
		a.Value()
		runs++
		return nil
	})

	a.SetValue(2)
	require.Equal(t, 1, rs.Pending())
	dispose()
	assert.Zero(t, rs.Pending())
	rs.FlushEffects()
	assert.Equal(t, 1, runs)
}

func TestEffectDisposedDuringFlushDoesNotRun(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	a := pushpull.Signal(rs, 1)

	var disposeSecond pushpull.Dispose
	secondRuns := 0
	pushpull.Effect(rs, func() pushpull.Cleanup {
		if a.Value() > 1 {
			disposeSecond()
		}
		return nil
	})
	disposeSecond = pushpull.Effect(rs, func() pushpull.Cleanup {
		a.Value()
		secondRuns++
		return nil
	})

	a.SetValue(2)
	rs.FlushEffects()
	assert.Equal(t, 1, secondRuns)
}

func TestEffectDisposesItselfWhileRunning(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	a := pushpull.Signal(rs, 1)

	cleanups, runs := 0, 0
	var dispose pushpull.Dispose
	dispose = pushpull.Effect(rs, func() pushpull.Cleanup {
		runs++
		if a.Value() > 1 {
			dispose()
		}
		return func() { cleanups++ }
	})

	a.SetValue(2)
	rs.FlushEffects()
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, cleanups)

	a.SetValue(3)
	rs.FlushEffects()
	assert.Equal(t, 2, runs)
}

func TestEffectPanicIsReportedAndEffectStaysAlive(t *testing.T) {
	var faults []*pushpull.Fault
	rs := pushpull.NewReactiveSystem(pushpull.WithFaultHandler(func(f *pushpull.Fault) {
		faults = append(faults, f)
	}))
	a := pushpull.Signal(rs, 1)
	boom := errors.New("boom")

	var seen []int
	dispose := pushpull.Effect(rs, func() pushpull.Cleanup {
		v := a.Value()
		if v == 2 {
			panic(boom)
		}
		seen = append(seen, v)
		return nil
	})
	defer dispose()

	a.SetValue(2)
	rs.FlushEffects()
	require.Len(t, faults, 1)
	assert.Equal(t, pushpull.FaultEffect, faults[0].Kind)
	assert.ErrorIs(t, faults[0], boom)
	assert.NotEmpty(t, faults[0].Stack)

	a.SetValue(3)
	rs.FlushEffects()
	assert.Equal(t, []int{1, 3}, seen)
}

func TestEffectCleanupPanicIsSwallowed(t *testing.T) {
	var faults []*pushpull.Fault
	rs := pushpull.NewReactiveSystem(pushpull.WithFaultHandler(func(f *pushpull.Fault) {
		faults = append(faults, f)
	}))
	a := pushpull.Signal(rs, 1)

	runs := 0
	pushpull.Effect(rs, func() pushpull.Cleanup {
		a.Value()
		runs++
		return func() { panic("cleanup failed") }
	})

	a.SetValue(2)
	rs.FlushEffects()
	a.SetValue(3)
	rs.FlushEffects()
	assert.Equal(t, 3, runs)
	require.Len(t, faults, 2)
	assert.Equal(t, pushpull.FaultCleanup, faults[0].Kind)
	assert.EqualError(t, faults[0].Err, "cleanup failed")
}

func TestEffectComputedPanicDuringCheck(t *testing.T) {
	var faults []*pushpull.Fault
	rs := pushpull.NewReactiveSystem(pushpull.WithFaultHandler(func(f *pushpull.Fault) {
		faults = append(faults, f)
	}))
	a := pushpull.Signal(rs, 1)
	c := pushpull.Computed(rs, func() int {
		if a.Value() < 0 {
			panic("negative")
		}
		return a.Value()
	})

	var seen []int
	pushpull.Effect(rs, func() pushpull.Cleanup {
		seen = append(seen, c.Value())
		return nil
	})

	a.SetValue(-1)
	rs.FlushEffects()
	require.Len(t, faults, 1)
	assert.Equal(t, pushpull.FaultEffect, faults[0].Kind)

	a.SetValue(5)
	rs.FlushEffects()
	assert.Equal(t, []int{1, 5}, seen)
}

func TestEffectSelfReferenceIsCircular(t *testing.T) {
	var faults []*pushpull.Fault
	rs := pushpull.NewReactiveSystem(pushpull.WithFaultHandler(func(f *pushpull.Fault) {
		faults = append(faults, f)
	}))

	var c *pushpull.ReadonlySignal[int]
	c = pushpull.Computed(rs, func() int { return c.Value() })
	pushpull.Effect(rs, func() pushpull.Cleanup {
		c.Value()
		return nil
	})

	require.Len(t, faults, 1)
	assert.ErrorIs(t, faults[0], pushpull.ErrCircularDependency)
}

func TestEffectWriteDuringFlushRunsInNextFlush(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	a := pushpull.Signal(rs, 0)
	b := pushpull.Signal(rs, 0)

	var order []string
	pushpull.Effect(rs, func() pushpull.Cleanup {
		order = append(order, "mirror")
		b.SetValue(a.Value())
		return nil
	})
	pushpull.Effect(rs, func() pushpull.Cleanup {
		order = append(order, "b")
		b.Value()
		return nil
	})
	order = order[:0]

	rs.Batch(func() { a.SetValue(1) })
	assert.Equal(t, []string{"mirror"}, order)
	assert.Equal(t, 1, rs.Pending())

	assert.Equal(t, 1, rs.Tick())
	assert.Equal(t, []string{"mirror", "b"}, order)

	order = order[:0]
	a.SetValue(2)
	rs.FlushEffects()
	assert.Equal(t, []string{"mirror", "b"}, order)
	assert.Zero(t, rs.Pending())
}

func TestEffectsRunInFirstNotifiedOrder(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	a := pushpull.Signal(rs, 0)
	b := pushpull.Signal(rs, 0)

	var order []string
	pushpull.Effect(rs, func() pushpull.Cleanup {
		a.Value()
		order = append(order, "a")
		return nil
	})
	pushpull.Effect(rs, func() pushpull.Cleanup {
		b.Value()
		order = append(order, "b")
		return nil
	})
	order = order[:0]

	rs.Batch(func() {
		b.SetValue(1)
		a.SetValue(1)
		b.SetValue(2)
	})
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestInnerEffectsAreDisposedWithOuterRun(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	a := pushpull.Signal(rs, 3)
	positive := pushpull.Computed(rs, func() bool { return a.Value() > 0 })

	innerRuns := 0
	pushpull.Effect(rs, func() pushpull.Cleanup {
		if positive.Value() {
			pushpull.Effect(rs, func() pushpull.Cleanup {
				if a.Value() == 0 {
					assert.Fail(t, "inner effect ran after outer dropped it")
				}
				innerRuns++
				return nil
			})
		}
		return nil
	})

	for range 3 {
		rs.Batch(func() { a.Update(func(v int) int { return v - 1 }) })
	}
	assert.Equal(t, 3, innerRuns)
}

func TestOuterEffectRunsBeforeInner(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	a := pushpull.Signal(rs, 1)
	b := pushpull.Signal(rs, 1)

	pushpull.Effect(rs, func() pushpull.Cleanup {
		if a.Value() != 0 {
			pushpull.Effect(rs, func() pushpull.Cleanup {
				a.Value()
				b.Value()
				if a.Value() == 0 {
					assert.Fail(t, "inner effect outlived its owner")
				}
				return nil
			})
		}
		return nil
	})

	rs.StartBatch()
	a.SetValue(0)
	b.SetValue(0)
	rs.EndBatch()
	assert.Zero(t, rs.Pending())
}
