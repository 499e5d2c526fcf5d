package pushpull_test

import (
	"log"
	"testing"

	"github.com/delaneyj/pushpull/pushpull"
	"github.com/stretchr/testify/assert"
)

func TestBasicUsage(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	count := pushpull.Signal(rs, 1)
	doubleCount := pushpull.Computed(rs, func() int {
		return count.Value() * 2
	})

	stopEffect := pushpull.Effect(rs, func() pushpull.Cleanup {
		log.Printf("Count is: %d", count.Value())
		return nil
	})
	defer stopEffect()

	assert.Equal(t, 2, doubleCount.Value())
	count.SetValue(2)
	assert.Equal(t, 4, doubleCount.Value())
}

func TestBasicScope(t *testing.T) {
	rs := pushpull.NewReactiveSystem()
	count := pushpull.Signal(rs, 1)

	var logged []int
	scope := rs.NewScope()
	_ = scope.Run(func() {
		pushpull.Effect(rs, func() pushpull.Cleanup {
			logged = append(logged, count.Value())
			return nil
		})
		rs.Batch(func() {
			count.SetValue(2)
		})
	})
	assert.Equal(t, []int{1, 2}, logged)

	scope.Dispose()
	count.SetValue(3)
	rs.FlushEffects()
	assert.Equal(t, []int{1, 2}, logged)
}
