package pushpull

import "sync/atomic"

// epoch is stamped onto every value change across all systems in the process.
// It only ever grows and is only used to compare recency between nodes.
var epoch atomic.Uint64

// Epoch returns the current value of the process-wide change counter.
func Epoch() uint64 {
	return epoch.Load()
}

func nextEpoch() uint64 {
	return epoch.Add(1)
}
