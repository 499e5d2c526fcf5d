package pushpull

import (
	"sync"

	"github.com/petermattis/goid"
)

var defaults sync.Map // goroutine id -> *ReactiveSystem

// Default returns the calling goroutine's system, creating it on first use.
// Goroutines never share a default system.
func Default() *ReactiveSystem {
	gid := goid.Get()
	if rs, ok := defaults.Load(gid); ok {
		return rs.(*ReactiveSystem)
	}
	rs := NewReactiveSystem()
	defaults.Store(gid, rs)
	return rs
}

// ReleaseDefault drops the calling goroutine's default system. Long-lived
// programs that start many goroutines should call it before a goroutine
// that used Default exits.
func ReleaseDefault() {
	defaults.Delete(goid.Get())
}
