package pushpull

import "github.com/cespare/xxhash/v2"

// Brands tell the kinds of signal apart without knowing their value type.
var (
	writableBrand = xxhash.Sum64String("pushpull.signal.writable")
	computedBrand = xxhash.Sum64String("pushpull.signal.computed")
)

type branded interface {
	brand() uint64
}

// Readable is the read side shared by writable signals and computeds.
type Readable[T comparable] interface {
	Value() T
	Peek() T
	Subscribe(fn func(T)) Dispose
}

func brandOf(v any) uint64 {
	if b, ok := v.(branded); ok {
		return b.brand()
	}
	return 0
}

// IsSignal reports whether v is a signal or computed of any value type.
// Consumers that accept either plain values or reactive ones use it to tell
// them apart without knowing T.
func IsSignal(v any) bool {
	switch brandOf(v) {
	case writableBrand, computedBrand:
		return true
	}
	return false
}

// IsWritable reports whether v is a signal created by Signal, as opposed to a
// computed or a plain value.
func IsWritable(v any) bool {
	return brandOf(v) == writableBrand
}

// IsComputed reports whether v is a signal created by Computed.
func IsComputed(v any) bool {
	return brandOf(v) == computedBrand
}
