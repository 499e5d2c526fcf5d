package pushpull

// WriteableSignal is a reactive value cell. Reading it inside a computed or an
// effect subscribes that reader; writing a different value notifies every
// subscriber.
type WriteableSignal[T comparable] struct {
	node
	value T
}

var _ Readable[int] = (*WriteableSignal[int])(nil)

// Signal creates a writable signal holding initialValue.
func Signal[T comparable](rs *ReactiveSystem, initialValue T) *WriteableSignal[T] {
	s := &WriteableSignal[T]{value: initialValue}
	s.node = newNode(rs, stateClean)
	s.changedAt = Epoch()
	return s
}

func (s *WriteableSignal[T]) base() *node { return &s.node }
func (s *WriteableSignal[T]) refresh() {}
func (s *WriteableSignal[T]) brand() uint64 { return writableBrand }

// Value returns the current value and tracks the read.
func (s *WriteableSignal[T]) Value() T {
	s.rs.track(s)
	return s.value
}

// Peek returns the current value without tracking the read.
func (s *WriteableSignal[T]) Peek() T {
	return s.value
}

// SetValue stores v and notifies subscribers. Writing a value equal to the
// current one does nothing.
func (s *WriteableSignal[T]) SetValue(v T) {
	if equal(s.value, v) {
		return
	}
	s.value = v
	s.changedAt = nextEpoch()
	s.rs.metrics.signalWritten()
	notifySubs(&s.node, stateDirty)
}

// Update sets the signal to fn applied to its current value.
func (s *WriteableSignal[T]) Update(fn func(T) T) {
	s.SetValue(fn(s.value))
}

// Subscribe calls fn with the current value now and with the latest value
// after every change, until the returned Dispose is called.
func (s *WriteableSignal[T]) Subscribe(fn func(T)) Dispose {
	return subscribe(s.rs, s.Value, fn)
}

func subscribe[T comparable](rs *ReactiveSystem, read func() T, fn func(T)) Dispose {
	return Effect(rs, func() Cleanup {
		v := read()
		rs.PauseTracking()
		defer rs.ResumeTracking()
		fn(v)
		return nil
	})
}
