package pushpull

// ReadonlySignal is a cached value derived from other signals. It is
// evaluated lazily: a change upstream only marks it stale, and the derivation
// reruns on the next read.
type ReadonlySignal[T comparable] struct {
	node

	getter    func() T
	value     T
	evaluated bool
	computing bool
	// failed is set when the last evaluation panicked. Readers that linked
	// during that evaluation have not been notified of anything yet.
	failed bool

	// checkedAt is the epoch at which the value was last known to be
	// consistent with every dependency.
	checkedAt uint64
}

var _ Readable[int] = (*ReadonlySignal[int])(nil)

// Computed creates a derived signal. getter is not called until the first
// read; the dependencies it reads are re-tracked on every evaluation.
func Computed[T comparable](rs *ReactiveSystem, getter func() T) *ReadonlySignal[T] {
	c := &ReadonlySignal[T]{getter: getter}
	c.node = newNode(rs, stateDirty)
	return c
}

func (c *ReadonlySignal[T]) base() *node { return &c.node }
func (c *ReadonlySignal[T]) brand() uint64 { return computedBrand }

// Value returns the up to date value and tracks the read. Reading a computed
// from inside its own derivation panics with ErrCircularDependency.
func (c *ReadonlySignal[T]) Value() T {
	if c.computing {
		panic(ErrCircularDependency)
	}
	c.rs.track(c)
	c.refresh()
	return c.value
}

// Peek returns the up to date value without tracking the read.
func (c *ReadonlySignal[T]) Peek() T {
	c.refresh()
	return c.value
}

// Subscribe calls fn with the current value now and with the latest value
// after every change, until the returned Dispose is called.
func (c *ReadonlySignal[T]) Subscribe(fn func(T)) Dispose {
	return subscribe(c.rs, c.Value, fn)
}

func (c *ReadonlySignal[T]) refresh() {
	if c.computing {
		panic(ErrCircularDependency)
	}
	if c.state == stateCheck {
		if depsChangedSince(&c.node, c.checkedAt) {
			c.state = stateDirty
		} else {
			c.state = stateClean
			c.checkedAt = Epoch()
		}
	}
	if c.state == stateDirty {
		c.recompute()
	}
}

func (c *ReadonlySignal[T]) recompute() {
	rs := c.rs
	unlinkAll(c)

	prevSub, prevOwner, paused := rs.activeSub, rs.activeOwner, len(rs.pauseStack)
	rs.activeSub = c
	rs.activeOwner = nil
	c.computing = true
	c.state = stateClean

	ok := false
	defer func() {
		c.computing = false
		rs.activeSub = prevSub
		rs.activeOwner = prevOwner
		rs.pauseStack = rs.pauseStack[:paused]
		if !ok {
			c.state = stateDirty
			c.failed = true
		}
	}()

	next := c.getter()
	ok = true
	c.failed = false
	rs.metrics.recomputed()

	if c.evaluated && equal(c.value, next) {
		c.checkedAt = Epoch()
		return
	}
	c.value = next
	c.evaluated = true
	c.changedAt = nextEpoch()
	c.checkedAt = c.changedAt
	confirmSubs(&c.node)
}

func (c *ReadonlySignal[T]) notify(level nodeState) {
	forward := c.state == stateClean || c.failed
	if c.state < level {
		c.state = level
	}
	if forward {
		c.failed = false
		notifySubs(&c.node, stateCheck)
	}
}

func (c *ReadonlySignal[T]) confirm() {
	if c.state == stateCheck {
		c.state = stateDirty
	}
}
