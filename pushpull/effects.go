package pushpull

import "slices"

// Cleanup is returned by an effect body to release what the run acquired.
// It is called before the next run and on disposal.
type Cleanup func()

// Dispose stops an effect or subscription. Calling it more than once is
// harmless.
type Dispose func()

type effectNode struct {
	node

	fn       func() Cleanup
	cleanup  Cleanup
	disposed bool
	scope    *Scope

	// owner is the effect whose run created this one. children are the
	// effects created by the last run, disposed before the next one.
	owner    *effectNode
	children []*effectNode

	// ranAt is the epoch at which the last run finished.
	ranAt uint64
}

// Effect runs fn now, tracking every signal and computed it reads, and runs
// it again whenever one of them changes. A panic inside fn is recovered and
// reported as a FaultEffect; the effect stays subscribed and will run on the
// next change.
//
// Effects created while another effect runs belong to that run: they are
// disposed before the outer effect runs again and when it is disposed.
// Otherwise they belong to the running Scope, if any.
func Effect(rs *ReactiveSystem, fn func() Cleanup) Dispose {
	e := &effectNode{fn: fn}
	e.node = newNode(rs, stateDirty)
	if o := rs.activeOwner; o != nil {
		e.owner = o
		o.children = append(o.children, e)
	} else if s := rs.activeScope; s != nil {
		s.adopt(e)
	}
	rs.runEffect(e)
	return e.dispose
}

func (e *effectNode) base() *node { return &e.node }

func (e *effectNode) notify(level nodeState) {
	if e.disposed {
		return
	}
	if e.state < level {
		e.state = level
	}
	e.rs.enqueue(e)
}

func (e *effectNode) confirm() {
	if e.state == stateCheck {
		e.state = stateDirty
	}
}

// shouldRun decides whether a queued effect has to run. An effect that was
// only told that an upstream computed might have changed pulls those
// computeds first and runs only if one of them really did.
func (e *effectNode) shouldRun() (run bool) {
	switch e.state {
	case stateDirty:
		return true
	case stateCheck:
		defer func() {
			if r := recover(); r != nil {
				e.rs.fault(FaultEffect, e.id, r)
				e.state = stateDirty
				run = false
			}
		}()
		return depsChangedSince(&e.node, e.ranAt)
	default:
		return false
	}
}

func (rs *ReactiveSystem) runEffect(e *effectNode) {
	if e.disposed {
		return
	}
	e.disposeChildren()
	e.runCleanup()
	unlinkAll(e)
	e.state = stateClean

	prevSub, prevOwner, paused := rs.activeSub, rs.activeOwner, len(rs.pauseStack)
	rs.activeSub = e
	rs.activeOwner = e
	defer func() {
		rs.activeSub = prevSub
		rs.activeOwner = prevOwner
		rs.pauseStack = rs.pauseStack[:paused]
		e.ranAt = Epoch()

		if r := recover(); r != nil {
			rs.fault(FaultEffect, e.id, r)
		}
		if e.disposed {
			// disposed from inside its own body
			e.disposeChildren()
			e.runCleanup()
			unlinkAll(e)
		}
	}()

	rs.metrics.effectRan()
	if cleanup := e.fn(); cleanup != nil {
		e.cleanup = cleanup
	}
}

func (e *effectNode) runCleanup() {
	cleanup := e.cleanup
	if cleanup == nil {
		return
	}
	e.cleanup = nil
	defer func() {
		if r := recover(); r != nil {
			e.rs.fault(FaultCleanup, e.id, r)
		}
	}()
	cleanup()
}

func (e *effectNode) dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.disposeChildren()
	e.runCleanup()
	unlinkAll(e)
	e.rs.pending.Remove(e)
	if e.scope != nil {
		e.scope.effects.Remove(e)
		e.scope = nil
	}
	if o := e.owner; o != nil {
		o.children = slices.DeleteFunc(o.children, func(c *effectNode) bool { return c == e })
		e.owner = nil
	}
}

func (e *effectNode) disposeChildren() {
	children := e.children
	e.children = nil
	for _, c := range children {
		c.owner = nil
		c.dispose()
	}
}
