package pushpull

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Scope owns the effects created while it runs, so a whole group of
// bindings, for example those of one mounted component, can be torn down
// at once. Scopes created inside a running scope become its children.
type Scope struct {
	id     uint64
	rs     *ReactiveSystem
	parent *Scope

	children  mapset.Set[*Scope]
	effects   mapset.Set[*effectNode]
	disposers []func()
	disposed  bool
}

// NewScope creates a scope. If another scope is running, the new one is
// disposed together with it.
func (rs *ReactiveSystem) NewScope() *Scope {
	rs.ids++
	s := &Scope{
		id:       rs.ids,
		rs:       rs,
		children: mapset.NewThreadUnsafeSet[*Scope](),
		effects:  mapset.NewThreadUnsafeSet[*effectNode](),
	}
	if p := rs.activeScope; p != nil && !p.disposed {
		s.parent = p
		p.children.Add(s)
	}
	return s
}

// Run calls fn with s as the active scope. Effects created by fn belong to
// s even when Run is called from inside an effect.
func (s *Scope) Run(fn func()) error {
	if s.disposed {
		return ErrScopeDisposed
	}
	rs := s.rs
	prevScope, prevOwner := rs.activeScope, rs.activeOwner
	rs.activeScope, rs.activeOwner = s, nil
	defer func() { rs.activeScope, rs.activeOwner = prevScope, prevOwner }()

	fn()
	return nil
}

// OnDispose registers fn to run when the scope is disposed. Callbacks run in
// registration order after owned effects are disposed.
func (s *Scope) OnDispose(fn func()) {
	if s.disposed {
		s.isolate(fn)
		return
	}
	s.disposers = append(s.disposers, fn)
}

// Len returns the number of live effects owned directly by the scope.
func (s *Scope) Len() int {
	return s.effects.Cardinality()
}

// Disposed reports whether Dispose has been called.
func (s *Scope) Disposed() bool {
	return s.disposed
}

// Dispose disposes child scopes, then owned effects in creation order, then
// runs OnDispose callbacks. A panicking callback does not stop the others.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	children := s.children.ToSlice()
	slices.SortFunc(children, func(a, b *Scope) int { return compareIDs(a.id, b.id) })
	for _, child := range children {
		child.Dispose()
	}

	effects := s.effects.ToSlice()
	slices.SortFunc(effects, func(a, b *effectNode) int { return compareIDs(a.id, b.id) })
	for _, e := range effects {
		e.dispose()
	}

	for _, fn := range s.disposers {
		s.isolate(fn)
	}
	s.disposers = nil
	s.children.Clear()
	s.effects.Clear()

	if s.parent != nil {
		s.parent.children.Remove(s)
		s.parent = nil
	}
}

func (s *Scope) adopt(e *effectNode) {
	if s.disposed {
		return
	}
	e.scope = s
	s.effects.Add(e)
}

func (s *Scope) isolate(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.rs.fault(FaultScope, s.id, r)
		}
	}()
	fn()
}

func compareIDs(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
