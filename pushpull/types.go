package pushpull

import "reflect"

type nodeState uint8

const (
	stateClean nodeState = iota // value is valid
	stateCheck                  // an upstream computed may have changed, verify before use
	stateDirty                  // a direct source changed, must recompute or rerun
)

// node is the structural part shared by signals, computeds and effects.
// deps and subs are mirror images of each other across the graph:
// n is in a.deps exactly when a is in n.subs.
type node struct {
	id        uint64
	rs        *ReactiveSystem
	state     nodeState
	changedAt uint64

	deps *orderedSet // of dependency, in read order
	subs *orderedSet // of subscriber, in subscription order
}

func newNode(rs *ReactiveSystem, state nodeState) node {
	rs.ids++
	return node{
		id:    rs.ids,
		rs:    rs,
		state: state,
		deps:  newOrderedSet(),
		subs:  newOrderedSet(),
	}
}

// ID returns the identifier of the node, unique within its ReactiveSystem.
func (n *node) ID() uint64 {
	return n.id
}

// dependency is something a subscriber can read from.
type dependency interface {
	base() *node
	// refresh brings the value up to date without tracking the read.
	refresh()
}

// subscriber is something that reads dependencies and reacts to their changes.
type subscriber interface {
	base() *node
	// notify raises the staleness of the subscriber to at least level.
	notify(level nodeState)
	// confirm upgrades a pending Check to Dirty once a dependency is known
	// to hold a new value.
	confirm()
}

func link(dep dependency, sub subscriber) {
	sub.base().deps.Add(dep)
	dep.base().subs.Add(sub)
}

func unlinkAll(sub subscriber) {
	n := sub.base()
	for _, d := range n.deps.Values() {
		d.(dependency).base().subs.Remove(sub)
	}
	n.deps.Clear()
}

func notifySubs(n *node, level nodeState) {
	for _, s := range n.subs.Values() {
		s.(subscriber).notify(level)
	}
}

func confirmSubs(n *node) {
	for _, s := range n.subs.Values() {
		s.(subscriber).confirm()
	}
}

// depsChangedSince refreshes the dependencies of n in read order and reports
// whether any of them changed after the given epoch. It stops at the first
// change so dependencies read later, which may no longer be relevant, are not
// evaluated.
func depsChangedSince(n *node, since uint64) bool {
	for _, d := range n.deps.Values() {
		dep := d.(dependency)
		dep.refresh()
		if dep.base().changedAt > since {
			return true
		}
	}
	return false
}

// equal is identity comparison: == for comparable values, except that NaN
// is considered equal to itself. Interface values whose dynamic type cannot
// be compared, such as slices and maps, are never equal.
func equal[T comparable](a, b T) bool {
	if reflect.TypeFor[T]().Kind() == reflect.Interface {
		ta, tb := reflect.TypeOf(any(a)), reflect.TypeOf(any(b))
		if (ta != nil && !ta.Comparable()) || (tb != nil && !tb.Comparable()) {
			return false
		}
	}
	return a == b || (a != a && b != b)
}
