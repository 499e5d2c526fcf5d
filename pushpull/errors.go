package pushpull

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"go.opentelemetry.io/otel/codes"
)

var (
	// ErrCircularDependency is the panic value of a computed read from
	// inside its own derivation. It signals a programming error and is never
	// recovered by the computed itself.
	ErrCircularDependency = errors.New("pushpull: circular dependency detected in computed")

	// ErrScopeDisposed is returned by Scope.Run after Dispose.
	ErrScopeDisposed = errors.New("pushpull: scope is disposed")
)

// FaultKind classifies a recovered panic.
type FaultKind uint8

const (
	// FaultEffect is a panic in an effect body, or in a computed the
	// effect pulled before deciding to run.
	FaultEffect FaultKind = iota + 1
	// FaultCleanup is a panic in a Cleanup returned by an effect.
	FaultCleanup
	// FaultScope is a panic in a callback registered with Scope.OnDispose.
	FaultScope
)

func (k FaultKind) String() string {
	switch k {
	case FaultEffect:
		return "effect"
	case FaultCleanup:
		return "cleanup"
	case FaultScope:
		return "scope"
	default:
		return fmt.Sprintf("FaultKind(%d)", uint8(k))
	}
}

// Fault describes a panic the system recovered from to keep the graph live.
type Fault struct {
	Kind   FaultKind
	NodeID uint64
	Err    error
	Stack  []byte
}

func (f *Fault) Error() string {
	return fmt.Sprintf("pushpull: %s fault in node %d: %v", f.Kind, f.NodeID, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// FaultHandler observes recovered faults.
type FaultHandler func(f *Fault)

func asError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return err
	}
	return fmt.Errorf("%v", recovered)
}

func (rs *ReactiveSystem) fault(kind FaultKind, nodeID uint64, recovered any) {
	f := &Fault{
		Kind:   kind,
		NodeID: nodeID,
		Err:    asError(recovered),
		Stack:  debug.Stack(),
	}
	rs.metrics.faulted(kind)

	level := slog.LevelDebug
	if kind == FaultEffect {
		level = slog.LevelError
	}
	rs.logger.Log(context.Background(), level, "pushpull: recovered fault",
		slog.String("kind", kind.String()),
		slog.Uint64("node", nodeID),
		slog.Any("err", f.Err),
	)

	if rs.flushSpan != nil {
		rs.flushSpan.RecordError(f)
		rs.flushSpan.SetStatus(codes.Error, f.Error())
	}
	if rs.onFault != nil {
		rs.onFault(f)
	}
}
