// file: fpmine/recover/recover.go
package recover

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/rskv-p/fpmine/pkg/x_fptree"
	"github.com/rskv-p/fpmine/pkg/x_log"
)

const (
	tagScope    = "scope"
	tagFunction = "function"
	tagContext  = "context"
	tagLabel    = "label"
)

// ErrPanic marks errors produced from a recovered panic.
var ErrPanic = errors.New("panic recovered")

// ----------------------------------------------------
// Global panic hook (optional)
// ----------------------------------------------------

// OnPanic, when set, is called after every recovered panic is logged.
var OnPanic func(scope, function string, recovered any)

func report(scope, function string, recovered any, data any) {
	ev := x_log.Error().
		Str(tagScope, scope).
		Str(tagFunction, function).
		Str("stack", string(debug.Stack()))
	if data != nil {
		ev = ev.Str(tagContext, fmt.Sprintf("%+v", data))
	}
	ev.Msgf("panic: %v", recovered)

	if OnPanic != nil {
		OnPanic(scope, function, recovered)
	}
}

// ----------------------------------------------------
// Panic recovery functions
// ----------------------------------------------------

// RecoverWithContext captures and logs a panic with metadata and optional
// data. It must be deferred directly.
func RecoverWithContext(scope, function string, data any) {
	if r := recover(); r != nil {
		report(scope, function, r, data)
	}
}

// RecoverExplicit logs a panic value the caller already recovered.
func RecoverExplicit(scope, function string, recovered any, data any) {
	if recovered == nil {
		return
	}
	report(scope, function, recovered, data)
}

// Safe runs fn, recovering and logging any panic under label.
func Safe(label string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			x_log.Error().Str(tagLabel, label).Str("stack", string(debug.Stack())).Msgf("panic: %v", r)
			if OnPanic != nil {
				OnPanic("Safe", label, r)
			}
		}
	}()
	fn()
}

// RecoverFunc runs fn and turns a panic into an error.
func RecoverFunc(label string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			RecoverExplicit("RecoverFunc", label, r, nil)
			err = fmt.Errorf("%w in %s: panic: %v", ErrPanic, label, r)
		}
	}()
	return fn()
}

// ----------------------------------------------------
// Universal wrapper
// ----------------------------------------------------

// RecoverableFunc is a context-aware function that may panic.
type RecoverableFunc func(ctx context.Context) error

// WrapRecover wraps a context-aware function with panic protection.
func WrapRecover(scope, function string, f RecoverableFunc) RecoverableFunc {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				RecoverExplicit(scope, function, r, nil)
				err = fmt.Errorf("%w in %s.%s: %v", ErrPanic, scope, function, r)
			}
		}()
		return f(ctx)
	}
}

// ----------------------------------------------------
// Sink wrapper
// ----------------------------------------------------

type safeSink struct {
	scope string
	next  x_fptree.Sink
}

// Sink guards next so a panicking sink stops the run with an error
// instead of taking the process down.
func Sink(scope string, next x_fptree.Sink) x_fptree.Sink {
	if next == nil {
		return nil
	}
	return &safeSink{scope: scope, next: next}
}

func (s *safeSink) Emit(set x_fptree.Itemset) (err error) {
	defer func() {
		if r := recover(); r != nil {
			RecoverExplicit(s.scope, "Emit", r, set.String())
			err = fmt.Errorf("%w in %s sink: %v", ErrPanic, s.scope, r)
		}
	}()
	return s.next.Emit(set)
}
