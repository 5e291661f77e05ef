package recover_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rskv-p/fpmine/pkg/x_fptree"
	recoverpkg "github.com/rskv-p/fpmine/recover"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var panicHookTriggered bool
var panicCapturedScope, panicCapturedFunc string
var panicCapturedValue any

func TestMain(m *testing.M) {
	recoverpkg.OnPanic = func(scope, fn string, r any) {
		panicHookTriggered = true
		panicCapturedScope = scope
		panicCapturedFunc = fn
		panicCapturedValue = r
	}
	m.Run()
}

func TestRecoverWithContext(t *testing.T) {
	panicHookTriggered = false

	func() {
		defer recoverpkg.RecoverWithContext("fp", "mine", map[string]any{"run": 1})
		panic("test1")
	}()
	assert.True(t, panicHookTriggered)
	assert.Equal(t, "fp", panicCapturedScope)
	assert.Equal(t, "mine", panicCapturedFunc)
	assert.Equal(t, "test1", panicCapturedValue)
}

func TestRecoverExplicit(t *testing.T) {
	panicHookTriggered = false
	recoverpkg.RecoverExplicit("svc2", "fn2", "manual", nil)

	assert.True(t, panicHookTriggered)
	assert.Equal(t, "svc2", panicCapturedScope)
	assert.Equal(t, "manual", panicCapturedValue)

	panicHookTriggered = false
	recoverpkg.RecoverExplicit("svc2", "fn2", nil, nil)
	assert.False(t, panicHookTriggered)
}

func TestSafe(t *testing.T) {
	panicHookTriggered = false
	recoverpkg.Safe("my-safe", func() {
		panic("in safe")
	})
	assert.True(t, panicHookTriggered)
	assert.Equal(t, "Safe", panicCapturedScope)
	assert.Equal(t, "my-safe", panicCapturedFunc)
}

func TestRecoverFunc(t *testing.T) {
	assert.NoError(t, recoverpkg.RecoverFunc("no-panic", func() error { return nil }))

	err := recoverpkg.RecoverFunc("with-panic", func() error {
		panic("boom")
	})
	assert.ErrorIs(t, err, recoverpkg.ErrPanic)
	assert.Contains(t, err.Error(), "panic: boom")
}

func TestWrapRecover(t *testing.T) {
	ok := recoverpkg.WrapRecover("fp", "mine", func(ctx context.Context) error { return nil })
	assert.NoError(t, ok(context.Background()))

	boom := errors.New("plain")
	plain := recoverpkg.WrapRecover("fp", "mine", func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, plain(context.Background()), boom)

	bad := recoverpkg.WrapRecover("svcX", "fnX", func(ctx context.Context) error {
		panic("ctx-panic")
	})
	err := bad(context.Background())
	assert.ErrorIs(t, err, recoverpkg.ErrPanic)
	assert.Contains(t, err.Error(), "svcX.fnX")
}

func TestSink(t *testing.T) {
	assert.Nil(t, recoverpkg.Sink("nil", nil))

	c := &x_fptree.Collector{}
	s := recoverpkg.Sink("collect", c)
	set := x_fptree.Itemset{Items: []x_fptree.Item{"a"}, Support: 2}
	require.NoError(t, s.Emit(set))
	assert.Len(t, c.Itemsets, 1)

	panicky := recoverpkg.Sink("ws", x_fptree.SinkFunc(func(x_fptree.Itemset) error {
		panic("closed")
	}))
	err := panicky.Emit(set)
	assert.ErrorIs(t, err, recoverpkg.ErrPanic)
	assert.Contains(t, err.Error(), "ws sink")
}

func TestMineWithPanickingSink(t *testing.T) {
	txs := x_fptree.Transactions([][]string{{"a", "b"}, {"a"}})
	sink := recoverpkg.Sink("bad", x_fptree.SinkFunc(func(x_fptree.Itemset) error {
		panic("nope")
	}))
	_, err := x_fptree.MineTransactions(context.Background(), txs, 1, sink)
	assert.ErrorIs(t, err, recoverpkg.ErrPanic)
}
