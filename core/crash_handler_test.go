package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type finiRecorder struct{ called chan struct{} }

func (f *finiRecorder) Fini() { close(f.called) }

func TestGo_RecoversIntoFinalizer(t *testing.T) {
	rec := &finiRecorder{called: make(chan struct{})}
	SetCrashFinalizer(rec)
	defer SetCrashFinalizer(nil)

	codes := make(chan int, 1)
	crashExit = func(code int) { codes <- code }
	defer func() { crashExit = osExit }()

	Go(func() { panic("boom") })

	select {
	case <-rec.called:
	case <-time.After(time.Second):
		t.Fatal("finalizer not called")
	}
	select {
	case code := <-codes:
		assert.Equal(t, 1, code)
	case <-time.After(time.Second):
		t.Fatal("exit not called")
	}
}

func TestHandleCrash_NilIsNoop(t *testing.T) {
	called := false
	crashExit = func(int) { called = true }
	defer func() { crashExit = osExit }()

	HandleCrash(nil)
	require.False(t, called)
}
