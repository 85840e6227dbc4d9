// Package shutdown provides the one-way cancellation token shared by the
// service loop and the check orchestrator. The token is injected explicitly
// so tests can construct independent tokens per case.
package shutdown

import (
	"sync"
	"sync/atomic"
)

// Token is a process-lifetime latch: Signal flips it exactly once and it is
// never cleared. IsSet is a lock-free read and is polled at every task
// generation and dispatch step, so it must stay cheap.
type Token struct {
	fired atomic.Bool
	once  sync.Once
	done  chan struct{}
}

func NewToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Signal requests shutdown. Safe to call from any goroutine, including an OS
// signal handler; repeated calls are no-ops.
func (t *Token) Signal() {
	t.once.Do(func() {
		t.fired.Store(true)
		close(t.done)
	})
}

func (t *Token) IsSet() bool {
	return t.fired.Load()
}

// Done returns a channel closed when the token has been signaled, for use in
// select loops.
func (t *Token) Done() <-chan struct{} {
	return t.done
}
