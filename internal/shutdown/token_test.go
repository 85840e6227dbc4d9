package shutdown

import (
	"sync"
	"testing"
	"time"
)

func TestTokenStartsUnset(t *testing.T) {
	t.Parallel()

	token := NewToken()
	if token.IsSet() {
		t.Error("new token must not be set")
	}
	select {
	case <-token.Done():
		t.Error("done channel closed before Signal")
	default:
	}
}

func TestTokenSignalIsIdempotent(t *testing.T) {
	t.Parallel()

	token := NewToken()
	token.Signal()
	token.Signal()

	if !token.IsSet() {
		t.Error("token must be set after Signal")
	}
	select {
	case <-token.Done():
	case <-time.After(time.Second):
		t.Error("done channel not closed after Signal")
	}
}

func TestTokenConcurrentSignal(t *testing.T) {
	t.Parallel()

	token := NewToken()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token.Signal()
		}()
	}
	wg.Wait()

	if !token.IsSet() {
		t.Error("token must be set after concurrent Signal calls")
	}
	select {
	case <-token.Done():
	default:
		t.Error("done channel not closed after concurrent Signal calls")
	}
}
