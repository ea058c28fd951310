package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout is the maximum time a client can wait for notifications
	WaitTimeout = 25 * time.Second

	WaitChannelBuffer = 1
)

// WaitRegistry manages long-polling clients waiting for game changes
type WaitRegistry struct {
	mu       sync.RWMutex
	waiters  map[string][]*WaitRequest // gameID → waiting clients
	shutdown chan struct{}
	closed   bool
	timeout  time.Duration
	wg       sync.WaitGroup
}

// WaitRequest is a single client waiting for a game to move past Version
type WaitRequest struct {
	Version int
	Notify  chan struct{}
	Timer   *time.Timer
	Context context.Context
	GameID  string

	done chan struct{}
	once sync.Once
}

func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string][]*WaitRequest),
		shutdown: make(chan struct{}),
		timeout:  WaitTimeout,
	}
}

// RegisterWait returns a channel that fires once the game version differs
// from version, the game is removed, WaitTimeout passes or the registry
// shuts down. A request is forgotten as soon as it fires.
func (w *WaitRegistry) RegisterWait(gameID string, version int, ctx context.Context) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return signalled()
	}

	req := &WaitRequest{
		Version: version,
		Notify:  make(chan struct{}, WaitChannelBuffer),
		Context: ctx,
		GameID:  gameID,
		done:    make(chan struct{}),
	}

	req.Timer = time.AfterFunc(w.timeout, func() {
		w.removeWaiter(gameID, req)
		w.complete(req)
	})

	w.waiters[gameID] = append(w.waiters[gameID], req)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case <-req.done:
		case <-ctx.Done():
			w.removeWaiter(gameID, req)
			w.complete(req)
		case <-w.shutdown:
			w.removeWaiter(gameID, req)
			w.complete(req)
		}
	}()

	return req.Notify
}

// NotifyGame wakes and forgets waiters whose known version differs from version
func (w *WaitRegistry) NotifyGame(gameID string, version int) {
	w.mu.Lock()
	var fired, kept []*WaitRequest
	for _, req := range w.waiters[gameID] {
		if req.Version != version {
			fired = append(fired, req)
		} else {
			kept = append(kept, req)
		}
	}
	if len(kept) == 0 {
		delete(w.waiters, gameID)
	} else {
		w.waiters[gameID] = kept
	}
	w.mu.Unlock()

	for _, req := range fired {
		w.complete(req)
	}
}

// RemoveGame wakes and forgets all waiters for a game
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for _, req := range waitList {
		w.complete(req)
	}
}

// Waiting returns the number of clients waiting on a game
func (w *WaitRegistry) Waiting(gameID string) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.waiters[gameID])
}

// Shutdown releases every waiter and waits for their goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.shutdown)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out after %v", timeout)
	}
}

// complete wakes a request exactly once and releases its timer and goroutine
func (w *WaitRegistry) complete(req *WaitRequest) {
	req.once.Do(func() {
		req.Timer.Stop()
		select {
		case req.Notify <- struct{}{}:
		default:
		}
		close(req.done)
	})
}

// signalled returns a channel holding one pending wakeup
func signalled() <-chan struct{} {
	ch := make(chan struct{}, WaitChannelBuffer)
	ch <- struct{}{}
	return ch
}

func (w *WaitRegistry) removeWaiter(gameID string, req *WaitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[gameID]
	for i, waiter := range waitList {
		if waiter == req {
			w.waiters[gameID] = append(waitList[:i:i], waitList[i+1:]...)
			break
		}
	}

	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
}
