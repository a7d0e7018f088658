package player

import (
	"context"
	"sync"
	"time"
)

// Mock is a scripted test double for Player.
//
// By default every clip ends immediately. SetOutcome makes a URL fail, and
// SetBlocking makes clips play until Finish, Stop or context cancellation.
type Mock struct {
	mu         sync.Mutex
	blocking   bool
	outcomes   map[string]error
	lengths    map[string]time.Duration
	playCalls  []string
	stopCalls  int
	prefetched []string
	stop       chan struct{}

	started chan string
	finish  chan error
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		outcomes: make(map[string]error),
		lengths:  make(map[string]time.Duration),
		started:  make(chan string, 256),
		finish:   make(chan error),
	}
}

func (m *Mock) LoadAndPlay(ctx context.Context, url string) error {
	return m.PlayTimed(ctx, url, nil)
}

// PlayTimed reports the length set with SetLength, or zero, before the clip
// plays. Failing clips never report a length.
func (m *Mock) PlayTimed(ctx context.Context, url string, started func(time.Duration)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.playCalls = append(m.playCalls, url)
	err, failing := m.outcomes[url]
	blocking := m.blocking
	length := m.lengths[url]
	stop := make(chan struct{})
	if !failing && blocking {
		m.stop = stop
	}
	m.mu.Unlock()

	select {
	case m.started <- url:
	default:
	}

	if failing {
		return err
	}
	if started != nil {
		started(length)
	}
	if !blocking {
		return nil
	}

	defer m.release(stop)
	select {
	case err := <-m.finish:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-stop:
		return ErrStopped
	}
}

func (m *Mock) release(stop chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop == stop {
		m.stop = nil
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
}

func (m *Mock) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop != nil
}

func (m *Mock) Prefetch(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefetched = append(m.prefetched, url)
}

// Test helpers

// SetOutcome makes LoadAndPlay return err immediately for url.
func (m *Mock) SetOutcome(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[url] = err
}

// SetLength sets the clip length PlayTimed reports for url.
func (m *Mock) SetLength(url string, length time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lengths[url] = length
}

// SetBlocking switches between clips that end immediately and clips that
// play until Finish is called.
func (m *Mock) SetBlocking(blocking bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocking = blocking
}

// Finish ends the clip currently blocked in LoadAndPlay with err.
// It returns false if no clip picked it up within a second.
func (m *Mock) Finish(err error) bool {
	select {
	case m.finish <- err:
		return true
	case <-time.After(time.Second):
		return false
	}
}

// Started receives the URL of every clip passed to LoadAndPlay.
func (m *Mock) Started() <-chan string { return m.started }

func (m *Mock) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCalls...)
}

func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

func (m *Mock) Prefetched() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prefetched...)
}

// Verify Mock implements Interface at compile time.
var (
	_ Interface  = (*Mock)(nil)
	_ Prefetcher = (*Mock)(nil)
	_ Timed      = (*Mock)(nil)
)
