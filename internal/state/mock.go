package state

import (
	"strconv"
	"sync"
	"time"
)

// Mock is a test double for Manager.
type Mock struct {
	mu          sync.Mutex
	session     *Session
	saves       int
	completions []Completion
	memorized   map[int]bool
	closed      bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{memorized: make(map[int]bool)}
}

func (m *Mock) SaveSession(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	m.saves++
}

func (m *Mock) GetSession() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil //nolint:nilnil // mirrors Manager on first run
	}
	s := *m.session
	return &s, nil
}

func (m *Mock) RecordCompletion(c Completion) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = "completion-" + strconv.Itoa(len(m.completions)+1)
	}
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now()
	}
	m.completions = append(m.completions, c)
	return c.ID, nil
}

func (m *Mock) ListCompletions(limit int) ([]Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Completion
	for i := len(m.completions) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, m.completions[i])
	}
	return out, nil
}

func (m *Mock) GetPageProgress(page int) (*PageProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var p *PageProgress
	for _, c := range m.completions {
		if c.Page != page {
			continue
		}
		if p == nil {
			p = &PageProgress{Page: page, FirstCompletedAt: c.CompletedAt}
		}
		p.Completions++
		p.LastCompletedAt = c.CompletedAt
	}
	return p, nil
}

func (m *Mock) CompletedPages() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[int]bool)
	for _, c := range m.completions {
		seen[c.Page] = true
	}
	return len(seen), nil
}

func (m *Mock) LastCompletedAt() (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var last time.Time
	for _, c := range m.completions {
		if c.CompletedAt.After(last) {
			last = c.CompletedAt
		}
	}
	return last, nil
}

func (m *Mock) SetMemorized(page int, memorized bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if memorized {
		m.memorized[page] = true
	} else {
		delete(m.memorized, page)
	}
	return nil
}

func (m *Mock) IsMemorized(page int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.memorized[page], nil
}

func (m *Mock) MemorizedPages() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.memorized), nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSession(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
}

func (m *Mock) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) Completions() []Completion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Completion(nil), m.completions...)
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
