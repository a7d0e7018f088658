package state

import "time"

// Interface is what the application needs from the store.
type Interface interface {
	SaveSession(s Session)
	GetSession() (*Session, error)
	RecordCompletion(c Completion) (string, error)
	ListCompletions(limit int) ([]Completion, error)
	GetPageProgress(page int) (*PageProgress, error)
	CompletedPages() (int, error)
	LastCompletedAt() (time.Time, error)
	SetMemorized(page int, memorized bool) error
	IsMemorized(page int) (bool, error)
	MemorizedPages() (int, error)
	Close() error
}

var (
	_ Interface = (*Manager)(nil)
	_ Interface = (*Mock)(nil)
)
