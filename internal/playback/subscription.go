package playback

const eventBufferSize = 16

// Subscription delivers driver events. Sends never block the driver: state
// changes and diagnostics are dropped when their buffer is full, while
// position updates replace the oldest one, so a slow reader always sees the
// latest position. Done is closed by Driver.Close.
type Subscription struct {
	StateChanged    <-chan StateChange
	PositionChanged <-chan PositionChange
	Diagnostics     <-chan Diagnostic
	Done            <-chan struct{}

	state    chan StateChange
	position chan PositionChange
	diag     chan Diagnostic
	done     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		state:    make(chan StateChange, eventBufferSize),
		position: make(chan PositionChange, eventBufferSize),
		diag:     make(chan Diagnostic, eventBufferSize),
		done:     make(chan struct{}),
	}
	s.StateChanged, s.PositionChanged, s.Diagnostics, s.Done = s.state, s.position, s.diag, s.done
	return s
}

func (s *Subscription) close() { close(s.done) }

func (s *Subscription) sendState(e StateChange) { offer(s.state, e, false) }

func (s *Subscription) sendPosition(st State) { offer(s.position, PositionChange{State: st}, true) }

func (s *Subscription) sendDiagnostic(e Diagnostic) { offer(s.diag, e, false) }

// offer sends v without blocking. On a full buffer v is dropped, or with
// latest the oldest buffered value is dropped to make room for v. The driver
// is the only sender, under subsMu.
func offer[T any](ch chan T, v T, latest bool) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		if !latest {
			return
		}
		select {
		case <-ch:
		default:
		}
	}
}
