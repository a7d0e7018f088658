package player

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMock_DefaultEndsImmediately(t *testing.T) {
	m := NewMock()
	if err := m.LoadAndPlay(context.Background(), "a"); err != nil {
		t.Fatalf("LoadAndPlay: %v", err)
	}
	if got := <-m.Started(); got != "a" {
		t.Errorf("Started() = %q, want a", got)
	}
	if m.IsPlaying() {
		t.Error("mock should be stopped after an immediate clip")
	}
}

func TestMock_Outcome(t *testing.T) {
	m := NewMock()
	boom := errors.New("boom")
	m.SetOutcome("bad", boom)

	if err := m.LoadAndPlay(context.Background(), "bad"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if err := m.LoadAndPlay(context.Background(), "good"); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
	calls := m.PlayCalls()
	if len(calls) != 2 || calls[0] != "bad" || calls[1] != "good" {
		t.Errorf("PlayCalls() = %v", calls)
	}
}

func TestMock_BlockingFinish(t *testing.T) {
	m := NewMock()
	m.SetBlocking(true)

	errCh := make(chan error, 1)
	go func() { errCh <- m.LoadAndPlay(context.Background(), "a") }()
	<-m.Started()

	if !m.Finish(nil) {
		t.Fatal("Finish() found no clip")
	}
	if err := <-errCh; err != nil {
		t.Errorf("err = %v, want nil", err)
	}
	if m.IsPlaying() {
		t.Error("mock should be stopped after Finish")
	}
}

func TestMock_BlockingStop(t *testing.T) {
	m := NewMock()
	m.SetBlocking(true)

	errCh := make(chan error, 1)
	go func() { errCh <- m.LoadAndPlay(context.Background(), "a") }()
	<-m.Started()

	m.Stop()
	select {
	case err := <-errCh:
		if !errors.Is(err, ErrStopped) {
			t.Errorf("err = %v, want ErrStopped", err)
		}
	case <-time.After(time.Second):
		t.Fatal("LoadAndPlay did not return after Stop")
	}
	if m.StopCalls() != 1 {
		t.Errorf("StopCalls() = %d, want 1", m.StopCalls())
	}
}

func TestMock_BlockingCancel(t *testing.T) {
	m := NewMock()
	m.SetBlocking(true)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- m.LoadAndPlay(ctx, "a") }()
	<-m.Started()

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestMock_Prefetch(t *testing.T) {
	m := NewMock()
	m.Prefetch("x")
	m.Prefetch("y")
	if got := m.Prefetched(); len(got) != 2 || got[1] != "y" {
		t.Errorf("Prefetched() = %v", got)
	}
}

func TestMock_PlayTimedReportsLength(t *testing.T) {
	m := NewMock()
	m.SetLength("long", 90*time.Second)
	m.SetOutcome("bad", errors.New("boom"))

	var got []time.Duration
	report := func(d time.Duration) { got = append(got, d) }

	if err := m.PlayTimed(context.Background(), "long", report); err != nil {
		t.Fatalf("PlayTimed: %v", err)
	}
	if err := m.PlayTimed(context.Background(), "short", report); err != nil {
		t.Fatalf("PlayTimed: %v", err)
	}
	_ = m.PlayTimed(context.Background(), "bad", report)

	if len(got) != 2 || got[0] != 90*time.Second || got[1] != 0 {
		t.Errorf("reported lengths = %v, want [1m30s 0s]", got)
	}
}
