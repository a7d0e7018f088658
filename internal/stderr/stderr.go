//go:build !windows

// Package stderr redirects file descriptor 2 into the log while the TUI runs,
// so that ALSA and oto messages written by C code do not tear the screen.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
)

// backlog is how many lines are kept before a logger is attached. Later
// lines are dropped.
const backlog = 100

// Capture owns the redirection of fd 2.
type Capture struct {
	orig  int
	r, w  *os.File
	lines chan string
	done  chan struct{}
	stop  sync.Once
}

// Start redirects fd 2 into a pipe. Call it before the audio backend opens.
// On error the process keeps its original stderr.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	fd := int(os.Stderr.Fd())
	orig, err := syscall.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	if err := syscall.Dup2(int(w.Fd()), fd); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, lines: make(chan string, backlog)}
	go c.read()
	return c, nil
}

func (c *Capture) read() {
	defer close(c.lines)
	sc := bufio.NewScanner(c.r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
		}
	}
}

// Forward logs captured lines at warn level, including those captured before
// the call.
func (c *Capture) Forward(logger *log.Logger) {
	if c == nil || c.done != nil {
		return
	}
	c.done = make(chan struct{})
	go func() {
		defer close(c.done)
		for line := range c.lines {
			logger.Warn("audio backend", "stderr", line)
		}
	}()
}

// Stop restores the original stderr and waits until every captured line has
// been logged. Later calls do nothing.
func (c *Capture) Stop() {
	if c == nil {
		return
	}
	c.stop.Do(func() {
		_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
		_ = syscall.Close(c.orig)
		c.w.Close()
		if c.done != nil {
			<-c.done
		}
		c.r.Close()
	})
}
