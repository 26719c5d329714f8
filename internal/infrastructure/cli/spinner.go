package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// braille spinner frames, one rotation per ~0.8s
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a one-character frame on the current terminal line while
// the translator round-trips to the model. Stop clears the line so the
// command preview and confirmation prompt start on clean ground.
type Spinner struct {
	writer io.Writer
	done   chan struct{}
	wg     sync.WaitGroup

	mu     sync.Mutex
	active bool
}

// NewSpinner creates a stopped spinner writing to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{writer: w, done: make(chan struct{})}
}

// Start begins the animation. Calling Start on a spinning spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for frame := 0; ; frame++ {
			select {
			case <-s.done:
				fmt.Fprintf(s.writer, "\r\033[K")
				return
			default:
				fmt.Fprintf(s.writer, "\r%s ", spinnerFrames[frame%len(spinnerFrames)])
				time.Sleep(80 * time.Millisecond)
			}
		}
	}()
}

// Stop halts the animation and blocks until the line is cleared.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
}
