// Package ui provides small terminal affordances for long-running CLI
// operations.
package ui

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Spinner shows progress feedback while a slow operation runs. On
// non-terminal output it degrades to a single log line.
type Spinner struct {
	chars   []string
	message string
	active  bool
	mu      sync.Mutex
	done    chan struct{}
}

// Start creates and starts a spinner with the given message.
func Start(message string) *Spinner {
	s := &Spinner{
		chars:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		message: message,
		done:    make(chan struct{}),
	}
	s.start()
	return s
}

func (s *Spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	if !isTerminal() || os.Getenv("NO_COLOR") != "" {
		fmt.Fprintf(os.Stderr, "%s...\n", s.message)
		return
	}

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.done:
				fmt.Fprintf(os.Stderr, "\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.active {
					fmt.Fprintf(os.Stderr, "\r%s %s", s.chars[i], s.message)
					i = (i + 1) % len(s.chars)
				}
				s.mu.Unlock()
			}
		}
	}()
}

// Stop stops the spinner, reporting success or failure with a final
// message.
func (s *Spinner) Stop(ok bool, finalMessage string) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.mu.Unlock()

	close(s.done)
	time.Sleep(100 * time.Millisecond) // let the goroutine clear the line

	if finalMessage != "" {
		mark := "✓"
		if !ok {
			mark = "✗"
		}
		fmt.Fprintf(os.Stderr, "\r\033[K%s %s %s\n", mark, s.message, finalMessage)
	}
}

// Update changes the message while the spinner is running.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

func isTerminal() bool {
	fileInfo, _ := os.Stderr.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Spin runs fn under a spinner and reports its outcome.
func Spin(message string, fn func() error) error {
	s := Start(message)
	if err := fn(); err != nil {
		s.Stop(false, err.Error())
		return err
	}
	s.Stop(true, "done")
	return nil
}
