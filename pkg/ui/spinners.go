package ui

import (
	"fmt"
	"os"
	"time"
)

// SpinnerType represents different spinner animation styles
type SpinnerType int

const (
	SpinnerDots SpinnerType = iota
	SpinnerLine
	SpinnerCircle
	SpinnerArc
)

// Spinner holds spinner animation frames
type Spinner struct {
	Frames   []string
	Interval time.Duration
}

// Spinners provides various spinner animation styles
var Spinners = map[SpinnerType]Spinner{
	SpinnerDots: {
		Frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		Interval: 80 * time.Millisecond,
	},
	SpinnerLine: {
		Frames:   []string{"-", "\\", "|", "/"},
		Interval: 100 * time.Millisecond,
	},
	SpinnerCircle: {
		Frames:   []string{"◐", "◓", "◑", "◒"},
		Interval: 100 * time.Millisecond,
	},
	SpinnerArc: {
		Frames:   []string{"◜", "◠", "◝", "◞", "◡", "◟"},
		Interval: 100 * time.Millisecond,
	},
}

// GetSpinner returns a spinner by type with a default fallback.
// On terminals that cannot render Unicode (legacy Windows consoles),
// Unicode-heavy spinners are replaced with SpinnerLine.
func GetSpinner(t SpinnerType) Spinner {
	if !UnicodeTerminal() {
		// Only SpinnerLine is pure ASCII; all others use Unicode glyphs.
		return Spinners[SpinnerLine]
	}
	if s, ok := Spinners[t]; ok {
		return s
	}
	return Spinners[SpinnerDots]
}

// StartSpinner animates a spinner with the given message on stderr until
// the returned stop function is called. It is a no-op when output is
// silent or stderr is not an interactive terminal, so it is safe to call
// unconditionally around long-running work.
func StartSpinner(message string) (stop func()) {
	if IsSilent() || !UnicodeTerminal() {
		return func() {}
	}
	sp := DefaultSpinner()
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(sp.Interval)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-done:
				// Clear the spinner line before handing the terminal back.
				fmt.Fprintf(os.Stderr, "\r%*s\r", len(message)+4, "")
				return
			case <-ticker.C:
				glyph := SpinnerStyle.Render(sp.Frames[frame%len(sp.Frames)])
				fmt.Fprintf(os.Stderr, "\r  %s %s", glyph, message)
				frame++
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}
