package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames cycle while a run is in flight.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a progress indicator on stderr while pebbles are being
// placed. It stops on context cancellation so an interrupted run leaves a
// clean line behind.
type spinner struct {
	message string
	cancel  context.CancelFunc
	ctx     context.Context
	stopped chan struct{}
	once    sync.Once
}

// startSpinner begins animating message until stop is called or ctx is
// cancelled.
func startSpinner(ctx context.Context, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		message: message,
		cancel:  cancel,
		ctx:     sctx,
		stopped: make(chan struct{}),
	}
	go s.spin()
	return s
}

func (s *spinner) spin() {
	defer close(s.stopped)
	ticker := time.NewTicker(90 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

// stop halts the animation and clears the line. Safe to call more than once.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	})
}

// fail stops the animation and prints an error line in its place.
func (s *spinner) fail(message string) {
	s.stop()
	printError("%s", message)
}
