package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a single terminal line while a render runs. The
// animation ends on Stop or when its context is cancelled, whichever comes
// first.
type Spinner struct {
	ctx context.Context
	w   io.Writer

	mu    sync.Mutex
	msg   string
	width int // widest line drawn, for clearing

	quit     chan struct{}
	quitOnce sync.Once
	wg       sync.WaitGroup
}

func newSpinner(ctx context.Context, msg string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, msg)
}

func newSpinnerTo(ctx context.Context, w io.Writer, msg string) *Spinner {
	return &Spinner{ctx: ctx, w: w, msg: msg, quit: make(chan struct{})}
}

// Start draws frames in the background until the spinner is stopped.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go s.loop()
}

func (s *Spinner) loop() {
	defer s.wg.Done()
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
			return
		case <-s.ctx.Done():
			s.clear()
			return
		case <-tick.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.msg)
	s.width = max(s.width, lipgloss.Width(line))
	fmt.Fprint(s.w, "\r"+line)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%*s\r", s.width, "")
	}
}

// Update changes the message from the next frame on.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop ends the animation and erases the line. Extra calls are no-ops.
func (s *Spinner) Stop() {
	s.quitOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
	s.clear()
}

// StopWithError stops the spinner and prints msg as an error.
func (s *Spinner) StopWithError(msg string) {
	s.Stop()
	printError("%s", msg)
}

// Cancelled reports whether the spinner ended because its context did.
func (s *Spinner) Cancelled() bool { return s.ctx.Err() != nil }
