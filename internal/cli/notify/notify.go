// Package notify shows transient user-facing messages (toasts) and progress
// spinners on the terminal.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/tj/go-spin"
)

// Notifier shows success and error messages to the user
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Console writes colored notifications to a terminal
type Console struct {
	out io.Writer

	mu            sync.Mutex
	spinnerStopCh chan struct{}
	spinnerDoneCh chan struct{}
	spinnerMsg    string
}

// NewConsole creates a console notifier
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Success(msg string) {
	green := color.New(color.FgHiGreen)
	green.Fprintf(c.out, "  ✓ ")
	fmt.Fprintln(c.out, msg)
}

func (c *Console) Error(msg string) {
	red := color.New(color.FgHiRed)
	red.Fprintf(c.out, "  ✗ ")
	fmt.Fprintln(c.out, msg)
}

// ActionWithSpinner prints msg followed by a spinner until FinishSpinner or
// FinishSpinnerWithError is called.
func (c *Console) ActionWithSpinner(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := spin.New()
	cyan := color.New(color.FgHiCyan)
	cyan.Fprintf(c.out, "  • %s %s", msg, s.Next())

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	c.spinnerStopCh = stopCh
	c.spinnerDoneCh = doneCh
	c.spinnerMsg = msg

	go func() {
		defer close(doneCh)
		for {
			select {
			case <-stopCh:
				return
			case <-time.After(100 * time.Millisecond):
				cyan.Fprintf(c.out, "\r  • %s %s", msg, s.Next())
			}
		}
	}()
}

// FinishSpinner stops the spinner and marks the action as done
func (c *Console) FinishSpinner() {
	if msg, ok := c.stopSpinner(); ok {
		white := color.New(color.FgHiWhite)
		green := color.New(color.FgHiGreen)
		white.Fprintf(c.out, "\r  • %s", msg)
		green.Fprintf(c.out, " ✓")
		fmt.Fprintln(c.out, "  ")
	}
}

// FinishSpinnerWithError stops the spinner and marks the action as failed
func (c *Console) FinishSpinnerWithError() {
	if msg, ok := c.stopSpinner(); ok {
		white := color.New(color.FgHiWhite)
		red := color.New(color.FgHiRed)
		white.Fprintf(c.out, "\r  • %s", msg)
		red.Fprintf(c.out, " ✗")
		fmt.Fprintln(c.out, "  ")
	}
}

func (c *Console) stopSpinner() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.spinnerStopCh == nil {
		return "", false
	}
	close(c.spinnerStopCh)
	<-c.spinnerDoneCh
	c.spinnerStopCh = nil
	c.spinnerDoneCh = nil
	return c.spinnerMsg, true
}

// Discard drops every notification
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
