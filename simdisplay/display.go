// Package simdisplay implements the desktop simulator's screen: a
// colorized terminal rendering of the printer.Sink/signflow.Approver
// collaborators the orchestrator drives, standing in for the device's
// physical display and button presses.
package simdisplay

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	titleColor  = color.New(color.FgHiCyan, color.Bold)
	bodyColor   = color.New(color.FgWhite)
	promptColor = color.New(color.FgHiYellow)
)

// Terminal is a printer.Sink and signflow.Approver backed by stdout/stdin.
type Terminal struct {
	out   io.Writer
	in    *bufio.Reader
	fd    int
	shown []string
}

// NewTerminal builds a Terminal wired to the process's stdout/stdin.
func NewTerminal() *Terminal {
	return &Terminal{
		out: os.Stdout,
		in:  bufio.NewReader(os.Stdin),
		fd:  int(os.Stdin.Fd()),
	}
}

// Show renders one (title, body) screen, mirroring the device's one most
// recent message per spec.md §5.
func (t *Terminal) Show(title, body string) {
	t.shown = append(t.shown, title)
	titleColor.Fprintf(t.out, "[ %s ]\n", title)
	bodyColor.Fprintln(t.out, body)
}

// Shown returns the titles of every screen shown so far, for tests and for
// a final transcript dump.
func (t *Terminal) Shown() []string { return t.shown }

// Approve prompts the user for a single y/n keypress. It falls back to a
// line-buffered read when stdin isn't an interactive terminal (e.g. when
// driven from a test or a piped fixture), so the same binary works in both
// contexts.
func (t *Terminal) Approve() bool {
	promptColor.Fprint(t.out, "Approve? [y/N] ")

	if term.IsTerminal(t.fd) {
		old, err := term.MakeRaw(t.fd)
		if err == nil {
			defer term.Restore(t.fd, old)
			b := make([]byte, 1)
			if _, err := os.Stdin.Read(b); err == nil {
				fmt.Fprintln(t.out)
				return b[0] == 'y' || b[0] == 'Y'
			}
		}
	}

	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return len(line) > 0 && (line[0] == 'y' || line[0] == 'Y')
}
