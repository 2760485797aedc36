package simdisplay

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func newTestTerminal(stdin string) (*Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	t := &Terminal{
		out: &out,
		in:  bufio.NewReader(strings.NewReader(stdin)),
		fd:  -1, // never a real terminal fd
	}
	return t, &out
}

func TestShowRecordsTitleAndWritesBody(t *testing.T) {
	term, out := newTestTerminal("")
	term.Show("Transfer", "10 XRD to account_rdx...")

	if got := term.Shown(); len(got) != 1 || got[0] != "Transfer" {
		t.Errorf("Shown() = %v, want [Transfer]", got)
	}
	if !strings.Contains(out.String(), "Transfer") || !strings.Contains(out.String(), "10 XRD") {
		t.Errorf("output missing expected content: %q", out.String())
	}
}

func TestApproveAcceptsYLine(t *testing.T) {
	term, _ := newTestTerminal("y\n")
	if !term.Approve() {
		t.Errorf("Approve() = false, want true for \"y\"")
	}
}

func TestApproveRejectsNLine(t *testing.T) {
	term, _ := newTestTerminal("n\n")
	if term.Approve() {
		t.Errorf("Approve() = true, want false for \"n\"")
	}
}

func TestApproveRejectsEmptyInput(t *testing.T) {
	term, _ := newTestTerminal("")
	if term.Approve() {
		t.Errorf("Approve() = true, want false on EOF with no input")
	}
}
