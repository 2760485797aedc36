// Package printer implements the instruction printer: it consumes
// instruction extractor events and renders each instruction and parameter
// to a display sink, ported from the reference InstructionPrinter and its
// per-type ParameterPrinter strategies.
package printer

import "github.com/rdx-hw/ledger-core/address"

// maxParamBytes bounds the accumulation buffer for a single parameter's
// printable form, mirroring the reference ParameterPrinterState's
// PARAMETER_AREA_SIZE (128).
const maxParamBytes = 128

// Sink is the display collaborator: a title/body pair per event. Titles are
// fixed short strings; bodies are truncated with an ellipsis beyond
// maxBodyWidth. Exactly one message is ever "on screen" at a time per
// spec.md §5 — callers serialize Show calls (e.g. behind a paging prompt).
type Sink interface {
	Show(title, body string)
}

// maxBodyWidth is the fixed display width bodies are truncated to before
// reaching the sink; the sink itself may apply further device-specific
// wrapping.
const maxBodyWidth = 256

func truncate(body string) string {
	if len(body) <= maxBodyWidth {
		return body
	}
	if maxBodyWidth <= 3 {
		return body[:maxBodyWidth]
	}
	return body[:maxBodyWidth-3] + "..."
}

// frame is the per-nesting-level parameter state the printer pushes on
// ParameterStart and pops on ParameterEnd, mirroring ParameterPrinterState
// plus the reference's per-depth ValueState stack.
type frame struct {
	typeID    byte
	data      []byte
	elements  []string // child frames' rendered forms, for array/tuple/map
	keyTypeID byte     // inner discriminator byte (address or NFL kind) from ParameterDiscriminator
}

func (f *frame) pushByte(b byte) {
	if len(f.data) >= maxParamBytes-3 {
		if len(f.data) == maxParamBytes-3 {
			f.data = append(f.data, '.', '.', '.')
		}
		return
	}
	f.data = append(f.data, b)
}

func (f *frame) pushBytes(bs []byte) {
	for _, b := range bs {
		f.pushByte(b)
	}
}

// state carries the session-scoped context every parameter printer needs:
// the network id (for address formatting) and a flag suppressing output
// entirely ("summary mode").
type state struct {
	networkID   address.NetworkID
	summaryMode bool
}
