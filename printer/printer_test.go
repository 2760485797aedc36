package printer

import (
	"strings"
	"testing"

	"github.com/rdx-hw/ledger-core/address"
	"github.com/rdx-hw/ledger-core/decoder"
	"github.com/rdx-hw/ledger-core/instruction"
)

type recordedShow struct {
	title, body string
}

type collectingSink struct {
	shows []recordedShow
}

func (s *collectingSink) Show(title, body string) {
	s.shows = append(s.shows, recordedShow{title, body})
}

// runThrough decodes payload, fanning decode events through ex and its
// extractor events into p.
func runThrough(t *testing.T, ex *instruction.Extractor, p *Printer, payload []byte) {
	t.Helper()
	d := decoder.New(false)
	fanout := decoder.HandlerFunc(func(e decoder.Event) { ex.HandleWith(p, e) })
	outcome, err := d.Decode(fanout, payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !outcome.Done {
		t.Fatalf("expected Done, got NeedMoreData(%d)", outcome.BytesConsumed)
	}
}

// oneInstructionPayload builds a single-instruction manifest with one
// parameter, mirroring buildOneInstructionPayload in the extractor tests.
func oneInstructionPayload(instrByte byte, paramTypeID byte, paramBytes ...byte) []byte {
	out := []byte{
		decoder.TypeTuple, 2,
		decoder.TypeTuple, 0,
		decoder.TypeTuple, 1,
		decoder.TypeArray, decoder.TypeEnum, 1,
		instrByte,
		1,
		paramTypeID,
	}
	return append(out, paramBytes...)
}

func TestPrinterRendersPrimitiveParameter(t *testing.T) {
	sink := &collectingSink{}
	p := NewPrinter(sink, address.MainNet, false)
	ex := instruction.NewExtractor()

	payload := oneInstructionPayload(byte(instruction.InstructionTakeFromWorktop), decoder.TypeU32, 42, 0, 0, 0)
	runThrough(t, ex, p, payload)

	var sawInstr, sawParam bool
	for _, s := range sink.shows {
		if s.title == "Instruction" && strings.Contains(s.body, "TakeFromWorktop") {
			sawInstr = true
		}
		if s.title == "Parameter" && s.body == "42u32" {
			sawParam = true
		}
	}
	if !sawInstr {
		t.Errorf("expected an Instruction show mentioning TakeFromWorktop, got %+v", sink.shows)
	}
	if !sawParam {
		t.Errorf("expected a Parameter show of \"42u32\", got %+v", sink.shows)
	}
}

func TestPrinterSummaryModeSuppressesOutput(t *testing.T) {
	sink := &collectingSink{}
	p := NewPrinter(sink, address.MainNet, true)
	ex := instruction.NewExtractor()

	payload := oneInstructionPayload(byte(instruction.InstructionTakeFromWorktop), decoder.TypeU8, 7)
	runThrough(t, ex, p, payload)

	if len(sink.shows) != 0 {
		t.Errorf("summary mode should suppress all output, got %+v", sink.shows)
	}
}

func TestPrinterUnknownInstructionReportsError(t *testing.T) {
	sink := &collectingSink{}
	p := NewPrinter(sink, address.MainNet, false)
	ex := instruction.NewExtractor()

	payload := oneInstructionPayload(0xFE, decoder.TypeU8, 7)
	runThrough(t, ex, p, payload)

	var sawError bool
	for _, s := range sink.shows {
		if s.title == "Error" {
			sawError = true
		}
	}
	if !sawError {
		t.Errorf("expected an Error show, got %+v", sink.shows)
	}
}

func TestFormatCompositeByteArrayFallsBackToHex(t *testing.T) {
	f := frame{typeID: decoder.TypeArray, data: []byte{0xde, 0xad, 0xbe, 0xef}}
	got := formatComposite(f, '[', ']')
	want := "Bytes(deadbeef)"
	if got != want {
		t.Errorf("formatComposite(byte array) = %q, want %q", got, want)
	}
}

func TestFormatCompositeJoinsElements(t *testing.T) {
	f := frame{typeID: decoder.TypeTuple, elements: []string{"1u8", "2u8"}}
	got := formatComposite(f, '(', ')')
	want := "(1u8, 2u8)"
	if got != want {
		t.Errorf("formatComposite(tuple) = %q, want %q", got, want)
	}
}

func TestTruncateAppliesEllipsis(t *testing.T) {
	body := strings.Repeat("a", maxBodyWidth+10)
	got := truncate(body)
	if len(got) != maxBodyWidth {
		t.Fatalf("truncate length = %d, want %d", len(got), maxBodyWidth)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated body should end in ellipsis, got %q", got[len(got)-10:])
	}
}
