package instruction

import (
	"testing"

	"github.com/rdx-hw/ledger-core/decoder"
)

type eventCollector []ExtractorEvent

func (c *eventCollector) Handle(e ExtractorEvent) { *c = append(*c, e) }

// buildOneInstructionPayload encodes: outer tuple(header tuple/0,
// instructions-wrapper tuple/1 holding array[1]of TypeEnum), where the one
// instruction element has discriminator byte instrByte and a single TypeU8
// parameter with value paramVal.
func buildOneInstructionPayload(instrByte, paramVal byte) []byte {
	return []byte{
		decoder.TypeTuple, 2, // outer envelope: header, instructions-wrapper
		decoder.TypeTuple, 0, // header: empty
		decoder.TypeTuple, 1, // instructions-wrapper: 1 field (the array)
		decoder.TypeArray, decoder.TypeEnum, 1, // array of 1 instruction
		instrByte, // discriminator
		1,         // param count = 1
		decoder.TypeU8, paramVal,
	}
}

func TestExtractorRecognizesInstructionAndParameter(t *testing.T) {
	ex := NewExtractor()
	var got eventCollector

	payload := buildOneInstructionPayload(byte(InstructionTakeFromWorktop), 9)
	d := decoder.New(false)
	fanout := decoder.HandlerFunc(func(e decoder.Event) { ex.HandleWith(&got, e) })

	outcome, err := d.Decode(fanout, payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !outcome.Done {
		t.Fatalf("expected Done, got NeedMoreData(%d)", outcome.BytesConsumed)
	}

	var starts, paramData, paramEnds, instrEnds int
	var sawInstruction Instruction
	var sawParamCount byte
	for _, e := range got {
		switch e.Kind {
		case EventInstructionStart:
			starts++
			sawInstruction = e.Instruction
			sawParamCount = e.ParameterCount
		case EventParameterData:
			paramData++
			if len(e.Data) != 1 || e.Data[0] != 9 {
				t.Errorf("parameter data = %v, want [9]", e.Data)
			}
		case EventParameterEnd:
			paramEnds++
		case EventInstructionEnd:
			instrEnds++
		case EventError:
			t.Fatalf("unexpected extractor error: %v", e.Err)
		}
	}

	if starts != 1 {
		t.Fatalf("expected exactly 1 InstructionStart, got %d", starts)
	}
	if sawInstruction != InstructionTakeFromWorktop {
		t.Errorf("instruction = %v, want TakeFromWorktop", sawInstruction)
	}
	if sawParamCount != 1 {
		t.Errorf("parameter_count = %d, want 1", sawParamCount)
	}
	if paramData != 1 || paramEnds != 1 || instrEnds != 1 {
		t.Errorf("paramData=%d paramEnds=%d instrEnds=%d, want 1/1/1", paramData, paramEnds, instrEnds)
	}
}

func TestExtractorUnknownInstructionDiscriminator(t *testing.T) {
	ex := NewExtractor()
	var got eventCollector

	payload := buildOneInstructionPayload(0xFE, 9)
	d := decoder.New(false)
	err := decodeThrough(d, ex, &got, payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var sawError bool
	for _, e := range got {
		if e.Kind == EventError && e.Err == UnknownInstruction {
			sawError = true
		}
		if e.Kind == EventInstructionStart {
			t.Fatalf("InstructionStart should not fire for an unknown discriminator")
		}
	}
	if !sawError {
		t.Fatal("expected an UnknownInstruction error event")
	}
}

func decodeThrough(d *decoder.Decoder, ex *Extractor, got *eventCollector, payload []byte) error {
	fanout := decoder.HandlerFunc(func(e decoder.Event) { ex.HandleWith(got, e) })
	_, err := d.Decode(fanout, payload)
	return err
}

func TestFromDiscriminatorAndFromName(t *testing.T) {
	if _, ok := FromDiscriminator(byte(InstructionCallMethod)); !ok {
		t.Fatal("expected CallMethod discriminator to resolve")
	}
	if i, ok := FromName("CallMethod"); !ok || i != InstructionCallMethod {
		t.Fatalf("FromName(CallMethod) = %v,%v", i, ok)
	}
	if _, ok := FromName("NotAnInstruction"); ok {
		t.Fatal("expected unknown name to fail lookup")
	}
}
