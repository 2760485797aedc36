package instruction

import "github.com/rdx-hw/ledger-core/decoder"

// ExtractorEventKind enumerates the events the extractor emits.
type ExtractorEventKind int

const (
	EventInstructionStart ExtractorEventKind = iota
	EventParameterStart
	EventParameterData
	// EventParameterDiscriminator reports a custom type's discriminator
	// byte (address static/named, non-fungible-local-id string/integer/
	// bytes/RUID) when it occurs inside a parameter (nesting_level >= 4).
	// Not present in the reference ExtractorEvent union, which has no
	// dedicated discriminator event at all (see DESIGN.md open-question
	// resolution #6); added because the printer needs this byte to choose
	// a formatting branch and the decoder's generic Discriminator event
	// would otherwise be silently dropped for nested custom types.
	EventParameterDiscriminator
	// EventParameterLen reports every decoder Len that occurs inside a
	// parameter (nesting_level >= 4): the element/field count of an
	// array/tuple/map/enum (e.g. the count of a non-fungible-id array), or
	// the byte length of a string, address or non-fungible local id. Mirrors the fact that the decoder's
	// EventLen fires at arbitrary nesting, not only for the instructions
	// array itself; the reference's tx_summary_detector.rs reads the
	// equivalent nested Len directly off SborEvent rather than through a
	// dedicated extractor event, but this port funnels everything through
	// ExtractorEvent so downstream collaborators never see raw decoder.Event.
	EventParameterLen
	EventParameterEnd
	EventInstructionEnd
	EventError
)

// ExtractorError is the one error case the extractor can raise on its own
// (decoder-level errors are reported by the decoder itself).
type ExtractorError int

const UnknownInstruction ExtractorError = 0

// ExtractorEvent is emitted by Extractor.Handle. Only the fields relevant
// to Kind are meaningful, mirroring the reference ExtractorEvent union.
// IsEnumName is always false in this port: instruction identity is read
// off the discriminator byte rather than an accumulated name field (see
// DESIGN.md open-question resolution #6), so ParameterData never carries
// name bytes; the field is kept for interface parity with spec.md.
type ExtractorEvent struct {
	Kind ExtractorEventKind

	Instruction    Instruction
	ParameterCount byte
	TypeID         byte
	NestingLevel   int
	DataStart      int
	Data           []byte
	IsEnumName     bool
	Byte           byte
	Len            uint32
	Err            ExtractorError
}

// Handler receives extractor events, in document order.
type Handler interface {
	Handle(ExtractorEvent)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ExtractorEvent)

func (f HandlerFunc) Handle(e ExtractorEvent) { f(e) }

type extractorPhase int

const (
	phaseWaitingForInstructionsStruct extractorPhase = iota
	phaseWaitingForInstructionsArray
	phaseCollectingInstructions
	phaseDone
)

// Extractor consumes decoder events and recovers InstructionStart/
// ParameterStart/ParameterData/ParameterEnd/InstructionEnd/Error events,
// ported from the reference InstructionExtractor. See DESIGN.md
// open-question resolution #6 for how instruction identity is read off the
// decoder's TYPE_ENUM discriminator byte instead of an accumulated name
// string.
type Extractor struct {
	dataLen   int
	dataPtr   int
	dataStart int
	data      [decoder.TypeDataBufferSize]byte

	structCount    int
	phase          extractorPhase
	currentNesting int
	currentTypeID  byte
	chunkedData    bool

	pendingInstruction Instruction
	havePending        bool
}

// NewExtractor creates an Extractor ready to consume decoder events from
// the start of a payload.
func NewExtractor() *Extractor {
	return &Extractor{phase: phaseWaitingForInstructionsStruct}
}

// Reset restores the extractor to its initial state for a new payload.
func (ex *Extractor) Reset() { *ex = Extractor{phase: phaseWaitingForInstructionsStruct} }

// Handle implements decoder.Handler, letting the extractor be fanned out
// to directly alongside the hash calculator.
func (ex *Extractor) Handle(e decoder.Event) {
	ex.HandleWith(nil, e)
}

// HandleWith processes one decode event, forwarding any extractor events to
// handler (which may be nil if only the side effects on ex matter, e.g. in
// tests that drive the decoder without a downstream consumer).
func (ex *Extractor) HandleWith(handler Handler, e decoder.Event) {
	switch ex.phase {
	case phaseWaitingForInstructionsStruct:
		ex.waitForInstructionsStruct(e)
	case phaseWaitingForInstructionsArray:
		ex.waitForInstructionsArray(e)
	case phaseCollectingInstructions:
		ex.processInstruction(handler, e)
	case phaseDone:
	}
}

// waitForInstructionsStruct skips everything until the second top-level
// tuple field appears (the instructions tuple sits second, after header).
func (ex *Extractor) waitForInstructionsStruct(e decoder.Event) {
	if e.Kind != decoder.EventStart {
		return
	}
	if e.NestingLevel == 1 && e.TypeID == decoder.TypeTuple {
		ex.structCount++
	}
	if ex.structCount == 2 {
		ex.phase = phaseWaitingForInstructionsArray
	}
}

// waitForInstructionsArray skips wrapping types until the actual array of
// instructions appears.
func (ex *Extractor) waitForInstructionsArray(e decoder.Event) {
	if e.Kind != decoder.EventStart {
		return
	}
	if e.TypeID == decoder.TypeArray && e.NestingLevel == 2 {
		ex.phase = phaseCollectingInstructions
		ex.currentNesting = e.NestingLevel
	}
}

func (ex *Extractor) emit(handler Handler, e ExtractorEvent) {
	if handler != nil {
		handler.Handle(e)
	}
}

func (ex *Extractor) processInstruction(handler Handler, e decoder.Event) {
	switch e.Kind {
	case decoder.EventStart:
		ex.currentNesting = e.NestingLevel
		ex.currentTypeID = e.TypeID
		ex.dataLen = e.FixedSize
		ex.dataPtr = 0
		ex.dataStart = 0
		ex.chunkedData = false

		if e.NestingLevel >= 4 {
			ex.emit(handler, ExtractorEvent{
				Kind:         EventParameterStart,
				TypeID:       e.TypeID,
				NestingLevel: e.NestingLevel - 4,
			})
		}

	case decoder.EventDiscriminator:
		switch {
		case ex.currentNesting == 3:
			if instr, ok := FromDiscriminator(e.Byte); ok {
				ex.pendingInstruction = instr
				ex.havePending = true
			} else {
				ex.emit(handler, ExtractorEvent{Kind: EventError, Err: UnknownInstruction})
				ex.havePending = false
			}
		case ex.currentNesting >= 4:
			ex.emit(handler, ExtractorEvent{
				Kind:         EventParameterDiscriminator,
				TypeID:       ex.currentTypeID,
				NestingLevel: ex.currentNesting - 4,
				Byte:         e.Byte,
			})
		}

	case decoder.EventLen:
		if ex.havePending {
			ex.havePending = false
			ex.emit(handler, ExtractorEvent{
				Kind:           EventInstructionStart,
				Instruction:    ex.pendingInstruction,
				ParameterCount: byte(e.Len),
			})
		} else if ex.currentNesting >= 4 {
			ex.emit(handler, ExtractorEvent{
				Kind:         EventParameterLen,
				TypeID:       ex.currentTypeID,
				NestingLevel: ex.currentNesting - 4,
				Len:          e.Len,
			})
		}

		ex.dataLen = int(e.Len)
		ex.dataPtr = 0
		ex.dataStart = 0
		ex.chunkedData = ex.dataLen > decoder.TypeDataBufferSize

	case decoder.EventData:
		ex.data[ex.dataPtr-ex.dataStart] = e.Byte
		ex.dataPtr++

		var endOfChunk bool
		if ex.chunkedData {
			endOfChunk = ex.dataPtr-ex.dataStart == decoder.TypeDataBufferSize
		} else {
			endOfChunk = ex.dataPtr == ex.dataLen
		}

		if endOfChunk && ex.currentNesting >= 4 {
			ex.emit(handler, ExtractorEvent{
				Kind:      EventParameterData,
				DataStart: ex.dataStart,
				Data:      append([]byte(nil), ex.data[:ex.dataPtr-ex.dataStart]...),
			})
			if ex.chunkedData {
				ex.dataStart += decoder.TypeDataBufferSize
			}
		}

	case decoder.EventEnd:
		ex.currentNesting = e.NestingLevel

		switch {
		case e.NestingLevel == 2:
			ex.phase = phaseDone
		case e.NestingLevel == 3:
			if e.TypeID == decoder.TypeEnum {
				ex.emit(handler, ExtractorEvent{Kind: EventInstructionEnd})
			}
		case e.NestingLevel >= 4:
			ex.emit(handler, ExtractorEvent{Kind: EventParameterEnd})
		}
	}
}
