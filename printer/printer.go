package printer

import (
	"strconv"
	"strings"

	"github.com/rdx-hw/ledger-core/address"
	"github.com/rdx-hw/ledger-core/decoder"
	"github.com/rdx-hw/ledger-core/instruction"
)

// Printer implements instruction.Handler: it consumes the extractor's event
// stream and renders each instruction and its parameters to a Sink, ported
// from the reference InstructionPrinter/ParameterPrinter dispatch.
//
// Unlike the reference, which selects a ParameterPrinter per parameter
// ordinal from a per-instruction schema table (InstructionInfo.params), this
// port dispatches purely on the SBOR wire type tag carried by
// ParameterStart/ParameterEnd (see DESIGN.md): there is no ported
// instruction-parameter schema, so the same type-tag table that would
// otherwise back "unknown ordinal" fallback handling is used uniformly.
// Composite types (array/tuple/map) are handled generically: a frame
// collects its children's rendered strings and joins them on End, rather
// than special-casing each composite's element type the way
// array.rs/tuple.rs do per-collection.
type Printer struct {
	state state
	sink  Sink
	stack []frame
}

// NewPrinter creates a Printer that renders to sink for the given network
// (used to choose the Bech32m HRP for Address parameters). summaryMode
// suppresses every Show call (instruction titles, parameters and errors),
// per spec.md §4.4.
func NewPrinter(sink Sink, networkID address.NetworkID, summaryMode bool) *Printer {
	return &Printer{
		state: state{networkID: networkID, summaryMode: summaryMode},
		sink:  sink,
	}
}

// Handle implements instruction.Handler.
func (p *Printer) Handle(e instruction.ExtractorEvent) {
	switch e.Kind {
	case instruction.EventInstructionStart:
		p.stack = p.stack[:0]
		p.show("Instruction", instructionTitle(e.Instruction, e.ParameterCount))

	case instruction.EventParameterStart:
		p.stack = append(p.stack, frame{typeID: e.TypeID})

	case instruction.EventParameterData:
		if len(p.stack) == 0 {
			return
		}
		p.top().pushBytes(e.Data)

	case instruction.EventParameterDiscriminator:
		if len(p.stack) == 0 {
			return
		}
		p.top().keyTypeID = e.Byte

	case instruction.EventParameterEnd:
		p.popParameter()

	case instruction.EventInstructionEnd:
		p.stack = p.stack[:0]

	case instruction.EventError:
		p.show("Error", errorTitle(e.Err))
	}
}

func (p *Printer) top() *frame {
	return &p.stack[len(p.stack)-1]
}

// popParameter closes the innermost frame, formats it, and either folds the
// result into its parent (nested element of a composite) or emits it to the
// sink (outermost parameter of the instruction).
func (p *Printer) popParameter() {
	if len(p.stack) == 0 {
		return
	}
	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	rendered := p.formatValue(f)

	if len(p.stack) > 0 {
		parent := p.top()
		parent.pushElement(rendered)
		return
	}
	p.show("Parameter", rendered)
}

func (p *Printer) show(title, body string) {
	if p.state.summaryMode || p.sink == nil {
		return
	}
	p.sink.Show(title, truncate(body))
}

func instructionTitle(instr instruction.Instruction, paramCount byte) string {
	return instr.String() + " (" + strconv.Itoa(int(paramCount)) + " params)"
}

func errorTitle(err instruction.ExtractorError) string {
	switch err {
	case instruction.UnknownInstruction:
		return "Unknown instruction"
	default:
		return "Extractor error"
	}
}

// pushElement appends a child's rendered form to a composite frame (array,
// tuple, map). Kept on frame rather than on Printer since it's purely a
// bookkeeping operation on that frame's accumulated children.
func (f *frame) pushElement(rendered string) {
	if f.elements == nil {
		f.elements = make([]string, 0, 4)
	}
	f.elements = append(f.elements, rendered)
}

// formatValue renders a single closed frame to its display string,
// dispatching on the SBOR wire type tag. Composite types whose children
// were never individually opened (the decoder's skip_start_end suppression
// for byte-element arrays) fall through to the raw-bytes branch instead of
// the element-join branch, which is how the "Bytes(hex)" special case for
// byte arrays falls out of the general array/tuple/map handling rather than
// needing to be special-cased up front.
func (p *Printer) formatValue(f frame) string {
	switch f.typeID {
	case decoder.TypeBool:
		return formatBool(f.data)
	case decoder.TypeU8:
		return formatUint(f.data, 1, "u8")
	case decoder.TypeU16:
		return formatUint(f.data, 2, "u16")
	case decoder.TypeU32:
		return formatUint(f.data, 4, "u32")
	case decoder.TypeU64:
		return formatUint(f.data, 8, "u64")
	case decoder.TypeU128:
		return formatUint(f.data, 16, "u128")
	case decoder.TypeI8:
		return formatInt(f.data, 1, "i8")
	case decoder.TypeI16:
		return formatInt(f.data, 2, "i16")
	case decoder.TypeI32:
		return formatInt(f.data, 4, "i32")
	case decoder.TypeI64:
		return formatInt(f.data, 8, "i64")
	case decoder.TypeI128:
		return formatInt(f.data, 16, "i128")
	case decoder.TypeString:
		return formatString(f.data)
	case decoder.TypeAddress:
		return formatAddress(f.data, p.state.networkID)
	case decoder.TypeBucket:
		return formatBucketOrProof("Bucket", f.data)
	case decoder.TypeProof:
		return formatBucketOrProof("Proof", f.data)
	case decoder.TypeDecimal:
		return formatDecimal(f.data)
	case decoder.TypePreciseDecimal:
		return formatPreciseDecimal(f.data)
	case decoder.TypeExpression, decoder.TypeBlob:
		return formatBlobOrExpression(f.data)
	case decoder.TypeNFLocalID:
		return formatNonFungibleLocalID(f.keyTypeID, f.data)
	case decoder.TypeArray:
		return formatComposite(f, '[', ']')
	case decoder.TypeTuple:
		return formatComposite(f, '(', ')')
	case decoder.TypeMap:
		return formatComposite(f, '{', '}')
	default:
		return "Value(<unknown type>)"
	}
}

// formatComposite renders a tuple/array/map frame. If no child ever opened
// its own frame (byte-element arrays, whose elements the decoder delivers
// as raw Data with Start/End suppressed), the accumulated bytes are shown
// as Bytes(hex) instead of an empty bracket pair.
func formatComposite(f frame, open, close byte) string {
	if len(f.elements) == 0 && len(f.data) > 0 {
		return formatHexBytes(f.data)
	}
	var b strings.Builder
	b.WriteByte(open)
	for i, el := range f.elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(el)
	}
	b.WriteByte(close)
	return b.String()
}
