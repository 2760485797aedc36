package decoder

const (
	flagSkipStartEnd byte = 0x80
	flagFlipFlop     byte = 0x40
	flagPhasePtrMask byte = 0x3F
)

// state is a single stack frame: the type being decoded at this nesting
// level, its remaining item/byte counter, its key/element subtype tags,
// and the skip-start-end / flip-flop bits packed into flags.
type state struct {
	itemsToRead   uint32
	activeTypeID  byte
	keyTypeID     byte
	elementTypeID byte
	flags         byte
}

func newState() state { return state{activeTypeID: TypeNone} }

func (s *state) skipStartEnd() bool { return s.flags&flagSkipStartEnd != 0 }

func (s *state) setSkipStartEnd(v bool) {
	s.flags &^= flagSkipStartEnd
	if v {
		s.flags |= flagSkipStartEnd
	}
}

func (s *state) flipFlop() bool { return s.flags&flagFlipFlop != 0 }

func (s *state) flip() { s.flags ^= flagFlipFlop }

func (s *state) phasePtr() byte { return s.flags & flagPhasePtrMask }

func (s *state) setPhasePtr(p byte) {
	s.flags &^= flagPhasePtrMask
	s.flags |= p & flagPhasePtrMask
}

func (s *state) incPhasePtr() {
	if s.flags&flagPhasePtrMask < flagPhasePtrMask {
		s.flags++
	}
}

func (s *state) phases() []phase { return phaseSequences[s.activeTypeID] }

func (s *state) phase() phase { return s.phases()[s.phasePtr()] }

func (s *state) advancePhase() { s.incPhasePtr() }

func (s *state) resetPhase() { s.setPhasePtr(0) }

func (s *state) isLastPhase() bool {
	return int(s.phasePtr()) == len(s.phases())-1
}

func (s *state) isReadDataPhase() bool { return s.phase() == phaseReadingData }

func (s *state) setTypeID(b byte, offset int) error {
	fl, ok := fixedLen(b)
	if _, known := phaseSequences[b]; !known {
		return errUnknownType(offset, b)
	}
	s.activeTypeID = b
	if ok {
		s.itemsToRead = uint32(fl)
	} else {
		s.itemsToRead = 0
	}
	return nil
}

func (s *state) allRead() bool { return s.itemsToRead == 0 }

func (s *state) decrementItemsToRead(offset int) error {
	if s.itemsToRead == 0 {
		return errInvalidState(offset)
	}
	s.itemsToRead--
	return nil
}

// Decoder is the streaming, bounded-memory SBOR-like payload decoder: a
// fixed-depth stack of per-nesting-level state, fed one byte at a time,
// emitting events to a Handler as it goes. Ported from the reference
// SborDecoder state machine.
type Decoder struct {
	stack             [StackDepth]state
	byteCount         int
	lenAcc            int
	lenShift          int
	head              int
	expectLeadingByte bool
}

// New creates a Decoder. When expectLeadingByte is set and the very first
// input byte equals LeadingByte, that byte is consumed without being
// decoded and without an InputByte event. A different first byte is not
// rejected: it is decoded as the payload's first type tag.
func New(expectLeadingByte bool) *Decoder {
	d := &Decoder{expectLeadingByte: expectLeadingByte}
	d.stack[0] = newState()
	return d
}

// Reset restores the decoder to its freshly-constructed state, ready for a
// new payload.
func (d *Decoder) Reset() {
	d.byteCount = 0
	d.lenAcc = 0
	d.lenShift = 0
	d.head = 0
	d.stack[0] = newState()
}

func (d *Decoder) top() *state { return &d.stack[d.head] }

func (d *Decoder) push() error {
	if d.head == StackDepth-1 {
		return errStackOverflow(d.byteCount)
	}
	d.head++
	d.stack[d.head] = newState()
	return nil
}

func (d *Decoder) pop() error {
	if d.head == 0 {
		return errStackUnderflow(d.byteCount)
	}
	d.head--
	return nil
}

// Decode feeds a chunk of input bytes through the decoder, reporting
// whether a complete top-level value was consumed or more data is needed.
func (d *Decoder) Decode(handler Handler, input []byte) (Outcome, error) {
	for _, b := range input {
		if err := d.DecodeByte(handler, b, true); err != nil {
			return Outcome{}, err
		}
	}
	return d.outcome(), nil
}

func (d *Decoder) outcome() Outcome {
	if d.head == 0 && d.top().phase() == phaseReadingTypeID {
		return Outcome{Done: true, BytesConsumed: d.byteCount}
	}
	return Outcome{Done: false, BytesConsumed: d.byteCount}
}

// DecodeByte feeds a single byte through the decoder. countInput
// distinguishes real input bytes (which advance byte_count and emit
// InputByte) from bytes synthesized when a tuple/enum/map/array element
// re-dispatches a byte as a child frame's type id.
func (d *Decoder) DecodeByte(handler Handler, b byte, countInput bool) error {
	if countInput {
		d.byteCount++
		if d.expectLeadingByte && d.byteCount == 1 && b == LeadingByte {
			return nil
		}
	}

	var err error
	switch d.top().phase() {
	case phaseReadingTypeID:
		err = d.readTypeID(handler, b)
	case phaseReadingLen:
		err = d.readLen(handler, b)
	case phaseReadingElementTypeID:
		err = d.readSubTypeID(handler, ElementKindElement, b)
	case phaseReadingKeyTypeID:
		err = d.readSubTypeID(handler, ElementKindKey, b)
	case phaseReadingValueTypeID:
		err = d.readSubTypeID(handler, ElementKindValue, b)
	case phaseReadingData:
		err = d.readData(handler, b)
	case phaseReadingDiscriminator:
		err = d.readDiscriminator(handler, b)
	case phaseReadingNFLDiscriminator:
		err = d.readNFLDiscriminator(handler, b)
	case phaseReadingAddressDiscriminator:
		err = d.readAddressDiscriminator(handler, b)
	}

	if countInput {
		handler.Handle(Event{Kind: EventInputByte, Byte: b})
	}

	return err
}

func (d *Decoder) readDiscriminator(handler Handler, b byte) error {
	handler.Handle(Event{Kind: EventDiscriminator, Byte: b})
	return d.advancePhase(handler)
}

func (d *Decoder) readNFLDiscriminator(handler Handler, b byte) error {
	handler.Handle(Event{Kind: EventDiscriminator, Byte: b})

	switch b {
	case NFLString, NFLBytes:
		// length follows as a normal varint
	case NFLInteger:
		if err := d.readLen(handler, NFLIntegerLen); err != nil {
			return err
		}
	case NFLRUID:
		if err := d.readLen(handler, NFLRUIDLen); err != nil {
			return err
		}
	default:
		return errUnknownDiscriminator(d.byteCount, b)
	}

	return d.advancePhase(handler)
}

func (d *Decoder) readAddressDiscriminator(handler Handler, b byte) error {
	handler.Handle(Event{Kind: EventDiscriminator, Byte: b})

	switch b {
	case AddressStatic:
		return d.readLen(handler, AddressStaticLen)
	case AddressNamed:
		return d.readLen(handler, AddressNamedLen)
	default:
		return errUnknownDiscriminator(d.byteCount, b)
	}
}

func (d *Decoder) advancePhase(handler Handler) error {
	top := d.top()
	if top.isLastPhase() {
		level := d.head
		id := top.activeTypeID
		skip := top.skipStartEnd()

		if !skip {
			handler.Handle(Event{Kind: EventEnd, TypeID: id, NestingLevel: level})
		}

		top.activeTypeID = TypeNone
		top.resetPhase()

		if d.head > 0 {
			return d.pop()
		}
		return nil
	}

	top.advancePhase()
	return nil
}

func (d *Decoder) readTypeID(handler Handler, b byte) error {
	if err := d.top().setTypeID(b, d.byteCount); err != nil {
		return err
	}

	size := d.fixedSize()

	if !d.top().skipStartEnd() {
		handler.Handle(Event{Kind: EventStart, TypeID: b, NestingLevel: d.head, FixedSize: size})
	}

	return d.advancePhase(handler)
}

func (d *Decoder) readLen(handler Handler, b byte) error {
	done, err := d.readEncodedLen(b)
	if err != nil {
		return err
	}
	if !done {
		return nil
	}

	handler.Handle(Event{Kind: EventLen, Len: d.top().itemsToRead})
	if err := d.advancePhase(handler); err != nil {
		return err
	}

	return d.checkEndOfDataRead(handler)
}

func (d *Decoder) readEncodedLen(b byte) (bool, error) {
	d.lenAcc |= int(b&0x7F) << d.lenShift

	if b < 0x80 {
		d.top().itemsToRead = uint32(d.lenAcc)
		d.lenAcc = 0
		d.lenShift = 0
		return true, nil
	}

	d.lenShift += 7
	if d.lenShift >= 28 {
		return false, errInvalidLen(d.byteCount, b)
	}

	return false, nil
}

func (d *Decoder) readSubTypeID(handler Handler, kind ElementKind, b byte) error {
	if _, known := phaseSequences[b]; !known {
		return errUnknownSubType(d.byteCount, b)
	}

	top := d.top()
	switch kind {
	case ElementKindKey:
		top.keyTypeID = b
	case ElementKindValue, ElementKindElement:
		top.elementTypeID = b
	}
	handler.Handle(Event{Kind: EventElementType, ElemKind: kind, TypeID: b})

	return d.advancePhase(handler)
}

func (d *Decoder) readData(handler Handler, b byte) error {
	top := d.top()

	switch {
	case isPrimitiveData(top.activeTypeID):
		handler.Handle(Event{Kind: EventData, Byte: b})
		if err := top.decrementItemsToRead(d.byteCount); err != nil {
			return err
		}

	case top.activeTypeID == TypeTuple || top.activeTypeID == TypeEnum:
		if err := top.decrementItemsToRead(d.byteCount); err != nil {
			return err
		}
		if err := d.push(); err != nil {
			return err
		}
		if err := d.DecodeByte(handler, b, false); err != nil {
			return err
		}

	case top.activeTypeID == TypeMap:
		var typeID byte
		if !top.flipFlop() {
			typeID = top.keyTypeID
		} else {
			if err := top.decrementItemsToRead(d.byteCount); err != nil {
				return err
			}
			typeID = top.elementTypeID
		}
		top.flip()

		if err := d.push(); err != nil {
			return err
		}
		if err := d.DecodeByte(handler, typeID, false); err != nil {
			return err
		}
		if err := d.DecodeByte(handler, b, false); err != nil {
			return err
		}

	case top.activeTypeID == TypeArray:
		if err := top.decrementItemsToRead(d.byteCount); err != nil {
			return err
		}
		elemTypeID := top.elementTypeID

		if err := d.push(); err != nil {
			return err
		}
		if elemTypeID == TypeU8 || elemTypeID == TypeI8 {
			d.top().setSkipStartEnd(true)
		}
		if err := d.DecodeByte(handler, elemTypeID, false); err != nil {
			return err
		}
		if err := d.DecodeByte(handler, b, false); err != nil {
			return err
		}

	default:
		return errInvalidState(d.byteCount)
	}

	return d.checkEndOfDataRead(handler)
}

func (d *Decoder) checkEndOfDataRead(handler Handler) error {
	for d.top().allRead() && d.top().isReadDataPhase() {
		if err := d.advancePhase(handler); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) fixedSize() int {
	n, _ := fixedLen(d.top().activeTypeID)
	return n
}
