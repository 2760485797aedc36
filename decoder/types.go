// Package decoder implements the streaming, bounded-memory payload decoder:
// a stack machine that turns a chunked byte stream into typed decode events
// without ever buffering the whole payload, ported from the reference
// sbor_decoder state machine.
package decoder

// Type tags. Primitives and composites match the reference wire format
// exactly; the custom-type tag bytes (0x80+) are this repo's own
// assignment for the unified Address/Bucket/Proof/Decimal model spec.md
// describes, which does not match the reference's older three-address
// scheme (see DESIGN.md).
const (
	TypeNone   byte = 0x00
	TypeBool   byte = 0x01
	TypeI8     byte = 0x02
	TypeI16    byte = 0x03
	TypeI32    byte = 0x04
	TypeI64    byte = 0x05
	TypeI128   byte = 0x06
	TypeU8     byte = 0x07
	TypeU16    byte = 0x08
	TypeU32    byte = 0x09
	TypeU64    byte = 0x0a
	TypeU128   byte = 0x0b
	TypeString byte = 0x0c

	TypeArray byte = 0x20
	TypeTuple byte = 0x21
	TypeEnum  byte = 0x22
	TypeMap   byte = 0x23

	TypeAddress        byte = 0x80
	TypeBucket         byte = 0x81
	TypeProof          byte = 0x82
	TypeExpression     byte = 0x83
	TypeBlob           byte = 0x84
	TypeDecimal        byte = 0x85
	TypePreciseDecimal byte = 0x86
	TypeNFLocalID      byte = 0x87
)

// Fixed payload lengths for fixed-width custom/primitive types, in bytes.
const (
	lenBool           = 1
	lenI8             = 1
	lenI16            = 2
	lenI32            = 4
	lenI64            = 8
	lenI128           = 16
	lenU8             = 1
	lenU16            = 2
	lenU32            = 4
	lenU64            = 8
	lenU128           = 16
	lenBucket         = 4
	lenProof          = 4
	lenExpression     = 1
	lenBlob           = 32
	lenDecimal        = 32
	lenPreciseDecimal = 64

	// AddressStaticLen and AddressNamedLen are the two fixed address-body
	// lengths selected by the address discriminator byte.
	AddressStaticLen = 30
	AddressNamedLen  = 18
)

// Non-fungible local id discriminators.
const (
	NFLString  byte = 0
	NFLInteger byte = 1
	NFLBytes   byte = 2
	NFLRUID    byte = 3
)

const (
	// NFLIntegerLen is the fixed payload length for an integer-discriminated
	// non-fungible local id.
	NFLIntegerLen = 8
	// NFLRUIDLen is the fixed payload length for a RUID-discriminated
	// non-fungible local id.
	NFLRUIDLen = 32
)

// Address discriminators: a "static" address carries the full 30-byte
// entity body; a "named" address is a shorter 18-byte placeholder used
// before global address allocation resolves.
const (
	AddressStatic byte = 0
	AddressNamed  byte = 1
)

// StackDepth is the maximum number of nested frames the decoder will
// track; exceeding it yields StackOverflow. Kept at the reference value
// even though this implementation targets a desktop simulator (see
// DESIGN.md): the cap is spec-observable, not merely a memory optimization.
const StackDepth = 25

// TypeDataBufferSize bounds the name/parameter-datum scratch buffers used
// by downstream consumers (the instruction extractor), mirroring the
// reference TYPE_DATA_BUFFER_SIZE.
const TypeDataBufferSize = 256

// LeadingByte is the fixed payload prefix expected when prefix checking is
// enabled for a session.
const LeadingByte = 0x4d

// ElementKind distinguishes which role an ElementType event describes.
type ElementKind int

const (
	ElementKindElement ElementKind = iota
	ElementKindKey
	ElementKindValue
)

// phase is a position in a type's decode phase sequence.
type phase int

const (
	phaseReadingTypeID phase = iota
	phaseReadingElementTypeID
	phaseReadingKeyTypeID
	phaseReadingValueTypeID
	phaseReadingLen
	phaseReadingData
	phaseReadingDiscriminator
	phaseReadingNFLDiscriminator
	phaseReadingAddressDiscriminator
)

// phaseSequences maps a type tag to its ordered phase sequence, matching
// spec.md §4.1 and the reference type_info.rs's next_phases tables (with
// the invented custom-type tags substituted for the reference's stale
// three-address scheme).
var phaseSequences = map[byte][]phase{
	// TypeNone is the sentinel a frame resets to once its value is fully
	// read (see Decoder.advancePhase); its single TypeID phase means
	// isReadDataPhase() reports false for it, which is what lets
	// checkEndOfDataRead's loop terminate cleanly at the root frame
	// instead of indexing an undefined phase sequence.
	TypeNone: {phaseReadingTypeID},

	TypeBool: {phaseReadingTypeID, phaseReadingData},
	TypeI8:   {phaseReadingTypeID, phaseReadingData},
	TypeI16:  {phaseReadingTypeID, phaseReadingData},
	TypeI32:  {phaseReadingTypeID, phaseReadingData},
	TypeI64:  {phaseReadingTypeID, phaseReadingData},
	TypeI128: {phaseReadingTypeID, phaseReadingData},
	TypeU8:   {phaseReadingTypeID, phaseReadingData},
	TypeU16:  {phaseReadingTypeID, phaseReadingData},
	TypeU32:  {phaseReadingTypeID, phaseReadingData},
	TypeU64:  {phaseReadingTypeID, phaseReadingData},
	TypeU128: {phaseReadingTypeID, phaseReadingData},

	TypeString: {phaseReadingTypeID, phaseReadingLen, phaseReadingData},
	TypeTuple:  {phaseReadingTypeID, phaseReadingLen, phaseReadingData},

	TypeEnum: {phaseReadingTypeID, phaseReadingDiscriminator, phaseReadingLen, phaseReadingData},

	TypeArray: {phaseReadingTypeID, phaseReadingElementTypeID, phaseReadingLen, phaseReadingData},

	TypeMap: {phaseReadingTypeID, phaseReadingKeyTypeID, phaseReadingValueTypeID, phaseReadingLen, phaseReadingData},

	TypeAddress: {phaseReadingTypeID, phaseReadingAddressDiscriminator, phaseReadingData},

	TypeBucket:         {phaseReadingTypeID, phaseReadingData},
	TypeProof:          {phaseReadingTypeID, phaseReadingData},
	TypeExpression:     {phaseReadingTypeID, phaseReadingData},
	TypeBlob:           {phaseReadingTypeID, phaseReadingData},
	TypeDecimal:        {phaseReadingTypeID, phaseReadingData},
	TypePreciseDecimal: {phaseReadingTypeID, phaseReadingData},

	TypeNFLocalID: {phaseReadingTypeID, phaseReadingNFLDiscriminator, phaseReadingLen, phaseReadingData},
}

// fixedLen reports the fixed payload length of type tag t, if it has one
// (fixed-width primitives and fixed-size custom types); variable-length
// types (string, tuple, enum, array, map, address, NFL-id) report false.
func fixedLen(t byte) (int, bool) {
	switch t {
	case TypeBool:
		return lenBool, true
	case TypeI8:
		return lenI8, true
	case TypeI16:
		return lenI16, true
	case TypeI32:
		return lenI32, true
	case TypeI64:
		return lenI64, true
	case TypeI128:
		return lenI128, true
	case TypeU8:
		return lenU8, true
	case TypeU16:
		return lenU16, true
	case TypeU32:
		return lenU32, true
	case TypeU64:
		return lenU64, true
	case TypeU128:
		return lenU128, true
	case TypeBucket:
		return lenBucket, true
	case TypeProof:
		return lenProof, true
	case TypeExpression:
		return lenExpression, true
	case TypeBlob:
		return lenBlob, true
	case TypeDecimal:
		return lenDecimal, true
	case TypePreciseDecimal:
		return lenPreciseDecimal, true
	default:
		return 0, false
	}
}

// isPrimitiveData reports whether t's ReadingData phase is a plain
// byte-at-a-time payload (as opposed to tuple/enum/array/map, whose
// ReadingData phase instead dispatches to child frames).
func isPrimitiveData(t byte) bool {
	switch t {
	case TypeTuple, TypeEnum, TypeArray, TypeMap:
		return false
	default:
		return true
	}
}
