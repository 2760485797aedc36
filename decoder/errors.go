package decoder

import "fmt"

// ErrorCode is the closed set of decode failures. Every decode error carries
// the byte offset at which it was detected.
type ErrorCode string

const (
	ErrUnknownType          ErrorCode = "UnknownType"
	ErrUnknownSubType       ErrorCode = "UnknownSubType"
	ErrUnknownDiscriminator ErrorCode = "UnknownDiscriminator"
	ErrInvalidLen           ErrorCode = "InvalidLen"
	ErrInvalidState         ErrorCode = "InvalidState"
	ErrStackOverflow        ErrorCode = "StackOverflow"
	ErrStackUnderflow       ErrorCode = "StackUnderflow"
)

// DecodeError is the error type returned by Decoder.Decode/DecodeByte.
type DecodeError struct {
	Code   ErrorCode
	Offset int
	Byte   byte
	hasByte bool
}

func (e *DecodeError) Error() string {
	if e.hasByte {
		return fmt.Sprintf("decoder: %s at offset %d (byte 0x%02x)", e.Code, e.Offset, e.Byte)
	}
	return fmt.Sprintf("decoder: %s at offset %d", e.Code, e.Offset)
}

func errUnknownType(offset int, b byte) error {
	return &DecodeError{Code: ErrUnknownType, Offset: offset, Byte: b, hasByte: true}
}

func errUnknownSubType(offset int, b byte) error {
	return &DecodeError{Code: ErrUnknownSubType, Offset: offset, Byte: b, hasByte: true}
}

func errUnknownDiscriminator(offset int, b byte) error {
	return &DecodeError{Code: ErrUnknownDiscriminator, Offset: offset, Byte: b, hasByte: true}
}

func errInvalidLen(offset int, b byte) error {
	return &DecodeError{Code: ErrInvalidLen, Offset: offset, Byte: b, hasByte: true}
}

func errInvalidState(offset int) error {
	return &DecodeError{Code: ErrInvalidState, Offset: offset}
}

func errStackOverflow(offset int) error {
	return &DecodeError{Code: ErrStackOverflow, Offset: offset}
}

func errStackUnderflow(offset int) error {
	return &DecodeError{Code: ErrStackUnderflow, Offset: offset}
}
