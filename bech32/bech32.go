// Package bech32 implements the Bech32m encoding (BIP-173 data layout,
// BIP-350 "m" checksum constant) used for Radix network addresses, ported
// from the reference encoder's Base32Expander/polymod routines.
package bech32


const (
	// MaxLen is the maximum total encoded length (BIP-173).
	MaxLen = 90
	// HRPMaxLen is the maximum human-readable-part length (BIP-173).
	HRPMaxLen = 83

	bech32mConstant = 0x2bc830a3
)

var charset = []byte("qpzry9x8gf2tvdw0s3jn54khce6mua7l")

var gen = [5]uint32{
	0x3b6a57b2,
	0x26508e6d,
	0x1ea119fa,
	0x3d4233dd,
	0x2a1462b3,
}

// Error is the closed set of encode failures.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidHrpLen         Error = "bech32: invalid hrp length"
	ErrUpperCaseNotSupported Error = "bech32: uppercase hrp not supported"
	ErrInvalidHrpChar        Error = "bech32: invalid hrp character"
	ErrInvalidDataByte       Error = "bech32: data byte does not fit in 5 bits"
	ErrEncodedTooLong        Error = "bech32: encoded output exceeds max length"
	ErrInputTooLong          Error = "bech32: input too long to expand"
)

type encoder struct {
	chk     uint32
	encoded [MaxLen]byte
	n       int
}

func (e *encoder) polymodStep(b byte) {
	top := byte(e.chk >> 25)
	e.chk = (e.chk&0x01ffffff)<<5 ^ uint32(b)

	for i, g := range gen {
		if (top>>uint(i))&1 == 1 {
			e.chk ^= g
		}
	}
}

func (e *encoder) append(b byte) error {
	if e.n == MaxLen {
		return ErrEncodedTooLong
	}
	e.encoded[e.n] = b
	e.n++
	return nil
}

func checkHRP(hrp []byte) error {
	if len(hrp) == 0 || len(hrp) > HRPMaxLen {
		return ErrInvalidHrpLen
	}
	for _, b := range hrp {
		if b < 33 || b > 126 {
			return ErrInvalidHrpChar
		}
		if b >= 'A' && b <= 'Z' {
			return ErrUpperCaseNotSupported
		}
	}
	return nil
}

// expandToBase32 repacks an 8-bit byte slice into 5-bit groups, matching
// the reference Base32Expander bit-shuffling exactly.
func expandToBase32(data []byte) ([]byte, error) {
	maxLen := (len(data)*8 + 4) / 5
	if maxLen > MaxLen {
		return nil, ErrInputTooLong
	}

	out := make([]byte, 0, maxLen)
	var remainingBits uint32
	var workBuffer byte

	for _, b := range data {
		if remainingBits >= 5 {
			out = append(out, (workBuffer&0b11111000)>>3)
			workBuffer <<= 5
			remainingBits -= 5
		}

		fromBuffer := workBuffer >> 3
		fromByte := b >> (3 + remainingBits)

		out = append(out, fromBuffer|fromByte)
		workBuffer = b << (5 - remainingBits)
		remainingBits += 3
	}

	if remainingBits >= 5 {
		out = append(out, (workBuffer&0b11111000)>>3)
		workBuffer <<= 5
		remainingBits -= 5
	}

	if remainingBits != 0 {
		out = append(out, workBuffer>>3)
	}

	return out, nil
}

// Encode expands data into 5-bit groups and encodes it as Bech32m with the
// given human-readable prefix.
func Encode(hrp string, data []byte) (string, error) {
	expanded, err := expandToBase32(data)
	if err != nil {
		return "", err
	}
	return EncodeFromBase32(hrp, expanded)
}

// EncodeFromBase32 encodes already-5-bit-packed data as Bech32m.
func EncodeFromBase32(hrp string, data []byte) (string, error) {
	hrpBytes := []byte(hrp)
	if err := checkHRP(hrpBytes); err != nil {
		return "", err
	}

	e := &encoder{chk: 1}

	for _, ch := range hrpBytes {
		e.polymodStep(ch >> 5)
	}
	e.polymodStep(0)
	for _, ch := range hrpBytes {
		e.polymodStep(ch & 0x1F)
		if err := e.append(ch); err != nil {
			return "", err
		}
	}

	if err := e.append('1'); err != nil {
		return "", err
	}

	for _, b := range data {
		if b>>5 != 0 {
			return "", ErrInvalidDataByte
		}
		e.polymodStep(b)
		if err := e.append(charset[b]); err != nil {
			return "", err
		}
	}

	for i := 0; i < 6; i++ {
		e.polymodStep(0)
	}
	e.chk ^= bech32mConstant

	for i := 0; i < 6; i++ {
		b := byte(e.chk >> uint((5-i)*5))
		if err := e.append(charset[b&0x1f]); err != nil {
			return "", err
		}
	}

	return string(e.encoded[:e.n]), nil
}
