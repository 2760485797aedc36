// Package bigint implements the fixed-width signed big integer used by the
// Decimal/PreciseDecimal value types: a limb array with two's-complement
// semantics and a double-dabble conversion to binary-coded decimal, ported
// from the reference double-dabble routine rather than reimplemented from
// scratch.
package bigint

import "fmt"

// BigInt is a fixed-width two's-complement integer stored as a
// little-endian array of 32-bit limbs (limbs[0] is least significant).
// Width is fixed at construction time and never changes over the value's
// lifetime.
type BigInt struct {
	limbs []uint32
}

// ErrTooShortInput and ErrTooLongInput are returned by FromBytes when the
// input does not exactly match the configured width.
var (
	ErrTooShortInput = fmt.Errorf("bigint: input shorter than configured width")
	ErrTooLongInput  = fmt.Errorf("bigint: input longer than configured width")
)

// New returns a zero-valued BigInt of the given bit width. bits must be a
// multiple of 32.
func New(bits int) BigInt {
	return BigInt{limbs: make([]uint32, bits/32)}
}

// FromLimbs constructs a BigInt directly from a little-endian limb array.
// The returned value takes ownership of limbs; callers must not reuse the
// slice afterward.
func FromLimbs(limbs []uint32) BigInt {
	return BigInt{limbs: limbs}
}

// FromBytes decodes a little-endian byte buffer into a BigInt of the given
// bit width. The input must be exactly bits/8 bytes.
func FromBytes(bits int, value []byte) (BigInt, error) {
	numBytes := bits / 8
	if len(value) < numBytes {
		return BigInt{}, ErrTooShortInput
	}
	if len(value) > numBytes {
		return BigInt{}, ErrTooLongInput
	}

	limbs := make([]uint32, bits/32)
	for i := range limbs {
		limbs[i] = uint32(value[i*4]) |
			uint32(value[i*4+1])<<8 |
			uint32(value[i*4+2])<<16 |
			uint32(value[i*4+3])<<24
	}
	return BigInt{limbs: limbs}, nil
}

// Bits reports the configured bit width.
func (b BigInt) Bits() int {
	return len(b.limbs) * 32
}

// IsNegative reports whether the most significant bit of the top limb is
// set.
func (b BigInt) IsNegative() bool {
	return b.limbs[len(b.limbs)-1]&0x80000000 != 0
}

// IsPositive is the complement of IsNegative (zero counts as positive).
func (b BigInt) IsPositive() bool {
	return !b.IsNegative()
}

// IsSame reports limb-wise equality.
func (b BigInt) IsSame(other BigInt) bool {
	if len(b.limbs) != len(other.limbs) {
		return false
	}
	for i := range b.limbs {
		if b.limbs[i] != other.limbs[i] {
			return false
		}
	}
	return true
}

// Accumulate adds other into b in place, ignoring overflow (the domain
// values this backs are bounded well below the configured width in
// practice, matching the reference implementation's behavior).
func (b *BigInt) Accumulate(other BigInt) {
	var carry uint64
	for i := range b.limbs {
		sum := uint64(b.limbs[i]) + uint64(other.limbs[i]) + carry
		b.limbs[i] = uint32(sum)
		carry = sum >> 32
	}
}

func twosComplement(limbs []uint32) {
	carry := true
	for i := range limbs {
		limbs[i] = ^limbs[i]
		if carry {
			if limbs[i] == 0xFFFFFFFF {
				limbs[i] = 0
				carry = true
			} else {
				limbs[i]++
				carry = false
			}
		}
	}
}

// AsBCD converts the value to its binary-coded-decimal representation via
// the double-dabble algorithm, pushing limbs from most to least significant
// and each limb's bits from MSB to LSB.
func (b BigInt) AsBCD() *BCD {
	bcd := newBCD(b.Bits(), b.IsNegative())

	limbs := b.limbs
	if b.IsNegative() {
		limbs = append([]uint32(nil), b.limbs...)
		twosComplement(limbs)
	}

	for i := len(limbs) - 1; i >= 0; i-- {
		limb := limbs[i]
		mask := uint32(0x80000000)
		for n := 0; n < 32; n++ {
			bcd.PushBit(limb&mask != 0)
			mask >>= 1
		}
	}

	return bcd
}
