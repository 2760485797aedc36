// Package decimal defines the two fixed-point value types carried inside
// transaction manifests: Decimal (256-bit, scale 10^18) and PreciseDecimal
// (512-bit, scale 10^64), both backed by bigint.BigInt.
package decimal

import (
	"math/bits"

	"github.com/rdx-hw/ledger-core/bigint"
)

const (
	// DecimalBits is the bit width of Decimal.
	DecimalBits = 256
	// DecimalScale is the number of fractional digits Decimal carries.
	DecimalScale = 18
	// DecimalLen is the wire length of a Decimal value in bytes.
	DecimalLen = DecimalBits / 8

	// PreciseDecimalBits is the bit width of PreciseDecimal.
	PreciseDecimalBits = 512
	// PreciseDecimalScale is the number of fractional digits PreciseDecimal carries.
	PreciseDecimalScale = 64
	// PreciseDecimalLen is the wire length of a PreciseDecimal value in bytes.
	PreciseDecimalLen = PreciseDecimalBits / 8
)

// Decimal is a 256-bit two's-complement fixed-point value scaled by 10^18.
type Decimal struct {
	v bigint.BigInt
}

// Zero is the additive identity.
var Zero = Decimal{v: bigint.New(DecimalBits)}

// NewDecimal wraps a raw little-endian-limb BigInt as a Decimal.
func NewDecimal(v bigint.BigInt) Decimal {
	return Decimal{v: v}
}

// Whole builds a Decimal representing the integer value scaled by 10^18,
// used by the summary detector to record a non-fungible count as a
// whole-number "amount".
func Whole(value uint64) Decimal {
	limbs := make([]uint32, DecimalBits/32)
	// value * 10^18 is a 128-bit product that fills the low four limbs; it
	// always fits for any uint64 value.
	const scale = 1_000_000_000_000_000_000
	hi, lo := bits.Mul64(value, scale)
	limbs[0] = uint32(lo)
	limbs[1] = uint32(lo >> 32)
	limbs[2] = uint32(hi)
	limbs[3] = uint32(hi >> 32)
	return Decimal{v: bigint.FromLimbs(limbs)}
}

// FromBytes decodes a little-endian 32-byte buffer into a Decimal.
func FromBytes(raw []byte) (Decimal, error) {
	v, err := bigint.FromBytes(DecimalBits, raw)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{v: v}, nil
}

// IsNegative reports the sign of the value.
func (d Decimal) IsNegative() bool {
	return d.v.IsNegative()
}

// IsSame reports exact equality.
func (d Decimal) IsSame(other Decimal) bool {
	return d.v.IsSame(other.v)
}

// Accumulate adds other into d in place.
func (d *Decimal) Accumulate(other Decimal) {
	d.v.Accumulate(other.v)
}

// String renders the value with a fixed decimal point at scale 18.
func (d Decimal) String() string {
	return bigint.Format(d.v, DecimalScale)
}

// PreciseDecimal is the 512-bit analogue of Decimal, scaled by 10^64.
type PreciseDecimal struct {
	v bigint.BigInt
}

// PreciseZero is the additive identity.
var PreciseZero = PreciseDecimal{v: bigint.New(PreciseDecimalBits)}

// PreciseFromBytes decodes a little-endian 64-byte buffer into a PreciseDecimal.
func PreciseFromBytes(raw []byte) (PreciseDecimal, error) {
	v, err := bigint.FromBytes(PreciseDecimalBits, raw)
	if err != nil {
		return PreciseDecimal{}, err
	}
	return PreciseDecimal{v: v}, nil
}

// IsNegative reports the sign of the value.
func (d PreciseDecimal) IsNegative() bool {
	return d.v.IsNegative()
}

// String renders the value with a fixed decimal point at scale 64.
func (d PreciseDecimal) String() string {
	return bigint.Format(d.v, PreciseDecimalScale)
}
