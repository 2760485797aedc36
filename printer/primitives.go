package printer

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// formatBool mirrors BoolParameterPrinter::tty.
func formatBool(data []byte) string {
	if len(data) != 1 {
		return "<Invalid bool encoding>"
	}
	switch data[0] {
	case 0:
		return "false"
	case 1:
		return "true"
	default:
		return "(invalid bool)"
	}
}

// formatUint formats an n-byte little-endian unsigned integer with a type
// suffix, mirroring the printer_for_type! macro's unsigned instantiations.
func formatUint(data []byte, n int, suffix string) string {
	if len(data) != n {
		return "<Invalid encoding>"
	}
	if n <= 8 {
		buf := make([]byte, 8)
		copy(buf, data)
		return strconv.FormatUint(binary.LittleEndian.Uint64(buf), 10) + suffix
	}
	return formatUint128(data) + suffix
}

// formatInt formats an n-byte little-endian two's-complement signed
// integer with a type suffix.
func formatInt(data []byte, n int, suffix string) string {
	if len(data) != n {
		return "<Invalid encoding>"
	}
	if n <= 8 {
		buf := make([]byte, 8)
		copy(buf, data)
		u := binary.LittleEndian.Uint64(buf)
		// Sign-extend from n bytes to 64 bits.
		shift := uint(64 - n*8)
		v := int64(u<<shift) >> shift
		return strconv.FormatInt(v, 10) + suffix
	}
	return formatInt128(data) + suffix
}

func formatUint128(data []byte) string {
	be := reverse(data)
	v := new(big.Int).SetBytes(be)
	return v.String()
}

func formatInt128(data []byte) string {
	be := reverse(data)
	v := new(big.Int).SetBytes(be)
	if len(data) == 16 && data[15]&0x80 != 0 {
		// Two's complement: v - 2^128.
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		v.Sub(v, mod)
	}
	return v.String()
}

func reverse(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[len(data)-1-i] = b
	}
	return out
}

func formatString(data []byte) string {
	if !utf8.Valid(data) {
		return "<String decoding error>"
	}
	return string(data)
}

// formatHexBytes renders data as "Bytes(<hex>)", mirroring HexParameterPrinter.
func formatHexBytes(data []byte) string {
	var b strings.Builder
	b.WriteString("Bytes(")
	b.WriteString(hexString(data))
	b.WriteByte(')')
	return b.String()
}

func hexString(data []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(data)*2)
	for i, c := range data {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0x0F]
	}
	return string(out)
}

// formatBucketOrProof renders the ManifestBucket/ManifestProof u32 id,
// mirroring the reference's U32_PARAMETER_PRINTER reuse for those types,
// wrapped as "Bucket(n)"/"Proof(n)" per spec.md §4.4.
func formatBucketOrProof(label string, data []byte) string {
	if len(data) != 4 {
		return fmt.Sprintf("%s(<invalid encoding>)", label)
	}
	n := binary.LittleEndian.Uint32(data)
	return fmt.Sprintf("%s(%d)", label, n)
}
