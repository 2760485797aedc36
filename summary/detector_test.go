package summary

import (
	"math/big"
	"testing"

	"github.com/rdx-hw/ledger-core/address"
	"github.com/rdx-hw/ledger-core/decimal"
	"github.com/rdx-hw/ledger-core/decoder"
	"github.com/rdx-hw/ledger-core/instruction"
)

// decimalBytes encodes whole*10^18 as a 32-byte little-endian two's
// complement Decimal wire value.
func decimalBytes(whole uint64) []byte {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	v := new(big.Int).Mul(new(big.Int).SetUint64(whole), scale)
	be := v.Bytes()
	full := make([]byte, 32)
	copy(full[32-len(be):], be)
	for i, j := 0, 31; i < j; i, j = i+1, j-1 {
		full[i], full[j] = full[j], full[i]
	}
	return full
}

func fixedAddress(fill byte) []byte {
	b := make([]byte, decoder.AddressStaticLen)
	for i := range b {
		b[i] = fill
	}
	return b
}

func stringField(s string) []byte {
	return append([]byte{decoder.TypeString, byte(len(s))}, []byte(s)...)
}

func addressField(body []byte) []byte {
	return append([]byte{decoder.TypeAddress, decoder.AddressStatic}, body...)
}

func decimalField(whole uint64) []byte {
	return append([]byte{decoder.TypeDecimal}, decimalBytes(whole)...)
}

type manifestBuilder struct {
	instructions [][]byte
}

func (m *manifestBuilder) addInstruction(discriminator byte, fields ...[]byte) {
	instr := []byte{discriminator, byte(len(fields))}
	for _, f := range fields {
		instr = append(instr, f...)
	}
	m.instructions = append(m.instructions, instr)
}

// build assembles the full payload: outer tuple(header, instructions-array-wrapper).
func (m *manifestBuilder) build() []byte {
	out := []byte{
		decoder.TypeTuple, 2,
		decoder.TypeTuple, 0,
		decoder.TypeTuple, 1,
		decoder.TypeArray, decoder.TypeEnum, byte(len(m.instructions)),
	}
	for _, instr := range m.instructions {
		out = append(out, instr...)
	}
	return out
}

// tupleField wraps sub-fields as a tuple parameter value (field count +
// each sub-field's own encoding).
func tupleField(subfields ...[]byte) []byte {
	out := []byte{decoder.TypeTuple, byte(len(subfields))}
	for _, f := range subfields {
		out = append(out, f...)
	}
	return out
}

func runDetector(t *testing.T, payload []byte) Detected {
	t.Helper()
	det := NewDetector()
	ex := instruction.NewExtractor()
	d := decoder.New(false)
	fanout := decoder.HandlerFunc(func(e decoder.Event) { ex.HandleWith(det, e) })
	outcome, err := d.Decode(fanout, payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !outcome.Done {
		t.Fatalf("expected Done, got NeedMoreData(%d)", outcome.BytesConsumed)
	}
	return det.Result()
}

// TestDetectorRecognizesSimpleTransfer replicates spec.md §4.5's worked
// example: lock_fee(10), withdraw(addr_R, 5), TakeFromWorktop(addr_R, 5),
// try_deposit_or_abort.
func TestDetectorRecognizesSimpleTransfer(t *testing.T) {
	addrA := fixedAddress(0xAA)
	addrB := fixedAddress(0xBB)
	addrR := fixedAddress(0xCC)

	m := &manifestBuilder{}
	m.addInstruction(byte(instruction.InstructionCallMethod),
		addressField(addrA), stringField("lock_fee"), tupleField(decimalField(10)))
	m.addInstruction(byte(instruction.InstructionCallMethod),
		addressField(addrA), stringField("withdraw"), tupleField(addressField(addrR), decimalField(5)))
	m.addInstruction(byte(instruction.InstructionTakeFromWorktop),
		addressField(addrR), decimalField(5))
	m.addInstruction(byte(instruction.InstructionCallMethod),
		addressField(addrB), stringField("try_deposit_or_abort"))

	got := runDetector(t, m.build())

	if got.Kind != KindTransfer {
		t.Fatalf("Kind = %v, want KindTransfer (got %+v)", got.Kind, got)
	}
	if got.Fee == nil || !got.Fee.IsSame(decimal.Whole(10)) {
		t.Errorf("Fee = %v, want 10", got.Fee)
	}
	if !got.Amount.IsSame(decimal.Whole(5)) {
		t.Errorf("Amount = %v, want 5", got.Amount.String())
	}
	var want address.Address
	want.CopyFromSlice(addrA)
	if !got.Src.IsSame(want) {
		t.Errorf("Src mismatch")
	}
	want.CopyFromSlice(addrB)
	if !got.Dst.IsSame(want) {
		t.Errorf("Dst mismatch")
	}
	want.CopyFromSlice(addrR)
	if !got.Resource.IsSame(want) {
		t.Errorf("Resource mismatch")
	}
}

// TestDetectorMonotonicity checks that appending an instruction after the
// recognized transfer sequence flips the classification to Other.
func TestDetectorMonotonicity(t *testing.T) {
	addrA := fixedAddress(0xAA)
	addrB := fixedAddress(0xBB)
	addrR := fixedAddress(0xCC)

	m := &manifestBuilder{}
	m.addInstruction(byte(instruction.InstructionCallMethod),
		addressField(addrA), stringField("withdraw"), tupleField(addressField(addrR), decimalField(5)))
	m.addInstruction(byte(instruction.InstructionTakeFromWorktop),
		addressField(addrR), decimalField(5))
	m.addInstruction(byte(instruction.InstructionCallMethod),
		addressField(addrB), stringField("try_deposit_or_abort"))
	m.addInstruction(byte(instruction.InstructionPopFromAuthZone))

	got := runDetector(t, m.build())
	if got.Kind != KindOther {
		t.Fatalf("Kind = %v, want KindOther after a trailing instruction", got.Kind)
	}
}

// TestDetectorOtherWithoutTransferGrammar checks a manifest with unrelated
// instructions yields Other with no fee.
func TestDetectorOtherWithoutTransferGrammar(t *testing.T) {
	m := &manifestBuilder{}
	m.addInstruction(byte(instruction.InstructionPopFromAuthZone))
	m.addInstruction(byte(instruction.InstructionClearAuthZone))

	got := runDetector(t, m.build())
	if got.Kind != KindOther {
		t.Fatalf("Kind = %v, want KindOther", got.Kind)
	}
	if got.Fee != nil {
		t.Errorf("Fee = %v, want nil", got.Fee)
	}
}

// TestDetectorUnknownInstructionYieldsError checks that an unrecognized
// discriminator byte forces KindError.
func TestDetectorUnknownInstructionYieldsError(t *testing.T) {
	m := &manifestBuilder{}
	m.addInstruction(0xFE)

	got := runDetector(t, m.build())
	if got.Kind != KindError {
		t.Fatalf("Kind = %v, want KindError", got.Kind)
	}
}
