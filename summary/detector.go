// Package summary implements the transfer/fee summary detector: it runs
// concurrently with the printer over the same instruction-extractor event
// stream (a fan-out collaborator broadcasts each event to both) and
// classifies the manifest as a simple transfer, recognizes a repeated
// lock_fee side-channel, and otherwise falls back to "other". Ported from
// the reference TxSummaryDetector.
package summary

import (
	"github.com/rdx-hw/ledger-core/address"
	"github.com/rdx-hw/ledger-core/decimal"
	"github.com/rdx-hw/ledger-core/decoder"
	"github.com/rdx-hw/ledger-core/instruction"
)

// Kind is the detected transaction shape.
type Kind int

const (
	KindOther Kind = iota
	KindTransfer
	KindError
)

// Detected is the detector's output: a classification plus whatever fee,
// address and amount fields it managed to extract along the way.
type Detected struct {
	Kind     Kind
	Fee      *decimal.Decimal
	Src      address.Address
	Dst      address.Address
	Resource address.Address
	Amount   decimal.Decimal
}

// feePhase tracks the independent lock_fee side-channel: CallMethod(addr,
// "lock_fee", (Decimal)) — recognized regardless of whether the overall
// manifest is a transfer.
type feePhase int

const (
	feeStart feePhase = iota
	feeAddress
	feeName
	feeValue
)

// phase tracks the three-instruction transfer grammar (spec.md §4.5):
// CallMethod(src, "withdraw"|"withdraw_non_fungibles", …);
// TakeFromWorktop|TakeNonFungiblesFromWorktop(resource, amount|ids);
// CallMethod(dst, "try_deposit_or_abort", …).
type phase int

const (
	phaseStart phase = iota
	phaseCallMethod
	phaseAddressWithdraw
	phaseExpectWithdraw
	phaseWithdrawDone
	phaseResource
	phaseNonFungibleResource
	phaseValueDeposit
	phaseValueDepositDone
	phaseValueDepositCount
	phaseValueDepositCountIDs
	phaseExpectDepositCall
	phaseExpectAddressDeposit
	phaseAddressDeposit
	phaseExpectDeposit
	phaseDoneTransfer
	phaseDecodingError
)

// Detector implements instruction.Handler.
//
// Adaptation note (see DESIGN.md): the reference's parameter_start/
// parameter_end match on a nesting_level value that, per
// instruction_extractor.rs's actual ParameterStart struct, can only be a
// structural depth — but tx_summary_detector.rs's own match arms use it as
// if it were a per-instruction parameter ordinal (0, 1, 2, …), which is
// inconsistent with the sibling file's definition (the two reference files
// disagree, most likely version skew within the retrieved corpus — see
// Open Question resolution #6 for a similar conflict). This port resolves
// it by tracking an explicit paramIndex, incremented on every top-level
// (NestingLevel == 0) ParameterStart, and using the decoder's actual
// NestingLevel for genuinely nested lookups (e.g. the Decimal nested one
// level inside a lock_fee/withdraw call's argument tuple). This also drops
// the reference's externally-set TxIntentType gate (set_intent_type),
// which spec.md's description of the detector never mentions — grammar
// tracking here always runs, which is simpler and matches the spec.
type Detector struct {
	feePhase   feePhase
	phase      phase
	paramIndex int
	leaf       []byte

	fee     decimal.Decimal
	haveFee bool

	amount decimal.Decimal

	src, dst, resource                      address.Address
	haveSrc, haveDst, haveResource          bool
	sawDecodingError, sawUnknownInstruction bool
}

// NewDetector creates a Detector ready to consume extractor events from the
// start of a payload.
func NewDetector() *Detector {
	return &Detector{}
}

// Reset restores the detector to its initial state for a new payload.
func (d *Detector) Reset() { *d = Detector{} }

// Handle implements instruction.Handler.
func (d *Detector) Handle(e instruction.ExtractorEvent) {
	switch e.Kind {
	case instruction.EventInstructionStart:
		d.instructionStart(e.Instruction)
	case instruction.EventParameterStart:
		d.parameterStart(e)
	case instruction.EventParameterData:
		d.leaf = append(d.leaf, e.Data...)
	case instruction.EventParameterLen:
		d.parameterLen(e)
	case instruction.EventParameterEnd:
		d.parameterEnd()
	case instruction.EventInstructionEnd:
		d.instructionEnd()
	case instruction.EventError:
		d.sawUnknownInstruction = true
	}
}

func (d *Detector) instructionStart(instr instruction.Instruction) {
	d.paramIndex = 0

	// Recognition is monotonic (spec.md §4.5): any instruction appearing
	// after a completed transfer sequence invalidates it, falling back to
	// Other rather than leaving a stale DoneTransfer phase in place.
	if d.phase == phaseDoneTransfer {
		d.phase = phaseStart
	}

	if d.feePhase == feeStart && instr == instruction.InstructionCallMethod {
		d.feePhase = feeAddress
	}

	switch {
	case d.phase == phaseStart && instr == instruction.InstructionCallMethod:
		d.phase = phaseCallMethod
	case d.phase == phaseWithdrawDone && instr == instruction.InstructionTakeFromWorktop:
		d.phase = phaseResource
	case d.phase == phaseWithdrawDone && instr == instruction.InstructionTakeNonFungiblesFromWorktop:
		d.phase = phaseNonFungibleResource
	case d.phase == phaseExpectDepositCall && instr == instruction.InstructionCallMethod:
		d.phase = phaseExpectAddressDeposit
	}
}

func (d *Detector) instructionEnd() {
	if d.phase == phaseValueDepositDone {
		d.phase = phaseExpectDepositCall
	}
	d.feePhase = feeStart
}

func (d *Detector) parameterStart(e instruction.ExtractorEvent) {
	d.leaf = d.leaf[:0]

	if e.NestingLevel == 0 {
		d.paramIndex++
	}

	switch {
	case d.phase == phaseCallMethod && d.paramIndex == 1 && e.TypeID == decoder.TypeAddress:
		d.phase = phaseAddressWithdraw
	case d.phase == phaseExpectAddressDeposit && d.paramIndex == 1 && e.TypeID == decoder.TypeAddress:
		d.phase = phaseAddressDeposit
	case d.phase == phaseValueDepositCount && d.paramIndex == 2 && e.TypeID == decoder.TypeArray:
		d.phase = phaseValueDepositCountIDs
	}

	if d.feePhase == feeAddress && d.paramIndex == 2 {
		d.feePhase = feeName
	}
}

func (d *Detector) parameterLen(e instruction.ExtractorEvent) {
	if d.phase == phaseValueDepositCountIDs {
		d.amount = decimal.Whole(uint64(e.Len))
		d.phase = phaseValueDepositDone
	}
}

func (d *Detector) parameterEnd() {
	switch d.phase {
	case phaseExpectWithdraw:
		switch string(d.leaf) {
		case "withdraw", "withdraw_non_fungibles":
			d.phase = phaseWithdrawDone
		default:
			d.phase = phaseStart
		}

	case phaseExpectDeposit:
		if string(d.leaf) == "try_deposit_or_abort" {
			d.phase = phaseDoneTransfer
		}
		// any other method name leaves the manifest non-conforming; no
		// explicit phase is needed since only phaseDoneTransfer yields
		// KindTransfer in Result.

	case phaseValueDeposit:
		if len(d.leaf) == decimal.DecimalLen {
			v, err := decimal.FromBytes(d.leaf)
			if err == nil {
				d.amount = v
				d.phase = phaseValueDepositDone
				break
			}
		}
		d.phase = phaseDecodingError

	case phaseResource:
		if len(d.leaf) == decoder.AddressStaticLen && d.resource.CopyFromSlice(d.leaf) {
			d.haveResource = true
			d.phase = phaseValueDeposit
		} else {
			d.phase = phaseDecodingError
		}

	case phaseNonFungibleResource:
		if len(d.leaf) == decoder.AddressStaticLen && d.resource.CopyFromSlice(d.leaf) {
			d.haveResource = true
			d.phase = phaseValueDepositCount
		} else {
			d.phase = phaseDecodingError
		}

	case phaseAddressWithdraw:
		if len(d.leaf) == decoder.AddressStaticLen && d.src.CopyFromSlice(d.leaf) {
			d.haveSrc = true
			d.phase = phaseExpectWithdraw
		} else {
			d.phase = phaseDecodingError
		}

	case phaseAddressDeposit:
		if len(d.leaf) == decoder.AddressStaticLen && d.dst.CopyFromSlice(d.leaf) {
			d.haveDst = true
			d.phase = phaseExpectDeposit
		} else {
			d.phase = phaseDecodingError
		}
	}

	switch d.feePhase {
	case feeName:
		if string(d.leaf) == "lock_fee" {
			d.feePhase = feeValue
		} else {
			d.feePhase = feeStart
		}

	case feeValue:
		if len(d.leaf) == decimal.DecimalLen {
			v, err := decimal.FromBytes(d.leaf)
			if err == nil {
				if d.haveFee {
					d.fee.Accumulate(v)
				} else {
					d.fee = v
					d.haveFee = true
				}
			} else {
				d.phase = phaseDecodingError
			}
		} else {
			d.phase = phaseDecodingError
		}
		d.feePhase = feeStart
	}
}

// Result reports the detector's current classification. It is safe to call
// at any point, including mid-decode, per spec.md §4.5 ("the detector never
// aborts decoding").
func (d *Detector) Result() Detected {
	var feePtr *decimal.Decimal
	if d.haveFee {
		f := d.fee
		feePtr = &f
	}

	if d.sawUnknownInstruction || d.phase == phaseDecodingError {
		return Detected{Kind: KindError, Fee: feePtr}
	}
	if d.haveSrc && d.haveDst && d.haveResource && d.phase == phaseDoneTransfer {
		return Detected{
			Kind:     KindTransfer,
			Fee:      feePtr,
			Src:      d.src,
			Dst:      d.dst,
			Resource: d.resource,
			Amount:   d.amount,
		}
	}
	return Detected{Kind: KindOther, Fee: feePtr}
}
