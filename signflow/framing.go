package signflow

import "github.com/rdx-hw/ledger-core/errs"

// CommandClass selects which of the three host-framing roles a chunk plays,
// ported from the reference CommandClass.
type CommandClass byte

const (
	ClassRegular      CommandClass = 0xAA
	ClassContinuation CommandClass = 0xAB
	ClassLastData     CommandClass = 0xAC
)

// ClassFromByte resolves the wire class byte, mirroring
// CommandClass::from_comm's CLA switch.
func ClassFromByte(b byte) (CommandClass, error) {
	switch CommandClass(b) {
	case ClassRegular, ClassContinuation, ClassLastData:
		return CommandClass(b), nil
	default:
		return 0, errs.New(errs.BadCLA)
	}
}

// Frame is one host-to-device command, already split into its framing
// fields and trailing data, mirroring the reference Comm's
// apdu_buffer/get_apdu_metadata/get_data split.
type Frame struct {
	Class CommandClass
	Ins   byte
	P1    byte
	P2    byte
	Data  []byte
}

// showDigestBit is P1 bit 0 on the first chunk of a verbose transaction
// sign mode: it selects whether the final screen also shows the raw
// digest hex alongside the parsed summary.
const showDigestBit = 0x01

func (f Frame) showDigest() bool { return f.P1&showDigestBit != 0 }
