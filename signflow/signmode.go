package signflow

import "github.com/rdx-hw/ledger-core/digest"

// Curve is the elliptic curve a SignMode derives its key pair on.
type Curve int

const (
	CurveEd25519 Curve = iota
	CurveSecp256k1
)

// DecodingMode selects how a SignMode consumes its payload: the full
// manifest decode (DecodingTransaction), a bare challenge/address/origin
// digest with no SBOR decoding (DecodingAuth), or raw-byte hashing with no
// decoding at all (DecodingPreAuthHash).
type DecodingMode int

const (
	DecodingTransaction DecodingMode = iota
	DecodingAuth
	DecodingPreAuthHash
)

// SignMode is the closed set of sign operations the host can request,
// ported from the reference SignMode enum and expanded with the
// PreAuthHash/PreAuthRaw opcodes sign_mode.rs dispatches that spec.md's
// opcode table omits (see DESIGN.md).
type SignMode int

const (
	TxEd25519Verbose SignMode = iota
	TxEd25519Summary
	TxSecp256k1Verbose
	TxSecp256k1Summary
	AuthEd25519
	AuthSecp256k1
	PreAuthHashEd25519
	PreAuthHashSecp256k1
	PreAuthRawEd25519
	PreAuthRawSecp256k1
)

type modeTraits struct {
	curve             Curve
	showsInstructions bool
	hashMode          digest.Mode
	decodingMode      DecodingMode
}

var traits = map[SignMode]modeTraits{
	TxEd25519Verbose:     {CurveEd25519, true, digest.ModeTransaction, DecodingTransaction},
	TxEd25519Summary:     {CurveEd25519, false, digest.ModeTransaction, DecodingTransaction},
	TxSecp256k1Verbose:   {CurveSecp256k1, true, digest.ModeTransaction, DecodingTransaction},
	TxSecp256k1Summary:   {CurveSecp256k1, false, digest.ModeTransaction, DecodingTransaction},
	AuthEd25519:          {CurveEd25519, false, digest.ModeTransaction, DecodingAuth},
	AuthSecp256k1:        {CurveSecp256k1, false, digest.ModeTransaction, DecodingAuth},
	PreAuthHashEd25519:   {CurveEd25519, false, digest.ModePreAuth, DecodingPreAuthHash},
	PreAuthHashSecp256k1: {CurveSecp256k1, false, digest.ModePreAuth, DecodingPreAuthHash},
	PreAuthRawEd25519:    {CurveEd25519, true, digest.ModePreAuth, DecodingTransaction},
	PreAuthRawSecp256k1:  {CurveSecp256k1, true, digest.ModePreAuth, DecodingTransaction},
}

func (m SignMode) Curve() Curve               { return traits[m].curve }
func (m SignMode) ShowsInstructions() bool    { return traits[m].showsInstructions }
func (m SignMode) HashMode() digest.Mode      { return traits[m].hashMode }
func (m SignMode) DecodingMode() DecodingMode { return traits[m].decodingMode }

// Instruction codes the host's first-chunk APDU selects a SignMode with
// (spec.md §6's command framing, expanded with the four PreAuth opcodes).
const (
	InsGetVersion               byte = 0x10
	InsGetModel                 byte = 0x11
	InsGetDeviceID              byte = 0x12
	InsGetPubkeyEd25519         byte = 0x21
	InsGetPubkeySecp256k1       byte = 0x31
	InsSignTxEd25519            byte = 0x41
	InsSignTxEd25519Summary     byte = 0x42
	InsSignTxSecp256k1          byte = 0x51
	InsSignTxSecp256k1Summary   byte = 0x52
	InsSignAuthEd25519          byte = 0x61
	InsSignAuthSecp256k1        byte = 0x71
	InsSignPreAuthHashEd25519   byte = 0x81
	InsSignPreAuthHashSecp256k1 byte = 0x82
	InsSignPreAuthRawEd25519    byte = 0x83
	InsSignPreAuthRawSecp256k1  byte = 0x84
)

var modeByIns = map[byte]SignMode{
	InsSignTxEd25519:            TxEd25519Verbose,
	InsSignTxEd25519Summary:     TxEd25519Summary,
	InsSignTxSecp256k1:          TxSecp256k1Verbose,
	InsSignTxSecp256k1Summary:   TxSecp256k1Summary,
	InsSignAuthEd25519:          AuthEd25519,
	InsSignAuthSecp256k1:        AuthSecp256k1,
	InsSignPreAuthHashEd25519:   PreAuthHashEd25519,
	InsSignPreAuthHashSecp256k1: PreAuthHashSecp256k1,
	InsSignPreAuthRawEd25519:    PreAuthRawEd25519,
	InsSignPreAuthRawSecp256k1:  PreAuthRawSecp256k1,
}

// ModeForInstruction resolves the host's instruction byte to a SignMode, ok
// is false for any instruction code that doesn't start a signing flow (the
// plain get-version/get-pubkey/etc. commands handle themselves elsewhere).
func ModeForInstruction(ins byte) (SignMode, bool) {
	m, ok := modeByIns[ins]
	return m, ok
}
