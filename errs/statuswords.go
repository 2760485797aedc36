// Package errs defines the application's closed status-word taxonomy: the
// 2-byte codes the sign-flow orchestrator returns to the host in its APDU
// response, ported from the reference AppError enum.
package errs

import "fmt"

// StatusWord is the closed set of application-level outcomes, each carrying
// its own 2-byte wire status word (mirroring the reference's AppError enum
// discriminant values exactly).
type StatusWord uint16

const (
	OK                         StatusWord = 0x9000
	NothingReceived            StatusWord = 0x6982
	BadCLA                     StatusWord = 0x6e00
	BadLen                     StatusWord = 0x6e01
	UserCancelled              StatusWord = 0x6e02
	BadBip32PathLen            StatusWord = 0x6e03
	BadBip32PathDataLen        StatusWord = 0x6e04
	BadBip32PathLeadWord       StatusWord = 0x6e05
	BadBip32PathCoinType       StatusWord = 0x6e06
	BadBip32PathNetworkID      StatusWord = 0x6e07
	BadBip32PathEntity         StatusWord = 0x6e08
	BadBip32PathKeyType        StatusWord = 0x6e09
	BadBip32PathMustBeHardened StatusWord = 0x6e0a
	BadParam                   StatusWord = 0x6e0b
	BadSecp256k1PublicKeyLen   StatusWord = 0x6e21
	BadSecp256k1PublicKeyType  StatusWord = 0x6e22
	BadTxSignState             StatusWord = 0x6e31
	BadTxSignSequence          StatusWord = 0x6e32
	NotImplemented             StatusWord = 0x6eff
	Unknown                    StatusWord = 0x6d00

	// The CxError* codes classify a Signer collaborator failure (key
	// derivation or signing went wrong below the abstraction spec.md §1
	// keeps opaque). The orchestrator cannot see which hardware primitive
	// failed the way the reference's direct SE calls could, so every
	// Signer error is reported as CxErrorInternalError; the rest of the
	// family is carried for wire-compatibility with spec.md §7's taxonomy
	// even though this port never produces them itself.
	CxErrorCarry                 StatusWord = 0x6f01
	CxErrorLocked                StatusWord = 0x6f02
	CxErrorUnlocked              StatusWord = 0x6f03
	CxErrorNotLocked             StatusWord = 0x6f04
	CxErrorNotUnlocked           StatusWord = 0x6f05
	CxErrorInternalError         StatusWord = 0x6f06
	CxErrorInvalidParameterSize  StatusWord = 0x6f07
	CxErrorInvalidParameterValue StatusWord = 0x6f08
	CxErrorInvalidParameter      StatusWord = 0x6f09
	CxErrorNotInvertible         StatusWord = 0x6f0a
	CxErrorOverflow              StatusWord = 0x6f0b
	CxErrorMemoryFull            StatusWord = 0x6f0c
	CxErrorNoResidue             StatusWord = 0x6f0d
	CxErrorEcInfinitePoint       StatusWord = 0x6f0e
	CxErrorEcInvalidPoint        StatusWord = 0x6f0f
	CxErrorEcInvalidCurve        StatusWord = 0x6f10

	Panic StatusWord = 0xe000
)

// name backs StatusWord.String(); it labels every status word declared
// above, and String falls back to the raw hex code for any other value.
var name = map[StatusWord]string{
	OK:                         "OK",
	NothingReceived:            "NothingReceived",
	BadCLA:                     "BadCLA",
	BadLen:                     "BadLen",
	UserCancelled:              "UserCancelled",
	BadBip32PathLen:            "BadBip32PathLen",
	BadBip32PathDataLen:        "BadBip32PathDataLen",
	BadBip32PathLeadWord:       "BadBip32PathLeadWord",
	BadBip32PathCoinType:       "BadBip32PathCoinType",
	BadBip32PathNetworkID:      "BadBip32PathNetworkID",
	BadBip32PathEntity:         "BadBip32PathEntity",
	BadBip32PathKeyType:        "BadBip32PathKeyType",
	BadBip32PathMustBeHardened: "BadBip32PathMustBeHardened",
	BadParam:                   "BadParam",
	BadSecp256k1PublicKeyLen:   "BadSecp256k1PublicKeyLen",
	BadSecp256k1PublicKeyType:  "BadSecp256k1PublicKeyType",
	BadTxSignState:             "BadTxSignState",
	BadTxSignSequence:          "BadTxSignSequence",
	NotImplemented:             "NotImplemented",
	Unknown:                    "Unknown",
	CxErrorCarry:                 "CxErrorCarry",
	CxErrorLocked:                "CxErrorLocked",
	CxErrorUnlocked:              "CxErrorUnlocked",
	CxErrorNotLocked:             "CxErrorNotLocked",
	CxErrorNotUnlocked:           "CxErrorNotUnlocked",
	CxErrorInternalError:         "CxErrorInternalError",
	CxErrorInvalidParameterSize:  "CxErrorInvalidParameterSize",
	CxErrorInvalidParameterValue: "CxErrorInvalidParameterValue",
	CxErrorInvalidParameter:      "CxErrorInvalidParameter",
	CxErrorNotInvertible:         "CxErrorNotInvertible",
	CxErrorOverflow:              "CxErrorOverflow",
	CxErrorMemoryFull:            "CxErrorMemoryFull",
	CxErrorNoResidue:             "CxErrorNoResidue",
	CxErrorEcInfinitePoint:       "CxErrorEcInfinitePoint",
	CxErrorEcInvalidPoint:        "CxErrorEcInvalidPoint",
	CxErrorEcInvalidCurve:        "CxErrorEcInvalidCurve",
	Panic:                        "Panic",
}

func (sw StatusWord) String() string {
	if s, ok := name[sw]; ok {
		return s
	}
	return fmt.Sprintf("StatusWord(0x%04x)", uint16(sw))
}

// AppError is the error type every fallible operation in the sign flow
// returns; it carries the status word the host-facing response frames.
type AppError struct {
	SW StatusWord
}

func (e *AppError) Error() string { return e.SW.String() }

// Of reports the wire status word an error resolves to, treating
// any non-AppError as the generic Unknown code — the catch-all a top-level
// response-framing layer needs to always produce a well-formed 2-byte
// trailer even for errors it doesn't recognize.
func Of(err error) StatusWord {
	if err == nil {
		return OK
	}
	if ae, ok := err.(*AppError); ok {
		return ae.SW
	}
	return Unknown
}

// New wraps sw as an error.
func New(sw StatusWord) error { return &AppError{SW: sw} }
