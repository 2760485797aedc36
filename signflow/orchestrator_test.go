package signflow

import (
	"testing"

	"github.com/rdx-hw/ledger-core/decoder"
	"github.com/rdx-hw/ledger-core/errs"
	"github.com/rdx-hw/ledger-core/keypath"
)

type stubSigner struct {
	called bool
	curve  Curve
}

func (s *stubSigner) Sign(curve Curve, path keypath.Path, hash [32]byte) ([]byte, []byte, error) {
	s.called = true
	s.curve = curve
	return []byte{0x01, 0x02}, []byte{0x03, 0x04}, nil
}

type stubApprover struct{ approve bool }

func (a stubApprover) Approve() bool { return a.approve }

type recordingSink struct {
	shows [][2]string
}

func (s *recordingSink) Show(title, body string) {
	s.shows = append(s.shows, [2]string{title, body})
}

func bigEndianPath(values ...uint32) []byte {
	out := []byte{byte(len(values))}
	for _, v := range values {
		out = append(out, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	return out
}

const hardenedBit = 0x80000000

func validTxPathBytes() []byte {
	return bigEndianPath(
		44|hardenedBit,
		1022|hardenedBit,
		1|hardenedBit,
		525|hardenedBit,
		0|hardenedBit,
		1238|hardenedBit,
	)
}

// emptyManifest builds a minimal decodable transaction payload with zero
// instructions: tuple(header, tuple(instructions-array)).
func emptyManifest() []byte {
	return []byte{
		decoder.LeadingByte,
		decoder.TypeTuple, 2,
		decoder.TypeTuple, 0,
		decoder.TypeTuple, 1,
		decoder.TypeArray, decoder.TypeEnum, 0,
	}
}

func TestOrchestratorSignsSimpleManifest(t *testing.T) {
	signer := &stubSigner{}
	approver := stubApprover{approve: true}
	sink := &recordingSink{}
	o := NewOrchestrator(signer, approver, sink)

	data := append(validTxPathBytes(), emptyManifest()...)
	resp := o.Handle(Frame{Class: ClassRegular, Ins: InsSignTxEd25519Summary, Data: data})
	if resp.SW != errs.OK {
		t.Fatalf("Regular frame SW = %v, want OK", resp.SW)
	}

	resp = o.Handle(Frame{Class: ClassLastData})
	if resp.SW != errs.OK {
		t.Fatalf("LastData frame SW = %v, want OK", resp.SW)
	}
	if !signer.called {
		t.Fatalf("signer was never invoked")
	}
	if signer.curve != CurveEd25519 {
		t.Errorf("curve = %v, want CurveEd25519", signer.curve)
	}
	if len(resp.Signature) == 0 || len(resp.PublicKey) == 0 || len(resp.Digest) == 0 {
		t.Errorf("response missing signature/pubkey/digest: %+v", resp)
	}
	if len(sink.shows) == 0 {
		t.Errorf("expected at least one sink.Show call")
	}
}

func TestOrchestratorRejectsBadDerivationPath(t *testing.T) {
	o := NewOrchestrator(&stubSigner{}, stubApprover{approve: true}, nil)

	badPath := bigEndianPath(45|hardenedBit, 1022|hardenedBit, 1|hardenedBit, 525|hardenedBit, 0|hardenedBit, 1238|hardenedBit)
	data := append(badPath, emptyManifest()...)
	resp := o.Handle(Frame{Class: ClassRegular, Ins: InsSignTxEd25519Summary, Data: data})
	if resp.SW != errs.BadBip32PathLeadWord {
		t.Errorf("SW = %v, want BadBip32PathLeadWord", resp.SW)
	}
}

func TestOrchestratorRejectsContinuationBeforeRegular(t *testing.T) {
	o := NewOrchestrator(&stubSigner{}, stubApprover{approve: true}, nil)

	resp := o.Handle(Frame{Class: ClassContinuation})
	if resp.SW != errs.BadTxSignSequence {
		t.Errorf("SW = %v, want BadTxSignSequence", resp.SW)
	}
}

func TestOrchestratorUserRejectionYieldsUserCancelled(t *testing.T) {
	signer := &stubSigner{}
	o := NewOrchestrator(signer, stubApprover{approve: false}, nil)

	data := append(validTxPathBytes(), emptyManifest()...)
	o.Handle(Frame{Class: ClassRegular, Ins: InsSignTxEd25519Summary, Data: data})
	resp := o.Handle(Frame{Class: ClassLastData})

	if resp.SW != errs.UserCancelled {
		t.Errorf("SW = %v, want UserCancelled", resp.SW)
	}
	if signer.called {
		t.Errorf("signer should not be called when the user rejects")
	}
}

func TestOrchestratorResetsStateAfterFailure(t *testing.T) {
	o := NewOrchestrator(&stubSigner{}, stubApprover{approve: true}, nil)

	badPath := bigEndianPath(1) // too short
	o.Handle(Frame{Class: ClassRegular, Ins: InsSignTxEd25519Summary, Data: badPath})

	// A fresh Regular frame with a valid path should succeed; if failure
	// state leaked, this would incorrectly report BadTxSignSequence or
	// similar instead of proceeding normally.
	data := append(validTxPathBytes(), emptyManifest()...)
	resp := o.Handle(Frame{Class: ClassRegular, Ins: InsSignTxEd25519Summary, Data: data})
	if resp.SW != errs.OK {
		t.Fatalf("SW after recovery = %v, want OK", resp.SW)
	}
}

func TestOrchestratorUnknownInstructionIsNotImplemented(t *testing.T) {
	o := NewOrchestrator(&stubSigner{}, stubApprover{approve: true}, nil)
	resp := o.Handle(Frame{Class: ClassRegular, Ins: 0x99, Data: validTxPathBytes()})
	if resp.SW != errs.NotImplemented {
		t.Errorf("SW = %v, want NotImplemented", resp.SW)
	}
}
