// Package signflow implements the sign-flow orchestrator: the session
// state machine that sequences derivation-path validation, streaming
// payload decode, digest finalization, user approval, and key
// derivation+signing, ported from the reference SigningFlowState.
package signflow

import (
	"github.com/rdx-hw/ledger-core/address"
	"github.com/rdx-hw/ledger-core/decoder"
	"github.com/rdx-hw/ledger-core/digest"
	"github.com/rdx-hw/ledger-core/errs"
	"github.com/rdx-hw/ledger-core/instruction"
	"github.com/rdx-hw/ledger-core/keypath"
	"github.com/rdx-hw/ledger-core/printer"
	"github.com/rdx-hw/ledger-core/summary"
)

// Signer derives a key pair for path on the given curve and signs digest
// with it. This stays an opaque collaborator per spec.md §1's Non-goals:
// the actual SLIP-10/BIP-32 derivation and curve arithmetic are out of
// scope for this port, grounded on crypto/provider.go's narrow interface
// pattern.
type Signer interface {
	Sign(curve Curve, path keypath.Path, hash [32]byte) (signature, publicKey []byte, err error)
}

// Approver blocks until the user accepts or rejects the operation
// currently on screen.
type Approver interface {
	Approve() bool
}

// Response is the reply the orchestrator hands back to the transport
// layer for one Frame.
type Response struct {
	// Signature, PublicKey and Digest are only set once a LastData frame
	// completes a successful, approved sign.
	Signature []byte
	PublicKey []byte
	Digest    []byte
	SW        errs.StatusWord
}

func okResponse() Response { return Response{SW: errs.OK} }

func errResponse(err error) Response { return Response{SW: errs.Of(err)} }

type sessionPhase int

const (
	phaseIdle sessionPhase = iota
	phaseAwaitingData
)

// instructionFanout broadcasts one instruction.ExtractorEvent to several
// instruction.Handlers in document order, mirroring decoder.MultiHandler's
// fan-out shape one layer up the pipeline.
type instructionFanout []instruction.Handler

func (f instructionFanout) Handle(e instruction.ExtractorEvent) {
	for _, h := range f {
		h.Handle(e)
	}
}

// extractorForward adapts an instruction.Extractor plus a downstream
// instruction.Handler into a decoder.Handler, since Extractor.Handle alone
// (decoder.Handler) discards its extractor events — it exists only so the
// extractor can sit in a decoder.MultiHandler next to the hash calculator
// without forcing every caller to care about the extractor's own output.
type extractorForward struct {
	ex      *instruction.Extractor
	handler instruction.Handler
}

func (f extractorForward) Handle(e decoder.Event) { f.ex.HandleWith(f.handler, e) }

// Orchestrator sequences one signing session end to end.
type Orchestrator struct {
	signer   Signer
	approver Approver
	sink     printer.Sink

	phase sessionPhase
	mode  SignMode
	path  keypath.Path

	calc *digest.Calculator
	dec  *decoder.Decoder
	ex   *instruction.Extractor
	pr   *printer.Printer
	det  *summary.Detector

	lastOutcomeDone bool
	showDigest      bool
	authBuf         []byte
}

// NewOrchestrator creates an Orchestrator ready to receive Regular frames.
func NewOrchestrator(signer Signer, approver Approver, sink printer.Sink) *Orchestrator {
	o := &Orchestrator{
		signer:   signer,
		approver: approver,
		sink:     sink,
		calc:     digest.NewCalculator(),
		dec:      decoder.New(true),
		ex:       instruction.NewExtractor(),
		det:      summary.NewDetector(),
	}
	return o
}

func (o *Orchestrator) reset() {
	o.phase = phaseIdle
	o.path = keypath.Path{}
	o.calc.Reset()
	o.dec.Reset()
	o.ex.Reset()
	o.det.Reset()
	o.pr = nil
	o.lastOutcomeDone = false
	o.showDigest = false
	o.authBuf = o.authBuf[:0]
}

// Handle processes one Frame and returns the response to send back.
func (o *Orchestrator) Handle(f Frame) Response {
	switch f.Class {
	case ClassRegular:
		return o.handleRegular(f)
	case ClassContinuation, ClassLastData:
		return o.handleContinuation(f)
	default:
		return errResponse(errs.New(errs.BadCLA))
	}
}

func (o *Orchestrator) handleRegular(f Frame) Response {
	o.reset()

	mode, ok := ModeForInstruction(f.Ins)
	if !ok {
		return errResponse(errs.New(errs.NotImplemented))
	}
	o.mode = mode

	path, rest, err := keypath.ParseWirePrefix(f.Data)
	if err != nil {
		return errResponse(err)
	}
	if err := keypath.Validate(path); err != nil {
		return errResponse(err)
	}
	o.path = path
	o.showDigest = f.showDigest()

	networkID := address.NetworkID(path.NetworkID())
	o.pr = printer.NewPrinter(o.sink, networkID, !mode.ShowsInstructions())

	o.calc.Start(mode.HashMode())
	o.phase = phaseAwaitingData

	o.showIntro()

	if err := o.feed(rest); err != nil {
		o.reset()
		return errResponse(err)
	}
	return okResponse()
}

func (o *Orchestrator) handleContinuation(f Frame) Response {
	if o.phase != phaseAwaitingData {
		return errResponse(errs.New(errs.BadTxSignSequence))
	}

	if err := o.feed(f.Data); err != nil {
		o.reset()
		return errResponse(err)
	}

	if f.Class != ClassLastData {
		return okResponse()
	}

	return o.finish()
}

// feed routes the chunk to the decoding mode's consumer pipeline.
func (o *Orchestrator) feed(chunk []byte) error {
	switch o.mode.DecodingMode() {
	case DecodingPreAuthHash:
		for _, b := range chunk {
			o.calc.Handle(decoder.Event{Kind: decoder.EventInputByte, Byte: b})
		}
		return nil

	case DecodingAuth:
		o.authBuf = append(o.authBuf, chunk...)
		return nil

	default: // DecodingTransaction
		handler := decoder.MultiHandler{
			o.calc,
			extractorForward{ex: o.ex, handler: instructionFanout{o.pr, o.det}},
		}
		outcome, err := o.dec.Decode(handler, chunk)
		if err != nil {
			// Every decoder error reaches the host as BadTxSignState.
			return errs.New(errs.BadTxSignState)
		}
		o.lastOutcomeDone = outcome.Done
		return nil
	}
}

func (o *Orchestrator) finish() Response {
	defer o.reset()

	if o.mode.DecodingMode() == DecodingAuth {
		return o.finishAuth()
	}
	if o.mode.DecodingMode() == DecodingTransaction && !o.lastOutcomeDone {
		return errResponse(errs.New(errs.BadTxSignState))
	}

	d := o.calc.Finalize()
	o.showSummary(d)

	if !o.approver.Approve() {
		return errResponse(errs.New(errs.UserCancelled))
	}

	sig, pub, err := o.signer.Sign(o.mode.Curve(), o.path, [32]byte(d))
	if err != nil {
		return errResponse(errs.New(errs.CxErrorInternalError))
	}
	return Response{Signature: sig, PublicKey: pub, Digest: d.Bytes(), SW: errs.OK}
}

func (o *Orchestrator) finishAuth() Response {
	const challengeLen = 32
	if len(o.authBuf) < challengeLen+1 {
		return errResponse(errs.New(errs.BadParam))
	}
	challenge := o.authBuf[:challengeLen]
	addrLen := int(o.authBuf[challengeLen])
	rest := o.authBuf[challengeLen+1:]
	if addrLen > len(rest) {
		return errResponse(errs.New(errs.BadParam))
	}
	addr := rest[:addrLen]
	origin := rest[addrLen:]

	d := o.calc.AuthDigest(challenge, addr, origin)
	o.showSummary(d)

	if !o.approver.Approve() {
		return errResponse(errs.New(errs.UserCancelled))
	}

	sig, pub, err := o.signer.Sign(o.mode.Curve(), o.path, [32]byte(d))
	if err != nil {
		return errResponse(errs.New(errs.CxErrorInternalError))
	}
	return Response{Signature: sig, PublicKey: pub, Digest: d.Bytes(), SW: errs.OK}
}

func (o *Orchestrator) showIntro() {
	if o.sink == nil {
		return
	}
	o.sink.Show("Review", "Transaction")
}

func (o *Orchestrator) showSummary(d digest.Digest) {
	if o.sink == nil {
		return
	}
	result := o.det.Result()
	switch result.Kind {
	case summary.KindTransfer:
		o.sink.Show("Transfer", "recognized")
	case summary.KindError:
		o.sink.Show("Error", "could not summarize")
	default:
		o.sink.Show("Sign Hash", hex(d.Bytes()))
	}
	if o.showDigest {
		o.sink.Show("Digest", hex(d.Bytes()))
	}
}

const hexDigits = "0123456789abcdef"

func hex(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0xf]
	}
	return string(out)
}
