package digest

import "github.com/rdx-hw/ledger-core/decoder"

// Mode selects which outer-structure walk the calculator expects.
type Mode int

const (
	ModeTransaction Mode = iota
	ModeSubintent
	// ModePreAuth skips the outer-structure walk entirely and hashes raw
	// input bytes directly; it is not present in the reference
	// HashCalculatorMode snapshot this package is otherwise ported from,
	// but is named by sign_mode.rs's newer HashCalculatorMode and by
	// spec.md §4.2's third mode.
	ModePreAuth
)

const (
	payloadPrefix = 0x54
	v1Intent      = 1
	v2Subintent   = 11
)

var (
	txInitialVector = [2]byte{payloadPrefix, v1Intent}
	siInitialVector = [2]byte{payloadPrefix, v2Subintent}
)

type txPhase int

const (
	txStart txPhase = iota
	txHeader
	txInstructions
	txBlobs
	txSingleBlob
	txSingleBlobLen
	txSingleBlobData
	txAttachments
	txDecodingError
	txHashingError
)

type siPhase int

const (
	siStart siPhase = iota
	siCore
	siHeader
	siBlobs
	siMessage
	siChildren
	siChildrenContent
	siInstructions
	siSingleBlob
	siSingleBlobLen
	siSingleBlobData
	siDecodingError
	siHashingError
)

type commitPhase int

const (
	commitNone commitPhase = iota
	commitRegular
	commitBlob
)

type txState struct {
	phase  txPhase
	commit commitPhase
}

func (s *txState) reset() { *s = txState{} }

type siState struct {
	phase      siPhase
	commit     commitPhase
	inputCount int
}

func (s *siState) reset() { *s = siState{} }

// Calculator consumes decoder events and produces the session digest. It
// implements decoder.Handler.
type Calculator struct {
	work   *digester
	blob   *digester
	output *digester

	tx   txState
	si   siState
	mode Mode
}

// NewCalculator creates a Calculator ready for Start.
func NewCalculator() *Calculator {
	return &Calculator{
		work:   newDigester(),
		blob:   newDigester(),
		output: newDigester(),
	}
}

// Reset clears all digester and state-machine state.
func (c *Calculator) Reset() {
	c.work.init()
	c.blob.init()
	c.output.init()
	c.tx.reset()
	c.si.reset()
	c.mode = ModeTransaction
}

// Start begins a new digest session in the given mode, seeding the output
// digester with the mode's initial vector. PreAuth has no initial vector:
// it hashes the raw payload bytes directly.
func (c *Calculator) Start(mode Mode) {
	c.mode = mode
	c.work.init()
	c.blob.init()
	c.output.init()

	switch mode {
	case ModeTransaction:
		c.output.update(txInitialVector[:])
	case ModeSubintent:
		c.output.update(siInitialVector[:])
	case ModePreAuth:
		// no initial vector
	}
}

// Finalize returns the session digest. The caller must not feed further
// events afterward without calling Start again.
func (c *Calculator) Finalize() Digest {
	return c.output.finalize()
}

// AuthDigest computes the one-shot origin-bound proof digest:
// Blake2b256(0x52 ‖ challenge ‖ len(address) ‖ address ‖ origin). It reuses
// the work digester and does not disturb Start/Handle/Finalize state
// beyond a Reset.
func (c *Calculator) AuthDigest(challenge, address, origin []byte) Digest {
	c.Reset()
	c.work.init()
	c.work.update([]byte{0x52})
	c.work.update(challenge)
	c.work.update([]byte{byte(len(address))})
	c.work.update(address)
	c.work.update(origin)
	return c.work.finalize()
}

// Handle implements decoder.Handler.
func (c *Calculator) Handle(e decoder.Event) {
	switch c.mode {
	case ModeTransaction:
		c.txHandle(e)
	case ModeSubintent:
		c.siHandle(e)
	case ModePreAuth:
		c.preAuthHandle(e)
	}
}

func (c *Calculator) preAuthHandle(e decoder.Event) {
	if e.Kind == decoder.EventInputByte {
		c.output.update([]byte{e.Byte})
	}
}

// --- Transaction state machine ---

func (c *Calculator) txHandle(e decoder.Event) {
	switch e.Kind {
	case decoder.EventInputByte:
		c.txPutByte(e.Byte)
	case decoder.EventStart:
		c.txProcessStart(e.NestingLevel)
	case decoder.EventEnd:
		c.txProcessEnd(e.NestingLevel)
	case decoder.EventLen:
		if c.tx.phase == txSingleBlob {
			c.tx.phase = txSingleBlobLen
		}
	}
}

func (c *Calculator) txPutByte(b byte) {
	switch c.tx.phase {
	case txStart, txDecodingError, txHashingError, txBlobs, txSingleBlob:
		return
	case txSingleBlobLen:
		c.tx.phase = txSingleBlobData
		return
	}

	d := c.work
	if c.tx.phase == txSingleBlobData {
		d = c.blob
	}
	d.update([]byte{b})

	switch c.tx.commit {
	case commitRegular:
		c.txFinalizeAndPush()
	case commitBlob:
		c.txFinalizeAndPushBlob()
		c.tx.phase = txBlobs
	}
	c.tx.commit = commitNone
}

func (c *Calculator) txProcessStart(nestingLevel int) {
	switch {
	case c.tx.phase == txStart && nestingLevel == 1:
		c.tx.phase = txHeader
	case c.tx.phase == txHeader && nestingLevel == 1:
		c.tx.phase = txInstructions
	case c.tx.phase == txInstructions && nestingLevel == 1:
		c.tx.phase = txBlobs
	case c.tx.phase == txBlobs && nestingLevel == 2:
		c.tx.phase = txSingleBlob
	case c.tx.phase == txBlobs && nestingLevel == 1:
		c.txFinalizeAndPush()
		c.tx.commit = commitNone
		c.tx.phase = txAttachments
	case c.tx.phase == txAttachments && nestingLevel == 1:
		c.tx.phase = txDecodingError
	}
}

func (c *Calculator) txProcessEnd(nestingLevel int) {
	switch {
	case c.tx.phase == txHeader && nestingLevel == 1,
		c.tx.phase == txInstructions && nestingLevel == 1,
		c.tx.phase == txBlobs && nestingLevel == 1,
		c.tx.phase == txAttachments && nestingLevel == 1:
		c.tx.commit = commitRegular
	case c.tx.phase == txSingleBlobData && nestingLevel == 2:
		c.tx.commit = commitBlob
	}
}

func (c *Calculator) txFinalizeAndPush() {
	digest := c.work.finalize()
	c.output.update(digest.Bytes())
	c.work.init()
}

func (c *Calculator) txFinalizeAndPushBlob() {
	digest := c.blob.finalize()
	c.work.update(digest.Bytes())
	c.blob.init()
}

// --- Subintent state machine ---

func (c *Calculator) siHandle(e decoder.Event) {
	switch e.Kind {
	case decoder.EventInputByte:
		c.siPutByte(e.Byte)
	case decoder.EventStart:
		c.siProcessStart(e.NestingLevel)
	case decoder.EventEnd:
		c.siProcessEnd(e.NestingLevel)
	case decoder.EventLen:
		if c.si.phase == siSingleBlob {
			c.si.phase = siSingleBlobLen
		}
		if c.si.phase == siChildren {
			c.si.phase = siChildrenContent
			c.si.inputCount = 0
		}
	}
}

func (c *Calculator) siProcessStart(nestingLevel int) {
	initial := c.si.phase

	switch {
	case c.si.phase == siStart && nestingLevel == 0:
		c.si.phase = siCore
	case c.si.phase == siCore && nestingLevel == 2:
		c.si.phase = siHeader
	case c.si.phase == siHeader && nestingLevel == 2:
		c.si.phase = siBlobs
	case c.si.phase == siBlobs && nestingLevel == 3:
		c.si.phase = siSingleBlob
	case c.si.phase == siBlobs && nestingLevel == 2:
		c.siFinalizeAndPush()
		c.si.commit = commitNone
		c.si.phase = siMessage
	case c.si.phase == siMessage && nestingLevel == 2:
		c.si.phase = siChildren
	case c.si.phase == siChildrenContent && nestingLevel == 2:
		c.si.phase = siInstructions
	case c.si.phase == siInstructions && nestingLevel == 2:
		c.si.phase = siDecodingError
	}

	if initial != c.si.phase {
		c.si.inputCount = 0
	}
}

func (c *Calculator) siProcessEnd(nestingLevel int) {
	switch {
	case c.si.phase == siHeader && nestingLevel == 2,
		c.si.phase == siInstructions && nestingLevel == 2,
		c.si.phase == siBlobs && nestingLevel == 2,
		c.si.phase == siMessage && nestingLevel == 2,
		c.si.phase == siChildrenContent && nestingLevel == 2:
		c.si.commit = commitRegular
	case c.si.phase == siSingleBlobData && nestingLevel == 3:
		c.si.commit = commitBlob
	}
}

func (c *Calculator) siPutByte(b byte) {
	switch c.si.phase {
	case siStart, siCore, siChildren, siDecodingError, siHashingError, siBlobs, siSingleBlob:
		return
	case siSingleBlobLen:
		c.si.phase = siSingleBlobData
		return
	}

	d := c.work
	if c.si.phase == siSingleBlobData {
		d = c.blob
	}

	// The first byte entering a new section is consumed to advance state
	// but is never hashed (see DESIGN.md open-question resolution on
	// input_count); every subsequent byte of the section is hashed.
	if c.si.phase == siSingleBlobData || c.si.inputCount > 0 {
		d.update([]byte{b})
	} else {
		c.si.inputCount++
	}

	switch c.si.commit {
	case commitRegular:
		c.siFinalizeAndPush()
		c.si.inputCount = 0
	case commitBlob:
		c.siFinalizeAndPushBlob()
		c.si.phase = siBlobs
	}
	c.si.commit = commitNone
}

func (c *Calculator) siFinalizeAndPush() {
	digest := c.work.finalize()
	c.output.update(digest.Bytes())
	c.work.init()
}

func (c *Calculator) siFinalizeAndPushBlob() {
	digest := c.blob.finalize()
	c.work.update(digest.Bytes())
	c.blob.init()
}
