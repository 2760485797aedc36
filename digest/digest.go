// Package digest implements the transaction/subintent/pre-auth hash
// calculator: a decode-event-driven state machine over three independent
// Blake2b-256 digesters, ported from the reference HashCalculator.
package digest

import (
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Digest is a 32-byte Blake2b-256 output.
type Digest [32]byte

// Bytes returns the digest as a plain byte slice.
func (d Digest) Bytes() []byte { return d[:] }

// digester is a resettable incremental Blake2b-256 hasher. The hash
// calculator drives three of these (work/blob/output) identically.
type digester struct {
	h hash.Hash
}

func newDigester() *digester {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors on a bad key length; nil never fails.
		panic(err)
	}
	return &digester{h: h}
}

func (d *digester) init() { d.h.Reset() }

func (d *digester) update(p []byte) { d.h.Write(p) }

func (d *digester) finalize() Digest {
	var out Digest
	copy(out[:], d.h.Sum(nil))
	return out
}
