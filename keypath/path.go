// Package keypath implements the derivation-path validator: parsing and
// validating the 6-element hardened BIP-32 path the host supplies before
// key derivation, ported from the reference Bip32Path.
package keypath

import (
	"strconv"
	"strings"

	"github.com/rdx-hw/ledger-core/errs"
)

const (
	requiredLen = 6
	hardened    = 0x80000000

	leadWordIndex  = 0
	coinTypeIndex  = 1
	networkIDIndex = 2
	entityIndex    = 3
	accountIndex   = 4
	keyTypeIndex   = 5

	leadWord     = 44 | hardened
	coinType     = 1022 | hardened
	maxNetworkID = 255

	entityAccount  = 525 | hardened
	entityIdentity = 618 | hardened

	keyTypeSignTransaction = 1238 | hardened
	keyTypeSignAuth        = 706 | hardened
)

// MaxPathLen bounds the number of path elements this package will ever
// hold, mirroring the reference's fixed-size on-device buffer.
const MaxPathLen = 10

// Path is a parsed, not-yet-validated derivation path.
type Path struct {
	Elements [MaxPathLen]uint32
	Len      int
}

// ParseWirePrefix decodes a derivation path from the front of data (one
// length-prefix byte followed by that many big-endian uint32 elements, per
// spec.md §6's first-chunk data layout) and returns whatever bytes follow
// it unconsumed — the first chunk's payload slice sits right after the
// path on the wire, so the caller can't simply hand ParseWire a
// path-sized buffer ahead of time.
func ParseWirePrefix(data []byte) (Path, []byte, error) {
	var p Path
	if len(data) < 1 {
		return p, nil, errs.New(errs.BadBip32PathLen)
	}
	count := int(data[0])
	if count > MaxPathLen {
		return p, nil, errs.New(errs.BadBip32PathLen)
	}
	need := 1 + count*4
	if len(data) < need {
		return p, nil, errs.New(errs.BadBip32PathDataLen)
	}
	for i := 0; i < count; i++ {
		off := 1 + i*4
		p.Elements[i] = uint32(data[off])<<24 | uint32(data[off+1])<<16 |
			uint32(data[off+2])<<8 | uint32(data[off+3])
	}
	p.Len = count
	return p, data[need:], nil
}

// ParseWire decodes data as a derivation path and nothing else, mirroring
// Bip32Path::read's count+copy shape but with the port's explicit wire
// endianness instead of the reference's raw in-memory copy (the reference
// reads a path out of a full APDU buffer too, but never needed a
// no-trailing-data variant since Comm::get_data already isolates the
// path-sized region).
func ParseWire(data []byte) (Path, error) {
	p, rest, err := ParseWirePrefix(data)
	if err != nil {
		return p, err
	}
	if len(rest) != 0 {
		return p, errs.New(errs.BadBip32PathDataLen)
	}
	return p, nil
}

// ParseString parses a "m/44'/1022'/...'" textual path, mirroring
// Bip32Path::from — re-expressed as an error return instead of a panic, per
// this port's explicit error-return idiom (see DESIGN.md). Used by the CLI
// and tests; the device's wire format is ParseWire's, not this one.
func ParseString(s string) (Path, error) {
	var p Path
	if !strings.HasPrefix(s, "m/") {
		return p, errs.New(errs.BadParam)
	}
	segments := strings.Split(s[2:], "/")
	if len(segments) == 0 || (len(segments) == 1 && segments[0] == "") {
		return p, errs.New(errs.BadParam)
	}
	if len(segments) > MaxPathLen {
		return p, errs.New(errs.BadBip32PathLen)
	}
	for i, seg := range segments {
		if seg == "" {
			return p, errs.New(errs.BadParam)
		}
		harden := strings.HasSuffix(seg, "'")
		digits := seg
		if harden {
			digits = seg[:len(seg)-1]
		}
		n, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return p, errs.New(errs.BadParam)
		}
		v := uint32(n)
		if harden {
			v |= hardened
		}
		p.Elements[i] = v
	}
	p.Len = len(segments)
	return p, nil
}

// Validate checks p against the fixed 6-element account/identity key-path
// schema, mirroring Bip32Path::validate exactly.
func Validate(p Path) error {
	if p.Len != requiredLen {
		return errs.New(errs.BadBip32PathLen)
	}
	if p.Elements[leadWordIndex] != leadWord {
		return errs.New(errs.BadBip32PathLeadWord)
	}
	if p.Elements[coinTypeIndex] != coinType {
		return errs.New(errs.BadBip32PathCoinType)
	}

	networkID := p.Elements[networkIDIndex]
	if networkID&hardened == 0 {
		return errs.New(errs.BadBip32PathMustBeHardened)
	}
	networkID &^= hardened
	if networkID > maxNetworkID {
		return errs.New(errs.BadBip32PathNetworkID)
	}

	entity := p.Elements[entityIndex]
	if entity != entityAccount && entity != entityIdentity {
		return errs.New(errs.BadBip32PathEntity)
	}

	if p.Elements[accountIndex]&hardened == 0 {
		return errs.New(errs.BadBip32PathMustBeHardened)
	}

	keyType := p.Elements[keyTypeIndex]
	if keyType != keyTypeSignAuth && keyType != keyTypeSignTransaction {
		return errs.New(errs.BadBip32PathKeyType)
	}

	return nil
}

// NetworkID extracts the unhardened network id from an already-validated
// path.
func (p Path) NetworkID() byte {
	return byte(p.Elements[networkIDIndex] &^ hardened)
}

// IsIdentity reports whether p derives an identity key (as opposed to an
// account key).
func (p Path) IsIdentity() bool {
	return p.Elements[entityIndex] == entityIdentity
}

// IsAuthKey reports whether p derives an authentication-signing key (as
// opposed to a transaction-signing key).
func (p Path) IsAuthKey() bool {
	return p.Elements[keyTypeIndex] == keyTypeSignAuth
}
