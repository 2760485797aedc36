// Package address implements the fixed-size entity address buffer and its
// Bech32m text rendering, ported from the reference bech32::address and
// bech32::hrp modules.
package address

import "github.com/rdx-hw/ledger-core/bech32"

// Len is the wire length of an address body in bytes.
const Len = 30

// Address is a fixed-size entity address. Set distinguishes an
// explicitly-decoded address from a zero-valued, absent one.
type Address struct {
	Bytes [Len]byte
	Set   bool
}

// NetworkID is one of the enumerated Radix chain identifiers; it determines
// the Bech32 HRP suffix.
type NetworkID byte

const (
	MainNet            NetworkID = 1
	StokeNet           NetworkID = 2
	AdapaNet           NetworkID = 10
	NebuNet            NetworkID = 11
	GilgaNet           NetworkID = 32
	EnkiNet            NetworkID = 33
	HammuNet           NetworkID = 34
	NergalNet          NetworkID = 35
	MarduNet           NetworkID = 36
	LocalNet           NetworkID = 240
	IntegrationTestNet NetworkID = 241
	Simulator          NetworkID = 242
)

// hrpSuffix maps a network id to its Bech32 HRP suffix.
var hrpSuffix = map[NetworkID]string{
	MainNet:            "rdx",
	StokeNet:           "tdx_2_",
	AdapaNet:           "tdx_a_",
	NebuNet:            "tdx_b_",
	GilgaNet:           "tdx_20_",
	EnkiNet:            "tdx_21_",
	HammuNet:           "tdx_22_",
	NergalNet:          "tdx_23_",
	MarduNet:           "tdx_24_",
	LocalNet:           "loc",
	IntegrationTestNet: "test",
	Simulator:          "sim",
}

// hrpPrefix maps an entity discriminant byte (the first byte of the address
// body) to its Bech32 HRP prefix.
var hrpPrefix = map[byte]string{
	0x00: "package_",
	0x01: "resource_",
	0x02: "resource_",
	0x03: "component_",
	0x04: "account_",
	0x05: "epochmanager_",
	0x06: "validator_",
	0x07: "clock_",
	0x08: "account_",
	0x09: "account_",
	0x0A: "identity_",
	0x0B: "identity_",
	0x0C: "identity_",
	0x0D: "accesscontroller_",
}

// XRD is the well-known resource address of the native network token; IsXRD
// compares against it without a Bech32 round trip.
var XRD = Address{
	Bytes: [Len]byte{
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x58,
	},
	Set: true,
}

// Prefix reports the HRP prefix for the address's entity discriminant, or
// false if the discriminant is not recognized.
func (a Address) Prefix() (string, bool) {
	p, ok := hrpPrefix[a.Bytes[0]]
	return p, ok
}

// Reset clears the address back to the absent state.
func (a *Address) Reset() {
	*a = Address{}
}

// CopyFromSlice overwrites the address body from src, which must be exactly
// Len bytes long, and marks the address as set.
func (a *Address) CopyFromSlice(src []byte) bool {
	if len(src) != Len {
		return false
	}
	copy(a.Bytes[:], src)
	a.Set = true
	return true
}

// IsSame reports whether both addresses are set and hold identical bytes.
func (a Address) IsSame(other Address) bool {
	return a.Set && other.Set && a.Bytes == other.Bytes
}

// IsXRD reports whether the address equals the well-known XRD resource
// address by comparing the full 30-byte body. The body carries no network
// id, so the same comparison holds on every network.
func (a Address) IsXRD() bool {
	return a.IsSame(XRD)
}

// Format renders the address as a Bech32m string using the HRP formed from
// the entity discriminant prefix and the given network's suffix.
func (a Address) Format(net NetworkID) (string, error) {
	prefix, ok := a.Prefix()
	if !ok {
		return "", ErrUnknownEntityKind
	}
	suffix, ok := hrpSuffix[net]
	if !ok {
		return "", ErrUnknownNetwork
	}
	return bech32.Encode(prefix+suffix, a.Bytes[:])
}

// Error is the closed set of address formatting failures.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrUnknownEntityKind Error = "address: unrecognized entity discriminant"
	ErrUnknownNetwork    Error = "address: unrecognized network id"
)
