// Package instruction defines the Babylon-era manifest instruction
// vocabulary and the extractor that recovers a stream of instructions from
// decode events.
package instruction

// Instruction names one manifest instruction variant. The wire identity of
// an instruction is the decoder's TYPE_ENUM discriminator byte (see
// DESIGN.md open-question resolution #6), not an accumulated name string;
// Instruction itself is still the human-readable name used by the printer
// and the summary detector.
type Instruction byte

const (
	InstructionTakeFromWorktop Instruction = iota
	InstructionTakeNonFungiblesFromWorktop
	InstructionTakeAllFromWorktop
	InstructionReturnToWorktop
	InstructionAssertWorktopContains
	InstructionAssertWorktopContainsNonFungibles
	InstructionPopFromAuthZone
	InstructionPushToAuthZone
	InstructionClearAuthZone
	InstructionClearSignatureProofs
	InstructionCreateProofFromAuthZone
	InstructionCreateProofFromAuthZoneOfAmount
	InstructionCreateProofFromAuthZoneOfNonFungibles
	InstructionCreateProofFromAuthZoneOfAll
	InstructionCreateProofFromBucket
	InstructionCreateProofFromBucketOfAmount
	InstructionCreateProofFromBucketOfNonFungibles
	InstructionCreateProofFromBucketOfAll
	InstructionCloneProof
	InstructionDropProof
	InstructionDropAllProofs
	InstructionDropAuthZoneProofs
	InstructionDropAuthZoneSignatureProofs
	InstructionBurnResource
	InstructionCallFunction
	InstructionCallMethod
	InstructionCallRoyaltyMethod
	InstructionCallMetadataMethod
	InstructionCallRoleAssignmentMethod
	InstructionCallDirectVaultMethod
	InstructionPublishPackage
	InstructionPublishPackageAdvanced
	InstructionAllocateGlobalAddress
)

// name is the canonical manifest-instruction name, keyed by Instruction. The
// table is the authoritative mapping in both directions: Table below is
// built from it once at init, mirroring the reference's compile-time
// perfect map over a finite instruction set.
var name = map[Instruction]string{
	InstructionTakeFromWorktop:                       "TakeFromWorktop",
	InstructionTakeNonFungiblesFromWorktop:            "TakeNonFungiblesFromWorktop",
	InstructionTakeAllFromWorktop:                     "TakeAllFromWorktop",
	InstructionReturnToWorktop:                        "ReturnToWorktop",
	InstructionAssertWorktopContains:                  "AssertWorktopContains",
	InstructionAssertWorktopContainsNonFungibles:      "AssertWorktopContainsNonFungibles",
	InstructionPopFromAuthZone:                        "PopFromAuthZone",
	InstructionPushToAuthZone:                         "PushToAuthZone",
	InstructionClearAuthZone:                          "ClearAuthZone",
	InstructionClearSignatureProofs:                   "ClearSignatureProofs",
	InstructionCreateProofFromAuthZone:                "CreateProofFromAuthZone",
	InstructionCreateProofFromAuthZoneOfAmount:        "CreateProofFromAuthZoneOfAmount",
	InstructionCreateProofFromAuthZoneOfNonFungibles:  "CreateProofFromAuthZoneOfNonFungibles",
	InstructionCreateProofFromAuthZoneOfAll:           "CreateProofFromAuthZoneOfAll",
	InstructionCreateProofFromBucket:                  "CreateProofFromBucket",
	InstructionCreateProofFromBucketOfAmount:          "CreateProofFromBucketOfAmount",
	InstructionCreateProofFromBucketOfNonFungibles:    "CreateProofFromBucketOfNonFungibles",
	InstructionCreateProofFromBucketOfAll:             "CreateProofFromBucketOfAll",
	InstructionCloneProof:                             "CloneProof",
	InstructionDropProof:                              "DropProof",
	InstructionDropAllProofs:                          "DropAllProofs",
	InstructionDropAuthZoneProofs:                     "DropAuthZoneProofs",
	InstructionDropAuthZoneSignatureProofs:            "DropAuthZoneSignatureProofs",
	InstructionBurnResource:                           "BurnResource",
	InstructionCallFunction:                           "CallFunction",
	InstructionCallMethod:                             "CallMethod",
	InstructionCallRoyaltyMethod:                      "CallRoyaltyMethod",
	InstructionCallMetadataMethod:                     "CallMetadataMethod",
	InstructionCallRoleAssignmentMethod:               "CallRoleAssignmentMethod",
	InstructionCallDirectVaultMethod:                  "CallDirectVaultMethod",
	InstructionPublishPackage:                         "PublishPackage",
	InstructionPublishPackageAdvanced:                 "PublishPackageAdvanced",
	InstructionAllocateGlobalAddress:                  "AllocateGlobalAddress",
}

// Table maps the wire discriminator byte to its Instruction, built once
// from declaration order at init time — the Go stand-in for the reference's
// phf_map perfect hash over the finite instruction set.
var Table map[byte]Instruction

// byName supports lookups from a textual instruction name, used by tests
// and by any consumer that only has the printable form.
var byName map[string]Instruction

func init() {
	Table = make(map[byte]Instruction, len(name))
	byName = make(map[string]Instruction, len(name))
	for instr, n := range name {
		Table[byte(instr)] = instr
		byName[n] = instr
	}
}

// String returns the canonical manifest-instruction name.
func (i Instruction) String() string {
	if n, ok := name[i]; ok {
		return n
	}
	return "Unknown"
}

// FromDiscriminator looks up the instruction for a decoder TYPE_ENUM
// discriminator byte.
func FromDiscriminator(b byte) (Instruction, bool) {
	i, ok := Table[b]
	return i, ok
}

// FromName looks up the instruction for its canonical textual name.
func FromName(s string) (Instruction, bool) {
	i, ok := byName[s]
	return i, ok
}
