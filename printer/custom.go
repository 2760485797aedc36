package printer

import (
	"fmt"

	"github.com/rdx-hw/ledger-core/address"
	"github.com/rdx-hw/ledger-core/decimal"
	"github.com/rdx-hw/ledger-core/decoder"
)

// formatDecimal mirrors DecimalParameterPrinter::end.
func formatDecimal(data []byte) string {
	v, err := decimal.FromBytes(data)
	if err != nil {
		return "Decimal(<invalid value>)"
	}
	return "Decimal(" + v.String() + ")"
}

// formatPreciseDecimal mirrors PreciseDecimalParameterPrinter::end.
func formatPreciseDecimal(data []byte) string {
	v, err := decimal.PreciseFromBytes(data)
	if err != nil {
		return "PreciseDecimal(<invalid value>)"
	}
	return "PreciseDecimal(" + v.String() + ")"
}

// formatAddress mirrors AddressParameterPrinter::end: validates the
// 30-byte body, resolves the HRP prefix from the entity discriminant, and
// Bech32m-encodes against the session's network id.
func formatAddress(data []byte, networkID address.NetworkID) string {
	var a address.Address
	if !a.CopyFromSlice(data) {
		return "Invalid address format"
	}
	encoded, err := a.Format(networkID)
	if err != nil {
		return "Address(unknown type)"
	}
	return "Address(" + encoded + ")"
}

// formatNonFungibleLocalID dispatches on the inner discriminant captured by
// EventParameterDiscriminator, mirroring NonFungibleLocalIdParameterPrinter.
func formatNonFungibleLocalID(innerDiscriminator byte, data []byte) string {
	switch innerDiscriminator {
	case decoder.NFLString:
		if len(data) == 0 || len(data) > 64 {
			return "<invalid non-fungible local id string>"
		}
		return "<" + formatString(data) + ">"
	case decoder.NFLInteger:
		if len(data) != decoder.NFLIntegerLen {
			return "<invalid non-fungible local id integer>"
		}
		be := make([]byte, len(data))
		copy(be, data)
		// Wire is big-endian for the integer-discriminated id, per the
		// reference's u64::from_be_bytes.
		var v uint64
		for _, b := range be {
			v = v<<8 | uint64(b)
		}
		return fmt.Sprintf("#%d#", v)
	case decoder.NFLBytes:
		if len(data) == 0 || len(data) > 64 {
			return "<invalid non-fungible local id bytes>"
		}
		return "[" + hexString(data) + "]"
	case decoder.NFLRUID:
		if len(data) != decoder.NFLRUIDLen {
			return "<invalid non-fungible local id UUID>"
		}
		return "{" + hexString(data[0:8]) + "-" + hexString(data[8:16]) + "-" +
			hexString(data[16:24]) + "-" + hexString(data[24:32]) + "}"
	default:
		return "Id(<unknown type of non-fungible local id>)"
	}
}

// formatBlobOrExpression renders blobs/expressions as hex, per spec.md §4.4.
func formatBlobOrExpression(data []byte) string {
	return hexString(data)
}
