package bigint

// Format renders input as a decimal string with an implicit decimal point
// inserted scale digits from the right, matching the reference
// format_big_int routine exactly (including its digit-index arithmetic).
func Format(input BigInt, scale int) string {
	bcd := input.AsBCD()

	var out []byte

	if bcd.IsZero() {
		return "0"
	}

	if bcd.IsNegative() {
		out = append(out, '-')
	}

	if bcd.LastNonZero() >= scale {
		for i := bcd.FirstNonZero(); i >= scale; i-- {
			out = append(out, '0'+bcd.Digit(i))
		}
		for i := bcd.LastNonZero(); i < scale; i++ {
			out = append(out, '0')
		}
		return string(out)
	}

	if bcd.FirstNonZero() < scale {
		out = append(out, '0', '.')
		for i := 0; i < scale-bcd.FirstNonZero()-1; i++ {
			out = append(out, '0')
		}
		for i := bcd.FirstNonZero(); i >= bcd.LastNonZero(); i-- {
			out = append(out, '0'+bcd.Digit(i))
		}
		return string(out)
	}

	for i := bcd.FirstNonZero(); i >= scale; i-- {
		out = append(out, '0'+bcd.Digit(i))
	}
	out = append(out, '.')
	for i := scale - 1; i >= bcd.LastNonZero(); i-- {
		out = append(out, '0'+bcd.Digit(i))
	}
	return string(out)
}
