package bigint

import "testing"

func fromU128(hi, lo uint64) BigInt {
	limbs := make([]uint32, 8)
	limbs[0] = uint32(lo)
	limbs[1] = uint32(lo >> 32)
	limbs[2] = uint32(hi)
	limbs[3] = uint32(hi >> 32)
	return FromLimbs(limbs)
}

func TestFormatDecimalScale18(t *testing.T) {
	cases := []struct {
		lo   uint64
		want string
	}{
		{1, "0.000000000000000001"},
		{1000000000000000, "0.001"},
		{10000000000000000, "0.01"},
		{100000000000000000, "0.1"},
		{1000000000000000000, "1"},
		{1200000000000000000, "1.2"},
		{123456789123456789, "0.123456789123456789"},
	}

	for _, c := range cases {
		b := fromU128(0, c.lo)
		got := Format(b, 18)
		if got != c.want {
			t.Errorf("Format(%d) = %q, want %q", c.lo, got, c.want)
		}
	}
}

func TestFormatMaxMin(t *testing.T) {
	max := FromLimbs([]uint32{
		0xFFFF_FFFF, 0xFFFF_FFFF, 0xFFFF_FFFF, 0xFFFF_FFFF,
		0xFFFF_FFFF, 0xFFFF_FFFF, 0xFFFF_FFFF, 0x7FFF_FFFF,
	})
	want := "57896044618658097711785492504343953926634992332820282019728.792003956564819967"
	if got := Format(max, 18); got != want {
		t.Errorf("Format(MAX) = %q, want %q", got, want)
	}

	min := FromLimbs([]uint32{
		0, 0, 0, 0, 0, 0, 0, 0x8000_0000,
	})
	if !min.IsNegative() {
		t.Fatal("MIN should be negative")
	}
	wantMin := "-57896044618658097711785492504343953926634992332820282019728.792003956564819968"
	if got := Format(min, 18); got != wantMin {
		t.Errorf("Format(MIN) = %q, want %q", got, wantMin)
	}
}

func TestFromBytesRoundtrip(t *testing.T) {
	raw := []byte{
		0x00, 0x00, 0x78, 0x62, 0xa4, 0x41, 0xa7, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	b, err := FromBytes(256, raw)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got := Format(b, 18); got != "1.2" {
		t.Errorf("Format = %q, want 1.2", got)
	}
}

func TestFromBytesLengthErrors(t *testing.T) {
	if _, err := FromBytes(256, make([]byte, 31)); err != ErrTooShortInput {
		t.Errorf("expected ErrTooShortInput, got %v", err)
	}
	if _, err := FromBytes(256, make([]byte, 33)); err != ErrTooLongInput {
		t.Errorf("expected ErrTooLongInput, got %v", err)
	}
}

func TestAccumulate(t *testing.T) {
	a := fromU128(0, 10)
	b := fromU128(0, 5)
	a.Accumulate(b)
	if got := Format(a, 0); got != "15" {
		t.Errorf("Accumulate result = %q, want 15", got)
	}
}
