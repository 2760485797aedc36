package bech32

import "testing"

func TestEncodeFromBase32Vectors(t *testing.T) {
	cases := []struct {
		hrp  string
		data []byte
		want string
	}{
		{"a", nil, "a1lqfn3a"},
		{"?", nil, "?1v759aa"},
		{
			"abcdef",
			[]byte{31, 30, 29, 28, 27, 26, 25, 24, 23, 22, 21, 20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
			"abcdef1l7aum6echk45nj3s0wdvt2fg8x9yrzpqzd3ryx",
		},
		{
			"split",
			[]byte{24, 23, 25, 24, 22, 28, 1, 16, 11, 29, 8, 25, 23, 29, 19, 13, 16, 23, 29, 22, 25, 28, 1, 16, 11, 3, 25, 29, 27, 25, 3, 3, 29, 19, 11, 25, 3, 3, 25, 13, 24, 29, 1, 25, 3, 3, 25, 13},
			"split1checkupstagehandshakeupstreamerranterredcaperredlc445v",
		},
		{
			"lntb",
			[]byte{9, 1, 18, 22, 24, 27, 3, 15, 4, 1, 11, 22, 30, 28, 19, 12, 12, 16, 16, 16},
			"lntb1fpjkcmr0yptk7unvvsssm7flcy",
		},
	}

	for _, c := range cases {
		got, err := EncodeFromBase32(c.hrp, c.data)
		if err != nil {
			t.Fatalf("EncodeFromBase32(%q): %v", c.hrp, err)
		}
		if got != c.want {
			t.Errorf("EncodeFromBase32(%q) = %q, want %q", c.hrp, got, c.want)
		}
	}
}

func TestHRPValidation(t *testing.T) {
	if _, err := EncodeFromBase32("", []byte{1, 2, 3, 4}); err != ErrInvalidHrpLen {
		t.Errorf("expected ErrInvalidHrpLen, got %v", err)
	}
	if _, err := EncodeFromBase32("A", []byte{1, 2, 3, 4}); err != ErrUpperCaseNotSupported {
		t.Errorf("expected ErrUpperCaseNotSupported, got %v", err)
	}
}

func TestEncodeByteExpansion(t *testing.T) {
	got, err := Encode("a", nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got != "a1lqfn3a" {
		t.Errorf("Encode(a, nil) = %q, want a1lqfn3a", got)
	}
}
