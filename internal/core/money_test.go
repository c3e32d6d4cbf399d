package core

import "testing"

func TestParseSignedCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1000", 100000, true},
		{"0", 0, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"-867", -86700, true},
		{"-12.34", -1234, true},
		{"+42", 4200, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{".5", 50, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"1.", 0, false},
		{"-", 0, false},
		{"", 0, false},
		{"12a", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseSignedCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyDollars(t *testing.T) {
	if got := (Money{Cents: -86700}).Dollars(); got != -867.0 {
		t.Fatalf("expected -867.0, got %v", got)
	}
	if got := (Money{Cents: 123}).Dollars(); got != 1.23 {
		t.Fatalf("expected 1.23, got %v", got)
	}
}
