package mathx

import "testing"

func TestMin(t *testing.T) {
	if got := Min[uint32](500_000, 65535); got != 65535 {
		t.Fatalf("Min got %d", got)
	}
	if got := Min(-1, 3); got != -1 {
		t.Fatalf("Min signed got %d", got)
	}
}

func TestSaturatingArithmetic(t *testing.T) {
	cases := []struct {
		a, b, want uint8
	}{
		{125, 1, 126},
		{254, 1, 255},
		{255, 1, 255},
		{200, 100, 255},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := AddSat(tc.a, tc.b, 255); got != tc.want {
			t.Fatalf("AddSat(%d,%d)=%d want %d", tc.a, tc.b, got, tc.want)
		}
	}
	if got := AddSat[uint8](10, 5, 12); got != 12 {
		t.Fatalf("AddSat custom ceiling got %d", got)
	}
	if got := SubSat[uint8](1, 2); got != 0 {
		t.Fatalf("SubSat underflow got %d", got)
	}
	if got := SubSat[uint8](125, 1); got != 124 {
		t.Fatalf("SubSat got %d", got)
	}
}

func TestRoundDiv(t *testing.T) {
	if got := RoundDiv[uint32](1_000_000, 880); got != 1136 {
		t.Fatalf("RoundDiv got %d", got)
	}
	if got := RoundDiv[uint32](5, 0); got != 0 {
		t.Fatalf("RoundDiv by zero got %d", got)
	}
}
