package timex

import (
	"testing"
	"time"
)

func TestMicros(t *testing.T) {
	if got := Micros(uint16(2273)); got != 2273*time.Microsecond {
		t.Fatalf("Micros got %v", got)
	}
	if got := Micros(uint8(0)); got != 0 {
		t.Fatalf("Micros(0) got %v", got)
	}
}
