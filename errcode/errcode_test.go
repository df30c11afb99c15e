package errcode

import (
	"errors"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":             OK,
		"unsupported":    Unsupported,
		"invalid_params": InvalidParams,
		"unknown_pin":    UnknownPin,
		"pin_in_use":     PinInUse,
		"reset":          Reset,
		"error":          Error,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatalf("Of(nil) != OK")
	}
	if Of(PinInUse) != PinInUse {
		t.Fatalf("Of(Code) should return the code itself")
	}
	wrapped := Wrap(InvalidParams, "config", "cycles out of range")
	if Of(wrapped) != InvalidParams {
		t.Fatalf("Of(*E) got %q", Of(wrapped))
	}
	if got := wrapped.Error(); got != "config: invalid_params: cycles out of range" {
		t.Fatalf("E.Error() got %q", got)
	}
	if Of(errors.New("boom")) != Error {
		t.Fatalf("plain errors should map to Error")
	}
}

func TestEUnwrap(t *testing.T) {
	cause := errors.New("cause")
	e := &E{C: Conflict, Err: cause}
	if !errors.Is(e, cause) {
		t.Fatalf("errors.Is should see the wrapped cause")
	}
}
