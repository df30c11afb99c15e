package errcode

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	Unsupported    Code = "unsupported"
	InvalidParams  Code = "invalid_params"
	InvalidPayload Code = "invalid_payload"
	InvalidMode    Code = "invalid_mode"

	UnknownPin Code = "unknown_pin"
	PinInUse   Code = "pin_in_use"
	Conflict   Code = "conflict"

	// Reset is returned by the main loop once the bootloader reset has been
	// requested. On hardware the call never comes back.
	Reset Code = "reset"

	Error Code = "error" // generic fallback
)

// E keeps an operation name, a message and a cause alongside the Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap returns an *E for op carrying code c and message msg.
func Wrap(c Code, op, msg string) error {
	return &E{C: c, Op: op, Msg: msg}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
