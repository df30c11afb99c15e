package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Micros converts a microsecond count to a time.Duration.
func Micros[T ~uint8 | ~uint16 | ~uint32](us T) time.Duration {
	return time.Duration(us) * time.Microsecond
}
