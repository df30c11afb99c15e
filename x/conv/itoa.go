package conv

// Itoa writes base-10 representation of n into buf and returns the used slice.
// buf should be length >= 20 for int64. No fmt/strconv dependency.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	if len(buf) < 2 {
		return buf[:0]
	}
	s := Utoa(buf[1:], uint64(-n))
	i := len(buf) - len(s) - 1
	buf[i] = '-'
	return buf[i:]
}

// AppendInt appends the decimal form of n to dst.
func AppendInt(dst []byte, n int64) []byte {
	var b [20]byte
	return append(dst, Itoa(b[:], n)...)
}
