package conv

// Utoa writes base-10 representation of n into buf and returns the used slice.
// buf should be length >= 20 for uint64.
func Utoa(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
		return buf[i:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return buf[i:]
}

// Digits splits an 8-bit value into its hundreds, tens and ones digits,
// e.g. 142 => 1, 4, 2.
func Digits(v uint8) (hundreds, tens, ones uint8) {
	return v / 100, (v / 10) % 10, v % 10
}

// AppendDigits appends the three decimal digits of v, zero-padded ("007").
func AppendDigits(dst []byte, v uint8) []byte {
	h, t, o := Digits(v)
	return append(dst, '0'+h, '0'+t, '0'+o)
}
