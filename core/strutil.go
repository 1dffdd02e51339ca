package core

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	return i64toa(int64(n))
}

// i64toa converts a 64-bit integer to a string
func i64toa(n int64) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	u := uint64(n)
	if negative {
		u = uint64(-n)
	}

	var buf [20]byte
	pos := len(buf)
	for u > 0 {
		pos--
		buf[pos] = byte('0' + u%10)
		u /= 10
	}

	if negative {
		return "-" + string(buf[pos:])
	}
	return string(buf[pos:])
}

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[pos:])
}

// formatMicros renders a microsecond clock as seconds with millisecond
// precision, e.g. 1234567 -> "1.234"
func formatMicros(us uint32) string {
	ms := (us / 1000) % 1000
	frac := [3]byte{
		byte('0' + ms/100),
		byte('0' + (ms/10)%10),
		byte('0' + ms%10),
	}
	return utoa(us/1000000) + "." + string(frac[:])
}
