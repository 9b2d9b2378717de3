package hmi

// itoa converts an integer to a string without using fmt package
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	if negative {
		pos--
		buf[pos] = '-'
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

// FormatFixed renders v with frac fraction digits, rounding half away
// from zero
func FormatFixed(v float64, frac uint8) string {
	scale := 1
	for i := uint8(0); i < frac; i++ {
		scale *= 10
	}
	negative := v < 0
	if negative {
		v = -v
	}
	n := int(v*float64(scale) + 0.5)
	s := itoa(n / scale)
	if frac > 0 {
		f := itoa(n % scale)
		for len(f) < int(frac) {
			f = "0" + f
		}
		s += "." + f
	}
	if negative && n != 0 {
		s = "-" + s
	}
	return s
}

// formatDuration renders seconds as hh:mm:ss
func formatDuration(sec uint32) string {
	h := sec / 3600
	m := (sec / 60) % 60
	s := sec % 60
	return pad2(h) + ":" + pad2(m) + ":" + pad2(s)
}

func pad2(n uint32) string {
	if n < 10 {
		return "0" + utoa(n)
	}
	return utoa(n)
}

// padLeft right-aligns s in a field of width characters
func padLeft(s string, width int) string {
	for len(s) < width {
		s = " " + s
	}
	return s
}
