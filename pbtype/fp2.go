package pbtype

// DecodeFP2 decodes a 2-byte BMP5 FP2 ("Campbell floating point") value.
// Bit 15 is the sign, bits 13-14 select a decimal exponent (0..3, meaning
// the low bits are divided by 1, 10, 100 or 1000), and bits 0-12 hold the
// magnitude. FP2 has no standard integer layout, so it is decode-only:
// loggers never accept an FP2-encoded value over the wire (§3, §8).
//
// Worked examples (§8): 0x1C49 -> 7241.0, 0x9C49 -> -7241.0,
// 0x3C49 -> 724.1, 0x5C49 -> 72.41.
func DecodeFP2(word uint16) (float64, error) {
	sign := 1.0
	if word&0x8000 != 0 {
		sign = -1.0
	}
	exp := (word >> 13) & 0x3
	mantissa := float64(word & 0x1fff)
	var divisor float64
	switch exp {
	case 0:
		divisor = 1
	case 1:
		divisor = 10
	case 2:
		divisor = 100
	case 3:
		divisor = 1000
	}
	return sign * mantissa / divisor, nil
}
