package wasmdesc

// ReadLEB128u reads an unsigned 32-bit LEB128 value at off, returning the
// value and its encoded byte length. A truncated or overlong encoding
// returns length 0.
func ReadLEB128u(buf []byte, off int) (uint32, int) {
	var result uint32
	var shift uint
	for i := off; i < len(buf); i++ {
		b := buf[i]
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, i - off + 1
		}
		shift += 7
		if shift >= 35 {
			return 0, 0
		}
	}
	return 0, 0
}
