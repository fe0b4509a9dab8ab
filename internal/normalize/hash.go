package normalize

import "unicode/utf16"

// StringHash is the 32-bit polynomial hash (h = 31*h + c over UTF-16 code
// units) the upstream ids were historically derived from.
func StringHash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(c)
	}
	return h
}

// AbsHash is StringHash widened to int64 and made non-negative.
func AbsHash(s string) int64 {
	h := int64(StringHash(s))
	if h < 0 {
		return -h
	}
	return h
}
