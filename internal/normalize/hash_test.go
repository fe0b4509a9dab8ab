package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringHash_KnownValues(t *testing.T) {
	assert.Equal(t, int32(0), StringHash(""))
	assert.Equal(t, int32(96354), StringHash("abc"))
	assert.Equal(t, int32(99162322), StringHash("hello"))
	assert.Equal(t, int32(-2147483648), StringHash("polygenelubricants"))
}

func TestAbsHash_NeverNegative(t *testing.T) {
	assert.Equal(t, int64(2147483648), AbsHash("polygenelubricants"))
	assert.Equal(t, int64(99162322), AbsHash("hello"))
}

func TestStringHash_SurrogatePairs(t *testing.T) {
	// one rune outside the BMP hashes as two UTF-16 code units
	assert.Equal(t, int32(31*0xD83D+0xDE00), StringHash("😀"))
}
