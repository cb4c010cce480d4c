package boreholeml

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCharset(t *testing.T) {
	for _, code := range []string{"utf8", "utf16", "8859part1", "usAscii", "shiftJIS", "GB2312"} {
		assert.True(t, ValidCharset(code), code)
	}
	for _, code := range []string{"utf99", "UTF8", "latin1", ""} {
		assert.False(t, ValidCharset(code), code)
	}
}

func TestCharsetDescription(t *testing.T) {
	desc, err := CharsetDescription("utf8")
	require.NoError(t, err)
	assert.Contains(t, desc, "8-bit")

	desc, err = CharsetDescription("ebcdic")
	require.NoError(t, err)
	assert.Contains(t, desc, "IBM")
}

func TestCharsetDescriptionUnknownCode(t *testing.T) {
	_, err := CharsetDescription("utf99")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCode))
}

func TestCharsetsSortedAndClosed(t *testing.T) {
	codes := Charsets()
	assert.True(t, sort.StringsAreSorted(codes))
	assert.Len(t, codes, 28)
	assert.Contains(t, codes, "8859part16")
	assert.NotContains(t, codes, "8859part12")

	// The catalog is closed: the returned slice is a copy.
	codes[0] = "mutated"
	assert.NotContains(t, Charsets(), "mutated")
}
