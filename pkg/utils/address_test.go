package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumAddress(t *testing.T) {
	got, err := ChecksumAddress("0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359")
	require.NoError(t, err)
	assert.Equal(t, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359", got)

	// Already checksummed input is a fixed point
	again, err := ChecksumAddress(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestChecksumAddressRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "0x123", "not-an-address", "0xzz6916095ca1df60bb79ce92ce3ea74c37c5d359"} {
		_, err := ChecksumAddress(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCanonicalPairOrdering(t *testing.T) {
	a := "0x00000000000000000000000000000000000000Aa"
	b := "0x00000000000000000000000000000000000000bB"

	t0, t1, aIsToken0 := CanonicalPair(a, b)
	assert.Equal(t, a, t0)
	assert.Equal(t, b, t1)
	assert.True(t, aIsToken0)

	// Commutative: swapped input yields the same canonical pair
	t0r, t1r, aIsToken0r := CanonicalPair(b, a)
	assert.Equal(t, t0, t0r)
	assert.Equal(t, t1, t1r)
	assert.False(t, aIsToken0r)
}

func TestCanonicalPairIgnoresChecksumCase(t *testing.T) {
	lower := "0x00000000000000000000000000000000000000aa"
	upper := "0x00000000000000000000000000000000000000AA"
	t0, _, _ := CanonicalPair(upper, lower)
	assert.Equal(t, upper, t0)
}
