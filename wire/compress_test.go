package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("hello, world"),
		bytes.Repeat([]byte("ab"), 500),
		bytes.Repeat([]byte{0x01}, 10_000),
		[]byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again"),
	}
	for _, src := range cases {
		compressed, err := CompressLZ(src)
		require.NoError(t, err)
		got, err := DecompressLZ(compressed)
		require.NoError(t, err)
		assert.Equal(t, src, got)
	}
}

func TestDecompressLongUniformVector(t *testing.T) {
	// A 10,000-long vector of long 1s, encoded then compressed, should
	// decompress back to the original serialized bytes.
	elems := make([]any, 10_000)
	for i := range elems {
		elems[i] = Long(1)
	}
	v := Vector{K: KLong, Elems: elems}
	encoded, err := Encode(v)
	require.NoError(t, err)

	compressed, err := CompressLZ(encoded)
	require.NoError(t, err)

	decompressed, err := DecompressLZ(compressed)
	require.NoError(t, err)
	require.Equal(t, encoded, decompressed)
}

func TestDecompressKnownStream(t *testing.T) {
	// Hand-assembled stream for the output "abababab": two literals
	// ('a', 'b'), then one back-reference through hash slot
	// hashPair('a','b') = 0x41 with run length 2+4. The flag byte 0x04
	// marks the third token as the back-reference.
	src := []byte{
		8, 0, 0, 0, // uncompressed length
		0x04,       // flags: tokens 0,1 literal; token 2 back-reference
		'a', 'b',   // literals
		0x41, 0x04, // back-reference: slot 0x41, extra run 4
	}
	got, err := DecompressLZ(src)
	require.NoError(t, err)
	assert.Equal(t, []byte("abababab"), got)
}

func TestDecompressRejectsTruncatedStream(t *testing.T) {
	_, err := DecompressLZ([]byte{10, 0, 0, 0})
	assert.Error(t, err)
}
