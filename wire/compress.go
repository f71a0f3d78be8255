// Compression implements the server's LZ-style scheme: a 4-byte
// uncompressed-length prefix, then a stream of 8-token blocks
// each preceded by one flag byte (LSB-first: bit=0 literal, bit=1
// back-reference), with back-references resolved through a 256-entry
// hash table keyed by the two bytes most recently produced.
package wire

import (
	"encoding/binary"
	"fmt"

	"qgo/errs"
)

// hashPair folds two output bytes into a 0..255 hash-table slot. This
// mirrors the server's requirement that the table be indexed by "the
// two-byte sequence just produced" — any stable hash works as long as
// compress and decompress agree, and this one does by construction
// (both sides call the same function).
func hashPair(a, b byte) byte {
	return byte((int(a) ^ (int(b) << 4)) & 0xff)
}

// DecompressLZ inflates a compressed frame body to the original
// serialized TV bytes. It is the mandatory half of the codec's
// compression support — every compressed frame the server sends must
// decompress correctly.
func DecompressLZ(src []byte) ([]byte, error) {
	if len(src) < 4 {
		return nil, fmt.Errorf("compressed body shorter than the length prefix")
	}
	uncompressedLen := int(binary.LittleEndian.Uint32(src[0:4]))
	if uncompressedLen == 0 {
		return []byte{}, nil
	}
	dst := make([]byte, uncompressedLen)

	aa := make([]int, 256)
	d := 4    // read cursor into src
	s := 0    // write cursor into dst
	p := 0    // hash-table fill-in cursor, trails s
	flags := 0
	bit := 0 // which of the 8 tokens in the current flag byte we're on

	for s < uncompressedLen {
		if bit == 0 {
			if d >= len(src) {
				return nil, fmt.Errorf("truncated compressed stream: missing flag byte at output offset %d", s)
			}
			flags = int(src[d])
			d++
		}

		if flags&(1<<uint(bit)) != 0 {
			if d+1 >= len(src) {
				return nil, fmt.Errorf("truncated compressed stream: missing back-reference pair at output offset %d", s)
			}
			hashIdx := src[d]
			extra := int(src[d+1])
			d += 2

			ref := aa[hashIdx]
			if ref < 0 || ref+1 >= s {
				return nil, fmt.Errorf("back-reference at output offset %d points outside produced output", s)
			}
			runLen := 2 + extra
			if s+runLen > uncompressedLen {
				return nil, fmt.Errorf("back-reference run overruns declared uncompressed length")
			}
			for i := 0; i < runLen; i++ {
				dst[s+i] = dst[ref+i]
			}
			s += runLen
		} else {
			if d >= len(src) {
				return nil, fmt.Errorf("truncated compressed stream: missing literal byte at output offset %d", s)
			}
			dst[s] = src[d]
			d++
			s++
		}

		for p+1 < s {
			aa[hashPair(dst[p], dst[p+1])] = p
			p++
		}

		bit++
		if bit == 8 {
			bit = 0
		}
	}
	return dst, nil
}

// CompressLZ is the optional encoder half: the server rarely requires
// client-side compression, but when used it must produce a stream
// DecompressLZ can invert exactly. This is a straightforward greedy
// matcher against the same 256-entry hash table DecompressLZ uses.
func CompressLZ(src []byte) ([]byte, error) {
	out := make([]byte, 4, len(src)+len(src)/8+8)
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(src)))

	aa := make([]int, 256)
	for i := range aa {
		aa[i] = -1
	}

	var flagByte byte
	var pendingTokens [][]byte
	flushTokens := func() {
		out = append(out, flagByte)
		for _, t := range pendingTokens {
			out = append(out, t...)
		}
		flagByte = 0
		pendingTokens = pendingTokens[:0]
	}

	// p trails s and back-fills aa exactly the way DecompressLZ does,
	// so a back-reference byte this function emits resolves to the
	// same table entry DecompressLZ will have when it replays the
	// token — the two must agree on hash-table *timing*, not just the
	// hash function, for the stream to round-trip.
	p := 0
	s := 0
	bit := uint(0)
	for s < len(src) {
		matched := false
		if s+1 < len(src) {
			h := hashPair(src[s], src[s+1])
			ref := aa[h]
			if ref >= 0 && ref+1 < s && src[ref] == src[s] && src[ref+1] == src[s+1] {
				run := 2
				maxRun := min(255+2, len(src)-s)
				for run < maxRun && src[ref+run] == src[s+run] {
					run++
				}
				flagByte |= 1 << bit
				pendingTokens = append(pendingTokens, []byte{h, byte(run - 2)})
				s += run
				matched = true
			}
		}
		if !matched {
			pendingTokens = append(pendingTokens, []byte{src[s]})
			s++
		}

		for p+1 < s {
			aa[hashPair(src[p], src[p+1])] = p
			p++
		}

		bit++
		if bit == 8 {
			flushTokens()
			bit = 0
		}
	}
	if bit != 0 {
		flushTokens()
	}

	if _, err := DecompressLZ(out); err != nil {
		return nil, &errs.SerializationError{Kind: "compression", Err: fmt.Errorf("compressor produced a non-self-inverting stream: %w", err)}
	}
	return out, nil
}
