package rans

import (
	"encoding/binary"

	"github.com/snowping00/trisplit"
)

// EncodeReconstructedStream implements the "2-bit rewrite" from spec
// section 4.7: each symbol of recon (already the 0/1 representation used
// by separation.Streams.ReconstructedStream) is rewritten as two
// rANS-coded bits before compression, exploiting the common/rare skew
// that the separation stage has already identified. The prefix bit is
// always 0; the payload bit is 0 for the common symbol and 1 for the rare
// one.
func EncodeReconstructedStream(recon []byte, isPlaceholderCommon bool) []byte {
	if len(recon) == 0 {
		return nil
	}
	var common byte
	if isPlaceholderCommon {
		common = 1
	}

	var nCommon, nRare uint32
	for _, s := range recon {
		if s == common {
			nCommon++
		} else {
			nRare++
		}
	}
	totalBits := uint32(len(recon)) * 2

	freq := [2]uint32{2*nCommon + nRare, nRare}
	if freq[1] == 0 {
		out := make([]byte, headerSize)
		binary.LittleEndian.PutUint32(out[0:4], totalBits)
		binary.LittleEndian.PutUint32(out[4:8], ProbScale)
		return out
	}

	norm := normalize(freq, totalBits)
	payload := encodeReconBinary(recon, common, norm)
	out := make([]byte, headerSize+len(payload))
	binary.LittleEndian.PutUint32(out[0:4], totalBits)
	binary.LittleEndian.PutUint32(out[4:8], norm[0])
	copy(out[headerSize:], payload)
	return out
}

// encodeReconBinary LIFO-encodes recon as bit pairs: (0,0) for common
// symbols, (0,1) for rare ones.
func encodeReconBinary(recon []byte, common byte, freq [2]uint32) []byte {
	totalBits := len(recon) * 2
	bufSize := totalBits/8 + totalBits/40 + 16
	buf := make([]byte, bufSize)
	pos := bufSize

	x := uint32(ransByteL)
	put := func(start, f uint32) {
		xMax := ((uint32(ransByteL) >> ScaleBits) << 8) * f
		for x >= xMax {
			pos--
			buf[pos] = byte(x)
			x >>= 8
		}
		x = (x/f)<<ScaleBits + x%f + start
	}
	for i := len(recon) - 1; i >= 0; i-- {
		if recon[i] == common {
			put(0, freq[0])
			put(0, freq[0])
		} else {
			put(freq[0], freq[1])
			put(0, freq[0])
		}
	}
	pos -= 4
	buf[pos+0] = byte(x)
	buf[pos+1] = byte(x >> 8)
	buf[pos+2] = byte(x >> 16)
	buf[pos+3] = byte(x >> 24)
	return buf[pos:]
}

// DecodeReconstructedStream reverses EncodeReconstructedStream. Per spec
// section 4.7, a prefix bit that breaks the "prefix is always 0"
// discipline is flagged through trisplit.Warnf but decoding continues
// rather than aborting the block.
func DecodeReconstructedStream(data []byte, isPlaceholderCommon bool) []byte {
	if len(data) == 0 {
		return nil
	}
	if len(data) < headerSize {
		panic(Error("header too small"))
	}
	totalBits := binary.LittleEndian.Uint32(data[0:4])
	f0 := binary.LittleEndian.Uint32(data[4:8])
	if totalBits == 0 {
		return nil
	}

	var common, rare byte
	if isPlaceholderCommon {
		common, rare = 1, 0
	} else {
		common, rare = 0, 1
	}

	if f0 >= ProbScale {
		if totalBits%2 != 0 {
			panic(Error("odd total_bits for a common-only reconstructed stream"))
		}
		out := make([]byte, totalBits/2)
		for i := range out {
			out[i] = common
		}
		return out
	}

	freq := [2]uint32{f0, ProbScale - f0}
	return decodeReconBinary(data[headerSize:], totalBits, freq, common, rare)
}

func decodeReconBinary(data []byte, totalBits uint32, freq [2]uint32, common, rare byte) []byte {
	if len(data) < 4 {
		panic(Error("rans stream truncated before state word"))
	}
	x := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	ptr := 4
	mask := uint32(ProbScale - 1)

	get := func() (sym byte, start, f uint32) {
		cf := x & mask
		if cf < freq[0] {
			return 0, 0, freq[0]
		}
		return 1, freq[0], freq[1]
	}
	advance := func(start, f uint32) {
		cf := x & mask
		x = f*(x>>ScaleBits) + cf - start
		for x < ransByteL {
			if ptr >= len(data) {
				panic(Error("rans stream truncated mid-decode"))
			}
			x = x<<8 | uint32(data[ptr])
			ptr++
		}
	}

	out := make([]byte, totalBits/2)
	for i := range out {
		prefix, ps, pf := get()
		advance(ps, pf)
		if prefix != 0 {
			trisplit.Warnf("rans: reconstructed-stream prefix bit was %d, want 0", prefix)
		}
		payload, qs, qf := get()
		advance(qs, qf)
		if payload == 1 {
			out[i] = rare
		} else {
			out[i] = common
		}
	}
	return out
}
