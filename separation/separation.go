// Package separation implements the structural decomposition at the heart
// of TriSplit: splitting a byte block into three statistically specialized
// binary streams, and the exact inverse that reassembles them.
//
// Every byte is viewed as four 2-bit symbols, top bits first. The symbol
// domain {00, 01, 10, 11} partitions into a mapped pair ({10, 01}, which
// carries one bit of "which value" information each) and an exceptional
// pair ({00, 11}, the rarer of which is recorded as 1 in the auxiliary
// mask). A third stream, the reconstructed stream, records for every 2-bit
// symbol which pair it came from, so the two value streams can be
// interleaved back into the original order on reconstruction.
package separation

import "github.com/snowping00/trisplit"

// Streams holds the three outputs of Separate.
type Streams struct {
	// ValueBitmap has one bit per mapped-pair symbol: 10 -> 0, 01 -> 1.
	ValueBitmap []byte
	// AuxiliaryMask has one bit per exceptional-pair symbol, encoding
	// whether that symbol equals the rarer of {00, 11}.
	AuxiliaryMask []byte
	// ReconstructedStream has one bit per 2-bit input symbol: 0 for a
	// mapped-pair position, 1 for an exceptional-pair position. Its
	// length is always 4*len(raw).
	ReconstructedStream []byte
	// AuxMask1Represents11 is true iff freq(11) <= freq(00) in the
	// source block, i.e. the rarer of {00, 11} encoded as 1 is 11.
	AuxMask1Represents11 bool
}

// Separate splits raw into its three constituent streams.
func Separate(raw []byte) Streams {
	var freqs [4]int
	for _, b := range raw {
		freqs[(b>>6)&0x3]++
		freqs[(b>>4)&0x3]++
		freqs[(b>>2)&0x3]++
		freqs[(b>>0)&0x3]++
	}

	var s Streams
	s.AuxMask1Represents11 = freqs[0b11] <= freqs[0b00]
	s.ValueBitmap = make([]byte, 0, freqs[0b10]+freqs[0b01])
	s.ReconstructedStream = make([]byte, 0, len(raw)*4)
	s.AuxiliaryMask = make([]byte, 0, freqs[0b00]+freqs[0b11])

	for _, b := range raw {
		syms := [4]byte{(b >> 6) & 0x3, (b >> 4) & 0x3, (b >> 2) & 0x3, (b >> 0) & 0x3}
		for _, sym := range syms {
			switch sym {
			case 0b10:
				s.ValueBitmap = append(s.ValueBitmap, 0)
				s.ReconstructedStream = append(s.ReconstructedStream, 0)
			case 0b01:
				s.ValueBitmap = append(s.ValueBitmap, 1)
				s.ReconstructedStream = append(s.ReconstructedStream, 0)
			case 0b00:
				s.ReconstructedStream = append(s.ReconstructedStream, 1)
				if s.AuxMask1Represents11 {
					s.AuxiliaryMask = append(s.AuxiliaryMask, 0)
				} else {
					s.AuxiliaryMask = append(s.AuxiliaryMask, 1)
				}
			case 0b11:
				s.ReconstructedStream = append(s.ReconstructedStream, 1)
				if s.AuxMask1Represents11 {
					s.AuxiliaryMask = append(s.AuxiliaryMask, 1)
				} else {
					s.AuxiliaryMask = append(s.AuxiliaryMask, 0)
				}
			}
		}
	}
	return s
}

// Reconstruct reassembles the original byte block from its three streams.
// If a side stream runs dry before reconstructedStream does, that is a
// data-corruption signal: Reconstruct warns and returns the bytes produced
// so far rather than failing outright. Likewise, if the produced length
// does not match originalSize, Reconstruct warns but still returns the
// produced bytes (spec's "enforcing, but non-fatal" variant).
func Reconstruct(valueBitmap, auxiliaryMask, reconstructedStream []byte, auxMask1Represents11 bool, originalSize uint64) []byte {
	symbolForMask0, symbolForMask1 := byte(0b11), byte(0b00)
	if auxMask1Represents11 {
		symbolForMask0, symbolForMask1 = 0b00, 0b11
	}

	twoBitChunks := make([]byte, 0, len(reconstructedStream))
	bitmapIdx, maskIdx := 0, 0

loop:
	for _, symbolType := range reconstructedStream {
		if symbolType == 0 {
			if bitmapIdx >= len(valueBitmap) {
				trisplit.Warnf("separation: value_bitmap exhausted before reconstructed_stream")
				break loop
			}
			bit := valueBitmap[bitmapIdx]
			bitmapIdx++
			if bit == 0 {
				twoBitChunks = append(twoBitChunks, 0b10)
			} else {
				twoBitChunks = append(twoBitChunks, 0b01)
			}
		} else {
			if maskIdx >= len(auxiliaryMask) {
				trisplit.Warnf("separation: auxiliary_mask exhausted before reconstructed_stream")
				break loop
			}
			bit := auxiliaryMask[maskIdx]
			maskIdx++
			if bit == 0 {
				twoBitChunks = append(twoBitChunks, symbolForMask0)
			} else {
				twoBitChunks = append(twoBitChunks, symbolForMask1)
			}
		}
	}

	final := make([]byte, 0, len(twoBitChunks)/4+1)
	for i := 0; i < len(twoBitChunks); i += 4 {
		var b byte
		if i+0 < len(twoBitChunks) {
			b |= twoBitChunks[i+0] << 6
		}
		if i+1 < len(twoBitChunks) {
			b |= twoBitChunks[i+1] << 4
		}
		if i+2 < len(twoBitChunks) {
			b |= twoBitChunks[i+2] << 2
		}
		if i+3 < len(twoBitChunks) {
			b |= twoBitChunks[i+3] << 0
		}
		final = append(final, b)
	}

	if uint64(len(final)) != originalSize {
		trisplit.Warnf("separation: reconstructed size (%d) does not match original size (%d)", len(final), originalSize)
	}
	return final
}
