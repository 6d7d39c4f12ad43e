// Package bwtpipeline composes the BWT -> MTF -> RLE -> Huffman entropy
// engine used as the alternate coder for TriSplit's reconstructed_stream,
// and its exact inverse.
//
// The on-disk envelope follows spec section 6's Huffman payload header
// exactly: primary_index, then the huffman package's own total_bits/
// code_count fields, then alphabet_size, then the serialized codebook, then
// initial_alphabet, then the payload bits. The alphabet/primary_index
// metadata is bwtpipeline's own (it belongs to the MTF/BWT stages, not to
// huffman, which stays a generic 16-bit-symbol coder), so this package
// reuses huffman's codebook/payload primitives directly rather than
// nesting one of huffman's own self-contained artifacts inside another
// header.
package bwtpipeline

import (
	"encoding/binary"

	"github.com/snowping00/trisplit/bwt"
	"github.com/snowping00/trisplit/huffman"
	"github.com/snowping00/trisplit/mtf"
	"github.com/snowping00/trisplit/rle"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "bwtpipeline: " + string(e) }

// ProcessStream runs tokens through BWT -> MTF -> RLE -> Huffman and
// returns the fully self-describing envelope: primary_index, total_bits,
// code_count, alphabet_size, codebook, initial_alphabet, and payload bits.
func ProcessStream(tokens []uint16) ([]byte, error) {
	if len(tokens) == 0 {
		out := make([]byte, headerPrefixSize)
		return out, nil
	}

	b := bwt.Apply(tokens)
	m := mtf.Apply(b)
	r, err := rle.Apply(m)
	if err != nil {
		return nil, err
	}

	freq := make(map[uint16]int)
	for _, s := range r.RleStream {
		freq[s]++
	}
	codes := huffman.BuildCodes(freq)
	codeOf := make(map[uint16]huffman.Code, len(codes))
	for _, c := range codes {
		codeOf[c.Symbol] = c
	}
	payload, totalBits := huffman.EncodePayload(r.RleStream, codeOf)
	codebook := huffman.SerializeCodebook(codes)

	alphabetSize := len(r.InitialAlphabet)
	alphabetBytes := make([]byte, 2*alphabetSize)
	for i, s := range r.InitialAlphabet {
		binary.LittleEndian.PutUint16(alphabetBytes[2*i:], s)
	}

	out := make([]byte, headerPrefixSize+len(codebook)+len(alphabetBytes)+len(payload))
	off := 0
	binary.LittleEndian.PutUint32(out[off:], r.PrimaryIndex)
	off += 4
	binary.LittleEndian.PutUint64(out[off:], totalBits)
	off += 8
	binary.LittleEndian.PutUint16(out[off:], uint16(len(codes)))
	off += 2
	binary.LittleEndian.PutUint16(out[off:], uint16(alphabetSize))
	off += 2
	off += copy(out[off:], codebook)
	off += copy(out[off:], alphabetBytes)
	copy(out[off:], payload)
	return out, nil
}

// headerPrefixSize is primary_index(4) + total_bits(8) + code_count(2) +
// alphabet_size(2), the fixed portion before the variable-length codebook,
// initial_alphabet, and payload sections.
const headerPrefixSize = 4 + 8 + 2 + 2

// InverseProcessStream reverses ProcessStream. It returns ErrCorrupt-style
// errors (via panic/recover, mirroring the rest of this repository) for a
// truncated header, codebook, or payload, and for any corruption the
// underlying mtf/rle stages detect.
func InverseProcessStream(data []byte) (tokens []uint16, err error) {
	defer errRecover(&err)

	if len(data) < headerPrefixSize {
		panic(Error("header too small"))
	}
	off := 0
	primaryIndex := binary.LittleEndian.Uint32(data[off:])
	off += 4
	totalBits := binary.LittleEndian.Uint64(data[off:])
	off += 8
	codeCount := binary.LittleEndian.Uint16(data[off:])
	off += 2
	alphabetSize := binary.LittleEndian.Uint16(data[off:])
	off += 2

	if totalBits == 0 && codeCount == 0 && alphabetSize == 0 {
		return nil, nil
	}

	codes, consumed := huffman.DeserializeCodebook(data[off:], int(codeCount))
	off += consumed

	if off+2*int(alphabetSize) > len(data) {
		panic(Error("initial_alphabet truncated"))
	}
	alphabet := make([]uint16, alphabetSize)
	for i := range alphabet {
		alphabet[i] = binary.LittleEndian.Uint16(data[off+2*i:])
	}
	off += 2 * int(alphabetSize)

	rleStream := huffman.DecodePayload(data[off:], totalBits, codes)

	r := rle.Result{RleStream: rleStream, InitialAlphabet: alphabet, PrimaryIndex: primaryIndex}
	m := rle.InverseApply(r)
	b := mtf.InverseApply(m)
	return bwt.InverseApply(b), nil
}
