// Package block assembles and disassembles a single compressed TriSplit
// block: the fixed header of spec section 6 followed by three payloads
// (the rANS-compressed value_bitmap, the rANS-compressed auxiliary_mask,
// and the reconstructed_stream payload under whichever of the two entropy
// engines produced the smaller result for this block).
//
// No state is kept between blocks (spec section 5): every call reads or
// writes one self-contained buffer.
package block

import (
	"encoding/binary"
	"runtime"

	"github.com/snowping00/trisplit/bwtpipeline"
	"github.com/snowping00/trisplit/rans"
	"github.com/snowping00/trisplit/separation"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "block: " + string(e) }

// Engine identifies which coder produced a block's reconstructed_stream
// payload.
type Engine byte

const (
	// EngineBwtPipeline is BWT -> MTF -> RLE -> Huffman (metadata bit 2 = 0).
	EngineBwtPipeline Engine = 0
	// EngineRans is the rANS 2-bit-rewrite coder (metadata bit 2 = 1).
	EngineRans Engine = 1
)

const (
	flagAuxMask1Represents11 = 1 << 0
	flagIsPlaceholderCommon  = 1 << 1
	flagEngineRans           = 1 << 2
)

// headerSize is the fixed 40-byte prefix described in spec section 6:
// 1 byte metadata_flags, 7 reserved bytes, then four uint64 LE size
// fields.
const headerSize = 40

func reconToTokens(recon []byte) []uint16 {
	tokens := make([]uint16, len(recon))
	for i, b := range recon {
		tokens[i] = uint16(b)
	}
	return tokens
}

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}

// CompressBlock compresses a single block of raw bytes (spec section 3:
// at most 8 MiB, though this package does not itself enforce the size
// cap — that is cmd/trisplit's framing responsibility per spec section 1),
// picking whichever of the two reconstructed_stream engines produces the
// smaller payload for this block.
func CompressBlock(raw []byte) []byte {
	return compressBlock(raw, nil)
}

// CompressBlockWithEngine behaves like CompressBlock but forces the given
// reconstructed_stream engine instead of picking the smaller of the two.
// It exists so both coding paths can be exercised directly (and so a
// caller with a specific reason to prefer one engine, e.g. matching a
// previously negotiated format, can do so).
func CompressBlockWithEngine(raw []byte, engine Engine) []byte {
	return compressBlock(raw, &engine)
}

func compressBlock(raw []byte, forceEngine *Engine) []byte {
	streams := separation.Separate(raw)

	compressedBitmap := rans.Encode(streams.ValueBitmap)
	compressedMask := rans.Encode(streams.AuxiliaryMask)

	var onesCount int
	for _, b := range streams.ReconstructedStream {
		if b == 1 {
			onesCount++
		}
	}
	isPlaceholderCommon := onesCount*2 >= len(streams.ReconstructedStream)

	var engine Engine
	var reconPayload []byte
	switch {
	case forceEngine != nil && *forceEngine == EngineBwtPipeline:
		tokens := reconToTokens(streams.ReconstructedStream)
		payload, err := bwtpipeline.ProcessStream(tokens)
		if err != nil {
			panic(err)
		}
		engine, reconPayload = EngineBwtPipeline, payload
	case forceEngine != nil && *forceEngine == EngineRans:
		engine, reconPayload = EngineRans, rans.EncodeReconstructedStream(streams.ReconstructedStream, isPlaceholderCommon)
	default:
		ransRecon := rans.EncodeReconstructedStream(streams.ReconstructedStream, isPlaceholderCommon)
		bwtRecon, bwtErr := bwtpipeline.ProcessStream(reconToTokens(streams.ReconstructedStream))
		engine, reconPayload = EngineRans, ransRecon
		if bwtErr == nil && len(bwtRecon) <= len(ransRecon) {
			engine, reconPayload = EngineBwtPipeline, bwtRecon
		}
	}

	out := make([]byte, headerSize+len(compressedBitmap)+len(compressedMask)+len(reconPayload))

	var flags byte
	if streams.AuxMask1Represents11 {
		flags |= flagAuxMask1Represents11
	}
	if isPlaceholderCommon {
		flags |= flagIsPlaceholderCommon
	}
	if engine == EngineRans {
		flags |= flagEngineRans
	}
	out[0] = flags
	// out[1:8] reserved, already zero.
	binary.LittleEndian.PutUint64(out[8:16], uint64(len(raw)))
	binary.LittleEndian.PutUint64(out[16:24], uint64(len(compressedBitmap)))
	binary.LittleEndian.PutUint64(out[24:32], uint64(len(compressedMask)))
	binary.LittleEndian.PutUint64(out[32:40], uint64(len(reconPayload)))

	off := headerSize
	off += copy(out[off:], compressedBitmap)
	off += copy(out[off:], compressedMask)
	copy(out[off:], reconPayload)

	return out
}

// DecompressBlock reverses CompressBlock. It returns an error for a
// truncated header or payload (this package's Error) and for a payload
// that a decoding stage rejects (that stage's own error), per spec
// section 7; a
// reconstructed-size mismatch is a warning (via separation.Reconstruct),
// not a failure, and still returns the produced bytes.
func DecompressBlock(data []byte) (raw []byte, err error) {
	defer errRecover(&err)

	if len(data) < headerSize {
		panic(Error("header too small"))
	}

	flags := data[0]
	auxMask1Represents11 := flags&flagAuxMask1Represents11 != 0
	isPlaceholderCommon := flags&flagIsPlaceholderCommon != 0
	engine := EngineBwtPipeline
	if flags&flagEngineRans != 0 {
		engine = EngineRans
	}

	originalSize := binary.LittleEndian.Uint64(data[8:16])
	bitmapSize := binary.LittleEndian.Uint64(data[16:24])
	maskSize := binary.LittleEndian.Uint64(data[24:32])
	reconSize := binary.LittleEndian.Uint64(data[32:40])

	want := headerSize + bitmapSize + maskSize + reconSize
	if uint64(len(data)) < want {
		panic(Error("payload sizes overrun the block"))
	}

	off := uint64(headerSize)
	bitmapPayload := data[off : off+bitmapSize]
	off += bitmapSize
	maskPayload := data[off : off+maskSize]
	off += maskSize
	reconPayload := data[off : off+reconSize]

	valueBitmap := rans.Decode(bitmapPayload)
	auxiliaryMask := rans.Decode(maskPayload)

	var reconstructedStream []byte
	switch engine {
	case EngineRans:
		reconstructedStream = rans.DecodeReconstructedStream(reconPayload, isPlaceholderCommon)
	case EngineBwtPipeline:
		tokens, perr := bwtpipeline.InverseProcessStream(reconPayload)
		if perr != nil {
			panic(perr)
		}
		reconstructedStream = make([]byte, len(tokens))
		for i, tok := range tokens {
			reconstructedStream[i] = byte(tok)
		}
	default:
		panic(Error("unknown reconstructed-stream engine"))
	}

	return separation.Reconstruct(valueBitmap, auxiliaryMask, reconstructedStream, auxMask1Represents11, originalSize), nil
}
