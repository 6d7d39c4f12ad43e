// Package mtf implements the move-to-front transform over an arbitrary
// recorded initial alphabet of 16-bit symbols, and its exact inverse.
//
// The encode/decode shape (a dictionary slice, linear lookup, and a
// front-move via copy) follows bzip2's moveToFront, generalized from a
// fixed 256-entry byte alphabet to a caller-supplied alphabet of up to
// 65536 uint16 symbols, and split back into its own stage (bzip2 fuses MTF
// with its RLE stage; this spec keeps them separate packages).
package mtf

import (
	"sort"

	"github.com/snowping00/trisplit/bwt"
)

// Result is the output of Apply: the MTF index stream, the ascending
// initial alphabet it was computed against, and the BWT primary index
// carried through unchanged.
type Result struct {
	MtfStream       []uint16
	InitialAlphabet []uint16
	PrimaryIndex    uint32
}

// Apply computes initial_alphabet as the ascending sequence of distinct
// values in b.LStream, then move-to-front encodes b.LStream against it.
func Apply(b bwt.Result) Result {
	seen := make(map[uint16]bool)
	for _, s := range b.LStream {
		seen[s] = true
	}
	alphabet := make([]uint16, 0, len(seen))
	for s := range seen {
		alphabet = append(alphabet, s)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })

	dict := append([]uint16(nil), alphabet...)
	stream := make([]uint16, len(b.LStream))
	for i, s := range b.LStream {
		idx := indexOf(dict, s)
		if idx != 0 {
			copy(dict[1:idx+1], dict[:idx])
			dict[0] = s
		}
		stream[i] = uint16(idx)
	}

	return Result{
		MtfStream:       stream,
		InitialAlphabet: alphabet,
		PrimaryIndex:    b.PrimaryIndex,
	}
}

// InverseApply reconstructs a BwtResult from a Result. It panics (recoverable
// via trisplit.ErrRecover by the caller) if an index is out of range, or if
// initial_alphabet is empty while mtf_stream is not — both are corruption.
func InverseApply(m Result) bwt.Result {
	if len(m.MtfStream) > 0 && len(m.InitialAlphabet) == 0 {
		panic(mtfError("missing initial alphabet for non-empty mtf stream"))
	}

	dict := append([]uint16(nil), m.InitialAlphabet...)
	out := make([]uint16, len(m.MtfStream))
	for i, idx := range m.MtfStream {
		if int(idx) >= len(dict) {
			panic(mtfError("mtf index out of range"))
		}
		s := dict[idx]
		if idx != 0 {
			copy(dict[1:idx+1], dict[:idx])
			dict[0] = s
		}
		out[i] = s
	}

	return bwt.Result{LStream: out, PrimaryIndex: m.PrimaryIndex}
}

type mtfError string

func (e mtfError) Error() string { return "mtf: " + string(e) }

func indexOf(dict []uint16, v uint16) int {
	for i, d := range dict {
		if d == v {
			return i
		}
	}
	panic(mtfError("symbol not present in dictionary"))
}
