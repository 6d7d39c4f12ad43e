// Package rle implements zero-run-length compression over the move-to-front
// index stream, using a reserved sentinel value followed by a run-length
// word, and its exact inverse.
//
// The scan-and-emit shape mirrors bzip2's bijective run coder in
// bzip2.moveToFront (github.com/dsnet/compress/bzip2), generalized from a
// bijective base-2 run code fused into MTF to an explicit sentinel-prefixed
// run word kept as its own pipeline stage (bzip2 fuses MTF and RLE; this
// spec keeps them separate, see the mtf package).
package rle

import (
	"github.com/snowping00/trisplit/mtf"
)

// Sentinel is the reserved 16-bit value that precedes a run-length word.
// It can only collide with a legitimate MTF index when the initial alphabet
// has the full 65536 entries, which Apply forbids.
const Sentinel = 0xFFFF

// minRun is the shortest run of zeros worth rewriting as sentinel+length;
// shorter runs pass through as literal zeros.
const minRun = 3

// maxRun is the longest run length a single sentinel+length word can carry.
// Longer runs are split into consecutive sentinel+maxRun chunks.
const maxRun = 0xFFFF

// Result is the output of Apply: the run-length-compressed stream, and the
// initial_alphabet/primary_index carried through from the MTF stage
// unchanged.
type Result struct {
	RleStream       []uint16
	InitialAlphabet []uint16
	PrimaryIndex    uint32
}

type rleError string

func (e rleError) Error() string { return "rle: " + string(e) }

// Apply run-length compresses m.MtfStream. It returns an error if
// len(m.InitialAlphabet) == 65536, the only alphabet size at which a
// legitimate MTF index can equal Sentinel.
func Apply(m mtf.Result) (Result, error) {
	if len(m.InitialAlphabet) == 1<<16 {
		return Result{}, rleError("alphabet of 65536 symbols collides with the rle sentinel")
	}

	out := make([]uint16, 0, len(m.MtfStream))
	in := m.MtfStream
	for i := 0; i < len(in); {
		if in[i] != 0 {
			out = append(out, in[i])
			i++
			continue
		}
		j := i
		for j < len(in) && in[j] == 0 {
			j++
		}
		run := j - i
		if run < minRun {
			for k := 0; k < run; k++ {
				out = append(out, 0)
			}
		} else {
			for run > 0 {
				chunk := run
				if chunk > maxRun {
					chunk = maxRun
				}
				out = append(out, Sentinel, uint16(chunk))
				run -= chunk
			}
		}
		i = j
	}

	return Result{
		RleStream:       out,
		InitialAlphabet: m.InitialAlphabet,
		PrimaryIndex:    m.PrimaryIndex,
	}, nil
}

// InverseApply expands a Result back into an mtf.Result. It panics
// (recoverable via trisplit.ErrRecover by the caller) if a Sentinel appears
// without a following run-length word.
func InverseApply(r Result) mtf.Result {
	out := make([]uint16, 0, len(r.RleStream))
	in := r.RleStream
	for i := 0; i < len(in); i++ {
		if in[i] != Sentinel {
			out = append(out, in[i])
			continue
		}
		i++
		if i >= len(in) {
			panic(rleError("sentinel at end of stream with no run-length word"))
		}
		run := in[i]
		for k := uint16(0); k < run; k++ {
			out = append(out, 0)
		}
	}

	return mtf.Result{
		MtfStream:       out,
		InitialAlphabet: r.InitialAlphabet,
		PrimaryIndex:    r.PrimaryIndex,
	}
}
