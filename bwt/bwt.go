// Package bwt implements the Burrows-Wheeler transform over a 16-bit token
// alphabet, and its exact inverse via LF-mapping.
//
// The forward transform is built on a suffix array, generalizing
// github.com/dsnet/compress/bzip2's byte-oriented BWT to a uint16 token
// alphabet of up to 65536 symbols: it runs SA-IS (package
// bwt/internal/sais) over the doubled token sequence tokens++tokens and
// keeps the suffix-array entries that start a rotation, which is the
// standard way to obtain a circular BWT without a unique end-of-string
// terminator.
package bwt

import "github.com/snowping00/trisplit/bwt/internal/sais"

// AlphabetSize is the width of the 16-bit token domain the BWT operates
// over, per spec.
const AlphabetSize = 1 << 16

// Result is the output of Apply: the last column of the sorted rotation
// matrix, and the row of the original string within it.
type Result struct {
	LStream      []uint16
	PrimaryIndex uint32
}

// Apply computes the Burrows-Wheeler transform of tokens.
func Apply(tokens []uint16) Result {
	n := len(tokens)
	if n == 0 {
		return Result{}
	}

	t := make([]int, 2*n)
	for i, v := range tokens {
		t[i] = int(v)
		t[i+n] = int(v)
	}
	sa := make([]int, 2*n)
	sais.ComputeSA(t, sa, AlphabetSize)

	l := make([]uint16, 0, n)
	var ptr uint32
	j := 0
	for _, i := range sa {
		if i < n {
			if i == 0 {
				ptr = uint32(j)
				i = n
			}
			l = append(l, uint16(t[i-1]))
			j++
		}
	}
	return Result{LStream: l, PrimaryIndex: ptr}
}

// InverseApply reconstructs the original token sequence from a BwtResult
// via LF-mapping over the cumulative symbol counts.
func InverseApply(r Result) []uint16 {
	n := len(r.LStream)
	if n == 0 {
		return nil
	}

	var c [AlphabetSize]int
	for _, v := range r.LStream {
		c[v]++
	}
	var sum int
	for i, v := range c {
		sum += v
		c[i] = sum - v
	}

	next := make([]int, n)
	for i, b := range r.LStream {
		next[c[b]] = i
		c[b]++
	}

	out := make([]uint16, n)
	pos := next[r.PrimaryIndex]
	for i := range out {
		out[i] = r.LStream[pos]
		pos = next[pos]
	}
	return out
}
