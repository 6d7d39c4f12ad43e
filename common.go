// Package trisplit implements the TriSplit block compressor: a structural
// decomposition of raw bytes into three statistically specialized binary
// streams (a value bitmap, an auxiliary mask, and a reconstruction map),
// each compressed by a coder tuned to its own distribution.
//
// The subpackages separation, bwt, mtf, rle, huffman, bwtpipeline, rans, and
// block implement the compressor's core; cmd/trisplit is the file-level
// driver (block framing, flags, progress reporting).
package trisplit

import "runtime"

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "trisplit: " + string(e) }

var (
	// ErrCorrupt indicates that a compressed block failed a structural
	// check (bad header, out-of-range index, truncated payload) and
	// cannot be decoded.
	ErrCorrupt error = Error("block is corrupted")
)

// ErrRecover recovers a panic raised by internal invariant checks and
// stores it in *err. Runtime errors (nil dereference, index out of range
// from an actual bug) are re-panicked rather than swallowed. This mirrors
// the panic/recover discipline used in this codebase: internal helpers
// panic on corruption, and the entry points that return an error
// (block.DecompressBlock, bwtpipeline.InverseProcessStream) defer a
// package-local copy of this function so callers see a plain error return.
// The rans, huffman, mtf and rle decoders do not recover; their panics
// reach whichever caller defers a recover.
func ErrRecover(err *error) {
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

// Warnf is called for recoverable anomalies that spec requires to be
// reported but not treated as failures (a reconstructed size mismatch, a
// side-stream running out before the reconstruction map does). Library
// code never prints directly; by default Warnf does nothing. cmd/trisplit
// points it at log.Printf so the driver surfaces these as log lines.
var Warnf = func(format string, args ...interface{}) {}
