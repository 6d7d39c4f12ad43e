package bwtpipeline

import "runtime"

// errRecover mirrors bzip2.errRecover: internal helpers
// (and the mtf/rle/huffman packages this one composes) panic on
// corruption, and InverseProcessStream's defer turns that into a normal
// error return, while genuine runtime errors still propagate.
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
