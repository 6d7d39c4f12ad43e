package mtf

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/snowping00/trisplit/bwt"
)

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	rnd := make([]uint16, 2048)
	for i := range rnd {
		rnd[i] = uint16(r.Intn(17))
	}

	cases := [][]uint16{
		{},
		{5},
		{1, 1, 1, 1},
		{3, 1, 4, 1, 5, 9, 2, 6},
		rnd,
	}
	for _, lstream := range cases {
		b := bwt.Result{LStream: lstream, PrimaryIndex: 3}
		res := Apply(b)
		for _, idx := range res.MtfStream {
			if int(idx) >= len(res.InitialAlphabet) {
				t.Fatalf("mtf index %d out of range for alphabet of size %d", idx, len(res.InitialAlphabet))
			}
		}
		back := InverseApply(res)
		if diff := cmp.Diff(b, back); diff != "" {
			t.Fatalf("round trip mismatch for %v (-want +got):\n%s", lstream, diff)
		}
	}
}

func TestInverseApplyOutOfRangeIndexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-range mtf index")
		}
	}()
	InverseApply(Result{MtfStream: []uint16{5}, InitialAlphabet: []uint16{1, 2, 3}})
}

func TestInverseApplyMissingAlphabetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing initial alphabet")
		}
	}()
	InverseApply(Result{MtfStream: []uint16{0}, InitialAlphabet: nil})
}
