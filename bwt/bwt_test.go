package bwt

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func toTokens(s string) []uint16 {
	out := make([]uint16, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = uint16(s[i])
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	cases := [][]uint16{
		nil,
		{0},
		toTokens("banana"),
		toTokens("mississippi"),
		toTokens("aaaaaaaaaaaaaaaaaaaaaaaa"),
		toTokens("the quick brown fox jumps over the lazy dog"),
	}

	r := rand.New(rand.NewSource(1))
	rnd := make([]uint16, 4096)
	for i := range rnd {
		rnd[i] = uint16(r.Intn(4))
	}
	cases = append(cases, rnd)

	for _, tokens := range cases {
		res := Apply(tokens)
		if len(res.LStream) != len(tokens) {
			t.Fatalf("len(l_stream) = %d, want %d", len(res.LStream), len(tokens))
		}
		out := InverseApply(res)
		if diff := cmp.Diff(tokens, out); diff != "" {
			t.Fatalf("round trip mismatch for %v (-want +got):\n%s", tokens, diff)
		}
	}
}

func TestEmpty(t *testing.T) {
	res := Apply(nil)
	if res.PrimaryIndex != 0 || len(res.LStream) != 0 {
		t.Fatalf("expected empty result for empty input, got %+v", res)
	}
	if out := InverseApply(res); out != nil {
		t.Fatalf("expected nil inverse for empty result, got %v", out)
	}
}
