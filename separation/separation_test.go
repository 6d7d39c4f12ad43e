package separation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSeparateAllZero(t *testing.T) {
	s := Separate([]byte{0x00})
	if !s.AuxMask1Represents11 {
		t.Fatalf("expected AuxMask1Represents11 = true for all-0x00 input")
	}
	if len(s.ValueBitmap) != 0 {
		t.Fatalf("value_bitmap should be empty, got %v", s.ValueBitmap)
	}
	want := []byte{1, 1, 1, 1}
	if diff := cmp.Diff(want, s.ReconstructedStream); diff != "" {
		t.Fatalf("reconstructed_stream mismatch (-want +got):\n%s", diff)
	}
	wantMask := []byte{0, 0, 0, 0}
	if diff := cmp.Diff(wantMask, s.AuxiliaryMask); diff != "" {
		t.Fatalf("auxiliary_mask mismatch (-want +got):\n%s", diff)
	}
}

func TestSeparateAllOnes(t *testing.T) {
	s := Separate([]byte{0xFF})
	if s.AuxMask1Represents11 {
		t.Fatalf("expected AuxMask1Represents11 = false for all-0xFF input")
	}
	wantMask := []byte{0, 0, 0, 0}
	if diff := cmp.Diff(wantMask, s.AuxiliaryMask); diff != "" {
		t.Fatalf("auxiliary_mask mismatch (-want +got):\n%s", diff)
	}
}

func TestSeparateMixed(t *testing.T) {
	// 0x1B = 00 01 10 11
	s := Separate([]byte{0x1B})
	wantBitmap := []byte{1, 0}
	if diff := cmp.Diff(wantBitmap, s.ValueBitmap); diff != "" {
		t.Fatalf("value_bitmap mismatch (-want +got):\n%s", diff)
	}
	wantRecon := []byte{1, 0, 0, 1}
	if diff := cmp.Diff(wantRecon, s.ReconstructedStream); diff != "" {
		t.Fatalf("reconstructed_stream mismatch (-want +got):\n%s", diff)
	}
	if len(s.AuxiliaryMask) != 2 {
		t.Fatalf("expected auxiliary_mask of length 2, got %d", len(s.AuxiliaryMask))
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xFF},
		{0x1B},
		make([]byte, 256),
	}
	for i := range inputs[4] {
		inputs[4][i] = byte(i)
	}

	// 1 MiB of 0xAA repeated; all symbols are 10, so reconstructed_stream
	// is all-zero and auxiliary_mask is empty.
	aa := make([]byte, 1<<20)
	for i := range aa {
		aa[i] = 0xAA
	}
	inputs = append(inputs, aa)

	for _, in := range inputs {
		s := Separate(in)
		if uint64(len(s.ValueBitmap)+len(s.AuxiliaryMask)) != uint64(len(s.ReconstructedStream)) {
			t.Fatalf("len(value_bitmap)+len(auxiliary_mask) != len(reconstructed_stream) for input of length %d", len(in))
		}
		if len(s.ReconstructedStream) != 4*len(in) {
			t.Fatalf("len(reconstructed_stream) != 4*len(input) for input of length %d", len(in))
		}
		out := Reconstruct(s.ValueBitmap, s.AuxiliaryMask, s.ReconstructedStream, s.AuxMask1Represents11, uint64(len(in)))
		if diff := cmp.Diff(in, out); diff != "" {
			t.Fatalf("round trip mismatch for input of length %d (-want +got):\n%s", len(in), diff)
		}
	}
}

func TestSeparateAllAA(t *testing.T) {
	aa := make([]byte, 1<<20)
	for i := range aa {
		aa[i] = 0xAA
	}
	s := Separate(aa)
	if len(s.AuxiliaryMask) != 0 {
		t.Fatalf("expected empty auxiliary_mask, got length %d", len(s.AuxiliaryMask))
	}
	for _, bit := range s.ReconstructedStream {
		if bit != 0 {
			t.Fatalf("expected all-zero reconstructed_stream for 0xAA repeated")
		}
	}
	if len(s.ValueBitmap) != 4*len(aa) {
		t.Fatalf("expected value_bitmap length %d, got %d", 4*len(aa), len(s.ValueBitmap))
	}
}
