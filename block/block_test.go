package block

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	random := make([]byte, 8192)
	r.Read(random)

	repeatAA := make([]byte, 1<<16)
	for i := range repeatAA {
		repeatAA[i] = 0xAA
	}

	allZero := make([]byte, 4096)
	allFF := make([]byte, 4096)
	for i := range allFF {
		allFF[i] = 0xFF
	}

	ascending := make([]byte, 256)
	for i := range ascending {
		ascending[i] = byte(i)
	}

	alternating := make([]byte, 4096)
	for i := 0; i < len(alternating); i += 2 {
		alternating[i] = 0x00
		alternating[i+1] = 0xFF
	}

	cases := [][]byte{
		nil,
		{0x00},
		{0xFF},
		{0x1B},
		ascending,
		allZero,
		allFF,
		repeatAA,
		alternating,
		random,
	}

	for _, in := range cases {
		enc := CompressBlock(in)
		dec, err := DecompressBlock(enc)
		if err != nil {
			t.Fatalf("DecompressBlock error for input of length %d: %v", len(in), err)
		}
		if !bytes.Equal(in, dec) {
			t.Fatalf("round trip mismatch for input of length %d", len(in))
		}
	}
}

func TestAlternatingPatternBwtEnginePath(t *testing.T) {
	// Alternating 0x00/0xFF bytes put every 2-bit symbol in the exceptional
	// pair, so the reconstructed_stream is a constant all-ones run: the
	// rANS engine collapses it to an 8-byte degenerate header and wins
	// CompressBlock's size-based default. Force the BWT-pipeline path
	// directly to exercise that coding path end to end, per spec section 8
	// scenario 6.
	alternating := make([]byte, 4096)
	for i := 0; i < len(alternating); i += 2 {
		alternating[i] = 0x00
		alternating[i+1] = 0xFF
	}
	enc := CompressBlockWithEngine(alternating, EngineBwtPipeline)
	if enc[0]&flagEngineRans != 0 {
		t.Fatalf("expected flag bit 2 = 0 (BWT-pipeline engine) to be recorded")
	}
	dec, err := DecompressBlock(enc)
	if err != nil {
		t.Fatalf("DecompressBlock error: %v", err)
	}
	if !bytes.Equal(alternating, dec) {
		t.Fatalf("round trip mismatch for forced BWT-pipeline engine")
	}
}

func TestHeaderTooSmall(t *testing.T) {
	_, err := DecompressBlock(make([]byte, 10))
	if err == nil {
		t.Fatalf("expected error for truncated header")
	}
}

func TestSizesOverrunBlock(t *testing.T) {
	enc := CompressBlock([]byte{0x1B})
	_, err := DecompressBlock(enc[:len(enc)-1])
	if err == nil {
		t.Fatalf("expected error for truncated payload")
	}
}

func TestOriginalDataSizeRecorded(t *testing.T) {
	in := make([]byte, 256)
	for i := range in {
		in[i] = byte(i)
	}
	enc := CompressBlock(in)
	if got := binary.LittleEndian.Uint64(enc[8:16]); got != 256 {
		t.Fatalf("original_data_size field = %d, want 256", got)
	}
	dec, err := DecompressBlock(enc)
	if err != nil {
		t.Fatalf("DecompressBlock error: %v", err)
	}
	if len(dec) != 256 {
		t.Fatalf("expected 256 bytes out, got %d", len(dec))
	}
}
