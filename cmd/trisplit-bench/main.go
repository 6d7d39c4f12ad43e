// Command trisplit-bench compares TriSplit's block throughput and
// compression ratio against a handful of other codecs available in this
// module's dependency tree, on a corpus of sample files. It is the
// buildable descendant of github.com/dsnet/compress's internal/tool/bench
// harness (a go:build ignore comparison tool there) scoped down to a
// single command and a fixed codec set.
//
// Example usage:
//
//	trisplit-bench file1.txt file2.bin
package main

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	kflate "github.com/klauspost/compress/flate"
	"github.com/klauspost/cpuid/v2"
	"github.com/snowping00/trisplit/block"
	"github.com/ulikunitz/xz"
)

// codec names one of the comparison implementations this tool runs
// against TriSplit on every input file.
type codec struct {
	name     string
	compress func([]byte) ([]byte, error)
}

var codecs = []codec{
	{"trisplit", compressTriSplit},
	{"flate/std", compressStdFlate},
	{"flate/klauspost", compressKlauspostFlate},
	{"xz", compressXZ},
}

func compressTriSplit(data []byte) ([]byte, error) {
	const blockSize = 8 << 20
	var out bytes.Buffer
	for off := 0; off < len(data); off += blockSize {
		end := off + blockSize
		if end > len(data) {
			end = len(data)
		}
		out.Write(block.CompressBlock(data[off:end]))
	}
	return out.Bytes(), nil
}

func compressStdFlate(data []byte) ([]byte, error) {
	var out bytes.Buffer
	w, err := flate.NewWriter(&out, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func compressKlauspostFlate(data []byte) ([]byte, error) {
	var out bytes.Buffer
	w, err := kflate.NewWriter(&out, kflate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func compressXZ(data []byte) ([]byte, error) {
	var out bytes.Buffer
	w, err := xz.NewWriter(&out)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type result struct {
	name        string
	compressed  int
	ratio       float64
	megaBytesPS float64
}

func benchmarkFile(name string, data []byte) []result {
	var results []result
	for _, c := range codecs {
		ts := time.Now()
		out, err := c.compress(data)
		elapsed := time.Since(ts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s: %v\n", name, c.name, err)
			continue
		}
		ratio := 0.0
		if len(out) > 0 {
			ratio = float64(len(data)) / float64(len(out))
		}
		mbps := 0.0
		if elapsed > 0 {
			mbps = (float64(len(data)) / (1 << 20)) / elapsed.Seconds()
		}
		results = append(results, result{c.name, len(out), ratio, mbps})
	}
	return results
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: trisplit-bench <file>...")
		os.Exit(2)
	}

	fmt.Printf("cpu: %s (%d logical cores, AVX2=%v AVX512=%v)\n",
		cpuid.CPU.BrandName, cpuid.CPU.LogicalCores,
		cpuid.CPU.Supports(cpuid.AVX2), cpuid.CPU.Supports(cpuid.AVX512F))

	for _, path := range os.Args[1:] {
		data, err := readFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		fmt.Printf("\n%s (%d bytes)\n", path, len(data))
		for _, r := range benchmarkFile(path, data) {
			fmt.Printf("\t%-16s %10d bytes  ratio %.2fx  %.2f MB/s\n",
				r.name, r.compressed, r.ratio, r.megaBytesPS)
		}
	}
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ioutil.ReadAll(f)
}
