// Command trisplit compresses or decompresses a file using the TriSplit
// block codec. It walks the input in fixed-size blocks, frames each
// compressed block on disk as a little-endian uint64 size prefix followed
// by the payload, and reports progress the way the reference driver does:
// a log line per phase plus a byte-level progress bar.
//
// Usage:
//
//	trisplit -c <input> <output>
//	trisplit -d <input> <output>
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/schollz/progressbar/v2"
	"github.com/snowping00/trisplit"
	"github.com/snowping00/trisplit/block"
)

// blockSize is the maximum number of raw bytes fed to block.CompressBlock
// per frame (spec section 3).
const blockSize = 8 << 20

func main() {
	log.SetFlags(0)
	log.SetPrefix("trisplit: ")

	compress := flag.Bool("c", false, "compress the input file")
	decompress := flag.Bool("d", false, "decompress the input file")
	quiet := flag.Bool("q", false, "suppress progress output")
	flag.Parse()

	if *compress == *decompress {
		fmt.Fprintln(os.Stderr, "usage: trisplit -c|-d <input> <output>")
		os.Exit(2)
	}
	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: trisplit -c|-d <input> <output>")
		os.Exit(2)
	}
	inPath, outPath := flag.Arg(0), flag.Arg(1)

	if !*quiet {
		trisplit.Warnf = func(format string, args ...interface{}) {
			log.Printf("warning: "+format, args...)
		}
	}

	in, err := os.Open(inPath)
	if err != nil {
		log.Fatalf("open %s: %v", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("create %s: %v", outPath, err)
	}
	defer out.Close()

	info, err := in.Stat()
	if err != nil {
		log.Fatalf("stat %s: %v", inPath, err)
	}

	var bar *progressbar.ProgressBar
	if !*quiet {
		bar = progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetBytes64(info.Size()),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetPredictTime(true))
		bar.RenderBlank()
	}

	if *compress {
		err = runCompress(in, out, bar)
	} else {
		err = runDecompress(in, out, bar)
	}
	if !*quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

func runCompress(in io.Reader, out io.Writer, bar *progressbar.ProgressBar) error {
	// bar is nil under -q, which also silences the per-phase log lines.
	progressf := func(format string, args ...interface{}) {
		if bar != nil {
			log.Printf(format, args...)
		}
	}
	progressf("separating streams...")
	buf := make([]byte, blockSize)
	sizeBuf := make([]byte, 8)
	for {
		n, err := io.ReadFull(in, buf)
		if n > 0 {
			progressf("processing block of %d bytes...", n)
			progressf("compressing value bitmap...")
			progressf("compressing auxiliary mask...")
			progressf("assembling final block...")
			enc := block.CompressBlock(buf[:n])
			binary.LittleEndian.PutUint64(sizeBuf, uint64(len(enc)))
			if _, werr := out.Write(sizeBuf); werr != nil {
				return werr
			}
			if _, werr := out.Write(enc); werr != nil {
				return werr
			}
			if bar != nil {
				bar.Add(n)
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func runDecompress(in io.Reader, out io.Writer, bar *progressbar.ProgressBar) error {
	sizeBuf := make([]byte, 8)
	for {
		_, err := io.ReadFull(in, sizeBuf)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading block frame: %w", err)
		}
		size := binary.LittleEndian.Uint64(sizeBuf)
		if size == 0 {
			// A zero-size record is a no-op: no payload follows.
			continue
		}
		payload := make([]byte, size)
		if _, err := io.ReadFull(in, payload); err != nil {
			return fmt.Errorf("block frame truncated mid-payload: %w", err)
		}
		dec, err := block.DecompressBlock(payload)
		if err != nil {
			return fmt.Errorf("decompressing block: %w", err)
		}
		if _, err := out.Write(dec); err != nil {
			return err
		}
		if bar != nil {
			bar.Add(len(payload))
		}
	}
}
