// Command opencc converts text between Chinese script variants.
//
// Usage:
//
//	opencc -c path/to/s2t.json [-i input] [-o output] [-in-enc gbk] [-segment]
//
// Input is read line by line; every line is converted separately. Input in
// legacy encodings (GBK, GB18030, Big5) is decoded to UTF-8 first. With
// -segment, lines are printed split into the segments of the configuration's
// segmentation dictionary instead of being converted.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/npillmayer/opencc"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	configPath = flag.String("c", "", "conversion configuration (JSON)")
	inPath     = flag.String("i", "", "input file (default stdin)")
	outPath    = flag.String("o", "", "output file (default stdout)")
	inEncoding = flag.String("in-enc", "utf-8", "input encoding: utf-8, gbk, gb18030, big5")
	segmentOut = flag.Bool("segment", false, "print segments separated by '/' instead of converting")
)

func main() {
	flag.Parse()
	if *configPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	converter, err := opencc.New(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	process := converter.Convert
	if *segmentOut {
		segmenter := converter.Segmenter()
		if segmenter == nil {
			return fmt.Errorf("configuration %q has no segmentation", converter.Name())
		}
		process = func(line string) string {
			return strings.Join(segmenter.Segment(line), "/")
		}
	}
	in := io.Reader(os.Stdin)
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	dec, err := decoderFor(*inEncoding)
	if err != nil {
		return err
	}
	return writeOutput(*outPath, func(out io.Writer) error {
		return convertLines(transform.NewReader(in, dec), out, process)
	})
}

// writeOutput runs write against the file at path, or stdout if path is
// empty. Errors from closing the file are reported.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func decoderFor(name string) (transform.Transformer, error) {
	var enc encoding.Encoding
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8":
		enc = unicode.UTF8
	case "gbk", "cp936", "gb2312":
		enc = simplifiedchinese.GBK
	case "gb18030":
		enc = simplifiedchinese.GB18030
	case "big5", "cp950":
		enc = traditionalchinese.Big5
	default:
		return nil, fmt.Errorf("unsupported input encoding %q", name)
	}
	return enc.NewDecoder(), nil
}

func convertLines(in io.Reader, out io.Writer, process func(string) string) error {
	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			body := strings.TrimSuffix(line, "\n")
			if _, werr := writer.WriteString(process(body)); werr != nil {
				return werr
			}
			if len(body) < len(line) {
				writer.WriteByte('\n')
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return writer.Flush()
}
