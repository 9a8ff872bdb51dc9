// Command dict-compiler compiles a text dictionary into its binary form.
//
// Usage:
//
//	dict-compiler -i STPhrases.txt -o STPhrases.ocb
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/npillmayer/opencc"
)

var (
	input  = flag.String("i", "", "text dictionary to compile")
	output = flag.String("o", "", "compiled dictionary to write")
)

func main() {
	flag.Parse()
	if *input == "" || *output == "" {
		flag.Usage()
		os.Exit(2)
	}
	fmt.Printf("Compiling %s -> %s ...\n", *input, *output)
	dict, err := opencc.TrieDictFromText(*input)
	if err != nil {
		log.Fatalf("failed to load text dictionary: %v", err)
	}
	if err := dict.SaveTo(*output); err != nil {
		log.Fatalf("failed to write compiled dictionary: %v", err)
	}
	stats := dict.TrieStats()
	fmt.Printf("Compiled %d keys (max key length %d, %d trie slots, fill %.2f).\n",
		dict.Len(), dict.MaxKeyLength(), stats.TotalSlots, stats.FillRatio())
}
