package opencc

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/derekparker/trie"
	"github.com/npillmayer/opencc/dat"
	"github.com/npillmayer/opencc/textdict"
)

// EntryReader yields dictionary entries one-by-one.
// It should return io.EOF when the stream is exhausted.
type EntryReader interface {
	Next() (key string, values []string, err error)
}

// CompileFile compiles a text dictionary (see package textdict) into a
// self-contained binary blob.
func CompileFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary source: %w", err)
	}
	defer f.Close()
	blob, err := Compile(textdict.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return blob, nil
}

// Compile reads all entries from reader and compiles them into a binary
// blob, which may be loaded with TrieDictFromBytes.
//
// Entries with an empty key, without values or with an empty value are
// dropped. If a key occurs more than once, its most recent values win.
func Compile(reader EntryReader) ([]byte, error) {
	parts, err := compileEntries(reader)
	if err != nil {
		return nil, err
	}
	return encodeBlob(parts)
}

func compileEntries(reader EntryReader) (compiledParts, error) {
	var parts compiledParts
	staging := trie.New()
	dropped := 0
	for {
		key, values, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return parts, fmt.Errorf("reading dictionary entries: %w", err)
		}
		if !validEntry(key, values) {
			dropped++
			continue
		}
		vv := make([]string, len(values))
		copy(vv, values)
		staging.Add(key, vv)
		parts.maxKeyLength = max(parts.maxKeyLength, utf8.RuneCountInString(key))
	}
	if s, ok := reader.(interface{ Skipped() int }); ok {
		dropped += s.Skipped()
	}
	keys := staging.Keys()
	slices.Sort(keys) // byte-lexicographic, as required by the trie builder
	keys = slices.Compact(keys)
	builder := dat.NewBuilder()
	parts.values = &valueStore{entries: make([][]Delta, 0, len(keys))}
	for _, key := range keys {
		node, found := staging.Find(key)
		assert(found, "staged dictionary key vanished")
		values := node.Meta().([]string)
		if err := builder.Insert([]byte(key), uint32(parts.values.Len())); err != nil {
			return parts, fmt.Errorf("inserting %q into trie: %w", key, err)
		}
		deltas := make([]Delta, len(values))
		for i, v := range values {
			deltas[i] = EncodeDelta(key, v)
		}
		parts.values.entries = append(parts.values.entries, deltas)
	}
	var err error
	if parts.trie, err = builder.Finish(); err != nil {
		return parts, fmt.Errorf("building trie: %w", err)
	}
	stats := parts.trie.Stats()
	tracer().Infof("compiled %d entries (%d dropped), max key length=%d, trie used=%d total=%d fill=%.2f",
		len(keys), dropped, parts.maxKeyLength, stats.UsedSlots, stats.TotalSlots, stats.FillRatio())
	return parts, nil
}

// validEntry checks an entry against the rules of the text format. The
// staging trie works on runes and reserves the NUL rune, so keys which are
// not valid UTF-8 or contain NUL are rejected too.
func validEntry(key string, values []string) bool {
	if key == "" || len(values) == 0 || !utf8.ValidString(key) || strings.ContainsRune(key, 0) {
		return false
	}
	for _, v := range values {
		if v == "" {
			return false
		}
	}
	return true
}
