package opencc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/opencc/dat"
)

// Dictionary is the matching capability shared by all dictionary variants.
//
// MatchPrefix returns the longest key which is a prefix of word, together
// with its replacement candidates (primary translation first). key is a
// slice of word.
//
// MaxKeyLength returns the maximum number of characters of any key, which
// bounds how far a caller has to look ahead.
type Dictionary interface {
	MatchPrefix(word string) (key string, values []string, ok bool)
	MaxKeyLength() int
}

// CompiledExt is the file extension of cached compiled dictionaries.
const CompiledExt = ".ocb"

// TrieDict is a compiled dictionary backed by a double-array trie.
// It is immutable and safe for concurrent use.
type TrieDict struct {
	trie         *dat.DAT
	values       *valueStore
	maxKeyLength int
}

var _ Dictionary = (*TrieDict)(nil)

// MatchPrefix finds the longest key of the dictionary which prefixes word.
func (dict *TrieDict) MatchPrefix(word string) (string, []string, bool) {
	n, idx, ok := dict.trie.LongestPrefix(word)
	if !ok {
		return "", nil, false
	}
	key := word[:n]
	values, ok := dict.values.Lookup(idx, key)
	if !ok {
		return "", nil, false
	}
	return key, values, true
}

// MaxKeyLength returns the character count of the longest key.
func (dict *TrieDict) MaxKeyLength() int {
	return dict.maxKeyLength
}

// Len returns the number of keys.
func (dict *TrieDict) Len() int {
	return dict.values.Len()
}

// TrieStats reports density metrics for the underlying trie.
func (dict *TrieDict) TrieStats() dat.Stats {
	return dict.trie.Stats()
}

// TrieDictFromBytes loads a dictionary from a compiled blob, e.g. one
// produced by Compile or bundled with an application.
func TrieDictFromBytes(blob []byte) (*TrieDict, error) {
	parts, err := decodeBlob(blob)
	if err != nil {
		return nil, err
	}
	return &TrieDict{
		trie:         parts.trie,
		values:       parts.values,
		maxKeyLength: parts.maxKeyLength,
	}, nil
}

// TrieDictFromText compiles a text dictionary in memory.
func TrieDictFromText(path string) (*TrieDict, error) {
	blob, err := CompileFile(path)
	if err != nil {
		return nil, err
	}
	return TrieDictFromBytes(blob)
}

// TrieDictFromFile loads a compiled dictionary file.
func TrieDictFromFile(path string) (*TrieDict, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dict, err := TrieDictFromBytes(blob)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dict, nil
}

// CompiledPath returns the path of the compiled cache for a text dictionary,
// i.e. path with its extension replaced by CompiledExt.
func CompiledPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + CompiledExt
}

// LoadTrieDict loads the dictionary for a text source at path.
//
// If a compiled sibling (see CompiledPath) exists and is newer than the text
// source, or the text source does not exist, the compiled form is loaded.
// Otherwise the text is compiled and the result is cached for next time.
// Failing to write the cache is not an error, as the dictionary in memory is
// valid anyway.
func LoadTrieDict(path string) (*TrieDict, error) {
	compiled := CompiledPath(path)
	if compiled == path {
		dict, err := TrieDictFromFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dictionary %s: %w", path, ErrNotFound)
		}
		return dict, err
	}
	if isFresh(compiled, path) {
		dict, err := TrieDictFromFile(compiled)
		if err == nil {
			tracer().Debugf("using compiled dictionary %s", compiled)
			return dict, nil
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, err
		}
		tracer().Infof("ignoring unreadable compiled dictionary: %v", err)
	}
	dict, err := TrieDictFromText(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dictionary %s: %w", path, ErrNotFound)
		}
		return nil, err
	}
	if err := dict.SaveTo(compiled); err != nil {
		tracer().Errorf("cannot cache compiled dictionary (ignored): %v", err)
	} else {
		tracer().Infof("cached compiled dictionary as %s", compiled)
	}
	return dict, nil
}

// isFresh reports whether the compiled file should be preferred over the text.
func isFresh(compiled, text string) bool {
	cinfo, err := os.Stat(compiled)
	if err != nil || !cinfo.Mode().IsRegular() {
		return false
	}
	tinfo, err := os.Stat(text)
	if err != nil {
		return true // no text source to compare against
	}
	return cinfo.ModTime().After(tinfo.ModTime())
}

// WriteTo writes the compiled blob of dict to w.
func (dict *TrieDict) WriteTo(w io.Writer) (int64, error) {
	blob, err := encodeBlob(compiledParts{
		maxKeyLength: dict.maxKeyLength,
		values:       dict.values,
		trie:         dict.trie,
	})
	if err != nil {
		return 0, err
	}
	n, err := w.Write(blob)
	return int64(n), err
}

// SaveTo writes the compiled blob of dict to path. The blob is written to a
// temporary file first and renamed into place, so concurrent readers never
// see a partially written file.
func (dict *TrieDict) SaveTo(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if _, err = dict.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
