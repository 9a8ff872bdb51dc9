package opencc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeDictFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("cannot write dictionary %s: %v", name, err)
	}
	return p
}

func mustCompile(t *testing.T, content string) *TrieDict {
	t.Helper()
	p := writeDictFile(t, t.TempDir(), "dict.txt", content)
	dict, err := TrieDictFromText(p)
	if err != nil {
		t.Fatal(err)
	}
	return dict
}

type sliceEntryReader struct {
	entries [][]string // key followed by values
	index   int
	err     error
}

func (r *sliceEntryReader) Next() (string, []string, error) {
	if r.index >= len(r.entries) {
		if r.err != nil {
			return "", nil, r.err
		}
		return "", nil, io.EOF
	}
	entry := r.entries[r.index]
	r.index++
	return entry[0], entry[1:], nil
}

func TestCompileLeniency(t *testing.T) {
	dict := mustCompile(t, "世纪\t世紀\n一个\n")
	if dict.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", dict.Len())
	}
	key, values, ok := dict.MatchPrefix("世纪末")
	if !ok || key != "世纪" || !reflect.DeepEqual(values, []string{"世紀"}) {
		t.Fatalf("unexpected match (%q, %v, %v)", key, values, ok)
	}
	if _, _, ok := dict.MatchPrefix("一个"); ok {
		t.Fatalf("malformed line must not produce an entry")
	}
}

func TestCompileSkipsCommentsAndBlankLines(t *testing.T) {
	dict := mustCompile(t, "# header\n\n   \n#x\ty\na\tb\n")
	if dict.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", dict.Len())
	}
	if _, _, ok := dict.MatchPrefix("#x"); ok {
		t.Fatalf("comment line must not produce an entry")
	}
}

func TestCompileDuplicateKeysMostRecentWins(t *testing.T) {
	dict := mustCompile(t, "干\t幹\nx\ty\n干\t乾 幹\n")
	_, values, ok := dict.MatchPrefix("干")
	if !ok || !reflect.DeepEqual(values, []string{"乾", "幹"}) {
		t.Fatalf("expected most recent values, got %v (%v)", values, ok)
	}
	if dict.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", dict.Len())
	}
}

func TestCompileMaxKeyLength(t *testing.T) {
	dict := mustCompile(t, "一\t一\n一个半\t一個半\nab\tc\n")
	if dict.MaxKeyLength() != 3 {
		t.Fatalf("expected max key length 3 characters, got %d", dict.MaxKeyLength())
	}
}

func TestCompileFromEntryReader(t *testing.T) {
	blob, err := Compile(&sliceEntryReader{entries: [][]string{
		{"b", "B"},
		{"a", "A", "AA"},
		{"", "empty key"},
		{"novalue"},
		{"c", "C", ""},
	}})
	if err != nil {
		t.Fatal(err)
	}
	dict, err := TrieDictFromBytes(blob)
	if err != nil {
		t.Fatal(err)
	}
	if dict.Len() != 2 {
		t.Fatalf("expected 2 valid entries, got %d", dict.Len())
	}
	if _, values, _ := dict.MatchPrefix("ab"); !reflect.DeepEqual(values, []string{"A", "AA"}) {
		t.Fatalf("unexpected values for 'a': %v", values)
	}
}

func TestCompileReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Compile(&sliceEntryReader{entries: [][]string{{"a", "b"}}, err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected reader error to surface, got %v", err)
	}
}

func TestCompileMissingFile(t *testing.T) {
	_, err := CompileFile(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestCompileCompressesLargeValueTables(t *testing.T) {
	var sb strings.Builder
	for i := range 2000 {
		fmt.Fprintf(&sb, "k%05d\tvalue-%05d\n", i, i)
	}
	p := writeDictFile(t, t.TempDir(), "big.txt", sb.String())
	blob, err := CompileFile(p)
	if err != nil {
		t.Fatal(err)
	}
	meta := blob[8:]
	_, n := binary.Uvarint(meta)
	if kind := meta[n]; kind != sectionZstd {
		t.Fatalf("expected compressed value section, got kind %d", kind)
	}
	dict, err := TrieDictFromBytes(blob)
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{0, 999, 1999} {
		key := fmt.Sprintf("k%05d", i)
		_, values, ok := dict.MatchPrefix(key + "tail")
		if !ok || values[0] != fmt.Sprintf("value-%05d", i) {
			t.Fatalf("lookup of %s failed: %v", key, values)
		}
	}

	small, err := Compile(&sliceEntryReader{entries: [][]string{{"a", "b"}}})
	if err != nil {
		t.Fatal(err)
	}
	meta = small[8:]
	_, n = binary.Uvarint(meta)
	if kind := meta[n]; kind != sectionPlain {
		t.Fatalf("expected plain value section for small table, got kind %d", kind)
	}
}

func TestCompileDropsInvalidUTF8Keys(t *testing.T) {
	dict := mustCompile(t, "\xff\tX\n\xfe\tY\n\uFFFD\tZ\n")
	if dict.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", dict.Len())
	}
	for _, word := range []string{"\xff", "\xfe"} {
		if key, values, ok := dict.MatchPrefix(word); ok {
			t.Fatalf("MatchPrefix(%q) = (%q, %v), want no match", word, key, values)
		}
	}
	if _, values, ok := dict.MatchPrefix("\uFFFD"); !ok || !reflect.DeepEqual(values, []string{"Z"}) {
		t.Fatalf("expected replacement character entry to survive, got %v (%v)", values, ok)
	}
}
