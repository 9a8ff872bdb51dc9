package opencc

import (
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"testing/fstest"
)

func TestConverterFromFile(t *testing.T) {
	dir := writeConfigDir(t)
	converter, err := New(filepath.Join(dir, "s2tw.json"))
	if err != nil {
		t.Fatal(err)
	}
	if converter.Name() == "" {
		t.Fatalf("expected configuration name")
	}
	if got := converter.Convert("一个半项目"); got != "一個半專案" {
		t.Fatalf("unexpected conversion %q", got)
	}
	// second converter reuses the compiled caches
	again, err := New(filepath.Join(dir, "s2tw.json"))
	if err != nil {
		t.Fatal(err)
	}
	if got := again.Convert("一个半项目"); got != "一個半專案" {
		t.Fatalf("unexpected conversion from cache %q", got)
	}
}

func TestConverterFromFS(t *testing.T) {
	converter, err := NewFromFS(compiledFS(t), "s2tw.json")
	if err != nil {
		t.Fatal(err)
	}
	if got := converter.Convert("内存"); got != "記憶體" {
		t.Fatalf("unexpected conversion %q", got)
	}
	if _, err := NewFromFS(compiledFS(t), "missing.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConverterConcurrentUse(t *testing.T) {
	converter, err := NewFromFS(compiledFS(t), "s2tw.json")
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if got := converter.Convert("一个项目的内存"); got != "一個專案的記憶體" {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("unexpected concurrent conversion %q", got)
	}
}

func TestConverterSegmenter(t *testing.T) {
	want := []string{"一个半", "和", "项目"}
	fromFile, err := New(filepath.Join(writeConfigDir(t), "s2tw.json"))
	if err != nil {
		t.Fatal(err)
	}
	fromFS, err := NewFromFS(compiledFS(t), "s2tw.json")
	if err != nil {
		t.Fatal(err)
	}
	for _, converter := range []*Converter{fromFile, fromFS} {
		seg := converter.Segmenter()
		if seg == nil {
			t.Fatalf("expected segmenter for configuration with segmentation section")
		}
		if got := seg.Segment("一个半和项目"); !reflect.DeepEqual(got, want) {
			t.Fatalf("Segment = %q, want %q", got, want)
		}
	}
}

func TestConverterWithoutSegmentation(t *testing.T) {
	fsys := compiledFS(t)
	fsys["plain.json"] = &fstest.MapFile{Data: []byte(
		`{"name": "plain", "conversion_chain": [{"dict": {"type": "ocd2", "file": "TWPhrases.ocd2"}}]}`)}
	converter, err := NewFromFS(fsys, "plain.json")
	if err != nil {
		t.Fatal(err)
	}
	if converter.Segmenter() != nil {
		t.Fatalf("expected no segmenter without segmentation section")
	}
	fsys["bad.json"] = &fstest.MapFile{Data: []byte(
		`{"name": "bad", "segmentation": {"type": "jieba", "dict": {"type": "ocd2", "file": "STPhrases.ocd2"}}}`)}
	if _, err := NewFromFS(fsys, "bad.json"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for unknown segmentation type, got %v", err)
	}
}
