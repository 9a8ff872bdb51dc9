package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConvertLines(t *testing.T) {
	var out strings.Builder
	err := convertLines(strings.NewReader("ab\ncd\nlast"), &out, strings.ToUpper)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "AB\nCD\nLAST" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestWriteOutputToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.txt")
	err := writeOutput(p, func(w io.Writer) error {
		return convertLines(strings.NewReader("x\n"), w, strings.ToUpper)
	})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "X\n" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestWriteOutputReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	p := filepath.Join(t.TempDir(), "out.txt")
	if err := writeOutput(p, func(io.Writer) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
	missingDir := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
	if err := writeOutput(missingDir, func(io.Writer) error { return nil }); err == nil {
		t.Fatalf("expected error for uncreatable output file")
	}
}
