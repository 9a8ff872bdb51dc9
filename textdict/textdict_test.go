package textdict

import (
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestReader(t *testing.T) {
	src := strings.NewReader("# comment\n\n一个\t一個\n干\t幹 乾 干\r\n")
	r := NewReader(src)
	key, values, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if key != "一个" || !reflect.DeepEqual(values, []string{"一個"}) {
		t.Fatalf("entry mismatch: got %q => %v", key, values)
	}
	key, values, err = r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if key != "干" || !reflect.DeepEqual(values, []string{"幹", "乾", "干"}) {
		t.Fatalf("entry mismatch: got %q => %v", key, values)
	}
	_, _, err = r.Next()
	if err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if r.Skipped() != 0 {
		t.Fatalf("expected no skipped lines, got %d", r.Skipped())
	}
}

func TestReaderSkipsMalformedLines(t *testing.T) {
	src := strings.NewReader(strings.Join([]string{
		"onlykey",
		"a\tb\tc",
		"\tvalue",
		"key\t",
		"key\tv1  v2",
		"good\tGOOD",
	}, "\n"))
	r := NewReader(src)
	key, values, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if key != "good" || !reflect.DeepEqual(values, []string{"GOOD"}) {
		t.Fatalf("entry mismatch: got %q => %v", key, values)
	}
	if _, _, err = r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if r.Skipped() != 5 {
		t.Fatalf("expected 5 skipped lines, got %d", r.Skipped())
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line   string
		key    string
		values []string
		ok     bool
	}{
		{line: "世纪\t世紀", key: "世纪", values: []string{"世紀"}, ok: true},
		{line: "台\t臺 檯 颱", key: "台", values: []string{"臺", "檯", "颱"}, ok: true},
		{line: "世纪 世紀"},
		{line: "世纪\t世紀 "},
	}
	for _, tt := range tests {
		key, values, ok := ParseLine(tt.line)
		if ok != tt.ok || key != tt.key || !reflect.DeepEqual(values, tt.values) {
			t.Fatalf("ParseLine(%q) = (%q, %v, %v)", tt.line, key, values, ok)
		}
	}
}

func TestReaderOnlySkipsLinesStartingWithHash(t *testing.T) {
	r := NewReader(strings.NewReader("#x\ty\n  #x\ty\n"))
	key, values, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if key != "  #x" || !reflect.DeepEqual(values, []string{"y"}) {
		t.Fatalf("entry mismatch: got %q => %v", key, values)
	}
	if _, _, err = r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
