// Package textdict reads dictionary definitions in OpenCC text format.
//
// Every line holds one entry
//
//	key<TAB>value1 value2 ... valueN
//
// Blank lines and lines starting with '#' are ignored. Lines not matching
// the pattern (wrong number of tab-separated fields, empty key, empty value
// list or an empty individual value) are dropped silently; a single bad line
// never fails a whole dictionary.
package textdict

import (
	"bufio"
	"io"
	"strings"
)

// maxLineLength bounds the length of a single definition line.
const maxLineLength = 1 << 20

// Reader streams dictionary entries from text sources.
type Reader struct {
	scanner *bufio.Scanner
	line    int
	skipped int
}

// NewReader creates a Reader for text definitions.
func NewReader(reader io.Reader) *Reader {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &Reader{scanner: scanner}
}

// Next returns the next well-formed entry as (key, values).
// It returns io.EOF when exhausted.
func (r *Reader) Next() (string, []string, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, values, ok := ParseLine(line)
		if !ok {
			r.skipped++
			tracer().Debugf("skipping malformed dictionary line %d: %q", r.line, line)
			continue
		}
		return key, values, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", nil, err
	}
	return "", nil, io.EOF
}

// Skipped returns the number of malformed lines dropped so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// ParseLine splits one definition line into key and candidate values.
func ParseLine(line string) (key string, values []string, ok bool) {
	line = strings.TrimSuffix(line, "\r")
	fields := strings.Split(line, "\t")
	if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
		return "", nil, false
	}
	values = strings.Split(fields[1], " ")
	for _, v := range values {
		if v == "" {
			return "", nil, false
		}
	}
	return fields[0], values, true
}
