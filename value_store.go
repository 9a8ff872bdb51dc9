package opencc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// valueStore keeps the candidate lists of a dictionary, directly indexed by
// the output of the key's terminal trie state.
type valueStore struct {
	entries [][]Delta
}

const (
	tagFull  = 0
	tagDiffs = 1
)

var errTruncated = errors.New("truncated value table")

// Lookup decodes the candidates of entry idx against key.
func (s *valueStore) Lookup(idx uint32, key string) ([]string, bool) {
	if int(idx) >= len(s.entries) {
		return nil, false
	}
	deltas := s.entries[idx]
	values := make([]string, len(deltas))
	for i, d := range deltas {
		values[i] = d.Decode(key)
	}
	return values, true
}

// Len returns the number of entries.
func (s *valueStore) Len() int { return len(s.entries) }

// MarshalBinary encodes the table. Layout (uvarint framed):
//
//	nEntries
//	  nCandidates
//	    tag=0 len bytes               FullReplacement
//	    tag=1 nDiffs (index rune)*    CharDiffs
func (s *valueStore) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 16*len(s.entries))
	buf = binary.AppendUvarint(buf, uint64(len(s.entries)))
	for _, deltas := range s.entries {
		buf = binary.AppendUvarint(buf, uint64(len(deltas)))
		for _, d := range deltas {
			switch d.Kind {
			case FullReplacement:
				buf = append(buf, tagFull)
				buf = binary.AppendUvarint(buf, uint64(len(d.Full)))
				buf = append(buf, d.Full...)
			case CharDiffs:
				buf = append(buf, tagDiffs)
				buf = binary.AppendUvarint(buf, uint64(len(d.Diffs)))
				for _, diff := range d.Diffs {
					buf = binary.AppendUvarint(buf, uint64(diff.Index))
					buf = binary.AppendUvarint(buf, uint64(diff.Char))
				}
			default:
				return nil, fmt.Errorf("unknown delta kind %d", d.Kind)
			}
		}
	}
	return buf, nil
}

// UnmarshalBinary decodes a table produced by MarshalBinary.
func (s *valueStore) UnmarshalBinary(data []byte) error {
	r := uvarintReader{data: data}
	n := r.count()
	entries := make([][]Delta, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		m := r.count()
		if r.err == nil && m == 0 {
			return fmt.Errorf("entry %d has no candidates", i)
		}
		deltas := make([]Delta, 0, m)
		for j := 0; j < m && r.err == nil; j++ {
			deltas = append(deltas, r.delta())
		}
		entries = append(entries, deltas)
	}
	if r.err != nil {
		return r.err
	}
	if len(r.data) != 0 {
		return fmt.Errorf("%d trailing bytes after value table", len(r.data))
	}
	s.entries = entries
	return nil
}

// uvarintReader consumes uvarint framed data and remembers the first error.
type uvarintReader struct {
	data []byte
	err  error
}

func (r *uvarintReader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.data)
	if n <= 0 {
		r.err = errTruncated
		return 0
	}
	r.data = r.data[n:]
	return v
}

// count reads a length and sanity-checks it against the remaining input,
// as every counted item occupies at least one byte.
func (r *uvarintReader) count() int {
	v := r.uvarint()
	if r.err == nil && v > uint64(len(r.data)) {
		r.err = errTruncated
		return 0
	}
	return int(v)
}

func (r *uvarintReader) delta() Delta {
	if r.err != nil {
		return Delta{}
	}
	if len(r.data) == 0 {
		r.err = errTruncated
		return Delta{}
	}
	tag := r.data[0]
	r.data = r.data[1:]
	switch tag {
	case tagFull:
		n := r.count()
		if r.err != nil {
			return Delta{}
		}
		s := string(r.data[:n])
		r.data = r.data[n:]
		return Delta{Kind: FullReplacement, Full: s}
	case tagDiffs:
		n := r.count()
		diffs := make([]CharDiff, 0, n)
		for range n {
			idx := r.uvarint()
			ch := r.uvarint()
			if r.err == nil && (ch > utf8.MaxRune || idx > uint64(maxDiffIndex)) {
				r.err = fmt.Errorf("invalid character diff (%d, %d)", idx, ch)
			}
			diffs = append(diffs, CharDiff{Index: int(idx), Char: rune(ch)})
		}
		return Delta{Kind: CharDiffs, Diffs: diffs}
	}
	r.err = fmt.Errorf("unknown delta tag %d", tag)
	return Delta{}
}

const maxDiffIndex = 1 << 20
