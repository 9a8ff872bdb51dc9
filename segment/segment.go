// Package segment splits text into words using a conversion dictionary.
package segment

import "unicode/utf8"

// Dictionary is the matching capability a segmenter needs. Every
// opencc.Dictionary satisfies it.
type Dictionary interface {
	MatchPrefix(word string) (key string, values []string, ok bool)
	MaxKeyLength() int
}

// Segmenter splits text into segments.
type Segmenter interface {
	Segment(text string) []string
}

// MaxMatch is a forward maximum matching segmenter: at every position it
// takes the longest dictionary key, or a single character if no key matches.
type MaxMatch struct {
	dict  Dictionary
	reach int // bytes a key can span at most
}

var _ Segmenter = (*MaxMatch)(nil)

// NewMaxMatch creates a segmenter on top of dict.
func NewMaxMatch(dict Dictionary) *MaxMatch {
	return &MaxMatch{
		dict:  dict,
		reach: dict.MaxKeyLength() * utf8.UTFMax,
	}
}

// Segment returns the segments of text; they concatenate to text.
func (mm *MaxMatch) Segment(text string) []string {
	var segments []string
	for start := 0; start < len(text); {
		rest := text[start:]
		window := rest
		if len(window) > mm.reach {
			window = window[:mm.reach] // no key reaches beyond
		}
		if key, _, ok := mm.dict.MatchPrefix(window); ok && len(key) > 0 {
			segments = append(segments, key)
			start += len(key)
			continue
		}
		_, size := utf8.DecodeRuneInString(rest)
		segments = append(segments, rest[:size])
		start += size
	}
	return segments
}
