package opencc

import "unicode/utf8"

// diffCost is the assumed encoded size of one CharDiff in bytes.
const diffCost = 6

// DeltaKind tells how a Delta stores its value.
type DeltaKind uint8

const (
	// FullReplacement stores the value as a literal string.
	FullReplacement DeltaKind = iota
	// CharDiffs stores the value as character substitutions on its key.
	CharDiffs
)

// CharDiff replaces the character at rune position Index.
type CharDiff struct {
	Index int
	Char  rune
}

// Delta is a replacement value encoded relative to its dictionary key.
//
// Most conversions change only a few characters of a word and keep its
// length, e.g. "一个" => "一個". For these, Diffs lists the positions which
// differ. Values of different length, values where the diff list would not
// be smaller than the literal, and anything not valid UTF-8 are kept in Full.
type Delta struct {
	Kind  DeltaKind
	Diffs []CharDiff // valid for Kind == CharDiffs; may be empty if value == key
	Full  string     // valid for Kind == FullReplacement
}

// EncodeDelta encodes value relative to key.
func EncodeDelta(key, value string) Delta {
	if !utf8.ValidString(key) || !utf8.ValidString(value) ||
		utf8.RuneCountInString(key) != utf8.RuneCountInString(value) {
		return Delta{Kind: FullReplacement, Full: value}
	}
	var diffs []CharDiff
	i, k := 0, key
	for _, v := range value {
		r, size := utf8.DecodeRuneInString(k)
		k = k[size:]
		if r != v {
			diffs = append(diffs, CharDiff{Index: i, Char: v})
		}
		i++
	}
	if len(diffs)*diffCost > len(value) {
		return Delta{Kind: FullReplacement, Full: value}
	}
	return Delta{Kind: CharDiffs, Diffs: diffs}
}

// Decode reconstructs the value against the key it was encoded for.
//
// Decoding CharDiffs against a key with fewer characters than a diff index
// is a programming error and panics. This cannot happen for compiled
// dictionaries, as indices derive from the very same key.
func (d Delta) Decode(key string) string {
	if d.Kind == FullReplacement {
		return d.Full
	}
	if len(d.Diffs) == 0 {
		return key
	}
	runes := []rune(key)
	for _, diff := range d.Diffs {
		assert(diff.Index >= 0 && diff.Index < len(runes), "character diff index out of range for key")
		runes[diff.Index] = diff.Char
	}
	return string(runes)
}
