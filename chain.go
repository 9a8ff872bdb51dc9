package opencc

import (
	"strings"
	"unicode/utf8"
)

// ConversionChain applies a sequence of dictionaries to text.
//
// Every dictionary makes one complete pass over the output of its
// predecessor. Passes are never interleaved: later dictionaries, e.g. for
// regional vocabulary, have to see words already converted by earlier ones.
//
// A ConversionChain is safe for concurrent use.
type ConversionChain struct {
	dicts []Dictionary
}

// NewConversionChain creates a chain applying dicts in the order given.
func NewConversionChain(dicts ...Dictionary) *ConversionChain {
	return &ConversionChain{dicts: dicts}
}

// Convert runs text through all dictionaries of the chain.
func (c *ConversionChain) Convert(text string) string {
	for _, dict := range c.dicts {
		text = applyDict(text, dict)
	}
	return text
}

// Len returns the number of passes.
func (c *ConversionChain) Len() int {
	return len(c.dicts)
}

// applyDict performs one greedy longest-match pass. At every position the
// longest matching key is replaced by its first candidate; unmatched
// characters are kept. If nothing is replaced, text itself is returned.
func applyDict(text string, dict Dictionary) string {
	out := passBuffer{src: text}
	for i := 0; i < len(text); {
		rest := text[i:]
		if key, values, ok := dict.MatchPrefix(rest); ok && len(key) > 0 && len(values) > 0 {
			out.own(i)
			out.buf.WriteString(values[0])
			i += len(key)
			continue
		}
		_, size := utf8.DecodeRuneInString(rest)
		if out.state == owned {
			out.buf.WriteString(rest[:size])
		}
		i += size
	}
	return out.result()
}

type bufferState uint8

const (
	borrowed bufferState = iota // output is still identical to src[:pos]
	owned                       // output has diverged and lives in buf
)

// passBuffer is the output of a pass. It borrows its source until the first
// substitution, and only then copies the unchanged prefix into buf.
type passBuffer struct {
	src   string
	state bufferState
	buf   strings.Builder
}

// own switches to an owned buffer, copying src[:upto].
func (p *passBuffer) own(upto int) {
	if p.state == owned {
		return
	}
	p.buf.Grow(len(p.src) + len(p.src)/4)
	p.buf.WriteString(p.src[:upto])
	p.state = owned
}

func (p *passBuffer) result() string {
	if p.state == borrowed {
		return p.src
	}
	return p.buf.String()
}
