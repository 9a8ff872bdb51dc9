/*
Package opencc converts text between Chinese script variants, e.g. Simplified
to Traditional Chinese or to regional Traditional forms, by applying an ordered
chain of dictionary substitutions.

Dictionaries are compiled from plain text definitions (one
"key<TAB>value1 value2 ..." entry per line) into a frozen double-array trie
(package dat) plus a table of replacement candidates. Candidates are stored
relative to their key, either as a sparse list of character substitutions or
as a literal string, and the table is zstd-compressed for large dictionaries.
Compiled dictionaries are cached next to their text sources and reused as long
as they are newer than the text.

A conversion chain applies its dictionaries one after another. Every pass scans
the text left to right and greedily replaces the longest matching key by its
first candidate. A pass which replaces nothing returns its input unchanged.

Dictionaries are immutable after construction and safe for concurrent use.

Further Reading

	https://github.com/BYVoid/OpenCC  (dictionary sources and configurations)

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package opencc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'opencc'
func tracer() tracing.Trace {
	return tracing.Select("opencc")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
