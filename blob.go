package opencc

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/npillmayer/opencc/dat"
)

// Compiled dictionary layout:
//
//	u64 LE  metadata length
//	        metadata
//	        trie (dat.DAT.MarshalBinary), up to the end of the blob
//
// Metadata:
//
//	uvarint max key length (characters)
//	byte    section kind: 0 = plain value table, 1 = zstd-compressed value table
//	uvarint section length
//	        section bytes
const (
	sectionPlain = 0
	sectionZstd  = 1
)

// Value tables above this size get compressed.
const compressThreshold = 4 << 10

// Shared encoder/decoder; both are documented as safe for concurrent use.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// compiledParts are the decoded components of a compiled dictionary.
type compiledParts struct {
	maxKeyLength int
	values       *valueStore
	trie         *dat.DAT
}

func encodeBlob(parts compiledParts) ([]byte, error) {
	table, err := parts.values.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encoding value table: %w", err)
	}
	kind := byte(sectionPlain)
	if len(table) > compressThreshold {
		table = zstdEncoder.EncodeAll(table, nil)
		kind = sectionZstd
	}
	meta := make([]byte, 0, len(table)+16)
	meta = binary.AppendUvarint(meta, uint64(parts.maxKeyLength))
	meta = append(meta, kind)
	meta = binary.AppendUvarint(meta, uint64(len(table)))
	meta = append(meta, table...)
	trie, err := parts.trie.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encoding trie: %w", err)
	}
	blob := make([]byte, 0, 8+len(meta)+len(trie))
	blob = binary.LittleEndian.AppendUint64(blob, uint64(len(meta)))
	blob = append(blob, meta...)
	blob = append(blob, trie...)
	return blob, nil
}

func decodeBlob(blob []byte) (compiledParts, error) {
	var parts compiledParts
	if len(blob) < 8 {
		return parts, fmt.Errorf("%w: missing metadata length", ErrCorruptDictionary)
	}
	metaLen := binary.LittleEndian.Uint64(blob)
	blob = blob[8:]
	if metaLen > uint64(len(blob)) {
		return parts, fmt.Errorf("%w: metadata length %d exceeds blob", ErrCorruptDictionary, metaLen)
	}
	meta, trieBytes := blob[:metaLen], blob[metaLen:]
	r := uvarintReader{data: meta}
	parts.maxKeyLength = int(r.uvarint())
	if r.err != nil || len(r.data) == 0 {
		return parts, fmt.Errorf("%w: truncated metadata", ErrCorruptDictionary)
	}
	kind := r.data[0]
	r.data = r.data[1:]
	n := r.count()
	if r.err != nil || n != len(r.data) {
		return parts, fmt.Errorf("%w: value section length mismatch", ErrCorruptDictionary)
	}
	table := r.data
	switch kind {
	case sectionPlain:
	case sectionZstd:
		var err error
		if table, err = zstdDecoder.DecodeAll(table, nil); err != nil {
			return parts, fmt.Errorf("%w: zstd: %w", ErrCorruptDictionary, err)
		}
	default:
		return parts, fmt.Errorf("%w: unknown value section kind %d", ErrCorruptDictionary, kind)
	}
	parts.values = &valueStore{}
	if err := parts.values.UnmarshalBinary(table); err != nil {
		return parts, fmt.Errorf("%w: %w", ErrCorruptDictionary, err)
	}
	trie, err := dat.Load(trieBytes)
	if err != nil {
		return parts, fmt.Errorf("%w: %w", ErrCorruptDictionary, err)
	}
	parts.trie = trie
	if stats := trie.Stats(); stats.Terminals > 0 && int(stats.MaxOutput) >= parts.values.Len() {
		return parts, fmt.Errorf("%w: trie references entry %d of %d", ErrCorruptDictionary,
			stats.MaxOutput, parts.values.Len())
	}
	return parts, nil
}
