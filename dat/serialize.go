package dat

import (
	"encoding/binary"
	"fmt"
)

// Serialized layout (little-endian):
//
//	magic   [4]byte  "DAT1"
//	root    uint32
//	sigma   uint16
//	bytes   [sigma]byte      alphabet members, ascending; dense ID = index+1
//	n       uint32           number of slots
//	base    [n]int32
//	check   [n]int32
//	out     [n]uint32
var magic = [4]byte{'D', 'A', 'T', '1'}

const headerSize = 4 + 4 + 2

// MarshalBinary serializes the trie.
func (d *DAT) MarshalBinary() ([]byte, error) {
	sigma := d.Alphabet.Sigma()
	n := d.NStates()
	size := headerSize + int(sigma) + 4 + 12*n
	buf := make([]byte, 0, size)
	buf = append(buf, magic[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, d.Root)
	buf = binary.LittleEndian.AppendUint16(buf, sigma)
	buf = append(buf, d.Alphabet.Bytes()...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(n))
	for _, v := range d.Base {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	for _, v := range d.Check {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	for _, v := range d.Out {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	return buf, nil
}

// UnmarshalBinary restores a trie serialized by MarshalBinary. The whole of
// data must be consumed; trailing bytes are an error.
func (d *DAT) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize || [4]byte(data[:4]) != magic {
		return fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	root := binary.LittleEndian.Uint32(data[4:])
	sigma := int(binary.LittleEndian.Uint16(data[8:]))
	data = data[headerSize:]
	if len(data) < sigma+4 {
		return fmt.Errorf("%w: truncated alphabet", ErrCorrupt)
	}
	var used [256]bool
	for i, b := range data[:sigma] {
		if used[b] || (i > 0 && b <= data[i-1]) {
			return fmt.Errorf("%w: alphabet not ascending", ErrCorrupt)
		}
		used[b] = true
	}
	alphabet := newAlphabet(&used)
	data = data[sigma:]
	n := int(binary.LittleEndian.Uint32(data))
	data = data[4:]
	if len(data) != 12*n {
		return fmt.Errorf("%w: expected %d bytes of slots, have %d", ErrCorrupt, 12*n, len(data))
	}
	if root == 0 || int(root) >= n {
		return fmt.Errorf("%w: root %d outside of %d slots", ErrCorrupt, root, n)
	}
	base := make([]int32, n)
	check := make([]int32, n)
	out := make([]uint32, n)
	for i := range n {
		base[i] = int32(binary.LittleEndian.Uint32(data[4*i:]))
	}
	data = data[4*n:]
	for i := range n {
		check[i] = int32(binary.LittleEndian.Uint32(data[4*i:]))
		if check[i] < 0 || int(check[i]) >= n {
			return fmt.Errorf("%w: check[%d] = %d", ErrCorrupt, i, check[i])
		}
	}
	data = data[4*n:]
	for i := range n {
		out[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	*d = DAT{
		Root:     root,
		Base:     base,
		Check:    check,
		Out:      out,
		Alphabet: alphabet,
	}
	return nil
}

// Load decodes a serialized trie.
func Load(data []byte) (*DAT, error) {
	d := &DAT{}
	if err := d.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return d, nil
}
