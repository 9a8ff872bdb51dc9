package dat

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrEmptyKey is returned when inserting a key of length 0.
	ErrEmptyKey = errors.New("empty key")
	// ErrOutOfOrder is returned when keys are not inserted in strictly
	// ascending byte order.
	ErrOutOfOrder = errors.New("key out of order")
	// ErrOutputRange is returned for outputs which cannot be stored.
	ErrOutputRange = errors.New("output out of range")
)

type buildNode struct {
	label    byte
	out      uint32 // output+1, 0 for non-terminal nodes
	state    uint32
	children []*buildNode // ascending by label, as keys arrive sorted
}

// Builder collects keys in ascending byte order and freezes them into a DAT.
// A Builder must not be used after Finish.
type Builder struct {
	root  *buildNode
	last  []byte
	count int
	used  [256]bool
	done  bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{root: &buildNode{}}
}

// Len returns the number of keys inserted so far.
func (b *Builder) Len() int { return b.count }

// Insert adds key with output out. Keys must be inserted in strictly
// ascending byte-lexicographic order.
func (b *Builder) Insert(key []byte, out uint32) error {
	if b.done {
		return errors.New("builder already finished")
	}
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if out == ^uint32(0) {
		return fmt.Errorf("%w: %d", ErrOutputRange, out)
	}
	if b.count > 0 && bytes.Compare(key, b.last) <= 0 {
		return fmt.Errorf("%w: %q after %q", ErrOutOfOrder, key, b.last)
	}
	n := b.root
	for _, c := range key {
		b.used[c] = true
		// with sorted input, a shared prefix can only continue in the last child
		if k := len(n.children); k > 0 && n.children[k-1].label == c {
			n = n.children[k-1]
			continue
		}
		child := &buildNode{label: c}
		n.children = append(n.children, child)
		n = child
	}
	n.out = out + 1
	b.last = append(b.last[:0], key...)
	b.count++
	return nil
}

// Finish freezes the collected keys into a double-array trie.
func (b *Builder) Finish() (*DAT, error) {
	if b.done {
		return nil, errors.New("builder already finished")
	}
	b.done = true
	d := &DAT{
		Root:     1,
		Alphabet: newAlphabet(&b.used),
	}
	d.Base = make([]int32, int(d.Root)+1)
	d.Check = make([]int32, int(d.Root)+1)
	d.Out = make([]uint32, int(d.Root)+1)
	b.root.state = d.Root
	free := int(d.Root) + 1 // no slot below free is vacant
	queue := []*buildNode{b.root}
	for q := 0; q < len(queue); q++ {
		n := queue[q]
		d.Out[n.state] = n.out
		if len(n.children) == 0 {
			continue
		}
		labels := make([]uint16, len(n.children))
		for i, child := range n.children {
			labels[i] = d.Alphabet.Dense(child.label)
		}
		base := findBase(d.Check, labels, free)
		ensureIndex(d, base+int(labels[len(labels)-1]))
		d.Base[n.state] = int32(base)
		for i, child := range n.children {
			t := base + int(labels[i])
			child.state = uint32(t)
			d.Check[t] = int32(n.state)
			queue = append(queue, child)
		}
		for free < len(d.Check) && d.Check[free] != 0 {
			free++
		}
		queue[q] = nil // release build nodes as we go
	}
	b.root = nil
	return d, nil
}

// findBase searches the first base such that all slots base+label are
// vacant. The search starts at the first vacant slot.
func findBase(check []int32, labels []uint16, free int) int {
	first := int(labels[0])
	for t0 := max(free, first+1); ; t0++ {
		if t0 < len(check) && check[t0] != 0 {
			continue
		}
		base := t0 - first
		ok := true
		for _, label := range labels[1:] {
			t := base + int(label)
			if t < len(check) && check[t] != 0 {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}

func ensureIndex(d *DAT, idx int) {
	if idx < len(d.Base) {
		return
	}
	grow := idx + 1 - len(d.Base)
	d.Base = append(d.Base, make([]int32, grow)...)
	d.Check = append(d.Check, make([]int32, grow)...)
	d.Out = append(d.Out, make([]uint32, grow)...)
}
