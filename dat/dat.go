package dat

import "errors"

// DAT is a frozen double-array trie over UTF-8 bytes.
//   - Nodes/states are indices into Base/Check (0 is unused; Root is typically 1).
//   - Transition: t := Base[s] + c; valid if Check[t] == s; next state is t.
//   - c is a dense alphabet ID in [1..Sigma]. c==0 means "not in alphabet".
//
// Outputs:
//   - If Out[s] != 0, node s is terminal and its output is Out[s]-1.
//   - Transitions carry no output, so the output of a key is the output of
//     the terminal state reached by consuming all of its bytes.
type DAT struct {
	// Root state index (commonly 1).
	Root uint32

	// Base and Check are the classic double-array.
	Base  []int32 // len == N
	Check []int32 // len == N

	// Out holds terminal outputs shifted by one; 0 means "not terminal".
	Out []uint32 // len == N

	// Alphabet maps input bytes to dense IDs [0..Sigma].
	Alphabet Alphabet
}

// ErrCorrupt is returned when serialized trie data cannot be decoded.
var ErrCorrupt = errors.New("corrupt double-array trie")

// NStates returns number of allocated slots/states in the arrays.
func (d *DAT) NStates() int { return len(d.Base) }

// Transition returns (nextState, ok) for input byte b.
func (d *DAT) Transition(state uint32, b byte) (uint32, bool) {
	dense := d.Alphabet.Dense(b)
	if dense == 0 || int(state) >= len(d.Base) {
		return 0, false
	}
	t := d.Base[state] + int32(dense)
	if t <= 0 || int(t) >= len(d.Check) {
		return 0, false
	}
	if d.Check[t] != int32(state) {
		return 0, false
	}
	return uint32(t), true
}

// Output returns the output of state and whether state is terminal.
func (d *DAT) Output(state uint32) (uint32, bool) {
	if int(state) >= len(d.Out) || d.Out[state] == 0 {
		return 0, false
	}
	return d.Out[state] - 1, true
}

// LongestPrefix walks word from the root and reports the byte length and
// output of the longest key which is a prefix of word.
//
// The walk stops at the first byte without a transition, as no longer key
// can exist beyond it.
func (d *DAT) LongestPrefix(word string) (n int, out uint32, ok bool) {
	state := d.Root
	for i := 0; i < len(word); i++ {
		next, found := d.Transition(state, word[i])
		if !found {
			break
		}
		state = next
		if o, terminal := d.Output(state); terminal {
			n, out, ok = i+1, o, true
		}
	}
	return
}

// Stats reports density metrics of the double array.
type Stats struct {
	UsedSlots  int
	TotalSlots int
	Terminals  int
	MaxOutput  uint32
}

// FillRatio is the share of used slots.
func (s Stats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// Stats computes slot usage and terminal counts.
func (d *DAT) Stats() Stats {
	stats := Stats{TotalSlots: d.NStates()}
	for i := range d.Check {
		if i == int(d.Root) || d.Check[i] != 0 {
			stats.UsedSlots++
		}
		if d.Out[i] != 0 {
			stats.Terminals++
			stats.MaxOutput = max(stats.MaxOutput, d.Out[i]-1)
		}
	}
	return stats
}
