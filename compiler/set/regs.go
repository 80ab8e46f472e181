// Package set holds the small dense sets the planners iterate.
package set

import "math/bits"

// Regs is a set of register numbers.  The inline word covers methods with up
// to 64 registers without allocating; Set grows the storage as needed.
type Regs struct {
	b  []uint64
	b0 [1]uint64
}

func MakeRegs(n int) Regs {
	s := Regs{}
	s.b = s.b0[:]

	if w := (n + 63) / 64; w > len(s.b) {
		s.b = make([]uint64, w)
	}

	return s
}

func (s *Regs) Set(r int) {
	i, j := r/64, r%64

	for i >= len(s.b) {
		s.b = append(s.b, 0)
	}

	s.b[i] |= 1 << j
}

func (s *Regs) IsSet(r int) bool {
	i, j := r/64, r%64

	return i < len(s.b) && s.b[i]&(1<<j) != 0
}

func (s *Regs) Size() (n int) {
	for _, w := range s.b {
		n += bits.OnesCount64(w)
	}

	return n
}

// Range calls f for every register in the set in ascending order, stopping
// early when f returns false.
func (s *Regs) Range(f func(r int) bool) {
	for i, w := range s.b {
		for w != 0 {
			j := bits.TrailingZeros64(w)
			w &= w - 1

			if !f(i*64 + j) {
				return
			}
		}
	}
}
