package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegs(t *testing.T) {
	s := MakeRegs(4)

	s.Set(1)
	s.Set(70)
	s.Set(3)

	assert.True(t, s.IsSet(1))
	assert.True(t, s.IsSet(3))
	assert.True(t, s.IsSet(70))
	assert.False(t, s.IsSet(2))
	assert.False(t, s.IsSet(200))

	assert.Equal(t, 3, s.Size())
}

func TestRegsRange(t *testing.T) {
	s := MakeRegs(128)

	for _, r := range []int{5, 0, 100, 63, 64} {
		s.Set(r)
	}

	var got []int

	s.Range(func(r int) bool {
		got = append(got, r)
		return true
	})

	assert.Equal(t, []int{0, 5, 63, 64, 100}, got)

	got = got[:0]

	s.Range(func(r int) bool {
		got = append(got, r)
		return r < 63
	})

	assert.Equal(t, []int{0, 5, 63}, got)
}
