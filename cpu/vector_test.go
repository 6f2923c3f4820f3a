package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// vectorSetup places v1 at 100, v2 at 200, and their pointer pair at 50.
func vectorSetup(v1, v2 []int) (vec *Vector) {
	vec = &Vector{Memory: &Memory{}}
	vec.Memory.Write(50, 100)
	vec.Memory.Write(51, 200)
	for n, v := range v1 {
		vec.Memory.Write(100+n, v)
	}
	for n, v := range v2 {
		vec.Memory.Write(200+n, v)
	}
	return
}

func vectorAt(mem *Memory, addr int, length int) (out []uint16) {
	for n := range length {
		out = append(out, mem.Read(addr+n))
	}
	return
}

func TestVector_Add(t *testing.T) {
	assert := assert.New(t)

	vec := vectorSetup([]int{1, 2, 3}, []int{10, 20, 30})
	vec.Add(3, 50)

	assert.Equal([]uint16{11, 22, 33}, vectorAt(vec.Memory, 100, 3))
	assert.Equal([]uint16{10, 20, 30}, vectorAt(vec.Memory, 200, 3))
}

func TestVector_Sub(t *testing.T) {
	assert := assert.New(t)

	vec := vectorSetup([]int{1, 2, 3}, []int{10, 20, 30})
	vec.Sub(3, 50)

	assert.Equal([]uint16{0xfff7, 0xffee, 0xffe5}, vectorAt(vec.Memory, 100, 3))
}

func TestVector_Signed(t *testing.T) {
	assert := assert.New(t)

	// 0x7fff + 1 wraps, -1 + -1 is -2.
	vec := vectorSetup([]int{0x7fff, 0xffff}, []int{1, 0xffff})
	vec.Add(2, 50)

	assert.Equal([]uint16{0x8000, 0xfffe}, vectorAt(vec.Memory, 100, 2))
}

func TestVector_Partial(t *testing.T) {
	assert := assert.New(t)

	vec := vectorSetup([]int{1, 2, 3}, []int{10, 20, 30})
	vec.Add(2, 50)

	assert.Equal([]uint16{11, 22, 3}, vectorAt(vec.Memory, 100, 3))
}

func TestVector_ZeroLength(t *testing.T) {
	assert := assert.New(t)

	vec := vectorSetup([]int{1, 2, 3}, []int{10, 20, 30})
	vec.Add(0, 50)
	vec.Sub(0, 50)

	assert.Equal([]uint16{1, 2, 3}, vectorAt(vec.Memory, 100, 3))
	assert.Equal([]uint16{10, 20, 30}, vectorAt(vec.Memory, 200, 3))
	assert.Equal(0, vec.Memory.Faults)
}
