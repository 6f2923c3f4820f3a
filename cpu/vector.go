package cpu

// Vector is the vector unit. Both operations locate their two vectors via a
// pointer pair at ptr and ptr+1, and store the result over the first vector.
type Vector struct {
	Memory *Memory
}

// Add computes v1[i] += v2[i] for i in [0, length).
func (vec *Vector) Add(length uint16, ptr int) {
	vec.apply(length, ptr, func(a, b int16) int { return int(a) + int(b) })
}

// Sub computes v1[i] -= v2[i] for i in [0, length).
func (vec *Vector) Sub(length uint16, ptr int) {
	vec.apply(length, ptr, func(a, b int16) int { return int(a) - int(b) })
}

func (vec *Vector) apply(length uint16, ptr int, op func(a, b int16) int) {
	if length == 0 {
		return
	}

	mem := vec.Memory
	addr1 := int(mem.Read(ptr))
	addr2 := int(mem.Read(ptr + 1))

	for n := range int(length) {
		a := int16(mem.Read(addr1 + n))
		b := int16(mem.Read(addr2 + n))
		mem.Write(addr1+n, op(a, b))
	}
}
