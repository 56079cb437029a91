package jsonfmt

// MaxDepth bounds the nesting of arrays and objects.
const MaxDepth = 128

// bitStack records one bit per open composite: set for arrays.
type bitStack struct {
	hi, lo uint64
	n      int
}

func (s *bitStack) push(array bool) bool {
	if s.n == MaxDepth {
		return false
	}
	s.hi = s.hi<<1 | s.lo>>63
	s.lo <<= 1
	if array {
		s.lo |= 1
	}
	s.n++
	return true
}

// pop returns the removed bit and false when the stack was empty.
func (s *bitStack) pop() (array, ok bool) {
	if s.n == 0 {
		return false, false
	}
	array = s.lo&1 == 1
	s.lo = s.lo>>1 | s.hi<<63
	s.hi >>= 1
	s.n--
	return array, true
}

func (s *bitStack) peek() (array, ok bool) {
	if s.n == 0 {
		return false, false
	}
	return s.lo&1 == 1, true
}

func (s *bitStack) len() int { return s.n }

func (s *bitStack) reset() { *s = bitStack{} }
