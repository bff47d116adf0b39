package codec

// StringBuffer is a growable byte scratch buffer for assembling dump output
// and other string-heavy serialization steps. Its capacity only ever grows;
// Reset keeps the allocation so a pooled buffer stays warm.
type StringBuffer struct {
	buf []byte
}

// NewStringBuffer allocates a buffer with at least n bytes of capacity.
func NewStringBuffer(n int) *StringBuffer {
	return &StringBuffer{buf: make([]byte, 0, n)}
}

// Reserve grows the capacity to at least n bytes, preserving contents.
func (s *StringBuffer) Reserve(n int) {
	if cap(s.buf) >= n {
		return
	}
	grown := make([]byte, len(s.buf), n)
	copy(grown, s.buf)
	s.buf = grown
}

func (s *StringBuffer) AppendBytes(p []byte) {
	s.buf = append(s.buf, p...)
}

func (s *StringBuffer) AppendString(p string) {
	s.buf = append(s.buf, p...)
}

// Bytes returns the buffer contents; the slice is invalidated by Reset.
func (s *StringBuffer) Bytes() []byte {
	return s.buf
}

func (s *StringBuffer) String() string {
	return string(s.buf)
}

func (s *StringBuffer) Len() int {
	return len(s.buf)
}

func (s *StringBuffer) Capacity() int {
	return cap(s.buf)
}

// Reset empties the buffer, keeping its capacity.
func (s *StringBuffer) Reset() {
	s.buf = s.buf[:0]
}
