package archive

import "encoding/binary"

// BlockScanner walks the length-prefixed blocks of an archive buffer. The
// walk is sequential (each block's start depends on the previous block's
// declared length) and is the only non-parallel part of decoding; the
// returned payload slices are independent read-only views into buf and can
// be decoded concurrently.
type BlockScanner struct {
	buf []byte
	off int
}

// NewBlockScanner scans buf, typically a whole archive file.
func NewBlockScanner(buf []byte) *BlockScanner {
	return &BlockScanner{buf: buf}
}

// Next returns the next block payload. It returns ok=false once fewer than
// a full length prefix or fewer than the declared payload bytes remain; a
// partially-written trailing block is dropped silently rather than treated
// as an error, so every payload returned before that is complete.
func (s *BlockScanner) Next() (payload []byte, ok bool) {
	if len(s.buf)-s.off < 4 {
		return nil, false
	}
	n := binary.LittleEndian.Uint32(s.buf[s.off:])
	if uint64(len(s.buf)-s.off-4) < uint64(n) {
		return nil, false
	}
	start := s.off + 4
	end := start + int(n)
	s.off = end
	return s.buf[start:end:end], true
}
