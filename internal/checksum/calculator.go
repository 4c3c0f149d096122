package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// Reader hashes and counts the bytes read through it.
// The digest covers exactly what the consumer read, so it should be taken
// after the consumer has drained the stream.
//
// Reader is not safe for concurrent use.
type Reader struct {
	r     io.Reader
	h     hash.Hash
	count int64
}

// NewReader wraps r with SHA-256 hashing.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, h: sha256.New()}
}

func (c *Reader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.h.Write(p[:n])
		c.count += int64(n)
	}
	return n, err
}

// BytesRead returns the number of bytes read so far.
func (c *Reader) BytesRead() int64 {
	return c.count
}

// Sum returns the hex-encoded SHA-256 of the bytes read so far.
func (c *Reader) Sum() string {
	return hex.EncodeToString(c.h.Sum(nil))
}
