// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"io"
)

// DefaultCacheWindow is the read-ahead size used when NewCachedSource is
// given a non-positive window.
const DefaultCacheWindow = 0x8000

// CachedSource keeps one window of an underlying io.ReaderAt in memory.
// Decoders issue many small reads at slowly increasing offsets; against a
// file each one would otherwise be a syscall.
//
// CachedSource is not safe for concurrent use.
type CachedSource struct {
	src io.ReaderAt
	buf []byte
	off int64
	n   int
}

func NewCachedSource(src io.ReaderAt, window int) *CachedSource {
	if window <= 0 {
		window = DefaultCacheWindow
	}

	return &CachedSource{
		src: src,
		buf: make([]byte, window),
		off: -1,
	}
}

func (c *CachedSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", ErrShortRead, off)
	}
	if len(p) > len(c.buf) {
		return c.src.ReadAt(p, off)
	}

	if c.off < 0 || off < c.off || off+int64(len(p)) > c.off+int64(c.n) {
		if err := c.fill(off); err != nil {
			return 0, err
		}
	}

	start := int(off - c.off)
	n := copy(p, c.buf[start:c.n])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (c *CachedSource) fill(off int64) error {
	n, err := c.src.ReadAt(c.buf, off)
	if err != nil && err != io.EOF {
		c.off, c.n = -1, 0
		return err
	}
	c.off, c.n = off, n

	return nil
}
