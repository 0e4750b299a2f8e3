// SPDX-License-Identifier: EPL-2.0

// Package input gives container readers random access to their input.
package input

import (
	"bytes"
	"fmt"
	"io"
)

// ReaderAt returns r as a sized io.ReaderAt. Readers that already seek and
// read at offsets (files, bytes.Reader) are used in place; anything else is
// read into memory.
func ReaderAt(r io.Reader) (*io.SectionReader, error) {
	if ra, ok := r.(interface {
		io.ReaderAt
		io.Seeker
	}); ok {
		size, err := ra.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		return io.NewSectionReader(ra, 0, size), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return io.NewSectionReader(bytes.NewReader(data), 0, int64(len(data))), nil
}
