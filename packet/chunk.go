// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package packet

import "fmt"

// MaxChunks is the number of Text chunks a string can be split in. The index
// is a single byte, so 256 chunks are accepted: the last index, 255, still
// fits.
const MaxChunks = 256

// Chunker yields the Text chunks of a string in index order.
//
// It does no I/O. Chunks must be sent in index order.
type Chunker struct {
	s    string
	size int
	n    int
	next int
}

// Chunks validates s and returns a Chunker splitting it in chunks of
// Config.TextChunkSize bytes. An empty string yields one empty chunk.
func (c *Codec) Chunks(s string) (*Chunker, error) {
	if i := nonASCII([]byte(s)); i >= 0 {
		return nil, &EncodeError{Kind: KindText, Field: "Data", Err: fmt.Errorf("%w: byte 0x%02X at offset %d is not 7-bit ASCII", ErrFieldOutOfRange, s[i], i)}
	}
	size := c.cfg.TextChunkSize
	n := (len(s) + size - 1) / size
	if n == 0 {
		n = 1
	}
	if n > MaxChunks {
		return nil, &EncodeError{Kind: KindText, Err: fmt.Errorf("%w: %d bytes need %d chunks, at most %d", ErrTooManyChunks, len(s), n, MaxChunks)}
	}
	return &Chunker{s: s, size: size, n: n}, nil
}

// Len returns the total number of chunks.
func (t *Chunker) Len() int {
	return t.n
}

// Next returns the next chunk. It returns false once every chunk was returned.
func (t *Chunker) Next() (Text, bool) {
	if t.next >= t.n {
		return Text{}, false
	}
	i := t.next
	t.next++
	lo := i * t.size
	hi := min(lo+t.size, len(t.s))
	return Text{Index: uint8(i), Data: []byte(t.s[lo:hi])}, true
}

// Reset restarts the sequence at index 0.
func (t *Chunker) Reset() {
	t.next = 0
}

// TextFrames builds every Text frame needed to store s.
func (c *Codec) TextFrames(s string) ([]Frame, error) {
	ch, err := c.Chunks(s)
	if err != nil {
		return nil, err
	}
	frames := make([]Frame, 0, ch.Len())
	for t, ok := ch.Next(); ok; t, ok = ch.Next() {
		f, err := c.Build(t)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}
