// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package packet

import "fmt"

// Config sets the parameters shared by a commander and its cells.
type Config struct {
	// Order is the wire order of color channels.
	Order ChannelOrder
	// MaxFrameSize is the size of the receive buffer of a cell, kind byte
	// included.
	MaxFrameSize int
	// TextChunkSize is the number of characters carried by one Text frame.
	TextChunkSize int
}

// DefaultConfig matches the stock cell firmware.
var DefaultConfig = Config{
	Order:         RGB,
	MaxFrameSize:  200,
	TextChunkSize: 31,
}

func (c *Config) validate() error {
	if !c.Order.Valid() {
		return fmt.Errorf("%w: channel order %v is not a permutation", ErrInvalidConfig, [3]uint8(c.Order))
	}
	if c.TextChunkSize < 1 {
		return fmt.Errorf("%w: text chunk size %d", ErrInvalidConfig, c.TextChunkSize)
	}
	if c.TextChunkSize+2 > c.MaxFrameSize {
		return fmt.Errorf("%w: a text frame of %d bytes does not fit in %d", ErrInvalidConfig, c.TextChunkSize+2, c.MaxFrameSize)
	}
	return nil
}

// Codec builds and decodes frames. It holds no mutable state and is safe for
// concurrent use.
type Codec struct {
	cfg Config
}

// New returns a Codec for cfg. A nil cfg uses DefaultConfig.
func New(cfg *Config) (*Codec, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Codec{cfg: *cfg}, nil
}

// Config returns the configuration of c.
func (c *Codec) Config() Config {
	return c.cfg
}

// Layout returns the layout of k under the configuration of c.
func (c *Codec) Layout(k Kind) (Layout, error) {
	return layoutOf(k, &c.cfg)
}

// Build validates p and encodes it as a frame.
func (c *Codec) Build(p Payload) (Frame, error) {
	if p == nil {
		return Frame{}, &EncodeError{Err: fmt.Errorf("%w: nil payload", ErrFieldOutOfRange)}
	}
	k := p.Kind()
	l, err := c.Layout(k)
	if err != nil {
		return Frame{}, &EncodeError{Kind: k, Err: err}
	}
	if err := p.check(&c.cfg); err != nil {
		return Frame{}, withKind(k, err)
	}
	n := p.size()
	if 1+n > c.cfg.MaxFrameSize {
		return Frame{}, &EncodeError{Kind: k, Err: fmt.Errorf("%w: %d bytes, buffer is %d", ErrFrameTooLarge, 1+n, c.cfg.MaxFrameSize)}
	}
	if !l.Accepts(n) {
		return Frame{}, &EncodeError{Kind: k, Err: fmt.Errorf("%w: payload of %d bytes does not match %s", ErrFieldOutOfRange, n, l)}
	}
	w := writer{b: make([]byte, 0, 1+n), order: c.cfg.Order}
	w.u8(uint8(k))
	p.put(&w)
	return Frame{b: w.b}, nil
}

// Decode parses a frame built by Build.
func (c *Codec) Decode(b []byte) (Kind, Payload, error) {
	if len(b) == 0 {
		return KindNone, nil, &DecodeError{Err: fmt.Errorf("%w: empty frame", ErrTruncated)}
	}
	k := Kind(b[0])
	l, err := c.Layout(k)
	if err != nil {
		return k, nil, &DecodeError{Kind: k, Err: err}
	}
	n := len(b) - 1
	switch {
	case len(b) > c.cfg.MaxFrameSize:
		return k, nil, &DecodeError{Kind: k, Err: fmt.Errorf("%w: %d bytes, buffer is %d", ErrFieldOutOfRange, len(b), c.cfg.MaxFrameSize)}
	case n > l.Max:
		return k, nil, &DecodeError{Kind: k, Err: fmt.Errorf("%w: payload of %d bytes, at most %d", ErrFieldOutOfRange, n, l.Max)}
	case !l.Accepts(n):
		return k, nil, &DecodeError{Kind: k, Err: fmt.Errorf("%w: payload of %d bytes does not match %s", ErrTruncated, n, l)}
	}
	r := reader{b: b[1:], order: c.cfg.Order}
	p := catalog[k].decode(&r)
	if r.err == nil && r.remaining() != 0 {
		r.fail("%d trailing bytes", r.remaining())
	}
	if r.err != nil {
		return k, nil, &DecodeError{Kind: k, Err: r.err}
	}
	return k, p, nil
}

// Frame is an encoded command: the kind byte followed by the payload. The
// zero value is not a valid frame.
type Frame struct {
	b []byte
}

// Kind returns the first byte of the frame.
func (f Frame) Kind() Kind {
	if len(f.b) == 0 {
		return KindNone
	}
	return Kind(f.b[0])
}

// Len returns the size of the frame, kind byte included.
func (f Frame) Len() int {
	return len(f.b)
}

// Bytes returns a copy of the frame.
func (f Frame) Bytes() []byte {
	return append([]byte(nil), f.b...)
}

// Payload returns a copy of the bytes after the kind byte.
func (f Frame) Payload() []byte {
	if len(f.b) == 0 {
		return nil
	}
	return append([]byte(nil), f.b[1:]...)
}

func (f Frame) String() string {
	if len(f.b) == 0 {
		return "Frame{}"
	}
	return fmt.Sprintf("%s[% X]", f.Kind(), f.b[1:])
}

