// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package packet

import (
	"errors"
	"fmt"
)

var (
	ErrFieldOutOfRange = errors.New("packet: field out of range")
	ErrFrameTooLarge   = errors.New("packet: frame too large")
	ErrTooManyChunks   = errors.New("packet: too many text chunks")
	ErrInvalidAddress  = errors.New("packet: invalid bus address")
	ErrUnknownKind     = errors.New("packet: unknown kind")
	ErrTruncated       = errors.New("packet: truncated frame")
	ErrInvalidConfig   = errors.New("packet: invalid configuration")
)

// EncodeError is returned by Build and Chunks. It unwraps to one of
// ErrFieldOutOfRange, ErrFrameTooLarge, ErrTooManyChunks or ErrInvalidAddress.
type EncodeError struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *EncodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v (encoding %s)", e.Err, e.Kind)
	}
	return fmt.Sprintf("%v (encoding %s.%s)", e.Err, e.Kind, e.Field)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError is returned by Decode. It unwraps to one of ErrUnknownKind,
// ErrTruncated or ErrFieldOutOfRange.
type DecodeError struct {
	Kind Kind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v (decoding %s)", e.Err, e.Kind)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// outOfRange reports an invalid field value found while encoding.
func outOfRange(field, format string, args ...any) error {
	return &EncodeError{Field: field, Err: fmt.Errorf("%w: "+format, append([]any{ErrFieldOutOfRange}, args...)...)}
}

// withKind fills in the kind of an error returned by a payload check.
func withKind(k Kind, err error) error {
	var e *EncodeError
	if errors.As(err, &e) {
		e.Kind = k
		return e
	}
	return &EncodeError{Kind: k, Err: err}
}

func errAddress(a uint8) error {
	return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidAddress, a, MaxAddress)
}
