// SPDX-License-Identifier: EPL-2.0

package xa

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeader is the root of every header validation failure.
	ErrInvalidHeader = errors.New("invalid XA header")

	// ErrCorruptBlock is returned when a block's profile byte selects a
	// filter outside the gain factor table.
	ErrCorruptBlock = errors.New("corrupt XA block")

	// ErrTruncatedInput is returned when not even one block fits in the
	// source or destination buffer.
	ErrTruncatedInput = errors.New("truncated XA input")
)

// HeaderError describes which header field failed validation.
type HeaderError struct {
	Field  string
	Value  uint64
	Reason string
}

func (e *HeaderError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s = %d", ErrInvalidHeader, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s = %d (%s)", ErrInvalidHeader, e.Field, e.Value, e.Reason)
}

func (e *HeaderError) Unwrap() error { return ErrInvalidHeader }

// BlockError reports the block and channel holding a bad profile byte.
type BlockError struct {
	Block   int
	Channel int
	Profile byte
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%s: block %d channel %d: filter index %d out of range (profile 0x%02x)",
		ErrCorruptBlock, e.Block, e.Channel, e.Profile>>4, e.Profile)
}

func (e *BlockError) Unwrap() error { return ErrCorruptBlock }

func headerErr(field string, value uint64, reason string) error {
	return &HeaderError{Field: field, Value: value, Reason: reason}
}
