// Package errors re-exports github.com/cockroachdb/errors so every package
// wraps and inspects errors the same way, and defines the sentinels the
// store and the HTTP layer agree on.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New      = crdb.New
	Newf     = crdb.Newf
	Wrap     = crdb.Wrap
	Wrapf    = crdb.Wrapf
	WithHint = crdb.WithHint
	Is       = crdb.Is
	As       = crdb.As
)

var (
	// ErrNotFound indicates the requested sheet does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates missing or malformed input
	ErrInvalidRequest = New("invalid request")
)

func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

func IsInvalid(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}
