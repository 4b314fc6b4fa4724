package service

import (
	"errors"
	"fmt"

	"github.com/pantry-it/backend/internal/store"
)

var (
	ErrDuplicateName      = errors.New("duplicate name")
	ErrProtectedEntity    = errors.New("protected entity")
	ErrNotFound           = store.ErrNotFound
	ErrInvariantViolation = errors.New("invariant violation")
	ErrValidation         = errors.New("validation failed")
)

// StorageError wraps a store failure that is not one of the classified
// errors above, e.g. I/O or an unexpected constraint failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Wire codes carried by the gateways so that clients can rebuild the typed
// failure.
const (
	CodeValidation         = "validation"
	CodeDuplicateName      = "duplicate_name"
	CodeProtectedEntity    = "protected_entity"
	CodeNotFound           = "not_found"
	CodeInvariantViolation = "invariant_violation"
	CodeStorage            = "storage"
)

var codes = []struct {
	code string
	err  error
}{
	{CodeValidation, ErrValidation},
	{CodeDuplicateName, ErrDuplicateName},
	{CodeProtectedEntity, ErrProtectedEntity},
	{CodeNotFound, ErrNotFound},
	{CodeInvariantViolation, ErrInvariantViolation},
}

// Code returns the wire code for err. Unclassified errors are storage errors.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeStorage
}

// FromCode rebuilds an error received from a gateway. The result matches the
// corresponding sentinel with errors.Is and keeps msg as its text.
func FromCode(code, msg string) error {
	for _, c := range codes {
		if c.code == code {
			return &remoteError{msg: msg, kind: c.err}
		}
	}
	return &StorageError{Op: "remote", Err: errors.New(msg)}
}

type remoteError struct {
	msg  string
	kind error
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.kind }

// classify passes classified errors through and wraps everything else in a
// StorageError.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return err
		}
	}
	return &StorageError{Op: op, Err: err}
}
