package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSeatsAvailable is wrapped by the ConflictError returned when a bus is full.
	ErrNoSeatsAvailable = errors.New("no seats available")
	// ErrAlreadyCancelled is wrapped by the ConflictError returned when a
	// booking is cancelled twice.
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)

type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Resource != "" && e.ID != "":
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	case e.Resource != "":
		return fmt.Sprintf("%s not found", e.Resource)
	default:
		return "not found"
	}
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil && e.Resource != "":
		return fmt.Sprintf("%s conflict: %v", e.Resource, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// PersistenceError reports a failed load or save of the ledger collections.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	if e.Op == "" {
		if e.Err == nil {
			return "persistence error"
		}
		return fmt.Sprintf("persistence error: %v", e.Err)
	}
	if e.Err == nil {
		return fmt.Sprintf("persistence error: %s", e.Op)
	}
	return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsPersistence(err error) bool {
	var target PersistenceError
	return errors.As(err, &target)
}
