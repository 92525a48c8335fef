package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorPredicatesThroughWrapping(t *testing.T) {
	nf := fmt.Errorf("lookup: %w", NotFoundError{Resource: "bus", ID: "X1"})
	if !IsNotFound(nf) {
		t.Fatalf("expected IsNotFound through wrapping")
	}
	if got := nf.Error(); got != "lookup: bus not found: X1" {
		t.Fatalf("unexpected message %q", got)
	}

	full := ConflictError{Resource: "bus", Err: ErrNoSeatsAvailable}
	if !IsConflict(full) || !errors.Is(full, ErrNoSeatsAvailable) {
		t.Fatalf("expected conflict wrapping ErrNoSeatsAvailable")
	}
	if errors.Is(full, ErrAlreadyCancelled) {
		t.Fatalf("unexpected ErrAlreadyCancelled match")
	}

	pe := PersistenceError{Op: "save bookings", Err: errors.New("disk full")}
	if !IsPersistence(pe) || IsValidation(pe) {
		t.Fatalf("unexpected predicate result for %v", pe)
	}
	if pe.Error() != "persistence error: save bookings: disk full" {
		t.Fatalf("unexpected message %q", pe.Error())
	}
}

func TestValidationErrorMessage(t *testing.T) {
	if got := (ValidationError{Field: "age", Msg: "must be a number"}).Error(); got != "age: must be a number" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := (ValidationError{Field: "name"}).Error(); got != "invalid name" {
		t.Fatalf("unexpected message %q", got)
	}
}
