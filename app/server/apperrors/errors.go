// Package apperrors holds the fixed error taxonomy every handler translates
// collaborator failures into. Each kind carries the HTTP status it is served
// with; anything not in the taxonomy collapses to ErrInternalServer.
package apperrors

import (
	"errors"
	"net/http"
)

type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string { return e.Message }

var (
	ErrInternalServer   = &Error{"Something went wrong", http.StatusInternalServerError}
	ErrSchemaValidation = &Error{"Request is missing required fields", http.StatusBadRequest}

	// Uniqueness conflicts
	ErrItemAlreadyExists     = &Error{"Item with given name already exists", http.StatusBadRequest}
	ErrEmailAlreadyExists    = &Error{"User with given email address already exists", http.StatusBadRequest}
	ErrUsernameAlreadyExists = &Error{"User with given username already exists", http.StatusBadRequest}

	// Lookup misses
	ErrItemNotExists     = &Error{"Item with given id doesn't exist", http.StatusBadRequest}
	ErrUserDoesnotExist  = &Error{"Couldn't find the user with given email address", http.StatusBadRequest}
	ErrEntryDoesnotExist = &Error{"Couldn't find the entry", http.StatusBadRequest}

	// Ownership violations on mutation
	ErrUpdatingItem = &Error{"Updating items added by others isn't allowed", http.StatusForbidden}
	ErrDeletingItem = &Error{"Deleting items added by others isn't allowed", http.StatusForbidden}

	// Auth
	ErrUnauthorized  = &Error{"Invalid username or password", http.StatusUnauthorized}
	ErrBadToken      = &Error{"Invalid token", http.StatusForbidden}
	ErrTokenNotFound = &Error{"Token not found", http.StatusForbidden}

	// Duplicate like/unlike
	ErrActionAlreadyDone = &Error{"Action already done", http.StatusForbidden}
)

// From maps any error onto the taxonomy, collapsing unknown errors to
// ErrInternalServer.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternalServer
}
