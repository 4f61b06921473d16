// Package store persists the collection of contacts.
//
// Every backend implements the same six operations. Contacts keep their insertion order and
// an email address must be unique at the moment a contact is created; updates may later
// produce duplicates.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	imodel "gitlab.com/dirk.krummacker/contacts-store/internal/model"
	"gitlab.com/dirk.krummacker/contacts-store/pkg/model"
)

// ConfirmDeleteAll is the only confirmation value accepted by DeleteAll.
const ConfirmDeleteAll = "true"

var (
	// ErrNotFound is returned when no contact has the requested id.
	ErrNotFound = errors.New("store: contact not found")

	// ErrDuplicateEmail is returned when a contact with the same email already exists.
	ErrDuplicateEmail = errors.New("store: email is already registered")

	// ErrInvalidRequest is returned when DeleteAll is called without confirmation.
	ErrInvalidRequest = errors.New("store: invalid request")
)

// Store is the persistence contract of the contacts service.
type Store interface {
	// Create assigns a new id to the contact and appends it to the collection.
	Create(ctx context.Context, c model.Contact) (model.Contact, error)

	// List returns all contacts in insertion order. The result is never nil.
	List(ctx context.Context) ([]model.Contact, error)

	// Get returns the contact with the given id.
	Get(ctx context.Context, id string) (model.Contact, error)

	// Update merges the supplied fields into the contact with the given id and returns the
	// merged contact.
	Update(ctx context.Context, id string, patch imodel.ContactPatch) (model.Contact, error)

	// Delete removes the contact with the given id.
	Delete(ctx context.Context, id string) error

	// DeleteAll empties the collection if confirm equals ConfirmDeleteAll.
	DeleteAll(ctx context.Context, confirm string) error
}

// newID generates the identifier of a new contact.
func newID() string {
	return uuid.Must(uuid.NewRandom()).String()
}

// checkConfirm validates the confirmation value of DeleteAll.
func checkConfirm(confirm string) error {
	if confirm != ConfirmDeleteAll {
		return ErrInvalidRequest
	}
	return nil
}

// containsEmail returns true if a contact in the slice has exactly the given email.
func containsEmail(contacts []model.Contact, email string) bool {
	for _, c := range contacts {
		if c.Email == email {
			return true
		}
	}
	return false
}

// indexOf returns the position of the contact with the given id, or -1.
func indexOf(contacts []model.Contact, id string) int {
	for i, c := range contacts {
		if c.Id == id {
			return i
		}
	}
	return -1
}
