package store

import (
	"context"
	"slices"
	"sync"

	imodel "gitlab.com/dirk.krummacker/contacts-store/internal/model"
	"gitlab.com/dirk.krummacker/contacts-store/pkg/model"
)

// MemStore keeps the collection in memory. It is meant for tests and for running the service
// without persistence.
type MemStore struct {
	mu       sync.Mutex
	contacts []model.Contact
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns a store holding the given contacts. The ids are taken as they are.
func NewMemStore(cs ...model.Contact) *MemStore {
	return &MemStore{contacts: slices.Clone(cs)}
}

func (s *MemStore) Create(_ context.Context, c model.Contact) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if containsEmail(s.contacts, c.Email) {
		return model.Contact{}, ErrDuplicateEmail
	}
	c.Id = newID()
	s.contacts = append(s.contacts, c)
	return c, nil
}

func (s *MemStore) List(_ context.Context) ([]model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := make([]model.Contact, len(s.contacts))
	copy(contacts, s.contacts)
	return contacts, nil
}

func (s *MemStore) Get(_ context.Context, id string) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.contacts, id)
	if i < 0 {
		return model.Contact{}, ErrNotFound
	}
	return s.contacts[i], nil
}

func (s *MemStore) Update(_ context.Context, id string, patch imodel.ContactPatch) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.contacts, id)
	if i < 0 {
		return model.Contact{}, ErrNotFound
	}
	s.contacts[i] = patch.ApplyTo(s.contacts[i])
	return s.contacts[i], nil
}

func (s *MemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.contacts)
	s.contacts = slices.DeleteFunc(s.contacts, func(c model.Contact) bool { return c.Id == id })
	if len(s.contacts) == before {
		return ErrNotFound
	}
	return nil
}

func (s *MemStore) DeleteAll(_ context.Context, confirm string) error {
	if err := checkConfirm(confirm); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = nil
	return nil
}
