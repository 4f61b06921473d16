package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	imodel "gitlab.com/dirk.krummacker/contacts-store/internal/model"
	"gitlab.com/dirk.krummacker/contacts-store/pkg/model"
)

// filePerm is the permission of the contacts file after a write.
const filePerm = 0o644

// FileStore keeps the collection as a JSON array in a single file. Every operation reads the
// whole file and, if it changes anything, writes the whole file again.
//
// The mutex serializes the read-modify-write cycles of one process. Several processes sharing
// the same file can still overwrite each other's changes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by the JSON file at path. The file is not touched until
// the first operation.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Init creates the backing file with an empty collection if it does not exist yet. An existing
// file is left unchanged.
func (s *FileStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: stat contacts file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store: create data directory: %w", err)
	}
	return s.write([]model.Contact{})
}

// Create appends a new contact. Unlike the read operations it requires the file to exist.
func (s *FileStore) Create(_ context.Context, c model.Contact) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts, found, err := s.read()
	if err != nil {
		return model.Contact{}, err
	}
	if !found {
		return model.Contact{}, fmt.Errorf("store: read contacts file: %w", os.ErrNotExist)
	}
	if containsEmail(contacts, c.Email) {
		return model.Contact{}, ErrDuplicateEmail
	}
	c.Id = newID()
	if err := s.write(append(contacts, c)); err != nil {
		return model.Contact{}, err
	}
	return c, nil
}

// List returns all contacts, or an empty slice if the file does not exist.
func (s *FileStore) List(_ context.Context) ([]model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts, _, err := s.read()
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *FileStore) Get(_ context.Context, id string) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts, _, err := s.read()
	if err != nil {
		return model.Contact{}, err
	}
	i := indexOf(contacts, id)
	if i < 0 {
		return model.Contact{}, ErrNotFound
	}
	return contacts[i], nil
}

func (s *FileStore) Update(_ context.Context, id string, patch imodel.ContactPatch) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts, _, err := s.read()
	if err != nil {
		return model.Contact{}, err
	}
	i := indexOf(contacts, id)
	if i < 0 {
		return model.Contact{}, ErrNotFound
	}
	contacts[i] = patch.ApplyTo(contacts[i])
	if err := s.write(contacts); err != nil {
		return model.Contact{}, err
	}
	return contacts[i], nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts, _, err := s.read()
	if err != nil {
		return err
	}
	remaining := make([]model.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.Id != id {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == len(contacts) {
		return ErrNotFound
	}
	return s.write(remaining)
}

// DeleteAll overwrites the file with an empty collection, creating it if necessary.
func (s *FileStore) DeleteAll(_ context.Context, confirm string) error {
	if err := checkConfirm(confirm); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write([]model.Contact{})
}

// CheckAccess reports whether the file exists and can be opened for reading and writing.
func (s *FileStore) CheckAccess() error {
	f, err := os.OpenFile(s.path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("store: access contacts file: %w", err)
	}
	return f.Close()
}

// read parses the whole file. A missing file yields an empty collection and found == false.
func (s *FileStore) read() (contacts []model.Contact, found bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []model.Contact{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: read contacts file: %w", err)
	}
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, true, fmt.Errorf("store: parse contacts file: %w", err)
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return contacts, true, nil
}

// write replaces the file with the 2-space indented collection. The data goes to a temporary
// file in the same directory first, which is then renamed over the old file.
func (s *FileStore) write(contacts []model.Contact) error {
	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal contacts: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), ".contacts-*.tmp")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("store: sync temp file: %w", err)
	}
	if err := tempFile.Chmod(filePerm); err != nil {
		return fmt.Errorf("store: chmod temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("store: close temp file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		tempFile = nil
		return fmt.Errorf("store: replace contacts file: %w", err)
	}
	tempFile = nil
	return nil
}
