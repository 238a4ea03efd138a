// Package storage provides the flat-file waitlist fallback used when no
// database is configured. It is a degraded development mode: the file is
// read-modify-written without any cross-process locking, so concurrent
// writers from separate processes can lose updates.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/daydayup/contextgraph-backend/internal/models"
	"github.com/daydayup/contextgraph-backend/internal/repository"
)

// waitlistDocument is the on-disk shape: an ordered email list plus a
// running count. An email's position is its index + 1.
type waitlistDocument struct {
	Emails []string `json:"emails"`
	Count  int      `json:"count"`
}

// FileWaitlistStore implements repository.WaitlistStore over a single
// JSON document on local disk.
type FileWaitlistStore struct {
	path string
	mu   sync.Mutex
}

// NewFileWaitlistStore creates a file-backed WaitlistStore, ensuring the
// parent directory exists.
func NewFileWaitlistStore(path string) (*FileWaitlistStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create waitlist data directory: %w", err)
	}
	return &FileWaitlistStore{path: path}, nil
}

// load reads the document; a missing or unreadable file reads as empty.
func (s *FileWaitlistStore) load() waitlistDocument {
	doc := waitlistDocument{Emails: []string{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return waitlistDocument{Emails: []string{}}
	}
	if doc.Emails == nil {
		doc.Emails = []string{}
	}
	return doc
}

// save writes the document back to disk.
func (s *FileWaitlistStore) save(doc waitlistDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal waitlist data: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write waitlist data: %w", err)
	}
	return nil
}

// FindByEmail looks up an entry by normalized email.
func (s *FileWaitlistStore) FindByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	for i, e := range doc.Emails {
		if e == email {
			return &models.WaitlistEntry{
				Email:    e,
				Position: i + 1,
			}, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Count returns the current total number of entries.
func (s *FileWaitlistStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	return int64(doc.Count), nil
}

// Add appends a new entry. Request metadata is not persisted on this
// backend; only the email and its derived position survive.
func (s *FileWaitlistStore) Add(ctx context.Context, entry *models.WaitlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	for _, e := range doc.Emails {
		if e == entry.Email {
			return repository.ErrDuplicateEntry
		}
	}

	doc.Emails = append(doc.Emails, entry.Email)
	doc.Count = len(doc.Emails)

	if err := s.save(doc); err != nil {
		return err
	}

	entry.Position = doc.Count
	entry.CreatedAt = time.Now().UTC()
	return nil
}
