// ABOUTME: Persists the candidate session (token and profile) between runs
// ABOUTME: A single JSON file written atomically with 0600 permissions

package session

import (
	"fmt"
	"time"

	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/jsonfile"
)

type record struct {
	Token   string          `json:"token"`
	User    *client.Profile `json:"user,omitempty"`
	SavedAt time.Time       `json:"savedAt"`
}

// Store is the on-disk session file. The zero value, or an empty path, keeps
// the session in memory only.
type Store struct {
	path string
}

// NewStore creates a store backed by path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) load() (record, error) {
	var rec record
	if s.Path() == "" {
		return rec, nil
	}
	if _, err := jsonfile.Read(s.path, &rec); err != nil {
		return record{}, fmt.Errorf("reading session file %s: %w", s.path, err)
	}
	return rec, nil
}

func (s *Store) save(token string, user *client.Profile) error {
	if s.Path() == "" {
		return nil
	}
	rec := record{Token: token, User: user, SavedAt: time.Now().UTC()}
	if err := jsonfile.Write(s.path, rec, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) clear() error {
	if s.Path() == "" {
		return nil
	}
	return jsonfile.Remove(s.path)
}
