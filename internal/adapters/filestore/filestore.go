// Package filestore persists CLI credentials in a per-user JSON file.
//
// The file maps profile names to credentials and is rewritten atomically
// with 0600 permissions on every change.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	"github.com/shopdash/shopdash-ui/internal/ports"
)

// FileName is the credentials file inside the config directory.
const FileName = "credentials.json"

// Store is a file-backed credential store shared by all profiles.
type Store struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

type fileContents struct {
	Profiles map[string]domainauth.Credential `json:"profiles"`
}

// New returns a store writing to dir/credentials.json. dir is created on first save.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName), now: time.Now}
}

// Path returns the credentials file location.
func (s *Store) Path() string { return s.path }

// Scope returns the ports.CredentialStore for one profile.
func (s *Store) Scope(profile string) ports.CredentialStore {
	return &profileStore{parent: s, profile: profile}
}

// Credential returns the stored credential for profile, including its expiry.
func (s *Store) Credential(profile string) (domainauth.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.load()
	if err != nil {
		return domainauth.Credential{}, err
	}
	cred, ok := contents.Profiles[profile]
	if !ok || cred.Token == "" || cred.Expired(s.now()) {
		return domainauth.Credential{}, ports.ErrNoCredential
	}
	return cred, nil
}

func (s *Store) load() (fileContents, error) {
	contents := fileContents{Profiles: map[string]domainauth.Credential{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return contents, nil
		}
		return contents, fmt.Errorf("read credentials file: %w", err)
	}
	if len(data) == 0 {
		return contents, nil
	}
	if err := json.Unmarshal(data, &contents); err != nil {
		return fileContents{Profiles: map[string]domainauth.Credential{}},
			fmt.Errorf("parse credentials file %s: %w", s.path, err)
	}
	if contents.Profiles == nil {
		contents.Profiles = map[string]domainauth.Credential{}
	}
	return contents, nil
}

func (s *Store) write(contents fileContents) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(contents, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*.json")
	if err != nil {
		return fmt.Errorf("create temp credentials file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp credentials file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp credentials file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp credentials file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace credentials file: %w", err)
	}
	return nil
}

// update applies fn under the lock and rewrites the file when fn reports a change.
func (s *Store) update(fn func(*fileContents) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contents, err := s.load()
	if err != nil {
		return err
	}
	if !fn(&contents) {
		return nil
	}
	return s.write(contents)
}

type profileStore struct {
	parent  *Store
	profile string
}

func (p *profileStore) Save(_ context.Context, token string, ttl time.Duration) error {
	if p.profile == "" {
		return errors.New("profile name cannot be empty")
	}
	cred := domainauth.Credential{Token: token}
	if ttl > 0 {
		cred.ExpiresAt = p.parent.now().Add(ttl).UTC()
	}
	return p.parent.update(func(c *fileContents) bool {
		c.Profiles[p.profile] = cred
		return true
	})
}

func (p *profileStore) Read(_ context.Context) (string, error) {
	cred, err := p.parent.Credential(p.profile)
	if err != nil {
		return "", err
	}
	return cred.Token, nil
}

func (p *profileStore) Clear(_ context.Context) error {
	return p.parent.update(func(c *fileContents) bool {
		if _, ok := c.Profiles[p.profile]; !ok {
			return false
		}
		delete(c.Profiles, p.profile)
		return true
	})
}
