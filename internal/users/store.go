package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
)

// Store persists the Telegram-user to sheet-name mapping as a small JSON
// file. Reads go to disk every time so hand edits to the file are picked up
// without a restart; a corrupted file degrades to an empty mapping.
type Store struct {
	path        string
	defaultName string

	mu sync.Mutex
}

// NewStore keeps the mapping in users.json under dataDir. defaultName, when
// non-empty, answers for users without a stored mapping.
func NewStore(dataDir, defaultName string) *Store {
	return &Store{
		path:        filepath.Join(dataDir, "users.json"),
		defaultName: defaultName,
	}
}

// Resolve returns the sheet name to search on behalf of a Telegram user:
// their stored mapping, else the configured default, else displayName.
func (s *Store) Resolve(telegramID int64, displayName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mapped := s.load()[key(telegramID)]; mapped != "" {
		return mapped
	}
	if s.defaultName != "" {
		return s.defaultName
	}
	return displayName
}

// SetName records the sheet name a Telegram user answers to.
func (s *Store) SetName(telegramID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	users[key(telegramID)] = name

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write users file: %w", err)
	}
	return nil
}

func (s *Store) load() map[string]string {
	if err := s.ensure(); err != nil {
		log.Warn().Err(err).Msg("Users file unavailable")
		return map[string]string{}
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}
	users := map[string]string{}
	if err := json.Unmarshal(data, &users); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Users file corrupted, treating as empty")
		return map[string]string{}
	}
	return users
}

// ensure creates the data directory and an empty mapping file on first use.
func (s *Store) ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(s.path, []byte("{}"), 0o644); err != nil {
			return fmt.Errorf("failed to create users file: %w", err)
		}
	}
	return nil
}

func key(telegramID int64) string {
	return strconv.FormatInt(telegramID, 10)
}
