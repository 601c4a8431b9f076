package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"eco-actions/internal/model"
)

const (
	usersFile   = "users.json"
	actionsFile = "actions.json"
)

// FileStore keeps users and actions as two JSON array files under a data
// directory. Every operation works on the whole collection; mutations are
// serialized per collection so a read-modify-write cannot lose updates.
type FileStore struct {
	dir       string
	usersMu   sync.Mutex
	actionsMu sync.Mutex
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "data"
	}
	return &FileStore{dir: dir}
}

// LoadUsers returns all persisted users. A missing file yields an empty
// collection; a malformed one is logged and treated as empty.
func (s *FileStore) LoadUsers() []model.User {
	var users []model.User
	s.loadCollection(usersFile, &users)
	return users
}

// SaveUsers overwrites the users collection.
func (s *FileStore) SaveUsers(users []model.User) error {
	return s.saveCollection(usersFile, users)
}

// UpdateUsers applies fn to the users collection and persists the result,
// holding the collection lock for the whole cycle.
func (s *FileStore) UpdateUsers(fn func(users []model.User) ([]model.User, error)) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	var users []model.User
	s.loadCollection(usersFile, &users)
	updated, err := fn(users)
	if err != nil {
		return err
	}
	return s.saveCollection(usersFile, updated)
}

// LoadActions returns all persisted actions.
func (s *FileStore) LoadActions() []model.Action {
	var actions []model.Action
	s.loadCollection(actionsFile, &actions)
	return actions
}

// SaveActions overwrites the actions collection.
func (s *FileStore) SaveActions(actions []model.Action) error {
	return s.saveCollection(actionsFile, actions)
}

// UpdateActions applies fn to the actions collection and persists the result.
func (s *FileStore) UpdateActions(fn func(actions []model.Action) ([]model.Action, error)) error {
	s.actionsMu.Lock()
	defer s.actionsMu.Unlock()

	var actions []model.Action
	s.loadCollection(actionsFile, &actions)
	updated, err := fn(actions)
	if err != nil {
		return err
	}
	return s.saveCollection(actionsFile, updated)
}

func (s *FileStore) loadCollection(name string, out any) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Error().Err(err).Str("file", path).Msg("failed to read collection")
		}
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Availability over integrity: a broken file reads as empty.
		log.Error().Err(err).Str("file", path).Msg("malformed collection, treating as empty")
	}
}

func (s *FileStore) saveCollection(name string, value any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %q: %w", s.dir, err)
	}
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
