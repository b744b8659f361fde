// Package store implements the flat JSON document store holding the whole
// club dataset. Every collection lives in memory as an ordered slice and the
// complete document is rewritten on each mutation.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/models"
)

// Data is the full dataset: one named collection per entity type. The JSON
// keys match the on-disk document layout.
type Data struct {
	Users                    []models.User                    `json:"users"`
	Events                   []models.Event                   `json:"events"`
	EventParticipants        []models.EventParticipant        `json:"event_participants"`
	Posts                    []models.Post                    `json:"posts"`
	PostLikes                []models.PostLike                `json:"post_likes"`
	Comments                 []models.Comment                 `json:"comments"`
	Stories                  []models.Story                   `json:"stories"`
	StoryViews               []models.StoryView               `json:"story_views"`
	Courses                  []models.Course                  `json:"courses"`
	Ratings                  []models.Rating                  `json:"ratings"`
	Notifications            []models.Notification            `json:"notifications"`
	Conversations            []models.Conversation            `json:"conversations"`
	ConversationParticipants []models.ConversationParticipant `json:"conversation_participants"`
	Messages                 []models.Message                 `json:"messages"`
	UserSettings             []models.UserSettings            `json:"user_settings"`
}

// defaultData returns the empty document. Slices are allocated so an empty
// store serializes as [] rather than null.
func defaultData() *Data {
	return &Data{
		Users:                    []models.User{},
		Events:                   []models.Event{},
		EventParticipants:        []models.EventParticipant{},
		Posts:                    []models.Post{},
		PostLikes:                []models.PostLike{},
		Comments:                 []models.Comment{},
		Stories:                  []models.Story{},
		StoryViews:               []models.StoryView{},
		Courses:                  []models.Course{},
		Ratings:                  []models.Rating{},
		Notifications:            []models.Notification{},
		Conversations:            []models.Conversation{},
		ConversationParticipants: []models.ConversationParticipant{},
		Messages:                 []models.Message{},
		UserSettings:             []models.UserSettings{},
	}
}

// Store owns the in-memory dataset and its file. A single RWMutex serializes
// access: readers go through View, writers through Update, so a mutation and
// its persist step are one critical section and the last-write-wins race of
// the naive handle-sharing design cannot occur.
type Store struct {
	path   string
	mu     sync.RWMutex
	data   *Data
	logger zerolog.Logger

	// seq numbers each marshaled snapshot (guarded by mu); writeMu
	// serializes disk writes and written tracks the newest snapshot on
	// disk, so a background persist cannot clobber a later one.
	seq     uint64
	writeMu sync.Mutex
	written uint64
}

// Open loads the document at path, or starts from the empty default when the
// file does not exist yet. The parent directory is created if needed.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{
		path:   path,
		data:   defaultData(),
		logger: logger,
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Info().Str("path", path).Msg("No existing data file, starting with empty dataset")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	if err := json.Unmarshal(raw, s.data); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}

	logger.Info().Str("path", path).Int("users", len(s.data.Users)).Msg("Data file loaded")
	return s, nil
}

// View runs fn with read access to the dataset. fn must not retain or mutate
// the data.
func (s *Store) View(fn func(*Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// Update runs fn with write access and persists the whole document when fn
// succeeds. Nothing is written if fn returns an error, but in-memory changes
// made before the error are not rolled back; mutating last is the caller's
// responsibility.
func (s *Store) Update(fn func(*Data) error) error {
	s.mu.Lock()
	if err := fn(s.data); err != nil {
		s.mu.Unlock()
		return err
	}

	raw, err := s.marshalLocked()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	return s.persist(raw, seq)
}

// UpdateAsync applies fn like Update but flushes to disk in the background,
// logging write failures instead of reporting them. Used on read paths with
// incidental mutations (marking messages read) where the response should not
// wait on the disk.
func (s *Store) UpdateAsync(fn func(*Data) error) error {
	s.mu.Lock()
	if err := fn(s.data); err != nil {
		s.mu.Unlock()
		return err
	}

	raw, err := s.marshalLocked()
	if err != nil {
		s.mu.Unlock()
		s.logger.Error().Err(err).Msg("Failed to serialize dataset for background persist")
		return nil
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	go func() {
		if err := s.persist(raw, seq); err != nil {
			s.logger.Error().Err(err).Str("path", s.path).Msg("Background persist failed")
		}
	}()
	return nil
}

// Flush persists the current dataset. Called on shutdown.
func (s *Store) Flush() error {
	s.mu.Lock()
	raw, err := s.marshalLocked()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	return s.persist(raw, seq)
}

// persist writes one snapshot, dropping it when a newer snapshot already
// reached the disk. Disk writes are fully serialized so a background persist
// from UpdateAsync cannot overwrite a later synchronous one.
func (s *Store) persist(raw []byte, seq uint64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if seq < s.written {
		return nil
	}
	if err := s.writeFile(raw); err != nil {
		return err
	}
	s.written = seq
	return nil
}

// marshalLocked serializes the dataset. Callers must hold the lock.
func (s *Store) marshalLocked() ([]byte, error) {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize dataset: %w", err)
	}
	return raw, nil
}

// writeFile replaces the document atomically: write a temp file in the same
// directory, then rename over the target. A crash mid-write never leaves a
// torn document.
func (s *Store) writeFile(raw []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".rct-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}
