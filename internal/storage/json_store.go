/**
* Name: 			json_store.go
* Description: 		data.json 파일 기반 저장소
* Workflow: 		전체 문서 로드 → 수정 → 임시 파일에 기록 후 rename
 */
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"StyleSense/internal/models"
)

// document is the on-disk layout of data.json.
type document struct {
	Users   map[string]userRecord `json:"users"`
	History []models.HistoryEntry `json:"history"`
}

type userRecord struct {
	Password string                `json:"password"`
	Profile  models.StyleProfile   `json:"profile"`
	Wardrobe []models.WardrobeItem `json:"wardrobe"`
}

func emptyDocument() *document {
	return &document{Users: map[string]userRecord{}, History: []models.HistoryEntry{}}
}

// JSONStore keeps everything in one JSON document that is rewritten in full on every mutation.
// The mutex serialises writers inside this process only.
type JSONStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

func NewJSONStore(path string, logger *zap.Logger) (*JSONStore, error) {
	s := &JSONStore{path: path, logger: logger}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.save(emptyDocument()); err != nil {
			return nil, err
		}
		logger.Info("created data file", zap.String("path", path))
	}
	return s, nil
}

// load never fails on bad content: an unreadable document is treated as empty.
func (s *JSONStore) load() (*document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return emptyDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	doc := emptyDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		s.logger.Warn("data file is corrupt, starting from an empty document",
			zap.String("path", s.path), zap.Error(err))
		return emptyDocument(), nil
	}
	if doc.Users == nil {
		doc.Users = map[string]userRecord{}
	}
	if doc.History == nil {
		doc.History = []models.HistoryEntry{}
	}
	return doc, nil
}

func (s *JSONStore) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONStore) update(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *JSONStore) CreateUser(_ context.Context, user models.User) error {
	return s.update(func(doc *document) error {
		if _, ok := doc.Users[user.Username]; ok {
			return ErrUsernameExists
		}
		wardrobe := user.Wardrobe
		if wardrobe == nil {
			wardrobe = []models.WardrobeItem{}
		}
		doc.Users[user.Username] = userRecord{
			Password: user.PasswordHash,
			Profile:  user.Profile,
			Wardrobe: wardrobe,
		}
		return nil
	})
}

func (s *JSONStore) GetUser(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return models.User{}, err
	}
	rec, ok := doc.Users[username]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	wardrobe := rec.Wardrobe
	if wardrobe == nil {
		wardrobe = []models.WardrobeItem{}
	}
	return models.User{
		Username:     username,
		PasswordHash: rec.Password,
		Profile:      rec.Profile,
		Wardrobe:     wardrobe,
	}, nil
}

func (s *JSONStore) AddWardrobeItem(_ context.Context, username string, item models.WardrobeItem) error {
	return s.update(func(doc *document) error {
		rec, ok := doc.Users[username]
		if !ok {
			return ErrUserNotFound
		}
		rec.Wardrobe = append(rec.Wardrobe, item)
		doc.Users[username] = rec
		return nil
	})
}

func (s *JSONStore) AppendHistory(_ context.Context, entry models.HistoryEntry) error {
	return s.update(func(doc *document) error {
		doc.History = append(doc.History, entry)
		return nil
	})
}

func (s *JSONStore) ListHistory(_ context.Context, username string) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	entries := []models.HistoryEntry{}
	for _, e := range doc.History {
		if e.User == username {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *JSONStore) Close() error { return nil }
