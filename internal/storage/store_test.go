package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"StyleSense/internal/models"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	js, err := NewJSONStore(filepath.Join(dir, "data.json"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewJSONStore() error: %v", err)
	}
	ss, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	t.Cleanup(func() { ss.Close() })

	return map[string]Store{DriverJSON: js, DriverSQLite: ss}
}

func TestStore_CreateUser(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			profile := models.StyleProfile{BodyType: "Hourglass", SkinTone: "Olive", Gender: "Female"}
			if err := s.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "h1", Profile: profile}); err != nil {
				t.Fatalf("CreateUser() error: %v", err)
			}

			err := s.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "h2"})
			if !errors.Is(err, ErrUsernameExists) {
				t.Fatalf("duplicate CreateUser() error = %v, want ErrUsernameExists", err)
			}

			got, err := s.GetUser(ctx, "alice")
			if err != nil {
				t.Fatalf("GetUser() error: %v", err)
			}
			if got.Profile != profile {
				t.Errorf("Profile = %+v, want %+v", got.Profile, profile)
			}
			if got.PasswordHash != "h1" {
				t.Errorf("PasswordHash = %q, duplicate signup must not overwrite", got.PasswordHash)
			}
			if got.Wardrobe == nil || len(got.Wardrobe) != 0 {
				t.Errorf("Wardrobe = %#v, want empty", got.Wardrobe)
			}

			if _, err := s.GetUser(ctx, "bob"); !errors.Is(err, ErrUserNotFound) {
				t.Errorf("GetUser(unknown) error = %v, want ErrUserNotFound", err)
			}
		})
	}
}

func TestStore_Wardrobe(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "h"}); err != nil {
				t.Fatal(err)
			}
			items := []models.WardrobeItem{
				{Item: "Blue Denim Jacket", Category: "Outerwear"},
				{Item: "White Sneakers", Category: "Shoes"},
			}
			for _, it := range items {
				if err := s.AddWardrobeItem(ctx, "alice", it); err != nil {
					t.Fatalf("AddWardrobeItem() error: %v", err)
				}
			}
			got, err := s.GetUser(ctx, "alice")
			if err != nil {
				t.Fatal(err)
			}
			if len(got.Wardrobe) != 2 || got.Wardrobe[0] != items[0] || got.Wardrobe[1] != items[1] {
				t.Errorf("Wardrobe = %+v, want %+v", got.Wardrobe, items)
			}

			if err := s.AddWardrobeItem(ctx, "ghost", items[0]); !errors.Is(err, ErrUserNotFound) {
				t.Errorf("AddWardrobeItem(unknown) error = %v, want ErrUserNotFound", err)
			}
		})
	}
}

func TestStore_HistoryAppendOnlyAndPerUser(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			topics := []string{"a", "b", "c", "d", "e"}
			for i, topic := range topics {
				user := "alice"
				if i%2 == 1 {
					user = "bob"
				}
				err := s.AppendHistory(ctx, models.HistoryEntry{
					ID: topic, User: user, Topic: topic, Platform: "Instagram",
					Language: "English", Content: "content " + topic, Timestamp: "2026-10-19T10:00:00Z",
				})
				if err != nil {
					t.Fatalf("AppendHistory() error: %v", err)
				}
			}

			alice, err := s.ListHistory(ctx, "alice")
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, e := range alice {
				if e.User != "alice" {
					t.Errorf("entry for %q leaked into alice's history", e.User)
				}
				got = append(got, e.Topic)
			}
			if strings.Join(got, ",") != "a,c,e" {
				t.Errorf("alice topics = %v, want [a c e]", got)
			}

			bob, _ := s.ListHistory(ctx, "bob")
			if len(bob) != 2 {
				t.Errorf("len(bob) = %d, want 2", len(bob))
			}

			none, err := s.ListHistory(ctx, "carol")
			if err != nil || none == nil || len(none) != 0 {
				t.Errorf("ListHistory(carol) = %#v, %v", none, err)
			}
		})
	}
}

func TestJSONStore_FileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := NewJSONStore(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	s.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "digest"})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"users"`, `"history"`, `"password": "digest"`, `"wardrobe": []`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("data file missing %s:\n%s", want, data)
		}
	}
}

func TestJSONStore_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	existing := `{"users": {"alice": {"password": "x", "profile": {"body_type": "Pear", "skin_tone": "Warm", "gender": "Female"},
		"wardrobe": [{"item": "Tee", "category": "Top"}]}}, "history": [{"user": "alice", "topic": "t", "platform": "p",
		"language": "English", "content": "c", "timestamp": "2024-01-01 10:00"}]}`
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewJSONStore(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	u, err := s.GetUser(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if u.Profile.BodyType != "Pear" || len(u.Wardrobe) != 1 {
		t.Errorf("user = %+v", u)
	}
	h, _ := s.ListHistory(context.Background(), "alice")
	if len(h) != 1 || h[0].Timestamp != "2024-01-01 10:00" {
		t.Errorf("history = %+v", h)
	}
}

func TestJSONStore_CorruptFileResetsToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewJSONStore(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetUser(context.Background(), "alice"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser() error = %v, want ErrUserNotFound", err)
	}
	if err := s.CreateUser(context.Background(), models.User{Username: "alice", PasswordHash: "h"}); err != nil {
		t.Errorf("CreateUser() on reset document error: %v", err)
	}
}

func TestJSONStore_ConcurrentAppends(t *testing.T) {
	s, err := NewJSONStore(filepath.Join(t.TempDir(), "data.json"), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AppendHistory(ctx, models.HistoryEntry{User: "alice", Topic: "t", Content: "c"})
		}()
	}
	wg.Wait()

	got, _ := s.ListHistory(ctx, "alice")
	if len(got) != 20 {
		t.Errorf("len(history) = %d, want 20", len(got))
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open("mongo", "x", zap.NewNop()); err == nil {
		t.Error("expected error for unknown driver")
	}
}
