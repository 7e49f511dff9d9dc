package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"

	"StyleSense/internal/models"
)

// sqlite UNIQUE / PRIMARY KEY constraint violations
const (
	sqliteConstraintUnique     = 2067
	sqliteConstraintPrimaryKey = 1555
)

// SQLiteStore is the transactional alternative to JSONStore.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqliteConstraintUnique || code == sqliteConstraintPrimaryKey
	}
	return false
}

func (s *SQLiteStore) CreateUser(ctx context.Context, user models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO users(username, password_hash, body_type, skin_tone, gender) VALUES(?, ?, ?, ?, ?)",
		user.Username, user.PasswordHash, user.Profile.BodyType, user.Profile.SkinTone, user.Profile.Gender)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return err
	}

	for _, it := range user.Wardrobe {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO wardrobe_items(username, item, category) VALUES(?, ?, ?)",
			user.Username, it.Item, it.Category); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetUser(ctx context.Context, username string) (models.User, error) {
	user := models.User{Username: username, Wardrobe: []models.WardrobeItem{}}

	row := s.db.QueryRowContext(ctx,
		"SELECT password_hash, body_type, skin_tone, gender FROM users WHERE username = ?", username)
	if err := row.Scan(&user.PasswordHash, &user.Profile.BodyType, &user.Profile.SkinTone, &user.Profile.Gender); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT item, category FROM wardrobe_items WHERE username = ? ORDER BY id", username)
	if err != nil {
		return models.User{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var it models.WardrobeItem
		if err := rows.Scan(&it.Item, &it.Category); err != nil {
			return models.User{}, err
		}
		user.Wardrobe = append(user.Wardrobe, it)
	}
	return user, rows.Err()
}

func (s *SQLiteStore) AddWardrobeItem(ctx context.Context, username string, item models.WardrobeItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return ErrUserNotFound
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO wardrobe_items(username, item, category) VALUES(?, ?, ?)",
		username, item.Item, item.Category); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) AppendHistory(ctx context.Context, entry models.HistoryEntry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO history(id, username, topic, platform, language, content, timestamp) VALUES(?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.User, entry.Topic, entry.Platform, entry.Language, entry.Content, entry.Timestamp)
	return err
}

func (s *SQLiteStore) ListHistory(ctx context.Context, username string) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, topic, platform, language, content, timestamp
		FROM history
		WHERE username = ?
		ORDER BY seq ASC
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.User, &e.Topic, &e.Platform, &e.Language, &e.Content, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
