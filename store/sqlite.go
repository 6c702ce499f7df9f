package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"
	"github.com/lucky-sheltered-boy/BUAA-database-2025/utils"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the credential unit in a single-file key-value table.
// This is the default backend: the process-local analog of the portal's
// browser storage.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore opens (and if needed bootstraps) the store at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap credential store: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) get(key string) (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

// Load reads the credential unit. Missing entries yield empty defaults.
func (s *SQLiteStore) Load() (models.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var creds models.Credentials
	var err error
	if creds.AccessToken, err = s.get(utils.StorageKeyToken); err != nil {
		return models.Credentials{}, fmt.Errorf("load access token: %w", err)
	}
	if creds.RefreshToken, err = s.get(utils.StorageKeyRefreshToken); err != nil {
		return models.Credentials{}, fmt.Errorf("load refresh token: %w", err)
	}
	raw, err := s.get(utils.StorageKeyUserInfo)
	if err != nil {
		return models.Credentials{}, fmt.Errorf("load profile: %w", err)
	}
	if raw != "" {
		var profile models.UserProfile
		if err := json.Unmarshal([]byte(raw), &profile); err != nil {
			return models.Credentials{}, fmt.Errorf("decode stored profile: %w", err)
		}
		creds.Profile = &profile
	}
	return creds, nil
}

// Save writes the three credential entries in one transaction.
func (s *SQLiteStore) Save(creds models.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profileJSON := ""
	if creds.Profile != nil {
		raw, err := json.Marshal(creds.Profile)
		if err != nil {
			return fmt.Errorf("encode profile: %w", err)
		}
		profileJSON = string(raw)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		utils.StorageKeyToken:        creds.AccessToken,
		utils.StorageKeyRefreshToken: creds.RefreshToken,
		utils.StorageKeyUserInfo:     profileJSON,
	} {
		if _, err := tx.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
			return fmt.Errorf("save credentials: %w", err)
		}
	}
	return tx.Commit()
}

// Clear removes the credential unit. The persisted term id survives.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM kv WHERE key IN (?, ?, ?)`,
		utils.StorageKeyToken, utils.StorageKeyRefreshToken, utils.StorageKeyUserInfo)
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// LoadTermID returns the persisted term id, or 0 when none is stored.
func (s *SQLiteStore) LoadTermID() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.get(utils.StorageKeyTermID)
	if err != nil || raw == "" {
		return 0, err
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("decode stored term id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) SaveTermID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		utils.StorageKeyTermID, strconv.Itoa(id))
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
