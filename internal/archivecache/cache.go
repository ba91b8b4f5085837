package archivecache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Cache provides content-hash-keyed get/set access to cached environments.
type Cache struct {
	db *DB
}

// NewCache wraps db.
func NewCache(db *DB) *Cache {
	return &Cache{db: db}
}

// get returns the raw environment_json for contentHash, or ("", false, nil)
// on a miss.
func (c *Cache) get(contentHash string) (string, bool, error) {
	var envJSON string
	err := c.db.conn.QueryRow(`
		SELECT environment_json FROM archive_cache WHERE content_hash = ?
	`, contentHash).Scan(&envJSON)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("archive cache lookup failed: %w", err)
	}
	return envJSON, true, nil
}

// set stores the serialized environment under contentHash, replacing any
// prior entry (an archive's content hash changing means its bytes changed).
func (c *Cache) set(contentHash, archivePath, envJSON string) error {
	_, err := c.db.conn.Exec(`
		INSERT OR REPLACE INTO archive_cache (content_hash, archive_path, environment_json, created_at)
		VALUES (?, ?, ?, ?)
	`, contentHash, archivePath, envJSON, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set archive cache entry: %w", err)
	}
	return nil
}

// Invalidate removes the cache entry for a given archive path, regardless
// of content hash.
func (c *Cache) Invalidate(archivePath string) error {
	_, err := c.db.conn.Exec(`DELETE FROM archive_cache WHERE archive_path = ?`, archivePath)
	if err != nil {
		return fmt.Errorf("failed to invalidate archive cache entry: %w", err)
	}
	return nil
}

func marshalEnvironmentDTO(dto environmentDTO) (string, error) {
	b, err := json.Marshal(dto)
	if err != nil {
		return "", fmt.Errorf("marshaling environment: %w", err)
	}
	return string(b), nil
}

func unmarshalEnvironmentDTO(s string) (environmentDTO, error) {
	var dto environmentDTO
	if err := json.Unmarshal([]byte(s), &dto); err != nil {
		return environmentDTO{}, fmt.Errorf("unmarshaling environment: %w", err)
	}
	return dto, nil
}
