package data

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modeltrust/mtrust/pkg/score"
)

const (
	recordStaleHours = 24

	upsertScoreSQL = `INSERT INTO model_score (name, url, net_score, record, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			url = ?, net_score = ?, record = ?, created_at = ?
	`

	selectRecordSQL = `SELECT record FROM model_score
		WHERE name = ?
		  AND created_at >= ?
	`

	selectScoresSQL = `SELECT name, url, net_score, created_at
		FROM model_score
		ORDER BY created_at DESC
		LIMIT ?
	`
)

// StoredScore is one cached model score row, without the full record.
type StoredScore struct {
	Name      string  `json:"name" yaml:"name"`
	URL       string  `json:"url" yaml:"url"`
	NetScore  float64 `json:"net_score" yaml:"netScore"`
	CreatedAt string  `json:"created_at" yaml:"createdAt"`
}

// Cache implements score.RecordCache over the SQLite store. Every scored
// record is written; reads only happen when reuse is enabled, and then only
// for records under 24 hours old.
type Cache struct {
	db    *sql.DB
	reuse bool
}

func NewCache(db *sql.DB, reuse bool) *Cache {
	return &Cache{db: db, reuse: reuse}
}

// Get returns the cached record for name when reuse is on and the record is
// still fresh.
func (c *Cache) Get(name string) (score.Record, bool) {
	if c.db == nil || !c.reuse {
		return score.Record{}, false
	}

	threshold := time.Now().UTC().Add(-recordStaleHours * time.Hour).Format(time.RFC3339)

	var raw string
	err := c.db.QueryRow(selectRecordSQL, name, threshold).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Debug("error reading cached record", "name", name, "error", err)
		}
		return score.Record{}, false
	}

	var rec score.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		slog.Debug("error decoding cached record", "name", name, "error", err)
		return score.Record{}, false
	}
	return rec, true
}

// Put stores the record, replacing any prior row for the same model.
func (c *Cache) Put(url string, rec score.Record) {
	if err := SaveRecord(c.db, url, rec); err != nil {
		slog.Error("error caching record", "name", rec.Name, "error", err)
	}
}

// SaveRecord upserts one scored record.
func SaveRecord(db *sql.DB, url string, rec score.Record) error {
	if db == nil {
		return errDBNotInitialized
	}

	raw, err := rec.NDJSON()
	if err != nil {
		return fmt.Errorf("error serializing record for %s: %w", rec.Name, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.Exec(upsertScoreSQL,
		rec.Name, url, rec.NetScore, raw, now,
		url, rec.NetScore, raw, now,
	)
	if err != nil {
		return fmt.Errorf("error upserting record for %s: %w", rec.Name, err)
	}
	return nil
}

// ListScores returns the most recent cached scores, newest first.
func ListScores(db *sql.DB, limit int) ([]*StoredScore, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.Query(selectScoresSQL, limit)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	list := make([]*StoredScore, 0)
	for rows.Next() {
		s := &StoredScore{}
		if err := rows.Scan(&s.Name, &s.URL, &s.NetScore, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		list = append(list, s)
	}

	return list, rows.Err()
}
