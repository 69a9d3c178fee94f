// Package history persists finished runs in a local bbolt database so
// consecutive load tests against the same target can be compared.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"go.etcd.io/bbolt"
)

const bucketRuns = "runs"

// Record is one finished run.
type Record struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	Target         string    `json:"target"`
	Users          int       `json:"users"`
	TotalRequests  int64     `json:"total_requests"`
	FailedRequests int64     `json:"failed_requests"`
	FailurePercent float64   `json:"failure_percentage"`
	AvgResponseMs  float64   `json:"average_response_time"`
	TestDuration   string    `json:"test_duration"`
	Passed         bool      `json:"passed"`
}

// Store wraps the bbolt database holding run records.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	// A short open timeout keeps a concurrent run from blocking forever
	// on the file lock.
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRuns))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append stores one record and returns its ID. Records are keyed by ULID,
// so key order is chronological.
func (s *Store) Append(rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = ulid.Make().String()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketRuns)).Put([]byte(rec.ID), data)
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// Recent returns up to n records, newest first. n <= 0 returns everything.
func (s *Store) Recent(n int) ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(bucketRuns)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if n > 0 && len(records) >= n {
				return nil
			}
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode run %s: %w", k, err)
			}
			records = append(records, rec)
		}
		return nil
	})
	return records, err
}
