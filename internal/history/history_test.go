package history_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Ubaid1192/authload/internal/history"
)

func TestAppendAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ids := make([]string, 0, 3)
	for i, target := range []string{"http://a", "http://b", "http://c"} {
		id, err := store.Append(history.Record{
			Target:        target,
			Users:         10,
			TotalRequests: int64(100 + i),
			Passed:        i%2 == 0,
		})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if id == "" {
			t.Fatal("Append() returned empty ID")
		}
		ids = append(ids, id)
		// ULIDs share a key prefix within the same millisecond; spacing
		// the appends keeps key order deterministic for the test.
		time.Sleep(2 * time.Millisecond)
	}

	records, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Target != "http://c" || records[1].Target != "http://b" {
		t.Errorf("Recent order = %q, %q; want newest first", records[0].Target, records[1].Target)
	}
	if records[0].ID != ids[2] {
		t.Errorf("newest ID = %q, want %q", records[0].ID, ids[2])
	}
	if records[0].StartedAt.IsZero() {
		t.Error("StartedAt not stamped")
	}

	all, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent(0) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Recent(0) returned %d records, want 3", len(all))
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	want := history.Record{
		Target:         "http://localhost:5000",
		Users:          10,
		TotalRequests:  126,
		FailedRequests: 3,
		FailurePercent: 2.38,
		AvgResponseMs:  412.7,
		TestDuration:   "1m2s",
		Passed:         false,
	}
	if _, err := store.Append(want); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	store.Close()

	// Reopen to prove the record survives the process.
	store, err = history.Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer store.Close()

	records, err := store.Recent(1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	got := records[0]
	if got.Target != want.Target || got.TotalRequests != want.TotalRequests ||
		got.FailedRequests != want.FailedRequests || got.FailurePercent != want.FailurePercent ||
		got.AvgResponseMs != want.AvgResponseMs || got.TestDuration != want.TestDuration ||
		got.Passed != want.Passed {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestCloseNil(t *testing.T) {
	var store *history.Store
	if err := store.Close(); err != nil {
		t.Errorf("Close() on nil store error = %v", err)
	}
}
