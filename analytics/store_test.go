package analytics

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndCountVisits(t *testing.T) {
	s := setupTestStore(t)

	visits := []struct{ path, ip string }{
		{"/blog/hello", "203.0.113.10"},
		{"/blog/hello", "203.0.113.11"},
		{"/", "203.0.113.10"},
	}
	for _, v := range visits {
		if err := s.RecordVisit(v.path, v.ip, ""); err != nil {
			t.Fatalf("RecordVisit failed: %v", err)
		}
	}

	since := time.Now().Add(-time.Hour)
	total, err := s.TotalVisits(since)
	if err != nil {
		t.Fatalf("TotalVisits failed: %v", err)
	}
	if total != 3 {
		t.Errorf("TotalVisits = %d, want 3", total)
	}

	unique, err := s.UniqueVisitors(since)
	if err != nil {
		t.Fatalf("UniqueVisitors failed: %v", err)
	}
	if unique != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", unique)
	}

	counts, err := s.CountsByPath(since)
	if err != nil {
		t.Fatalf("CountsByPath failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("CountsByPath returned %d paths, want 2", len(counts))
	}
	if counts[0].Path != "/blog/hello" || counts[0].Count != 2 {
		t.Errorf("top path = %+v, want /blog/hello with 2 visits", counts[0])
	}
}

func TestSaltPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.db")

	s1, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	salt1 := s1.salt
	s1.Close()

	s2, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s2.Close()

	if salt1 == "" || s2.salt != salt1 {
		t.Errorf("salt changed across opens: %q vs %q", salt1, s2.salt)
	}
}

func TestDeleteOlderThanKeepsRecentVisits(t *testing.T) {
	s := setupTestStore(t)

	if err := s.RecordVisit("/blog/hello", "203.0.113.10", ""); err != nil {
		t.Fatalf("RecordVisit failed: %v", err)
	}
	deleted, err := s.DeleteOlderThan(30)
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted %d recent rows, want 0", deleted)
	}

	total, err := s.TotalVisits(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("TotalVisits failed: %v", err)
	}
	if total != 1 {
		t.Errorf("TotalVisits = %d, want 1", total)
	}
}
