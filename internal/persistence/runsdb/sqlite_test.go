package runsdb

import (
	"path/filepath"
	"testing"
	"time"

	"boardlens.ai/internal/protocol"
)

func sampleResult() *protocol.ScanResult {
	return &protocol.ScanResult{
		Type:          protocol.TypeResult,
		CatalogDigest: "deadbeef",
		Players: []protocol.PlayerScore{
			{
				Name:  "alice",
				Total: 7,
				Cards: []protocol.CardScore{
					{Label: "lodge:a", Title: "lodge", Points: 2, Reason: "2 points", Group: "Structure 1"},
					{Label: "squirrel:a", Title: "squirrel", Points: 1, Reason: "1 points"},
				},
			},
			{Name: "bob", Total: 0},
		},
	}
}

func TestRecordAndRecentRuns(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db.Record("run-1", at, sampleResult())
	db.Record("run-2", at.Add(time.Minute), sampleResult())
	db.Flush()

	runs, err := db.RecentRuns(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs: %d", len(runs))
	}
	// Newest first.
	if runs[0].RunID != "run-2" || runs[1].RunID != "run-1" {
		t.Fatalf("order: %s, %s", runs[0].RunID, runs[1].RunID)
	}
	got := runs[1]
	if got.Players != 2 || got.Cards != 2 || got.Total != 7 {
		t.Fatalf("summary: %+v", got)
	}
	if got.CatalogDigest != "deadbeef" {
		t.Fatalf("digest: %q", got.CatalogDigest)
	}
}

func TestRecordAfterCloseIsNoop(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	db.Record("late", time.Now(), sampleResult())
	db.Flush()
}

func TestRecentRunsEmpty(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	runs, err := db.RecentRuns(0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no rows, got %d", len(runs))
	}
}
