package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestRunLogger_WritesDecodableRecords(t *testing.T) {
	dir := t.TempDir()
	l := NewRunLogger(dir)

	recs := []RunRecord{
		{RunID: "r1", At: "2026-03-01T12:00:00Z", CatalogDigest: "abc",
			Players: []RunPlayerTotal{{Name: "alice", Total: 7, Cards: 3}}},
		{RunID: "r2", At: "2026-03-01T12:00:01Z", CatalogDigest: "abc"},
	}
	for _, r := range recs {
		if err := l.WriteRun(r); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "runs", "runs-*.jsonl.zst"))
	if err != nil || len(files) != 1 {
		t.Fatalf("run log files: %v (%v)", files, err)
	}
	f, err := os.Open(files[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer zr.Close()

	var got []RunRecord
	sc := bufio.NewScanner(zr)
	for sc.Scan() {
		var r RunRecord
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("line: %v", err)
		}
		got = append(got, r)
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].RunID != "r1" || got[1].RunID != "r2" {
		t.Fatalf("records: %+v", got)
	}
	if got[0].Players[0].Total != 7 {
		t.Fatalf("player total: %+v", got[0].Players)
	}
}
