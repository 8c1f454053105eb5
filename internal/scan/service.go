// Package scan wires the scoring pipeline behind one service: schema
// validation of incoming requests, the score run itself, and recording of
// finished runs to the run log and history db.
package scan

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"boardlens.ai/internal/game/cards"
	"boardlens.ai/internal/i18n"
	persistlog "boardlens.ai/internal/persistence/log"
	"boardlens.ai/internal/persistence/runsdb"
	"boardlens.ai/internal/protocol"
	"boardlens.ai/internal/scan/score"
)

type Service struct {
	scorer *score.Scorer
	schema *jsonschema.Schema
	log    *log.Logger

	runLog *persistlog.RunLogger // optional
	runs   *runsdb.DB            // optional
}

func NewService(cat *cards.Catalog, phrases *i18n.Table, schemaPath string, logger *log.Logger) (*Service, error) {
	schema, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("scan request schema: %w", err)
	}
	return &Service{
		scorer: score.NewScorer(cat, phrases),
		schema: schema,
		log:    logger,
	}, nil
}

// WithRunLog attaches the JSONL run log.
func (s *Service) WithRunLog(l *persistlog.RunLogger) *Service {
	s.runLog = l
	return s
}

// WithHistory attaches the sqlite run history.
func (s *Service) WithHistory(db *runsdb.DB) *Service {
	s.runs = db
	return s
}

// ScanRaw validates and scores a raw request payload. The error return
// carries a protocol error code; scoring itself never fails, only malformed
// requests do.
func (s *Service) ScanRaw(raw []byte) (*protocol.ScanResult, *protocol.ErrorMsg) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		e := protocol.NewError(protocol.ErrBadRequest, "invalid json")
		return nil, &e
	}
	if err := s.schema.Validate(doc); err != nil {
		e := protocol.NewError(protocol.ErrBadRequest, err.Error())
		return nil, &e
	}
	var req protocol.ScanRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		e := protocol.NewError(protocol.ErrBadRequest, "invalid request")
		return nil, &e
	}
	return s.Scan(&req), nil
}

// Scan scores one request and records the run.
func (s *Service) Scan(req *protocol.ScanRequest) *protocol.ScanResult {
	res := s.scorer.Score(req)
	res.RunID = uuid.NewString()
	s.record(res)
	return res
}

func (s *Service) record(res *protocol.ScanResult) {
	now := time.Now()
	if s.runLog != nil {
		rec := persistlog.RunRecord{
			RunID:         res.RunID,
			At:            now.UTC().Format(time.RFC3339Nano),
			CatalogDigest: res.CatalogDigest,
		}
		for _, p := range res.Players {
			rec.Players = append(rec.Players, persistlog.RunPlayerTotal{
				Name: p.Name, Total: p.Total, Cards: len(p.Cards),
			})
		}
		if err := s.runLog.WriteRun(rec); err != nil && s.log != nil {
			s.log.Printf("run log write: %v", err)
		}
	}
	s.runs.Record(res.RunID, now, res)
}
