// Command score runs the scoring pipeline offline: it reads a scan request
// from a JSON file and prints each player's breakdown. Useful for golden
// fixtures and for inspecting a stored detection dump without the server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"boardlens.ai/internal/game/cards"
	"boardlens.ai/internal/i18n"
	"boardlens.ai/internal/persistence/runsdb"
	"boardlens.ai/internal/scan"
)

func main() {
	var (
		inPath    = flag.String("in", "", "path to scan request JSON")
		configDir = flag.String("configs", "./configs", "config directory")
		schemaDir = flag.String("schemas", "./schemas", "json schema directory")
		localeOpt = flag.String("locale", "", "locale phrase file (optional)")
		dbPath    = flag.String("db", "", "record the run into this history db (optional)")
		history   = flag.Int("history", 0, "print the N most recent runs from -db and exit")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[score] ", 0)

	if *history > 0 {
		if *dbPath == "" {
			logger.Fatal("missing -db")
		}
		db, err := runsdb.Open(*dbPath)
		if err != nil {
			logger.Fatalf("open history: %v", err)
		}
		defer db.Close()
		runs, err := db.RecentRuns(*history)
		if err != nil {
			logger.Fatalf("recent runs: %v", err)
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  players=%d cards=%d total=%d\n", r.At, r.RunID, r.Players, r.Cards, r.Total)
		}
		return
	}

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "missing -in")
		os.Exit(2)
	}

	cat, err := cards.Load(filepath.Join(*configDir, "cards.json"), filepath.Join(*schemaDir, "cards.schema.json"))
	if err != nil {
		logger.Fatalf("load card catalog: %v", err)
	}

	phrases := i18n.Default()
	if *localeOpt != "" {
		phrases, err = i18n.Load(*localeOpt)
		if err != nil {
			logger.Fatalf("load locale: %v", err)
		}
	}

	svc, err := scan.NewService(cat, phrases, filepath.Join(*schemaDir, "scan_request.schema.json"), logger)
	if err != nil {
		logger.Fatalf("scan service: %v", err)
	}

	if *dbPath != "" {
		db, err := runsdb.Open(*dbPath)
		if err != nil {
			logger.Fatalf("open history: %v", err)
		}
		defer db.Close()
		defer db.Flush()
		svc.WithHistory(db)
	}

	raw, err := os.ReadFile(*inPath)
	if err != nil {
		logger.Fatalf("read input: %v", err)
	}
	res, errMsg := svc.ScanRaw(raw)
	if errMsg != nil {
		logger.Fatalf("%s: %s", errMsg.Code, errMsg.Message)
	}

	fmt.Printf("run %s catalog=%s\n", res.RunID, res.CatalogDigest[:12])
	for _, p := range res.Players {
		fmt.Printf("\n%s: %d points\n", p.Name, p.Total)
		for _, c := range p.Cards {
			group := c.Group
			if group == "" {
				group = "-"
			}
			fmt.Printf("  %-24s %-14s %3d  %s\n", c.Label, group, c.Points, c.Reason)
		}
	}
}
