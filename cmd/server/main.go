package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"boardlens.ai/internal/config"
	"boardlens.ai/internal/game/cards"
	"boardlens.ai/internal/i18n"
	persistlog "boardlens.ai/internal/persistence/log"
	"boardlens.ai/internal/persistence/runsdb"
	"boardlens.ai/internal/scan"
	"boardlens.ai/internal/transport/ws"
)

func main() {
	var (
		addr        = flag.String("addr", "", "http listen address (overrides runtime.yaml)")
		configDir   = flag.String("configs", "./configs", "config directory")
		schemaDir   = flag.String("schemas", "./schemas", "json schema directory")
		runtimePath = flag.String("runtime", "", "path to runtime.yaml (default: <configs>/runtime.yaml)")
		disableDB   = flag.Bool("disable_db", false, "disable the sqlite run history")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	rp := *runtimePath
	if rp == "" {
		rp = filepath.Join(*configDir, "runtime.yaml")
	}
	rt, err := config.Load(rp)
	if err != nil {
		logger.Fatalf("load runtime config: %v", err)
	}
	if *addr != "" {
		rt.Addr = *addr
	}

	cat, err := cards.Load(filepath.Join(*configDir, "cards.json"), filepath.Join(*schemaDir, "cards.schema.json"))
	if err != nil {
		logger.Fatalf("load card catalog: %v", err)
	}
	logger.Printf("catalog loaded: %d definitions digest=%s", len(cat.ByID), cat.Digest[:12])

	phrases := i18n.Default()
	if rt.Locale != "" {
		phrases, err = i18n.Load(rt.Locale)
		if err != nil {
			logger.Fatalf("load locale: %v", err)
		}
	}

	svc, err := scan.NewService(cat, phrases, filepath.Join(*schemaDir, "scan_request.schema.json"), logger)
	if err != nil {
		logger.Fatalf("scan service: %v", err)
	}

	_ = os.MkdirAll(rt.DataDir, 0o755)
	runLog := persistlog.NewRunLogger(rt.DataDir)
	defer runLog.Close()
	svc.WithRunLog(runLog)

	if rt.History.Enabled && !*disableDB {
		db, err := runsdb.Open(rt.History.Path)
		if err != nil {
			logger.Fatalf("open run history: %v", err)
		}
		defer db.Close()
		svc.WithHistory(db)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", ws.NewServer(svc, logger).Handler())
	mux.HandleFunc("/v1/scan", scanHandler(svc, logger))
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/debug/pprof/", pprof.Index)

	srv := &http.Server{Addr: rt.Addr, Handler: mux}
	go func() {
		logger.Printf("listening on %s", rt.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Printf("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func scanHandler(svc *scan.Service, logger *log.Logger) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		raw, err := io.ReadAll(http.MaxBytesReader(rw, r.Body, 4<<20))
		if err != nil {
			http.Error(rw, "read body", http.StatusBadRequest)
			return
		}
		res, errMsg := svc.ScanRaw(raw)
		rw.Header().Set("Content-Type", "application/json")
		if errMsg != nil {
			rw.WriteHeader(http.StatusBadRequest)
			if err := json.NewEncoder(rw).Encode(errMsg); err != nil {
				logger.Printf("write error response: %v", err)
			}
			return
		}
		if err := json.NewEncoder(rw).Encode(res); err != nil {
			logger.Printf("write response: %v", err)
		}
	}
}
