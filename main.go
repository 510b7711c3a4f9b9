package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"Hidro/internal/calc"
	"Hidro/internal/calc/batch"
	"Hidro/internal/calc/importer"
	"Hidro/internal/calc/report"
	"Hidro/internal/config"
	"Hidro/internal/history"
	"Hidro/internal/logger"
	"Hidro/internal/metrics"
	"Hidro/internal/middleware"
	"Hidro/internal/repo"
)

var wg sync.WaitGroup

func HandleList(r *mux.Router, cfg *config.Config, store *history.Store, log *logger.Logger) {
	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	calcH := &calc.Handler{
		Log: log,
		Record: func(ctx context.Context, req calc.Request, res calc.Result) (int64, error) {
			e, err := store.Record(ctx, req, res)
			return e.ID, err
		},
	}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}
	historyH := &history.Handler{Store: store}
	reportH := &report.Handler{Store: store}

	api.HandleFunc("/categories", calcH.Categories).Methods("GET")
	api.HandleFunc("/categories/{id}", calcH.Category).Methods("GET")
	api.HandleFunc("/units", calcH.Units).Methods("GET")

	// batch and import are registered ahead of the {id} route
	api.HandleFunc("/calc/batch", batchH.Calc).Methods("POST")
	api.HandleFunc("/calc/import", importH.Import).Methods("POST")
	api.HandleFunc("/calc/{id}", calcH.Calc).Methods("POST")

	api.HandleFunc("/history", historyH.List).Methods("GET")
	api.HandleFunc("/history", historyH.Clear).Methods("DELETE")
	api.Handle("/history/stream", history.NewStreamHandler(store.Broadcaster())).Methods("GET")
	api.HandleFunc("/history/export.xlsx", reportH.XLSX).Methods("GET")
	api.HandleFunc("/history/report.pdf", reportH.PDF).Methods("GET")
	api.HandleFunc("/history/{id:[0-9]+}", historyH.Get).Methods("GET")
	api.HandleFunc("/history/{id}", historyH.Delete).Methods("DELETE")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := config.LoadDotEnv(); err != nil {
		logger.Nop().Warn("read .env", "error", err)
	}
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	metrics.Init()

	blobs, closeStore, err := repo.Open(ctx, cfg.StoreDriver, cfg.SQLitePath, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("open history store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeStore()

	store := history.NewStore(blobs, history.WithLogger(log.With("component", "history")))
	store.Load(ctx)
	log.Info("history loaded", "driver", cfg.StoreDriver, "entries", store.Len())

	r := mux.NewRouter()
	HandleList(r, cfg, store, log)
	r.Use(middleware.RequestLog(log))
	handler := middleware.CORS(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting server", "addr", cfg.HTTPAddr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	log.Info("server stopped")

	wg.Wait()
}
