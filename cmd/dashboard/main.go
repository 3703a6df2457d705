// Package main provides the dashboard backend: it loads the prepared trip
// session once at startup and serves the interactive filter, the scalar
// metrics and the five aggregate views as JSON to the presentation layer.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taxi-trip-lab/internal/ingestion"
	"taxi-trip-lab/internal/observability"
	"taxi-trip-lab/internal/sampling"
	"taxi-trip-lab/internal/session"
)

func main() {
	loadEnvFile()

	// Parse flags (env vars as defaults)
	tripPaths := flag.String("trip-path", os.Getenv("TRIP_DATA_PATH"), "Comma-separated candidate paths to the trip parquet file")
	tripURL := flag.String("trip-url", os.Getenv("TRIP_DATA_URL"), "Remote URL for the trip parquet file (tried after local paths)")
	zonePath := flag.String("zone-path", os.Getenv("ZONE_LOOKUP_PATH"), "Path to the taxi zone lookup CSV")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	sampleCap := flag.Int("sample-cap", sampling.DefaultCap, "Maximum rows in the working set")
	seed := flag.Uint64("seed", sampling.DefaultSeed, "Sampling seed")
	flag.Parse()

	logger := log.New(os.Stdout, "[dashboard] ", log.LstdFlags)

	if *tripPaths == "" && *tripURL == "" {
		logger.Fatal("--trip-path or --trip-url is required")
	}
	if *zonePath == "" {
		logger.Fatal("--zone-path is required")
	}

	var trips []ingestion.TripSource
	for _, path := range splitList(*tripPaths) {
		trips = append(trips, ingestion.NewParquetSource(path))
	}
	if *tripURL != "" {
		trips = append(trips, ingestion.NewHTTPSource(*tripURL))
	}

	metrics := observability.NewMetrics("")

	logger.Printf("loading session (cap=%d seed=%d)...", *sampleCap, *seed)
	start := time.Now()
	sess, err := session.Load(context.Background(), session.Options{
		Trips:     trips,
		Zones:     []ingestion.ZoneSource{ingestion.NewZoneCSVSource(*zonePath)},
		SampleCap: *sampleCap,
		Seed:      *seed,
		Metrics:   metrics,
	})
	if err != nil {
		logger.Fatalf("session load failed: %v", err)
	}
	logger.Printf("session ready: %d rows in %v", sess.Table().Len(), time.Since(start))

	api := newAPI(sess, metrics, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", api.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/summary", api.handleSummary)
	mux.HandleFunc("/api/metrics", api.handleMetrics)
	mux.HandleFunc("/api/filter", api.handleFilter)
	mux.HandleFunc("/api/aggregates/top-zones", api.handleTopZones)
	mux.HandleFunc("/api/aggregates/fare-by-hour", api.handleFareByHour)
	mux.HandleFunc("/api/aggregates/distance-histogram", api.handleDistanceHistogram)
	mux.HandleFunc("/api/aggregates/payment-breakdown", api.handlePaymentBreakdown)
	mux.HandleFunc("/api/aggregates/demand-matrix", api.handleDemandMatrix)

	server := &http.Server{
		Addr:    *addr,
		Handler: mux,
	}

	go func() {
		logger.Printf("listening on %s", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Printf("received signal %v, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
