// Package main runs the preparation pipeline once and writes every
// aggregate view as CSV: load -> derive -> quality filter -> sample ->
// aggregate -> report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"taxi-trip-lab/internal/ingestion"
	"taxi-trip-lab/internal/reporting"
	"taxi-trip-lab/internal/sampling"
	"taxi-trip-lab/internal/session"
)

func main() {
	tripPaths := flag.String("trip-path", os.Getenv("TRIP_DATA_PATH"), "Comma-separated candidate paths to the trip parquet file")
	tripURL := flag.String("trip-url", os.Getenv("TRIP_DATA_URL"), "Remote URL for the trip parquet file (tried after local paths)")
	zonePath := flag.String("zone-path", os.Getenv("ZONE_LOOKUP_PATH"), "Path to the taxi zone lookup CSV")
	outputDir := flag.String("output-dir", "output", "Output directory for CSV reports")
	sampleCap := flag.Int("sample-cap", sampling.DefaultCap, "Maximum rows in the working set")
	seed := flag.Uint64("seed", sampling.DefaultSeed, "Sampling seed")
	flag.Parse()

	logger := log.New(os.Stdout, "[pipeline] ", log.LstdFlags)

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

	ctx := context.Background()
	sess, err := session.Load(ctx, session.Options{
		Trips:     trips,
		Zones:     []ingestion.ZoneSource{ingestion.NewZoneCSVSource(*zonePath)},
		SampleCap: *sampleCap,
		Seed:      *seed,
	})
	if err != nil {
		logger.Fatalf("session load failed: %v", err)
	}

	table := sess.Table()
	logger.Printf("prepared table: %d rows", table.Len())

	filtered := sess.Filter(sess.DefaultPredicate())
	views := reporting.ComputeViews(table, filtered, sess.Zones())

	if err := reporting.WriteAll(*outputDir, views); err != nil {
		logger.Fatalf("writing reports: %v", err)
	}

	fmt.Println("=== Pipeline Summary ===")
	fmt.Printf("  Rows:          %d\n", table.Len())
	fmt.Printf("  Top zones:     %d\n", len(views.TopZones))
	fmt.Printf("  Fare hours:    %d\n", len(views.FareHours))
	fmt.Printf("  Payment types: %d\n", len(views.Payments))
	fmt.Printf("  Demand total:  %d\n", views.Demand.Total())
	fmt.Printf("  Reports:       %s\n", *outputDir)
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
