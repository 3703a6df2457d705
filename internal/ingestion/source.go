// Package ingestion loads the raw trip table and the zone lookup from an
// ordered chain of sources: local files first, then a remote download.
// A load either yields the complete dataset or fails; there is no partial
// state for downstream stages to observe.
package ingestion

import (
	"context"
	"fmt"
	"strings"

	"taxi-trip-lab/internal/domain"
)

// TripSource provides the raw trip columns from one location.
type TripSource interface {
	// Load returns the raw (underived) trip table.
	Load(ctx context.Context) (*domain.TripTable, error)

	// Name identifies the source in error messages.
	Name() string
}

// ZoneSource provides the zone reference table from one location.
type ZoneSource interface {
	Load(ctx context.Context) (domain.ZoneLookup, error)
	Name() string
}

// LoadTrips tries each source in order and returns the first table that
// loads. When every source fails the individual failures are folded into
// a single error wrapping ErrDataNotFound.
func LoadTrips(ctx context.Context, sources ...TripSource) (*domain.TripTable, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no trip sources configured", ErrDataNotFound)
	}

	var failures []string
	for _, src := range sources {
		table, err := src.Load(ctx)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", src.Name(), err))
			continue
		}
		return table, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrDataNotFound, strings.Join(failures, "; "))
}

// LoadZones tries each zone source in order, mirroring LoadTrips.
func LoadZones(ctx context.Context, sources ...ZoneSource) (domain.ZoneLookup, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no zone sources configured", ErrDataNotFound)
	}

	var failures []string
	for _, src := range sources {
		zones, err := src.Load(ctx)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", src.Name(), err))
			continue
		}
		return zones, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrDataNotFound, strings.Join(failures, "; "))
}
