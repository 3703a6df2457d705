package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"taxi-trip-lab/internal/domain"
)

// ZoneCSVSource loads the taxi zone reference table from a local CSV file
// with columns LocationID, Borough, Zone (header order is not assumed).
type ZoneCSVSource struct {
	path string
}

// NewZoneCSVSource creates a zone source reading from path.
func NewZoneCSVSource(path string) *ZoneCSVSource {
	return &ZoneCSVSource{path: path}
}

// Name identifies the source in error messages.
func (s *ZoneCSVSource) Name() string {
	return "csv:" + s.path
}

// Load parses the CSV into a ZoneLookup.
func (s *ZoneCSVSource) Load(ctx context.Context) (domain.ZoneLookup, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%s: empty zone file", s.path)
	}

	idCol, zoneCol, boroughCol := -1, -1, -1
	for i, name := range rows[0] {
		switch name {
		case "LocationID":
			idCol = i
		case "Zone":
			zoneCol = i
		case "Borough":
			boroughCol = i
		}
	}
	if idCol < 0 || zoneCol < 0 || boroughCol < 0 {
		return nil, fmt.Errorf("%s: missing LocationID/Zone/Borough columns", s.path)
	}

	zones := make(domain.ZoneLookup, len(rows)-1)
	for _, row := range rows[1:] {
		id, err := strconv.ParseInt(row[idCol], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad LocationID %q: %w", s.path, row[idCol], err)
		}
		zones[id] = domain.Zone{
			LocationID: id,
			Name:       row[zoneCol],
			Borough:    row[boroughCol],
		}
	}
	return zones, nil
}
