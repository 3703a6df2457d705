package domain

// Zone is one entry of the taxi zone reference table.
type Zone struct {
	LocationID int64
	Name       string
	Borough    string
}

// ZoneLookup maps location IDs to zone metadata. Loaded once per session
// and never filtered or mutated afterwards.
type ZoneLookup map[int64]Zone

// Name returns the zone name for a location ID and whether it is known.
func (z ZoneLookup) Name(locationID int64) (string, bool) {
	zone, ok := z[locationID]
	return zone.Name, ok
}
