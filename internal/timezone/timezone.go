package timezone

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Florida is served from a single zone; every stored wall-clock value
// (weekly rules, booking times) is read in it.
const DefaultTimezone = "America/New_York"

var locations, _ = lru.New[string, *time.Location](32)

func load(tz string) (*time.Location, error) {
	if loc, ok := locations.Get(tz); ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	locations.Add(tz, loc)
	return loc, nil
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := load(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := load(tz); err == nil {
			return loc
		}
	}

	loc, err := load(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
