package timezone

import (
	"time"

	"github.com/rs/zerolog/log"

	"hotelier/config"
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load configured timezone, falling back to UTC")

		loc = time.UTC
	}

	appLocation = loc
}

// Location returns the application's configured location.
func Location() *time.Location {
	return appLocation
}

// Now returns the current time in the application's location.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// Today returns the current calendar date in the application's location,
// truncated to midnight. Booking date comparisons are done against this value.
func Today() time.Time {
	now := Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, appLocation)
}

// Date builds a calendar date (midnight) in the application's location.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, appLocation)
}

// Format formats t using the given layout after converting it to the
// application's location.
func Format(t time.Time, layout string) string {
	return t.In(appLocation).Format(layout)
}

// ParseDate parses a date-only string (YYYY-MM-DD) in the application's location.
func ParseDate(value, layout string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation)
}
