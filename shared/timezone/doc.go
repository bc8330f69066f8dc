// Package timezone provides timezone utilities for the application.
//
// Booking dates are calendar dates, so all date comparisons go through
// Today() and Date(), which pin values to midnight in the configured
// location. The timezone is configured via the APP_TIMEZONE environment
// variable (standard IANA names such as "UTC" or "Europe/Berlin") and is
// initialized when the package is imported.
package timezone
