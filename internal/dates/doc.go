// Package dates provides civil-date arithmetic for scheduling.
//
// Key types:
//   - Date: a calendar date with no time or zone component
//   - Range: a half-open, contiguous run of dates
//   - Month, Week: calendar groupings used by periodic schedules
package dates
