// Package store persists projection output to PostgreSQL.
//
// Each analysis run is identified by a run ID. Rows are written through
// batching writers that flush on size or interval, so repeated runs and
// retries are safe: inserts conflict-skip on the run's natural keys.
package store
