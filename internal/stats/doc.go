// Package stats holds the roster aggregation rules: grade and attendance
// summaries, the dashboard rollup and the per-student report.
//
// Every function is a pure reduction over snapshots the caller already
// loaded. Empty input never panics and never yields NaN: summaries report a
// "no data" sentinel through their boolean result and rollups fall back to 0.
// Grades whose max score is not positive are skipped everywhere.
package stats
