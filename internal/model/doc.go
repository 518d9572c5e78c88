// Package model defines the data structures shared by the crawler, the
// session runner and the report writers.
//
// This package contains the following main types:
//   - PageResult: the outcome of one dispatched fetch (indexed or failed)
//   - SearchReport: everything a report writer needs about one session
//
// The models live in their own package so that crawler, session and report
// can all depend on them without import cycles.
package model
