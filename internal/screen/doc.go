// Package screen evaluates catalog compounds into report rows on a bounded
// worker pool and hands them to a visit callback in catalog order.
//
// Evaluate is the single-compound contract; ForEachRow only schedules it.
package screen
