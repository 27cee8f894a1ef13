// Package report owns column names, number formatting and the api (v1)
// conversion for screening rows and per-formula product reports. Writers
// call into it; it performs no I/O scheduling of its own.
package report
