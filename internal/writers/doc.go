// Package writers turns screening rows and product reports into serialized
// outputs.
//
// Design:
//   • Writers own all presentation choices (TSV, text tables, JSON/JSONL).
//   • screen stays evaluation-only; report owns columns and number formats.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
