// Package tabular reads and writes the CSV and XLSX tables exchanged between
// pipeline stages.
//
// CSV files are written as UTF-8 with a byte-order mark so spreadsheet tools
// pick the right encoding, and the mark is stripped again on read. Tables are
// addressed by column name; a missing column is reported with
// ErrColumnNotFound rather than silently yielding blanks.
package tabular
