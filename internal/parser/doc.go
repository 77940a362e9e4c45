// Package parser turns loosely structured time logs into time entries.
//
// Raw input is classified line by line (or cell by cell), regrouped into
// logical records and finally built into entries. Nothing in a batch is
// fatal: every line or row that cannot be used becomes a Warning and
// processing continues with the next one.
package parser
