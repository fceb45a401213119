// Package schedule defines the rules for when cash flow events may occur.
//
// A Schedule yields each potential event as a distribution of dates, so a
// single rule expresses both certain occurrences ("rent every Monday") and
// uncertain ones ("groceries on Saturday or Sunday").
package schedule
