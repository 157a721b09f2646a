package model

import "fmt"

// EventCount is a number of simulated collisions. Zero is a valid count.
type EventCount uint64

// Status tells whether a tabular object contributed to a count or why it
// was skipped.
type Status int

const (
	StatusCounted Status = iota
	StatusOpenFailed
	StatusNoTable
	StatusNotTree
	StatusReadFailed
)

func (s Status) String() string {
	switch s {
	case StatusCounted:
		return "counted"
	case StatusOpenFailed:
		return "skipped-open-failed"
	case StatusNoTable:
		return "skipped-no-table"
	case StatusNotTree:
		return "skipped-not-a-tree"
	case StatusReadFailed:
		return "skipped-read-failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// TableCount is the entry count of one named table in one file. Entries is
// zero unless Status is StatusCounted, Err holds the reason of a skip.
type TableCount struct {
	Path    string
	Name    string
	Entries EventCount
	Status  Status
	Err     error
}

func (t TableCount) Counted() bool {
	return t.Status == StatusCounted
}

// KinematicsResult is the sum of the event trees across all kinematics files.
type KinematicsResult struct {
	Files []TableCount
	Total EventCount
}

// Skipped returns the number of files, which did not contribute to Total.
func (r KinematicsResult) Skipped() int {
	var n int
	for _, f := range r.Files {
		if !f.Counted() {
			n++
		}
	}
	return n
}

// AODResult is the sum of the MC collision tables across all data frame
// groups of an AO2D file.
type AODResult struct {
	Path   string
	Groups int
	Tables []TableCount
	Total  EventCount
}

// Found reports if at least one collision table has been counted.
func (r AODResult) Found() bool {
	for _, t := range r.Tables {
		if t.Counted() {
			return true
		}
	}
	return false
}

// Reconciliation is a comparison of the kinematics and AO2D totals.
// Record is the figure reported to the accounting system, it is always
// the AO2D total.
type Reconciliation struct {
	Kinematics EventCount
	AOD        EventCount
	Record     EventCount
	Match      bool
}
