package model

import "iter"

// Suffixes of the keys returned by Stats.Stats, the prefix is the name the
// stats were published under.
const (
	StatsFilesTotal      = "_files_total"
	StatsFilesMatched    = "_files_matched"
	StatsFilesExcluded   = "_files_excluded"
	StatsFilesErr        = "_files_errors"
	StatsContainersTotal = "_containers_total"
	StatsContainersErr   = "_containers_errors"
	StatsTablesCounted   = "_tables_counted"
	StatsTablesSkipped   = "_tables_skipped"
)

type Stats interface {
	IncFiles()
	IncMatchedFiles()
	IncExcludedFiles()
	IncErrFiles()
	IncContainers()
	IncErrContainers()
	IncCountedTables()
	IncSkippedTables()
	Stats() iter.Seq2[string, string]
}
