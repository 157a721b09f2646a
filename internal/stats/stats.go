package stats

import (
	"expvar"
	"iter"
	"maps"
	"slices"
)

// Stats holds expvar-backed counters of a single eventstat run and publishes
// them under a common key prefix. All counters are expvar.Map and are safe for
// concurrent updates. When the standard expvar HTTP handler is registered,
// these values are available at /debug/vars.
//
// - <prefix>_files_total — regular files seen by the kinematics scan
// - <prefix>_files_matched — files whose name matched the kinematics pattern
// - <prefix>_files_excluded — entries skipped by exclude globs or not being regular files
// - <prefix>_files_errors — entries which could not be stat-ed or read
// - <prefix>_containers_total — ROOT files opened
// - <prefix>_containers_errors — ROOT files which failed to open
// - <prefix>_tables_counted — trees whose entries were added to a total
// - <prefix>_tables_skipped — trees missing, of a wrong type or unreadable
type Stats struct {
	prefix     string
	root       *expvar.Map
	files      *expvar.Map
	containers *expvar.Map
	tables     *expvar.Map
}

// New publishes new set of metrics. Registering the same metrics twice causes panic, so for tests, the prefix should be unique.
func New(prefix string) *Stats {
	root := expvar.NewMap(prefix)
	files := new(expvar.Map).Init()
	containers := new(expvar.Map).Init()
	tables := new(expvar.Map).Init()

	files.Add("total", 0)
	files.Add("matched", 0)
	files.Add("excluded", 0)
	files.Add("errors", 0)

	containers.Add("total", 0)
	containers.Add("errors", 0)

	tables.Add("counted", 0)
	tables.Add("skipped", 0)

	root.Set("files", files)
	root.Set("containers", containers)
	root.Set("tables", tables)

	return &Stats{
		prefix:     prefix,
		root:       root,
		files:      files,
		containers: containers,
		tables:     tables,
	}
}

func (s *Stats) IncFiles() {
	s.files.Add("total", 1)
}
func (s *Stats) IncMatchedFiles() {
	s.files.Add("matched", 1)
}
func (s *Stats) IncExcludedFiles() {
	s.files.Add("excluded", 1)
}
func (s *Stats) IncErrFiles() {
	s.files.Add("errors", 1)
}
func (s *Stats) IncContainers() {
	s.containers.Add("total", 1)
}
func (s *Stats) IncErrContainers() {
	s.containers.Add("errors", 1)
}
func (s *Stats) IncCountedTables() {
	s.tables.Add("counted", 1)
}
func (s *Stats) IncSkippedTables() {
	s.tables.Add("skipped", 1)
}

// Stats returns a name, value iterator across registered metrics. This uses expvar.Do under the hood, so is safe to be called concurrently.
// Stats are returned in an alphabetic order.
func (s *Stats) Stats() iter.Seq2[string, string] {
	stats := make(map[string]string, 8)
	for name, m := range map[string]*expvar.Map{
		"files":      s.files,
		"containers": s.containers,
		"tables":     s.tables,
	} {
		m.Do(func(kv expvar.KeyValue) {
			stats[name+"_"+kv.Key] = kv.Value.String()
		})
	}

	keys := slices.Sorted(maps.Keys(stats))
	return func(yield func(string, string) bool) {
		for _, key := range keys {
			if !yield(s.prefix+"_"+key, stats[key]) {
				return
			}
		}
	}
}
