package match

import (
	"sort"

	"github.com/google/uuid"
)

// Bundle is the frozen output of a completed run: the three confirmed
// forward maps, plus the set of sources that never reached promotion.
type Bundle struct {
	RunID    string // stamped once per run, logged with the report-written entry
	ArchiveA string
	ArchiveB string

	Classes map[string]string
	Methods map[string]string
	Fields  map[string]string

	UnmatchedClasses []string
	UnmatchedMethods []string
	UnmatchedFields  []string

	Iterations int
	CapReached bool
}

// NewBundle freezes an Engine's current table state into a Bundle. Unmatched
// slices are sorted by source key for reproducible report ordering.
func NewBundle(archiveA, archiveB string, classes, methods, fields *Tables, iterations int, capReached bool) *Bundle {
	b := &Bundle{
		RunID:      uuid.NewString(),
		ArchiveA:   archiveA,
		ArchiveB:   archiveB,
		Classes:    copyMap(classes.ConfirmedForward),
		Methods:    copyMap(methods.ConfirmedForward),
		Fields:     copyMap(fields.ConfirmedForward),
		Iterations: iterations,
		CapReached: capReached,
	}
	b.UnmatchedClasses = sortedKeys(classes.Pending)
	b.UnmatchedMethods = sortedKeys(methods.Pending)
	b.UnmatchedFields = sortedKeys(fields.Pending)
	return b
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]*Entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
