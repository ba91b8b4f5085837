// Package match implements the Merge Engine and its match tables: the
// voting-based state machine that decides which obfuscated symbol in
// archive A corresponds to which in archive B.
package match

import "sort"

// Entry is the per-pending-source vote ledger. It owns the source symbol's
// full signature; targets are identified by key-lookup into the opposite
// archive's Environment, never by direct reference.
type Entry struct {
	Source string
	Ledger map[string]int // target full-signature -> accumulated weight

	FirstTarget string
	FirstVotes  int
	SecondVotes int // runner-up identity is never needed, only its weight

	OwnerLock string // "" means unset; methods and fields only
}

// NewEntry creates an empty pending entry for a source symbol.
func NewEntry(source string) *Entry {
	return &Entry{Source: source, Ledger: make(map[string]int)}
}

// AddVote adds weight to the ledger for target and recomputes first/second
// place. Vote weights are always non-negative integers.
func (e *Entry) AddVote(target string, weight int) {
	if weight <= 0 {
		return
	}
	e.Ledger[target] += weight
	e.recompute()
}

// RemoveVote zeroes the ledger entry for target and recomputes first/second
// totals from scratch. This is needed when a target becomes globally
// claimed, or when an owner-lock invalidates a candidate; the entry itself
// is never removed from pending by this call.
func (e *Entry) RemoveVote(target string) {
	delete(e.Ledger, target)
	e.recompute()
}

// recompute scans the ledger for the new first-place target/votes and
// second-place votes. Ties on vote weight are broken by target-key
// ascending, for deterministic behavior across runs.
func (e *Entry) recompute() {
	keys := make([]string, 0, len(e.Ledger))
	for k := range e.Ledger {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	firstTarget, firstVotes, secondVotes := "", 0, 0
	for _, k := range keys {
		v := e.Ledger[k]
		if v > firstVotes {
			secondVotes = firstVotes
			firstTarget, firstVotes = k, v
		} else if v > secondVotes {
			secondVotes = v
		}
	}
	e.FirstTarget, e.FirstVotes, e.SecondVotes = firstTarget, firstVotes, secondVotes
}

// Gap is the engine's confidence signal: first-place votes minus
// second-place votes.
func (e *Entry) Gap() int {
	return e.FirstVotes - e.SecondVotes
}

// Promotable reports whether this entry meets the default promotion
// criteria: a chosen first-place target, at least minVotes first-place
// votes, and a gap of at least minGap.
func (e *Entry) Promotable(minVotes, minGap int) bool {
	return e.FirstTarget != "" && e.FirstVotes >= minVotes && e.Gap() >= minGap
}
