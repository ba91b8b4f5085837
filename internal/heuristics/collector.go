package heuristics

import (
	"sort"

	"jmatch/internal/match"
)

// CollectorPass is the promotion stage: it confirms the best-supported
// pending entries of one symbol kind per invocation, bounded by a batch
// size so that a single strong signal does not immediately lock in every
// candidate before later passes get a chance to narrow the rest.
type CollectorPass struct {
	Kind match.Kind
}

func NewCollectorPass(kind match.Kind) *CollectorPass {
	return &CollectorPass{Kind: kind}
}

func (p *CollectorPass) Name() string { return "collect-" + string(p.Kind) }

func (p *CollectorPass) Run(e *match.Engine) match.PassResult {
	tables, floor := p.tablesAndFloor(e)

	candidates := promotableCandidates(tables, e.Opts.MinVotes, e.Opts.MinGap)
	batch := match.BatchSize(len(tables.Pending), e.Opts.BatchPercent, floor)
	if batch > len(candidates) {
		batch = len(candidates)
	}

	for i := 0; i < batch; i++ {
		c := candidates[i]
		_ = e.Confirm(p.Kind, c.Source, c.FirstTarget)
	}
	return match.ContinueResult()
}

func (p *CollectorPass) tablesAndFloor(e *match.Engine) (*match.Tables, int) {
	switch p.Kind {
	case match.KindClass:
		return e.Classes, e.Opts.FloorClasses
	case match.KindMethod:
		return e.Methods, e.Opts.FloorMethods
	default:
		return e.Fields, e.Opts.FloorFields
	}
}

// promotableCandidates returns every entry meeting the promotion
// criteria, ordered by gap descending, ties broken by source key
// ascending for determinism across runs.
func promotableCandidates(tables *match.Tables, minVotes, minGap int) []*match.Entry {
	var out []*match.Entry
	for _, entry := range tables.Pending {
		if entry.Promotable(minVotes, minGap) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Gap() != out[j].Gap() {
			return out[i].Gap() > out[j].Gap()
		}
		return out[i].Source < out[j].Source
	})
	return out
}
