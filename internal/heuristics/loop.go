package heuristics

import "jmatch/internal/match"

// LoopPass is the conditional loop operator: it jumps back to an earlier
// pass while the cycle it just closed out produced at least one
// confirmation, and falls through otherwise. The cycle counter is reset
// at the start of the iteration that evaluates it, not the end, so the
// jump decision reflects exactly the work done since the previous pass
// through this point.
type LoopPass struct {
	Target string
}

func NewLoopPass(target string) *LoopPass { return &LoopPass{Target: target} }

func (p *LoopPass) Name() string { return "loop" }

func (p *LoopPass) Run(e *match.Engine) match.PassResult {
	shouldJump := e.ChangesLastCycle() > 0
	e.ResetChangesLastCycle()
	return match.JumpToResult(p.Target, func(*match.Engine) bool { return shouldJump })
}
