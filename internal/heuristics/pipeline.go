package heuristics

import "jmatch/internal/match"

// DefaultPipeline wires the standard pass sequence onto e: anchor once,
// then loop the voting and collecting passes until a full trip produces
// no new confirmations.
func DefaultPipeline(e *match.Engine) {
	e.AddPass(NewAnchorPass())

	const loopTarget = "unique-constants"
	e.AddPass(NewConstantsPass())
	e.AddPass(NewDescriptorsPass())
	e.AddPass(NewStructuralPass())
	e.AddPass(NewCollectorPass(match.KindClass))
	e.AddPass(NewCollectorPass(match.KindMethod))
	e.AddPass(NewCollectorPass(match.KindField))
	e.AddPass(NewLoopPass(loopTarget))
}
