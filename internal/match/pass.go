package match

// PassOutcome discriminates the tagged union a Pass returns after running
// once over an Engine.
type PassOutcome int

const (
	// Continue advances to the next pass in the pipeline.
	Continue PassOutcome = iota
	// JumpTo redirects the pipeline to a named pass, conditional on a
	// predicate re-checked every iteration.
	JumpTo
	// Done halts the pipeline immediately, regardless of position.
	Done
)

// PassResult is the tagged union a Pass.Run returns. Target and Predicate
// are only meaningful when Outcome is JumpTo.
type PassResult struct {
	Outcome   PassOutcome
	Target    string
	Predicate func(e *Engine) bool
}

// ContinueResult advances the pipeline normally.
func ContinueResult() PassResult { return PassResult{Outcome: Continue} }

// JumpToResult redirects the pipeline to the named pass while predicate
// holds.
func JumpToResult(target string, predicate func(e *Engine) bool) PassResult {
	return PassResult{Outcome: JumpTo, Target: target, Predicate: predicate}
}

// DoneResult halts the pipeline.
func DoneResult() PassResult { return PassResult{Outcome: Done} }

// Pass is one stage of the matching pipeline: a heuristic voter, a
// promotion/collector step, or a conditional loop operator. A Pass reads
// and mutates Engine state through its exported methods only — it never
// holds a direct reference to a Class/Method/Field across invocations.
type Pass interface {
	Name() string
	Run(e *Engine) PassResult
}
