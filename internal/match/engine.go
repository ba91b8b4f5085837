package match

import (
	"jmatch/internal/errors"
	"jmatch/internal/logging"
	"jmatch/internal/model"
)

// Engine holds the two archive environments, the three match tables, and
// the ordered pipeline of passes that vote and promote between them.
type Engine struct {
	A, B *model.Environment

	Classes *Tables
	Methods *Tables
	Fields  *Tables

	Opts   Options
	Logger *logging.Logger

	passes           []Pass
	changesLastCycle int
	changesTotal     int
	iteration        int
}

// NewEngine seeds an Engine from two loaded environments. Non-obfuscated
// classes, methods, and fields are not pre-confirmed here; that is the
// job of the anchor pass, so every decision flows through the same
// audited confirm path.
func NewEngine(a, b *model.Environment, opts Options, logger *logging.Logger) *Engine {
	return &Engine{
		A:       a,
		B:       b,
		Classes: NewTables(),
		Methods: NewTables(),
		Fields:  NewTables(),
		Opts:    opts,
		Logger:  logger,
	}
}

// AddPass appends a pass to the end of the pipeline.
func (e *Engine) AddPass(p Pass) {
	e.passes = append(e.passes, p)
}

// ChangesLastCycle reports the number of confirmations since the last
// reset. The conditional loop pass uses this to decide whether another
// trip through the pipeline is worthwhile.
func (e *Engine) ChangesLastCycle() int { return e.changesLastCycle }

// ResetChangesLastCycle zeroes the cycle counter. Called by the
// conditional loop pass at the start of the iteration that evaluates it,
// so the next reading reflects only the work done during that iteration.
func (e *Engine) ResetChangesLastCycle() { e.changesLastCycle = 0 }

// ChangesTotal reports the number of confirmations across the whole run.
func (e *Engine) ChangesTotal() int { return e.changesTotal }

func (e *Engine) tablesFor(kind Kind) *Tables {
	switch kind {
	case KindClass:
		return e.Classes
	case KindMethod:
		return e.Methods
	default:
		return e.Fields
	}
}

// vote casts a weighted vote from source toward target, after the caller
// has already applied any kind-specific compatibility filter. A vote for a
// source that is already confirmed, or a target that is already claimed by
// a different confirmed source, is dropped silently: stale votes from a
// pass that ran before a promotion are expected and never an error.
func (e *Engine) vote(t *Tables, source, target string, weight int) bool {
	if existing, confirmed := t.ConfirmedTarget(source); confirmed {
		return existing == target
	}
	if t.TargetClaimed(target) {
		return false
	}
	entry := t.entry(source)
	if entry.OwnerLock != "" {
		ownerIdx := ownerPrefixLen(target)
		if ownerIdx < 0 || target[:ownerIdx] != entry.OwnerLock {
			return false
		}
	}
	entry.AddVote(target, weight)
	return true
}

// VoteClass casts a weighted vote between two classes. Class entries carry
// no per-vote compatibility filter.
func (e *Engine) VoteClass(source, target string, weight int) bool {
	return e.vote(e.Classes, source, target, weight)
}

// VoteMethod casts a weighted vote between two methods, first rejecting
// the pair if their static-ness differs or if exactly one of them uses the
// "<" constructor/static-initializer naming convention.
func (e *Engine) VoteMethod(src, tgt *model.Method, weight int) bool {
	if src.IsStatic() != tgt.IsStatic() {
		return false
	}
	if src.IsConstructorLike() != tgt.IsConstructorLike() {
		return false
	}
	return e.vote(e.Methods, src.FullSignature(), tgt.FullSignature(), weight)
}

// VoteField casts a weighted vote between two fields, rejecting the pair
// if their static-ness differs.
func (e *Engine) VoteField(src, tgt *model.Field, weight int) bool {
	if src.IsStatic() != tgt.IsStatic() {
		return false
	}
	return e.vote(e.Fields, src.FullSignature(), tgt.FullSignature(), weight)
}

// Confirm promotes source to target, moving it out of Pending and into
// ConfirmedForward/ConfirmedInverse. It is a precondition violation to
// confirm a source that has neither a pending entry nor a confirmation, or
// a target already claimed by a different source: both indicate a bug in a
// calling pass, not a data condition, so Confirm returns a
// PreconditionViolation error rather than silently reconciling.
// Re-confirming a source that is already confirmed returns nil.
func (e *Engine) Confirm(kind Kind, source, target string) error {
	t := e.tablesFor(kind)
	if t.TargetClaimed(target) {
		existing := t.ConfirmedInverse[target]
		if existing != source {
			return errors.NewJmatchError(errors.PreconditionViolation,
				"target already claimed by a different source", nil).
				WithSymbol(target)
		}
	}
	if _, ok := t.Pending[source]; !ok {
		if _, already := t.ConfirmedTarget(source); already {
			return nil
		}
		return errors.NewJmatchError(errors.PreconditionViolation,
			"confirming a source with no pending entry", nil).
			WithSymbol(source)
	}

	delete(t.Pending, source)
	t.ConfirmedForward[source] = target
	t.ConfirmedInverse[target] = source
	e.changesLastCycle++
	e.changesTotal++

	for _, other := range t.PendingSources() {
		t.Pending[other].RemoveVote(target)
	}

	if kind == KindClass {
		e.propagateOwnerLock(source, target)
	}
	return nil
}

// propagateOwnerLock restricts every pending method/field entry whose
// owner is the newly confirmed class to candidates owned by the matched
// target class, by setting OwnerLock and discarding now-incompatible
// ledger votes. This lets member-level voting accumulate signal before the
// class itself is known, without ever letting a member cross a confirmed
// class boundary.
func (e *Engine) propagateOwnerLock(sourceClass, targetClass string) {
	for _, t := range []*Tables{e.Methods, e.Fields} {
		for _, source := range t.PendingSources() {
			ownerIdx := ownerPrefixLen(source)
			if ownerIdx < 0 || source[:ownerIdx] != sourceClass {
				continue
			}
			entry := t.Pending[source]
			entry.OwnerLock = targetClass
			for target := range entry.Ledger {
				tOwnerIdx := ownerPrefixLen(target)
				if tOwnerIdx < 0 || target[:tOwnerIdx] != targetClass {
					delete(entry.Ledger, target)
				}
			}
			entry.recompute()
		}
	}
}

// ownerPrefixLen returns the index of the separator following the owner
// class name in a method ("Owner.name(...)...") or field ("Owner.name:T")
// full-signature key, or -1 if the key has no owner segment.
func ownerPrefixLen(fullSignature string) int {
	for i := 0; i < len(fullSignature); i++ {
		if fullSignature[i] == '.' {
			return i
		}
	}
	return -1
}

// Run drives the pipeline to a fixed point: each pass runs in order,
// Continue falls through to the next pass, JumpTo redirects to a named
// pass while its predicate holds, and Done halts immediately. The
// pipeline also halts naturally once control falls off its end — the
// default pipeline relies on a conditional loop pass near its tail to
// jump back to the top while confirmations are still happening.
// MaxIterations bounds pathological JumpTo cycles; hitting it yields a
// ConvergenceCapReached error alongside the partial bundle, not a panic.
func (e *Engine) Run() (*Bundle, error) {
	index := 0
	capReached := false

loop:
	for {
		if e.iteration >= e.Opts.MaxIterations {
			capReached = true
			break
		}
		if index >= len(e.passes) {
			break
		}

		p := e.passes[index]
		result := p.Run(e)

		switch result.Outcome {
		case Done:
			break loop
		case JumpTo:
			if result.Predicate != nil && !result.Predicate(e) {
				index++
				continue
			}
			target := e.findPass(result.Target)
			if target < 0 {
				index++
				continue
			}
			e.iteration++
			index = target
		default:
			index++
		}
	}

	bundle := NewBundle(e.A.ArchiveName, e.B.ArchiveName, e.Classes, e.Methods, e.Fields, e.iteration, capReached)
	if capReached {
		return bundle, errors.NewJmatchError(errors.ConvergenceCapReached,
			"iteration cap reached while changes were still occurring", nil)
	}
	return bundle, nil
}

func (e *Engine) findPass(name string) int {
	for i, p := range e.passes {
		if p.Name() == name {
			return i
		}
	}
	return -1
}
