package heuristics

import (
	"testing"

	"jmatch/internal/match"
	"jmatch/internal/model"
)

func TestCollectorPass_ConfirmsOnlyPromotable(t *testing.T) {
	pred := model.NewPrefixObfuscationPredicate(nil)
	ab := model.NewBuilder("a.jar", pred)
	ab.AddClass("a1", "", nil, 0)
	ab.AddClass("a2", "", nil, 0)
	envA := ab.Build()

	bb := model.NewBuilder("b.jar", pred)
	bb.AddClass("b1", "", nil, 0)
	bb.AddClass("b2", "", nil, 0)
	envB := bb.Build()

	opts := match.DefaultOptions()
	opts.FloorClasses = 10
	e := match.NewEngine(envA, envB, opts, testLogger())

	e.VoteClass("a1", "b1", match.WeightVeryStrong) // 5, second 0: promotable (5>=3, gap>=2)
	e.VoteClass("a2", "b2", match.WeightWeak)       // 1, second 0: not promotable (min_votes=3)

	NewCollectorPass(match.KindClass).Run(e)

	if target, ok := e.Classes.ConfirmedTarget("a1"); !ok || target != "b1" {
		t.Errorf("expected a1 confirmed to b1, got %v %v", target, ok)
	}
	if _, ok := e.Classes.ConfirmedTarget("a2"); ok {
		t.Error("a2 should not be promotable under default thresholds")
	}
}

func TestCollectorPass_RespectsBatchSize(t *testing.T) {
	pred := model.NewPrefixObfuscationPredicate(nil)
	ab := model.NewBuilder("a.jar", pred)
	bb := model.NewBuilder("b.jar", pred)
	for i := 0; i < 3; i++ {
		name := string(rune('a' + i))
		ab.AddClass("a"+name, "", nil, 0)
		bb.AddClass("b"+name, "", nil, 0)
	}
	envA := ab.Build()
	envB := bb.Build()

	opts := match.DefaultOptions()
	opts.FloorClasses = 1
	opts.BatchPercent = 0
	e := match.NewEngine(envA, envB, opts, testLogger())

	for i := 0; i < 3; i++ {
		name := string(rune('a' + i))
		e.VoteClass("a"+name, "b"+name, match.WeightVeryStrong)
	}

	NewCollectorPass(match.KindClass).Run(e)

	confirmedCount := len(e.Classes.ConfirmedForward)
	if confirmedCount != 1 {
		t.Errorf("expected exactly floor=1 confirmation per invocation, got %d", confirmedCount)
	}
}

func TestLoopPass_JumpsWhileChangesOccur(t *testing.T) {
	pred := model.NewPrefixObfuscationPredicate(nil)
	envA := model.NewBuilder("a.jar", pred).Build()
	envB := model.NewBuilder("b.jar", pred).Build()
	e := match.NewEngine(envA, envB, match.DefaultOptions(), testLogger())

	loop := NewLoopPass("x")

	result := loop.Run(e)
	if result.Outcome != match.JumpTo {
		t.Fatalf("expected JumpTo outcome, got %v", result.Outcome)
	}
	if result.Predicate(e) {
		t.Error("expected predicate false with no prior changes")
	}
}
