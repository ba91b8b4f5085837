package heuristics

import (
	"jmatch/internal/match"
	"jmatch/internal/model"
)

// StructuralPass scores unmatched, obfuscated, default-package class pairs
// by summing several cheap structural signals and casting a vote for the
// total when it is positive. It is quadratic in the number of eligible
// classes, so eligibility (obfuscated + default package + still pending)
// is checked before the inner loop runs.
type StructuralPass struct{}

func NewStructuralPass() *StructuralPass { return &StructuralPass{} }

func (p *StructuralPass) Name() string { return "structural" }

func (p *StructuralPass) Run(e *match.Engine) match.PassResult {
	candidatesA := eligibleClasses(e.A, e.Classes.ConfirmedForward)
	candidatesB := eligibleClasses(e.B, e.Classes.ConfirmedInverse)

	for _, classA := range candidatesA {
		for _, classB := range candidatesB {
			weight := structuralScore(e, classA, classB)
			if weight > 0 {
				e.VoteClass(classA.Name, classB.Name, weight)
			}
		}
	}
	return match.ContinueResult()
}

// eligibleClasses lists env's obfuscated default-package classes absent
// from confirmed, the side's own confirmed map (forward for A, inverse
// for B).
func eligibleClasses(env *model.Environment, confirmed map[string]string) []*model.Class {
	var out []*model.Class
	for _, name := range env.SortedClassNames() {
		c := env.Classes[name]
		if !c.Obfuscated() || !c.IsInDefaultPackage() {
			continue
		}
		if _, done := confirmed[name]; done {
			continue
		}
		out = append(out, c)
	}
	return out
}

func structuralScore(e *match.Engine, classA, classB *model.Class) int {
	total := 0

	if classA.SuperName != "" && classB.SuperName != "" {
		if target, ok := e.Classes.ConfirmedForward[classA.SuperName]; ok && target == classB.SuperName {
			total += match.WeightStrong
		}
	}

	for _, ifaceA := range classA.Interfaces {
		target, ok := e.Classes.ConfirmedForward[ifaceA]
		if !ok {
			continue
		}
		for _, ifaceB := range classB.Interfaces {
			if target == ifaceB {
				total += match.WeightMedium
				break
			}
		}
	}

	if ratio(len(classA.Methods), len(classB.Methods)) > 0.7 && ratio(len(classA.Fields), len(classB.Fields)) > 0.7 {
		total += match.WeightWeak
	}

	methodJaccard := descriptorJaccard(methodDescriptors(classA), methodDescriptors(classB))
	switch {
	case methodJaccard > 0.5:
		total += match.WeightMedium
	case methodJaccard > 0.3:
		total += match.WeightWeak
	}

	fieldJaccard := descriptorJaccard(fieldDescriptors(classA), fieldDescriptors(classB))
	if fieldJaccard > 0.5 {
		total += match.WeightWeak
	}

	return total
}

// ratio computes min/max of two counts, defaulting to 0 when both sides
// are empty rather than dividing by zero.
func ratio(a, b int) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == 0 {
		return 0
	}
	return float64(lo) / float64(hi)
}

func methodDescriptors(c *model.Class) []string {
	out := make([]string, len(c.Methods))
	for i, m := range c.Methods {
		out[i] = m.Descriptor
	}
	return out
}

func fieldDescriptors(c *model.Class) []string {
	out := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		out[i] = f.Descriptor
	}
	return out
}

func descriptorJaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(a))
	for _, v := range a {
		setA[v] = true
	}
	setB := make(map[string]bool, len(b))
	for _, v := range b {
		setB[v] = true
	}

	intersection := 0
	for v := range setA {
		if setB[v] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
