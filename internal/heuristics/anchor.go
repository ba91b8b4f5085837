// Package heuristics implements the passes that feed votes and direct
// confirmations into a match.Engine: anchoring on non-obfuscated names,
// voting on unique constants and descriptors, scoring structural
// similarity, collecting high-confidence votes into confirmations, and
// the conditional loop operator that drives the pipeline to a fixed
// point.
package heuristics

import (
	"sort"

	"jmatch/internal/match"
	"jmatch/internal/model"
)

// AnchorPass confirms classes (and then their members) directly on name
// equality, without going through voting, whenever both sides agree the
// symbol is non-obfuscated. Human-readable names are treated as ground
// truth and are expected to prime the rest of the pipeline.
type AnchorPass struct{}

func NewAnchorPass() *AnchorPass { return &AnchorPass{} }

func (p *AnchorPass) Name() string { return "anchor" }

func (p *AnchorPass) Run(e *match.Engine) match.PassResult {
	for _, name := range e.A.SortedClassNames() {
		classA := e.A.Classes[name]
		if classA.Obfuscated() {
			continue
		}
		classB, ok := e.B.Classes[name]
		if !ok || classB.Obfuscated() {
			continue
		}

		e.VoteClass(name, name, match.WeightVeryStrong)
		_ = e.Confirm(match.KindClass, name, name)

		anchorMembers(e, classA, classB)
	}
	return match.ContinueResult()
}

// anchorMembers confirms non-obfuscated methods and fields shared by two
// already-matched classes, matching on name+descriptor alone.
func anchorMembers(e *match.Engine, classA, classB *model.Class) {
	methodsB := make(map[string]*model.Method, len(classB.Methods))
	for _, m := range classB.Methods {
		methodsB[m.Name+m.Descriptor] = m
	}
	methodKeys := make([]string, 0, len(classA.Methods))
	for _, m := range classA.Methods {
		methodKeys = append(methodKeys, m.Name+m.Descriptor)
	}
	sort.Strings(methodKeys)
	for _, key := range methodKeys {
		for _, m := range classA.Methods {
			if m.Name+m.Descriptor != key || m.Obfuscated() {
				continue
			}
			target, ok := methodsB[key]
			if !ok || target.Obfuscated() {
				continue
			}
			e.VoteMethod(m, target, match.WeightVeryStrong)
			_ = e.Confirm(match.KindMethod, m.FullSignature(), target.FullSignature())
		}
	}

	fieldsB := make(map[string]*model.Field, len(classB.Fields))
	for _, f := range classB.Fields {
		fieldsB[f.Name+":"+f.Descriptor] = f
	}
	fieldKeys := make([]string, 0, len(classA.Fields))
	for _, f := range classA.Fields {
		fieldKeys = append(fieldKeys, f.Name+":"+f.Descriptor)
	}
	sort.Strings(fieldKeys)
	for _, key := range fieldKeys {
		for _, f := range classA.Fields {
			if f.Name+":"+f.Descriptor != key || f.Obfuscated() {
				continue
			}
			target, ok := fieldsB[key]
			if !ok || target.Obfuscated() {
				continue
			}
			e.VoteField(f, target, match.WeightVeryStrong)
			_ = e.Confirm(match.KindField, f.FullSignature(), target.FullSignature())
		}
	}
}
