package heuristics

import (
	"jmatch/internal/match"
	"jmatch/internal/model"
)

// DescriptorsPass votes between methods of an already-confirmed class
// pair whose remapped descriptor key is unique on both sides. Once class
// matches accumulate, descriptor shapes become increasingly informative:
// within-class descriptor uniqueness is the cheapest strong signal left.
type DescriptorsPass struct{}

func NewDescriptorsPass() *DescriptorsPass { return &DescriptorsPass{} }

func (p *DescriptorsPass) Name() string { return "unique-descriptors" }

func (p *DescriptorsPass) Run(e *match.Engine) match.PassResult {
	for srcClass, tgtClass := range e.Classes.ConfirmedForward {
		classA, ok := e.A.Classes[srcClass]
		if !ok {
			continue
		}
		classB, ok := e.B.Classes[tgtClass]
		if !ok {
			continue
		}
		p.voteWithinClassPair(e, classA, classB)
	}
	return match.ContinueResult()
}

func (p *DescriptorsPass) voteWithinClassPair(e *match.Engine, classA, classB *model.Class) {
	remapToB := func(className string) (string, bool) {
		target, ok := e.Classes.ConfirmedForward[className]
		return target, ok
	}

	// B-side names are already in B's namespace: a class keeps its name
	// only when it is a confirmed target, so the unconfirmed references on
	// both sides collapse to the same wildcard.
	claimedInB := func(className string) (string, bool) {
		_, ok := e.Classes.ConfirmedInverse[className]
		return className, ok
	}

	indexA := descriptorKeyIndex(e.Methods.ConfirmedForward, classA.Methods, remapToB)
	indexB := descriptorKeyIndex(e.Methods.ConfirmedInverse, classB.Methods, claimedInB)

	for key, methodA := range indexA {
		if methodA == nil {
			continue
		}
		methodB, ok := indexB[key]
		if !ok || methodB == nil {
			continue
		}
		e.VoteMethod(methodA, methodB, match.WeightStrong)
	}
}

// descriptorKeyIndex builds remapped-descriptor-key -> method for the
// still-pending methods of one class, marking duplicate keys as non-unique
// (nil value). confirmed is the side's own confirmed map: ConfirmedForward
// for A, ConfirmedInverse for B.
func descriptorKeyIndex(confirmed map[string]string, methods []*model.Method, remap func(string) (string, bool)) map[string]*model.Method {
	index := make(map[string]*model.Method)
	for _, m := range methods {
		if _, done := confirmed[m.FullSignature()]; done {
			continue
		}
		key := descriptorKey(m, remap)
		if _, seen := index[key]; seen {
			index[key] = nil
			continue
		}
		index[key] = m
	}
	return index
}

func descriptorKey(m *model.Method, remap func(string) (string, bool)) string {
	prefix := "INSTANCE:"
	if m.IsStatic() {
		prefix = "STATIC:"
	}
	return prefix + model.RemapDescriptor(m.Descriptor, remap)
}
