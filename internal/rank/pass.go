package rank

import (
	"jmatch/internal/match"
	"jmatch/internal/model"
)

// Pass is the Hybrid Ranker wired into the matching pipeline as a final,
// opt-in stage: once the iterative voting passes reach a fixed point and
// pending methods remain, it scores every still-pending method in A
// against the TF-IDF/KNN index of still-pending methods in B and confirms
// the pairs that clear both acceptance thresholds. It never touches
// classes or fields.
type Pass struct {
	Opts       Options
	Obfuscated model.ObfuscationPredicate
}

// NewPass builds a Hybrid Ranker pass.
func NewPass(opts Options, obfuscated model.ObfuscationPredicate) *Pass {
	return &Pass{Opts: opts, Obfuscated: obfuscated}
}

func (p *Pass) Name() string { return "hybrid-rank" }

func (p *Pass) Run(e *match.Engine) match.PassResult {
	isObfuscatedName := func(s string) bool { return !model.IsNonObfuscated(p.Obfuscated, s) }

	pendingA := pendingMethodList(e.A, e.Methods.ConfirmedForward)
	pendingB := pendingMethodList(e.B, e.Methods.ConfirmedInverse)
	if len(pendingA) == 0 || len(pendingB) == 0 {
		return match.ContinueResult()
	}

	docs := make([]MethodDoc, len(pendingB))
	methodsB := make(map[string]*model.Method, len(pendingB))
	featuresB := make(map[string][FeatureDim]float64, len(pendingB))
	for i, m := range pendingB {
		key := m.FullSignature()
		docs[i] = MethodDoc{Key: key, Tokens: Tokenize(m, isObfuscatedName)}
		methodsB[key] = m
		featuresB[key] = FeatureVector(m, isObfuscatedName)
	}
	index := NewIndex(docs)

	for _, m := range pendingA {
		if _, confirmed := e.Methods.ConfirmedTarget(m.FullSignature()); confirmed {
			continue
		}
		queryTokens := Tokenize(m, isObfuscatedName)
		candidates := index.Query(queryTokens, p.Opts.TopK)
		if len(candidates) == 0 {
			continue
		}

		queryFeatures := FeatureVector(m, isObfuscatedName)
		scores := make(map[string]float64, len(candidates))
		for _, c := range candidates {
			if e.Methods.TargetClaimed(c.Key) {
				continue
			}
			knn := WeightedCosine(queryFeatures, featuresB[c.Key])
			scores[c.Key] = p.Opts.Combined(c.Score, knn)
		}

		target, ok := p.Opts.Decide(scores)
		if !ok {
			continue
		}
		// VoteMethod both enforces the static/constructor compatibility
		// filter shared with every other pass and lazily creates the
		// pending entry Confirm requires as a precondition.
		if !e.VoteMethod(m, methodsB[target], match.WeightVeryStrong) {
			continue
		}
		_ = e.Confirm(match.KindMethod, m.FullSignature(), target)
	}

	return match.ContinueResult()
}

// pendingMethodList returns every method of env not yet confirmed, where
// confirmed is the side's own confirmed map (forward for A, inverse for
// B), sorted by full signature for deterministic iteration.
func pendingMethodList(env *model.Environment, confirmed map[string]string) []*model.Method {
	methods := make([]*model.Method, 0, len(env.Methods))
	for _, key := range env.SortedMethodKeys() {
		if _, done := confirmed[key]; done {
			continue
		}
		methods = append(methods, env.Methods[key])
	}
	return methods
}
