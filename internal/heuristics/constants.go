package heuristics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"jmatch/internal/match"
	"jmatch/internal/model"
)

// ConstantsPass votes between methods that share a literal constant which
// is unique within each archive among still-pending methods.
type ConstantsPass struct{}

func NewConstantsPass() *ConstantsPass { return &ConstantsPass{} }

func (p *ConstantsPass) Name() string { return "unique-constants" }

func (p *ConstantsPass) Run(e *match.Engine) match.PassResult {
	pendingA := pendingMethods(e.A, e.Methods.ConfirmedForward)
	pendingB := pendingMethods(e.B, e.Methods.ConfirmedInverse)

	indexA := indexSignificantConstants(pendingA)
	indexB := indexSignificantConstants(pendingB)

	for key, methodA := range indexA {
		if methodA == nil {
			continue // non-unique within A
		}
		methodB, ok := indexB[key]
		if !ok || methodB == nil {
			continue
		}
		weight := constantWeight(key)
		e.VoteMethod(methodA, methodB, weight)
	}
	return match.ContinueResult()
}

// pendingMethods returns every method of env not yet confirmed, where
// confirmed is the side's own confirmed map (forward for A, inverse for B).
func pendingMethods(env *model.Environment, confirmed map[string]string) []*model.Method {
	methods := make([]*model.Method, 0, len(env.Methods))
	for _, key := range env.SortedMethodKeys() {
		if _, done := confirmed[key]; done {
			continue
		}
		methods = append(methods, env.Methods[key])
	}
	return methods
}

// indexSignificantConstants builds constant-key -> method, marking keys
// that appear in more than one method as non-unique (nil value) rather
// than removing them, so callers can distinguish "never seen" from
// "seen more than once".
func indexSignificantConstants(methods []*model.Method) map[string]*model.Method {
	index := make(map[string]*model.Method)
	for _, m := range methods {
		for _, c := range m.Constants {
			if !significant(c) {
				continue
			}
			key := c.Key()
			if existing, seen := index[key]; seen {
				if existing != nil && existing.FullSignature() == m.FullSignature() {
					continue
				}
				index[key] = nil
				continue
			}
			index[key] = m
		}
	}
	return index
}

func significant(c model.Constant) bool {
	switch c.Kind {
	case model.ConstantString:
		return significantString(c.StrValue)
	case model.ConstantInt, model.ConstantLong:
		return math.Abs(float64(c.IntValue)) >= 3
	case model.ConstantFloat, model.ConstantDouble:
		return c.FltValue != 0 && c.FltValue != 1
	default:
		return false
	}
}

func significantString(s string) bool {
	if len(s) < 5 {
		return false
	}
	if s == "true" || s == "false" {
		return false
	}
	return !isAllLowerLetters(s)
}

func isAllLowerLetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// constantWeight re-derives significance from the constant key to assign
// the weight tier; callers only have the key at the point of voting.
func constantWeight(key string) int {
	switch {
	case strings.HasPrefix(key, string(model.ConstantString)+":"):
		value := strings.TrimPrefix(key, string(model.ConstantString)+":")
		switch {
		case len(value) > 20:
			return match.WeightVeryStrong
		case len(value) >= 11:
			return match.WeightStrong
		default:
			return match.WeightMedium
		}
	case strings.HasPrefix(key, string(model.ConstantInt)+":"), strings.HasPrefix(key, string(model.ConstantLong)+":"):
		var magnitude int64
		if _, err := fmt.Sscanf(valueAfterColon(key), "%d", &magnitude); err != nil {
			return match.WeightMedium
		}
		return magnitudeWeight(math.Abs(float64(magnitude)))
	case strings.HasPrefix(key, string(model.ConstantFloat)+":"), strings.HasPrefix(key, string(model.ConstantDouble)+":"):
		magnitude, err := strconv.ParseFloat(valueAfterColon(key), 64)
		if err != nil {
			return match.WeightMedium
		}
		return magnitudeWeight(math.Abs(magnitude))
	default:
		return match.WeightMedium
	}
}

func valueAfterColon(key string) string {
	idx := strings.IndexByte(key, ':')
	if idx < 0 {
		return ""
	}
	return key[idx+1:]
}

// magnitudeWeight applies the shared numeric significance tiering: any
// numeric constant, integral or floating point, above 1000 in magnitude
// is a strong signal; other significant numerics are medium.
func magnitudeWeight(magnitude float64) int {
	if magnitude > 1000 {
		return match.WeightStrong
	}
	return match.WeightMedium
}
