// Package rank implements the optional Hybrid Ranker: a TF-IDF tokenizer
// and index, a 33-dimension structural feature vector with weighted
// cosine similarity, and a combiner that accepts a match only when both
// scores clear their threshold with enough separation from the runner up.
// Used as a late-stage tie-breaker once the iterative voting passes reach
// a fixed point and pending methods remain.
package rank

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"jmatch/internal/model"
)

// sizeBucket classifies a method by its instruction count.
func sizeBucket(n int) string {
	switch {
	case n < 10:
		return "TINY"
	case n < 50:
		return "SMALL"
	case n < 200:
		return "MEDIUM"
	case n < 500:
		return "LARGE"
	default:
		return "HUGE"
	}
}

// hashToken reduces a string to a short hex digest via blake2b, used for
// the USTR namespace so two long, distinct string constants don't blow up
// the vocabulary with near-duplicate literals.
func hashToken(s string) string {
	sum := blake2b.Sum256([]byte(s))
	return fmt.Sprintf("%x", sum[:8])
}

// Tokenize renders a method's bag of tokens across the tiered namespaces:
// USTR/UNUM for constants, DESC/SIZE for shape, MCALL/FACCS/NEWTYPE for
// cross-references (normalized against obfuscated owners/names), NG3/NG4
// opcode n-grams, and OPC for the opcode histogram. isObfuscatedName
// decides whether a referenced owner or name gets replaced with OBF.
func Tokenize(m *model.Method, isObfuscatedName func(string) bool) []string {
	var tokens []string

	for _, c := range m.Constants {
		switch c.Kind {
		case model.ConstantString:
			tokens = append(tokens, "USTR:"+hashToken(c.StrValue))
		case model.ConstantInt, model.ConstantLong:
			if c.IntValue != 0 && c.IntValue != 1 {
				tokens = append(tokens, fmt.Sprintf("UNUM:%d", c.IntValue))
			}
		case model.ConstantFloat, model.ConstantDouble:
			if c.FltValue != 0 && c.FltValue != 1 {
				tokens = append(tokens, fmt.Sprintf("UNUM:%v", c.FltValue))
			}
		}
	}

	tokens = append(tokens, "DESC:"+m.Descriptor)
	tokens = append(tokens, "SIZE:"+sizeBucket(len(m.Instructions)))

	var opcodes []string
	for _, instr := range m.Instructions {
		switch instr.Kind {
		case model.InstrMethodRef:
			tokens = append(tokens, "MCALL:"+instr.NormalizedCall(isObfuscatedName))
		case model.InstrFieldRef:
			tokens = append(tokens, "FACCS:"+instr.NormalizedCall(isObfuscatedName))
		case model.InstrTypeRef:
			if !isObfuscatedName(model.SimpleName(instr.TypeName)) {
				tokens = append(tokens, "NEWTYPE:"+instr.TypeName)
			}
		}
		tokens = append(tokens, "OPC:"+instr.Opcode)
		opcodes = append(opcodes, instr.Opcode)
	}

	for i := 0; i+3 <= len(opcodes); i++ {
		tokens = append(tokens, "NG3:"+strings.Join(opcodes[i:i+3], "_"))
	}
	for i := 0; i+4 <= len(opcodes); i++ {
		tokens = append(tokens, "NG4:"+strings.Join(opcodes[i:i+4], "_"))
	}

	return tokens
}

// termFrequencies collapses a token bag into term counts.
func termFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}

// hashToUnitInterval folds an arbitrary byte string down to a float64 in
// [0, 1), used by the KNN feature vector's hash-based summary dimensions.
func hashToUnitInterval(s string) float64 {
	sum := blake2b.Sum256([]byte(s))
	v := binary.BigEndian.Uint64(sum[:8])
	return float64(v) / float64(^uint64(0))
}
