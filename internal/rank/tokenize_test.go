package rank

import (
	"strings"
	"testing"

	"jmatch/internal/model"
)

func meaningfulPrefix(s string) bool {
	return strings.HasPrefix(s, "known")
}

func isObfuscated(s string) bool { return !meaningfulPrefix(s) }

func TestTokenize_EmptyMethodStillEmitsDescAndSize(t *testing.T) {
	m := model.NewMethod("a", "a", "()V", 0, nil, nil, nil, meaningfulPrefix)
	tokens := Tokenize(m, isObfuscated)

	foundDesc, foundSize := false, false
	for _, tok := range tokens {
		if tok == "DESC:()V" {
			foundDesc = true
		}
		if tok == "SIZE:TINY" {
			foundSize = true
		}
	}
	if !foundDesc || !foundSize {
		t.Errorf("expected DESC and SIZE tokens for an empty method, got %v", tokens)
	}
}

func TestTokenize_StringConstantHashed(t *testing.T) {
	constants := []model.Constant{model.NewStringConstant("a distinctive literal")}
	m := model.NewMethod("a", "a", "()V", 0, nil, nil, constants, meaningfulPrefix)
	tokens := Tokenize(m, isObfuscated)

	for _, tok := range tokens {
		if strings.HasPrefix(tok, "USTR:") {
			if strings.Contains(tok, "distinctive") {
				t.Error("USTR token must be hashed, not contain the literal text")
			}
			return
		}
	}
	t.Error("expected a USTR: token for the string constant")
}

func TestTokenize_MethodCallNormalizesObfuscatedOwnerAndName(t *testing.T) {
	instrs := []model.Instr{
		{Kind: model.InstrMethodRef, Owner: "a", Name: "b", Descriptor: "()V"},
	}
	m := model.NewMethod("x", "x", "()V", 0, nil, instrs, nil, meaningfulPrefix)
	tokens := Tokenize(m, isObfuscated)

	found := false
	for _, tok := range tokens {
		if tok == "MCALL:OBF.OBF" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MCALL:OBF.OBF among tokens, got %v", tokens)
	}
}

func TestTokenize_OpcodeNgrams(t *testing.T) {
	instrs := []model.Instr{
		{Kind: model.InstrOpcode, Opcode: "iload"},
		{Kind: model.InstrOpcode, Opcode: "iadd"},
		{Kind: model.InstrOpcode, Opcode: "ireturn"},
	}
	m := model.NewMethod("x", "x", "()V", 0, nil, instrs, nil, meaningfulPrefix)
	tokens := Tokenize(m, isObfuscated)

	wantNG3 := "NG3:iload_iadd_ireturn"
	found := false
	for _, tok := range tokens {
		if tok == wantNG3 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q among tokens, got %v", wantNG3, tokens)
	}

	for _, tok := range tokens {
		if strings.HasPrefix(tok, "NG4:") {
			t.Errorf("a 3-instruction method should produce no NG4 token, got %q", tok)
		}
	}
}

func TestHashToUnitInterval_DeterministicAndBounded(t *testing.T) {
	a := hashToUnitInterval("same input")
	b := hashToUnitInterval("same input")
	if a != b {
		t.Error("hashToUnitInterval must be deterministic")
	}
	if a < 0 || a >= 1 {
		t.Errorf("hashToUnitInterval = %v, want in [0, 1)", a)
	}
}
