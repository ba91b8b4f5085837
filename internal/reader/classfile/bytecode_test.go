package classfile

import (
	"testing"

	"jmatch/internal/model"
)

func TestWalkCode_LdcContributesConstantAndOpcode(t *testing.T) {
	pool := constantPool{
		{},
		{tag: tagString, stringIndex: 2},
		{tag: tagUtf8, utf8: "hello"},
	}
	code := []byte{opLdc, 0x01, opReturn}

	instrs, constants := walkCode(code, pool)

	if len(instrs) != 2 || instrs[0].Opcode != "ldc" || instrs[1].Opcode != "return" {
		t.Fatalf("instrs = %+v", instrs)
	}
	if len(constants) != 1 || constants[0].Kind != model.ConstantString || constants[0].StrValue != "hello" {
		t.Fatalf("constants = %+v", constants)
	}
}

func TestWalkCode_GetfieldProducesFieldRef(t *testing.T) {
	pool := constantPool{
		{},
		{tag: tagUtf8, utf8: "pkg/Owner"},
		{tag: tagClass, nameIndex: 1},
		{tag: tagUtf8, utf8: "count"},
		{tag: tagUtf8, utf8: "I"},
		{tag: tagNameAndType, nameIndex: 3, descIndex: 4},
		{tag: tagFieldref, classIndex: 2, natIndex: 5},
	}
	code := []byte{opGetfield, 0x00, 0x06}

	instrs, _ := walkCode(code, pool)

	if len(instrs) != 1 {
		t.Fatalf("len(instrs) = %d, want 1", len(instrs))
	}
	got := instrs[0]
	if got.Kind != model.InstrFieldRef || got.Owner != "pkg/Owner" || got.Name != "count" {
		t.Errorf("instrs[0] = %+v", got)
	}
}

func TestWalkCode_InvokestaticProducesMethodRef(t *testing.T) {
	pool := constantPool{
		{},
		{tag: tagUtf8, utf8: "pkg/Helper"},
		{tag: tagClass, nameIndex: 1},
		{tag: tagUtf8, utf8: "compute"},
		{tag: tagUtf8, utf8: "(I)I"},
		{tag: tagNameAndType, nameIndex: 3, descIndex: 4},
		{tag: tagMethodref, classIndex: 2, natIndex: 5},
	}
	code := []byte{opInvokestatic, 0x00, 0x06}

	instrs, _ := walkCode(code, pool)

	if len(instrs) != 1 {
		t.Fatalf("len(instrs) = %d, want 1", len(instrs))
	}
	got := instrs[0]
	if got.Kind != model.InstrMethodRef || got.Owner != "pkg/Helper" || got.Name != "compute" || got.Descriptor != "(I)I" {
		t.Errorf("instrs[0] = %+v", got)
	}
}

func TestWalkCode_NewProducesTypeRef(t *testing.T) {
	pool := constantPool{
		{},
		{tag: tagUtf8, utf8: "pkg/Thing"},
		{tag: tagClass, nameIndex: 1},
	}
	code := []byte{opNew, 0x00, 0x02, opDup}

	instrs, _ := walkCode(code, pool)

	if len(instrs) != 2 {
		t.Fatalf("len(instrs) = %d, want 2", len(instrs))
	}
	if instrs[0].Kind != model.InstrTypeRef || instrs[0].TypeName != "pkg/Thing" {
		t.Errorf("instrs[0] = %+v", instrs[0])
	}
	if instrs[1].Opcode != "dup" {
		t.Errorf("instrs[1] = %+v", instrs[1])
	}
}

func TestWalkCode_IndexedLocalVariantsCollapseToCanonicalMnemonic(t *testing.T) {
	code := []byte{opIload0, opIload, 0x05, opIreturn}
	instrs, _ := walkCode(code, nil)

	if len(instrs) != 3 {
		t.Fatalf("len(instrs) = %d, want 3", len(instrs))
	}
	if instrs[0].Opcode != "iload" || instrs[1].Opcode != "iload" {
		t.Errorf("iload_0 and iload should share the same mnemonic, got %+v", instrs[:2])
	}
}

func TestWalkCode_TableswitchSkipsVariableLengthOperand(t *testing.T) {
	// opcode at offset 0; pad to offset 4; default(4)+low(4)+high(4) with
	// low=0, high=1 (2 entries) + 2*4 offset bytes, then one more opcode.
	code := make([]byte, 0, 32)
	code = append(code, opTableswitch)
	for len(code)%4 != 0 {
		code = append(code, 0)
	}
	code = append(code, 0, 0, 0, 0) // default
	code = append(code, 0, 0, 0, 0) // low = 0
	code = append(code, 0, 0, 0, 1) // high = 1
	code = append(code, 0, 0, 0, 0) // offset[0]
	code = append(code, 0, 0, 0, 0) // offset[1]
	code = append(code, opReturn)

	instrs, _ := walkCode(code, nil)
	if len(instrs) != 2 || instrs[0].Opcode != "tableswitch" || instrs[1].Opcode != "return" {
		t.Fatalf("instrs = %+v", instrs)
	}
}
