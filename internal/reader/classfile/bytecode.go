package classfile

import (
	"encoding/binary"

	"jmatch/internal/model"
)

// walkCode projects a method's raw bytecode into the lossy instruction
// stream and constant multiset the matching heuristics consume: every
// opcode becomes a categorical InstrOpcode, load-constant opcodes also
// contribute to the constants slice, and the handful of opcodes that
// reference a field/method/class contribute a richer Instr variant.
func walkCode(code []byte, pool constantPool) ([]model.Instr, []model.Constant) {
	var instrs []model.Instr
	var constants []model.Constant

	pos := 0
	for pos < len(code) {
		op := code[pos]
		start := pos
		pos++

		switch op {
		case opLdc:
			if pos >= len(code) {
				return instrs, constants
			}
			idx := uint16(code[pos])
			pos++
			if c, ok := constantFromPool(pool, idx); ok {
				constants = append(constants, c)
			}
			instrs = append(instrs, model.Instr{Kind: model.InstrOpcode, Opcode: "ldc"})
			continue

		case opLdcW, opLdc2W:
			if pos+2 > len(code) {
				return instrs, constants
			}
			idx := binary.BigEndian.Uint16(code[pos:])
			pos += 2
			if c, ok := constantFromPool(pool, idx); ok {
				constants = append(constants, c)
			}
			instrs = append(instrs, model.Instr{Kind: model.InstrOpcode, Opcode: "ldc"})
			continue

		case opGetstatic, opPutstatic, opGetfield, opPutfield:
			if pos+2 > len(code) {
				return instrs, constants
			}
			idx := binary.BigEndian.Uint16(code[pos:])
			pos += 2
			owner, name, _ := pool.ref(idx)
			instrs = append(instrs, model.Instr{
				Kind: model.InstrFieldRef, Opcode: opcodeName(op), Owner: owner, Name: name,
			})
			continue

		case opInvokevirtual, opInvokespecial, opInvokestatic:
			if pos+2 > len(code) {
				return instrs, constants
			}
			idx := binary.BigEndian.Uint16(code[pos:])
			pos += 2
			owner, name, desc := pool.ref(idx)
			instrs = append(instrs, model.Instr{
				Kind: model.InstrMethodRef, Opcode: opcodeName(op), Owner: owner, Name: name, Descriptor: desc,
			})
			continue

		case opInvokeinterface:
			if pos+4 > len(code) {
				return instrs, constants
			}
			idx := binary.BigEndian.Uint16(code[pos:])
			pos += 4 // index(2) + count(1) + reserved(1)
			owner, name, desc := pool.ref(idx)
			instrs = append(instrs, model.Instr{
				Kind: model.InstrMethodRef, Opcode: opcodeName(op), Owner: owner, Name: name, Descriptor: desc,
			})
			continue

		case opInvokedynamic:
			pos += 4
			instrs = append(instrs, model.Instr{Kind: model.InstrOpcode, Opcode: "invokedynamic"})
			continue

		case opNew, opAnewarray, opCheckcast, opInstanceof:
			if pos+2 > len(code) {
				return instrs, constants
			}
			idx := binary.BigEndian.Uint16(code[pos:])
			pos += 2
			typeName := pool.className(idx)
			instrs = append(instrs, model.Instr{
				Kind: model.InstrTypeRef, Opcode: opcodeName(op), TypeName: typeName,
			})
			continue

		case opMultianewarray:
			if pos+3 > len(code) {
				return instrs, constants
			}
			idx := binary.BigEndian.Uint16(code[pos:])
			pos += 3
			typeName := pool.className(idx)
			instrs = append(instrs, model.Instr{
				Kind: model.InstrTypeRef, Opcode: opcodeName(op), TypeName: typeName,
			})
			continue

		case opTableswitch:
			pos = skipTableswitch(code, start)
			instrs = append(instrs, model.Instr{Kind: model.InstrOpcode, Opcode: "tableswitch"})
			continue

		case opLookupswitch:
			pos = skipLookupswitch(code, start)
			instrs = append(instrs, model.Instr{Kind: model.InstrOpcode, Opcode: "lookupswitch"})
			continue

		case opWide:
			n := skipWide(code, pos)
			pos += n
			instrs = append(instrs, model.Instr{Kind: model.InstrOpcode, Opcode: "wide"})
			continue
		}

		if n, ok := fixedOperandLength[op]; ok {
			pos += n
		}
		instrs = append(instrs, model.Instr{Kind: model.InstrOpcode, Opcode: opcodeName(op)})
	}
	return instrs, constants
}

// constantFromPool resolves an ldc-family operand index into the literal
// model.Constant it designates, skipping entries that can't be loaded by
// ldc (NameAndType, Fieldref, …) — those never appear as ldc operands in
// well-formed class files.
func constantFromPool(pool constantPool, idx uint16) (model.Constant, bool) {
	e, ok := pool.at(idx)
	if !ok {
		return model.Constant{}, false
	}
	switch e.tag {
	case tagInteger:
		return model.NewIntConstant(model.ConstantInt, int64(e.intVal)), true
	case tagLong:
		return model.NewIntConstant(model.ConstantLong, e.longVal), true
	case tagFloat:
		return model.NewFloatConstant(model.ConstantFloat, float64(e.floatVal)), true
	case tagDouble:
		return model.NewFloatConstant(model.ConstantDouble, e.doubleVal), true
	case tagString:
		return model.NewStringConstant(pool.utf8At(e.stringIndex)), true
	case tagClass:
		return model.NewTypeConstant(pool.className(idx)), true
	default:
		return model.Constant{}, false
	}
}

// skipTableswitch advances past a tableswitch instruction given the offset
// of its opcode byte: 0-3 padding bytes to a 4-byte boundary (measured from
// the start of the method body), then default(4) + low(4) + high(4) +
// (high-low+1) jump offsets of 4 bytes each.
func skipTableswitch(code []byte, opcodeOffset int) int {
	pos := opcodeOffset + 1
	for pos%4 != 0 {
		pos++
	}
	if pos+12 > len(code) {
		return len(code)
	}
	low := int32(binary.BigEndian.Uint32(code[pos+4:]))
	high := int32(binary.BigEndian.Uint32(code[pos+8:]))
	pos += 12
	count := 0
	if high >= low {
		count = int(high-low) + 1
	}
	pos += count * 4
	if pos > len(code) {
		return len(code)
	}
	return pos
}

// skipLookupswitch advances past a lookupswitch instruction: padding to a
// 4-byte boundary, then default(4) + npairs(4) + npairs*(match(4)+offset(4)).
func skipLookupswitch(code []byte, opcodeOffset int) int {
	pos := opcodeOffset + 1
	for pos%4 != 0 {
		pos++
	}
	if pos+8 > len(code) {
		return len(code)
	}
	npairs := int32(binary.BigEndian.Uint32(code[pos+4:]))
	pos += 8
	if npairs < 0 {
		return len(code)
	}
	pos += int(npairs) * 8
	if pos > len(code) {
		return len(code)
	}
	return pos
}

// skipWide returns the number of bytes occupied by a wide instruction's
// operand, not counting the wide opcode byte itself: the wrapped opcode
// byte plus either one u2 index (most forms) or two u2 fields (iinc).
func skipWide(code []byte, pos int) int {
	if pos >= len(code) {
		return 0
	}
	wrapped := code[pos]
	if wrapped == opIinc {
		return 5 // wrapped opcode(1) + index(2) + const(2)
	}
	return 3 // wrapped opcode(1) + index(2)
}
