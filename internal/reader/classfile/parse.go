package classfile

import (
	"fmt"

	"jmatch/internal/model"
)

// parsedClass is the intermediate result of parsing one .class entry,
// before its methods/fields are registered against a model.Builder.
type parsedClass struct {
	name        string
	superName   string
	interfaces  []string
	accessFlags uint16
	fields      []parsedField
	methods     []parsedMethod
}

type parsedField struct {
	name, descriptor string
	accessFlags      uint16
	initialValue     *model.Constant
}

type parsedMethod struct {
	name, descriptor string
	accessFlags      uint16
	exceptions       []string
	instructions     []model.Instr
	constants        []model.Constant
}

// parseClassFile parses one .class file's raw bytes per JVM class file
// format chapter 4.
func parseClassFile(buf []byte) (*parsedClass, error) {
	r := newByteReader(buf)

	magic, err := r.u4()
	if err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if magic != classMagic {
		return nil, fmt.Errorf("bad magic %#x", magic)
	}
	if err := r.skip(4); err != nil { // minor_version(2) + major_version(2)
		return nil, fmt.Errorf("reading version: %w", err)
	}

	pool, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}

	accessFlags, err := r.u2()
	if err != nil {
		return nil, fmt.Errorf("reading access_flags: %w", err)
	}
	thisIdx, err := r.u2()
	if err != nil {
		return nil, fmt.Errorf("reading this_class: %w", err)
	}
	superIdx, err := r.u2()
	if err != nil {
		return nil, fmt.Errorf("reading super_class: %w", err)
	}

	pc := &parsedClass{
		name:        pool.className(thisIdx),
		superName:   pool.className(superIdx),
		accessFlags: accessFlags,
	}

	ifaceCount, err := r.u2()
	if err != nil {
		return nil, fmt.Errorf("reading interfaces_count: %w", err)
	}
	for i := uint16(0); i < ifaceCount; i++ {
		idx, err := r.u2()
		if err != nil {
			return nil, fmt.Errorf("reading interface %d: %w", i, err)
		}
		pc.interfaces = append(pc.interfaces, pool.className(idx))
	}

	fields, err := readFields(r, pool)
	if err != nil {
		return nil, fmt.Errorf("reading fields: %w", err)
	}
	pc.fields = fields

	methods, err := readMethods(r, pool)
	if err != nil {
		return nil, fmt.Errorf("reading methods: %w", err)
	}
	pc.methods = methods

	// class-level attributes carry nothing the matching core needs; skip
	// them wholesale.
	if err := skipAttributes(r); err != nil {
		return nil, fmt.Errorf("reading class attributes: %w", err)
	}

	return pc, nil
}

// readFields and readMethods read the field_info/method_info tables:
// identical shape (access_flags, name_index, descriptor_index, attributes),
// differing only in which attributes matter (methods carry Code; fields
// carry ConstantValue).
func readFields(r *byteReader, pool constantPool) ([]parsedField, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]parsedField, 0, count)
	for i := uint16(0); i < count; i++ {
		f, err := readField(r, pool)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func readMethods(r *byteReader, pool constantPool) ([]parsedMethod, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]parsedMethod, 0, count)
	for i := uint16(0); i < count; i++ {
		m, err := readMethod(r, pool)
		if err != nil {
			return nil, fmt.Errorf("method %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func readField(r *byteReader, pool constantPool) (parsedField, error) {
	accessFlags, err := r.u2()
	if err != nil {
		return parsedField{}, err
	}
	nameIdx, err := r.u2()
	if err != nil {
		return parsedField{}, err
	}
	descIdx, err := r.u2()
	if err != nil {
		return parsedField{}, err
	}
	f := parsedField{
		name:        pool.utf8At(nameIdx),
		descriptor:  pool.utf8At(descIdx),
		accessFlags: accessFlags,
	}

	attrCount, err := r.u2()
	if err != nil {
		return parsedField{}, err
	}
	for i := uint16(0); i < attrCount; i++ {
		nameIdx, length, err := readAttributeHeader(r)
		if err != nil {
			return parsedField{}, err
		}
		attrName := pool.utf8At(nameIdx)
		if attrName == "ConstantValue" {
			idx, err := r.u2()
			if err != nil {
				return parsedField{}, err
			}
			if c, ok := constantFromPool(pool, idx); ok {
				f.initialValue = &c
			}
			continue
		}
		if err := r.skip(int(length)); err != nil {
			return parsedField{}, err
		}
	}
	return f, nil
}

func readMethod(r *byteReader, pool constantPool) (parsedMethod, error) {
	accessFlags, err := r.u2()
	if err != nil {
		return parsedMethod{}, err
	}
	nameIdx, err := r.u2()
	if err != nil {
		return parsedMethod{}, err
	}
	descIdx, err := r.u2()
	if err != nil {
		return parsedMethod{}, err
	}
	m := parsedMethod{
		name:        pool.utf8At(nameIdx),
		descriptor:  pool.utf8At(descIdx),
		accessFlags: accessFlags,
	}

	attrCount, err := r.u2()
	if err != nil {
		return parsedMethod{}, err
	}
	for i := uint16(0); i < attrCount; i++ {
		nameIdx, length, err := readAttributeHeader(r)
		if err != nil {
			return parsedMethod{}, err
		}
		attrName := pool.utf8At(nameIdx)
		switch attrName {
		case "Code":
			instrs, constants, exceptions, err := readCodeAttribute(r, pool)
			if err != nil {
				return parsedMethod{}, err
			}
			m.instructions = instrs
			m.constants = constants
			m.exceptions = exceptions
		case "Exceptions":
			exc, err := readExceptionsAttribute(r, pool)
			if err != nil {
				return parsedMethod{}, err
			}
			m.exceptions = append(m.exceptions, exc...)
		default:
			if err := r.skip(int(length)); err != nil {
				return parsedMethod{}, err
			}
		}
	}
	return m, nil
}

func readAttributeHeader(r *byteReader) (nameIndex uint16, length uint32, err error) {
	nameIndex, err = r.u2()
	if err != nil {
		return 0, 0, err
	}
	length, err = r.u4()
	return nameIndex, length, err
}

func skipAttributes(r *byteReader) error {
	count, err := r.u2()
	if err != nil {
		return err
	}
	for i := uint16(0); i < count; i++ {
		_, length, err := readAttributeHeader(r)
		if err != nil {
			return err
		}
		if err := r.skip(int(length)); err != nil {
			return err
		}
	}
	return nil
}

// readCodeAttribute parses the Code attribute's body: max_stack/max_locals
// are discarded (operand-stack depth carries no matching signal), the
// instruction stream is projected via walkCode, the exception table yields
// caught type names, and nested attributes (LineNumberTable,
// LocalVariableTable, StackMapTable, …) are skipped wholesale.
func readCodeAttribute(r *byteReader, pool constantPool) ([]model.Instr, []model.Constant, []string, error) {
	if err := r.skip(4); err != nil { // max_stack(2) + max_locals(2)
		return nil, nil, nil, err
	}
	codeLength, err := r.u4()
	if err != nil {
		return nil, nil, nil, err
	}
	code, err := r.bytes(int(codeLength))
	if err != nil {
		return nil, nil, nil, err
	}
	instrs, constants := walkCode(code, pool)

	var caught []string
	excTableLen, err := r.u2()
	if err != nil {
		return nil, nil, nil, err
	}
	for i := uint16(0); i < excTableLen; i++ {
		if err := r.skip(4); err != nil { // start_pc, end_pc, handler_pc
			return nil, nil, nil, err
		}
		catchTypeIdx, err := r.u2()
		if err != nil {
			return nil, nil, nil, err
		}
		if name := pool.className(catchTypeIdx); name != "" {
			caught = append(caught, name)
		}
	}

	if err := skipAttributes(r); err != nil {
		return nil, nil, nil, err
	}
	return instrs, constants, caught, nil
}

func readExceptionsAttribute(r *byteReader, pool constantPool) ([]string, error) {
	n, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := uint16(0); i < n; i++ {
		idx, err := r.u2()
		if err != nil {
			return nil, err
		}
		out = append(out, pool.className(idx))
	}
	return out, nil
}
