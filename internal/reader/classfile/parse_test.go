package classfile

import "testing"

// buildMinimalClass hand-assembles the bytes of a trivial class file: one
// class extending java/lang/Object, no fields, no methods, no attributes.
func buildMinimalClass() []byte {
	var b []byte
	u2 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	u4 := func(v uint32) { b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }
	utf8 := func(s string) {
		b = append(b, tagUtf8)
		u2(uint16(len(s)))
		b = append(b, s...)
	}
	classRef := func(nameIdx uint16) {
		b = append(b, tagClass)
		u2(nameIdx)
	}

	u4(classMagic)
	u2(0)  // minor
	u2(52) // major

	u2(5)                    // constant_pool_count (indices 1..4 used)
	utf8("A")                // 1
	classRef(1)              // 2 -> this_class
	utf8("java/lang/Object") // 3
	classRef(3)              // 4 -> super_class

	u2(0x0021) // access_flags: ACC_PUBLIC | ACC_SUPER
	u2(2)      // this_class
	u2(4)      // super_class
	u2(0)      // interfaces_count
	u2(0)      // fields_count
	u2(0)      // methods_count
	u2(0)      // attributes_count
	return b
}

func TestParseClassFile_MinimalClass(t *testing.T) {
	pc, err := parseClassFile(buildMinimalClass())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pc.name != "A" {
		t.Errorf("name = %q, want %q", pc.name, "A")
	}
	if pc.superName != "java/lang/Object" {
		t.Errorf("superName = %q, want %q", pc.superName, "java/lang/Object")
	}
	if len(pc.fields) != 0 || len(pc.methods) != 0 {
		t.Errorf("expected no fields/methods, got %d fields, %d methods", len(pc.fields), len(pc.methods))
	}
}

func TestParseClassFile_RejectsBadMagic(t *testing.T) {
	buf := buildMinimalClass()
	buf[0] = 0x00 // corrupt the magic
	if _, err := parseClassFile(buf); err == nil {
		t.Error("expected an error for a corrupted magic number")
	}
}

func TestParseClassFile_MethodWithCodeAttribute(t *testing.T) {
	var b []byte
	u2 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	u4 := func(v uint32) { b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }
	utf8 := func(s string) {
		b = append(b, tagUtf8)
		u2(uint16(len(s)))
		b = append(b, s...)
	}
	classRef := func(nameIdx uint16) {
		b = append(b, tagClass)
		u2(nameIdx)
	}

	u4(classMagic)
	u2(0)
	u2(52)

	// constant pool: 1=Utf8 A, 2=Class A, 3=Utf8 Object, 4=Class Object,
	// 5=Utf8 "foo", 6=Utf8 "()V", 7=Utf8 "Code"
	u2(8)
	utf8("A")
	classRef(1)
	utf8("java/lang/Object")
	classRef(3)
	utf8("foo")
	utf8("()V")
	utf8("Code")

	u2(0x0021) // access_flags
	u2(2)      // this_class
	u2(4)      // super_class
	u2(0)      // interfaces_count
	u2(0)      // fields_count

	u2(1)      // methods_count
	u2(0x0001) // method access_flags: ACC_PUBLIC
	u2(5)      // name_index -> "foo"
	u2(6)      // descriptor_index -> "()V"
	u2(1)      // attributes_count

	// Code attribute
	u2(7) // attribute_name_index -> "Code"
	code := []byte{opReturn}
	codeAttrBody := func() []byte {
		var a []byte
		a = append(a, byte(0), byte(1)) // max_stack = 1
		a = append(a, byte(0), byte(0)) // max_locals = 0
		a = append(a, byte(0), byte(0), byte(0), byte(len(code)))
		a = append(a, code...)
		a = append(a, byte(0), byte(0)) // exception_table_length
		a = append(a, byte(0), byte(0)) // attributes_count
		return a
	}()
	u4(uint32(len(codeAttrBody)))
	b = append(b, codeAttrBody...)

	u2(0) // class attributes_count

	pc, err := parseClassFile(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pc.methods) != 1 {
		t.Fatalf("len(methods) = %d, want 1", len(pc.methods))
	}
	m := pc.methods[0]
	if m.name != "foo" || m.descriptor != "()V" {
		t.Errorf("method = %+v", m)
	}
	if len(m.instructions) != 1 || m.instructions[0].Opcode != "return" {
		t.Errorf("instructions = %+v", m.instructions)
	}
}
