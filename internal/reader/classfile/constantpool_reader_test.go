package classfile

import "testing"

func TestReadConstantPool_LongOccupiesTwoSlots(t *testing.T) {
	// constant_pool_count = 4: slot 1 is a Long (occupies 1 and 2), slot 3
	// is a Utf8 "x".
	buf := []byte{
		0x00, 0x04, // count
		tagLong, 0, 0, 0, 0, 0, 0, 0, 42, // slot 1: long value 42
		tagUtf8, 0x00, 0x01, 'x', // slot 3: utf8 "x"
	}
	pool, err := readConstantPool(newByteReader(buf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool) != 4 {
		t.Fatalf("len(pool) = %d, want 4", len(pool))
	}
	if pool[1].tag != tagLong || pool[1].longVal != 42 {
		t.Errorf("pool[1] = %+v, want Long(42)", pool[1])
	}
	if pool[2].tag != 0 {
		t.Errorf("pool[2] should be the unaddressable placeholder, got tag %d", pool[2].tag)
	}
	if pool.utf8At(3) != "x" {
		t.Errorf("utf8At(3) = %q, want %q", pool.utf8At(3), "x")
	}
}

func TestConstantPool_RefResolvesOwnerNameDescriptor(t *testing.T) {
	pool := constantPool{
		{},                              // index 0 unused
		{tag: tagUtf8, utf8: "Owner"},   // 1
		{tag: tagClass, nameIndex: 1},   // 2
		{tag: tagUtf8, utf8: "doThing"}, // 3
		{tag: tagUtf8, utf8: "(I)V"},    // 4
		{tag: tagNameAndType, nameIndex: 3, descIndex: 4}, // 5
		{tag: tagMethodref, classIndex: 2, natIndex: 5},   // 6
	}
	owner, name, desc := pool.ref(6)
	if owner != "Owner" || name != "doThing" || desc != "(I)V" {
		t.Errorf("ref(6) = (%q, %q, %q), want (Owner, doThing, (I)V)", owner, name, desc)
	}
}
