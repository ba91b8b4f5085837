package classfile

import "fmt"

const classMagic = 0xCAFEBABE

// readConstantPool reads the constant_pool_count-1 entries of the class
// file format, honoring the Long/Double double-slot quirk: a Long or
// Double entry occupies indices i and i+1, and the following entry starts
// at i+2 with i+1 left as an unaddressable zero-value placeholder.
func readConstantPool(r *byteReader) (constantPool, error) {
	count, err := r.u2()
	if err != nil {
		return nil, fmt.Errorf("reading constant_pool_count: %w", err)
	}
	pool := make(constantPool, count)
	for i := uint16(1); i < count; i++ {
		entry, err := readCPEntry(r)
		if err != nil {
			return nil, fmt.Errorf("reading constant pool entry %d: %w", i, err)
		}
		pool[i] = entry
		if entry.tag == tagLong || entry.tag == tagDouble {
			i++
		}
	}
	return pool, nil
}

func readCPEntry(r *byteReader) (cpEntry, error) {
	tag, err := r.u1()
	if err != nil {
		return cpEntry{}, err
	}
	switch tag {
	case tagUtf8:
		n, err := r.u2()
		if err != nil {
			return cpEntry{}, err
		}
		b, err := r.bytes(int(n))
		if err != nil {
			return cpEntry{}, err
		}
		return cpEntry{tag: tag, utf8: decodeModifiedUTF8(b)}, nil
	case tagInteger:
		v, err := r.i4()
		return cpEntry{tag: tag, intVal: v}, err
	case tagFloat:
		v, err := r.f4()
		return cpEntry{tag: tag, floatVal: v}, err
	case tagLong:
		v, err := r.i8()
		return cpEntry{tag: tag, longVal: v}, err
	case tagDouble:
		v, err := r.f8()
		return cpEntry{tag: tag, doubleVal: v}, err
	case tagClass, tagMethodType, tagModule, tagPackage:
		v, err := r.u2()
		return cpEntry{tag: tag, nameIndex: v}, err
	case tagString:
		v, err := r.u2()
		return cpEntry{tag: tag, stringIndex: v}, err
	case tagFieldref, tagMethodref, tagInterfaceMethodref:
		ci, err := r.u2()
		if err != nil {
			return cpEntry{}, err
		}
		ni, err := r.u2()
		return cpEntry{tag: tag, classIndex: ci, natIndex: ni}, err
	case tagNameAndType:
		ni, err := r.u2()
		if err != nil {
			return cpEntry{}, err
		}
		di, err := r.u2()
		return cpEntry{tag: tag, nameIndex: ni, descIndex: di}, err
	case tagMethodHandle:
		if err := r.skip(1); err != nil {
			return cpEntry{}, err
		}
		v, err := r.u2()
		return cpEntry{tag: tag, natIndex: v}, err
	case tagDynamic, tagInvokeDynamic:
		if err := r.skip(2); err != nil {
			return cpEntry{}, err
		}
		v, err := r.u2()
		return cpEntry{tag: tag, natIndex: v}, err
	default:
		return cpEntry{}, fmt.Errorf("unknown constant pool tag %d", tag)
	}
}

// decodeModifiedUTF8 treats the class file's modified-UTF-8 encoding as
// plain UTF-8: the only divergences (embedded NUL as two bytes, supplementary
// characters as surrogate pairs) never appear in identifier or literal
// strings relevant to matching, so a byte-for-byte string conversion is
// sufficient here.
func decodeModifiedUTF8(b []byte) string {
	return string(b)
}
