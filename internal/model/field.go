package model

// Field is an immutable record for one field.
type Field struct {
	Owner        string
	Name         string
	Descriptor   string
	AccessFlags  uint16
	InitialValue *Constant // optional

	obfuscated bool
}

// NewField constructs a Field record, deriving Obfuscated at build time.
func NewField(owner, name, descriptor string, accessFlags uint16, initialValue *Constant, obfuscated func(simpleName string) bool) *Field {
	return &Field{
		Owner:        owner,
		Name:         name,
		Descriptor:   descriptor,
		AccessFlags:  accessFlags,
		InitialValue: initialValue,
		obfuscated:   !obfuscated(name),
	}
}

// FullSignature is the canonical key for a field: owner.name:descriptor.
func (f *Field) FullSignature() string {
	return f.Owner + "." + f.Name + ":" + f.Descriptor
}

// Obfuscated reports whether this field's simple name failed to match any
// configured meaningful prefix.
func (f *Field) Obfuscated() bool { return f.obfuscated }

// IsStatic reports whether the field's access flags include ACC_STATIC.
func (f *Field) IsStatic() bool { return f.AccessFlags&accStatic != 0 }
