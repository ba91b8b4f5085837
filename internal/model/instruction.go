package model

// InstrKind discriminates the four element kinds retained in a method's
// projected instruction stream: a lossy, compact projection. Full operand
// bytes, local indices, and line info are discarded, keeping only what the
// matching heuristics need.
type InstrKind string

const (
	// InstrOpcode is a bare categorical opcode identity (no operand)
	InstrOpcode InstrKind = "opcode"
	// InstrFieldRef references a field by owner+name
	InstrFieldRef InstrKind = "field"
	// InstrMethodRef references a method by owner+name+descriptor
	InstrMethodRef InstrKind = "method"
	// InstrTypeRef references a class by binary name
	InstrTypeRef InstrKind = "type"
)

// Instr is one element of a method's projected instruction stream.
type Instr struct {
	Kind       InstrKind
	Opcode     string // categorical opcode identity, always set
	Owner      string // set for InstrFieldRef / InstrMethodRef
	Name       string // set for InstrFieldRef / InstrMethodRef
	Descriptor string // set for InstrMethodRef
	TypeName   string // set for InstrTypeRef
}

// NormalizedCall renders an InstrMethodRef/InstrFieldRef with obfuscated
// owner/name replaced by the literal token OBF, used by the TF-IDF
// tokenizer's MCALL:/FACCS: namespaces.
func (i Instr) NormalizedCall(isObfuscatedName func(string) bool) string {
	owner := i.Owner
	name := i.Name
	if isObfuscatedName(owner) {
		owner = "OBF"
	}
	if isObfuscatedName(name) {
		name = "OBF"
	}
	return owner + "." + name
}
