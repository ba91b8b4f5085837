// Package model holds the immutable symbol records (Class, Method, Field)
// and the per-archive Environment index that the matching core consumes.
package model

import "sort"

// ObfuscationPredicate decides whether a simple name counts as
// "non-obfuscated" (i.e. meaningful/human-readable). Design notes: this is
// domain-specific and must be injected, never hardcoded.
type ObfuscationPredicate func(simpleName string) bool

// DefaultObfuscationPrefixes is the glossary's example prefix set. A symbol
// is treated as non-obfuscated iff its simple name starts with one of
// these: Obfuscated = !hasConfiguredPrefix(name).
var DefaultObfuscationPrefixes = []string{"class", "method", "field", "client"}

// NewPrefixObfuscationPredicate builds an ObfuscationPredicate from a prefix
// list: a name is non-obfuscated (predicate returns true, meaning "keep as
// meaningful") iff it starts with one of the prefixes.
func NewPrefixObfuscationPredicate(prefixes []string) ObfuscationPredicate {
	return func(simpleName string) bool {
		for _, p := range prefixes {
			if len(simpleName) >= len(p) && simpleName[:len(p)] == p {
				return true
			}
		}
		return false
	}
}

// IsNonObfuscated is the sense the rest of the core actually wants: true
// when the predicate matched (the symbol is meaningful/human-readable).
// Class/Method/Field store the inverse (Obfuscated). A nil predicate
// reports false here, so a symbol judged without an injected predicate
// counts as "obfuscated", the conservative choice.
func IsNonObfuscated(pred ObfuscationPredicate, simpleName string) bool {
	if pred == nil {
		return false
	}
	return pred(simpleName)
}

// Environment is the read-only, post-load index for one archive: three
// total maps keyed by full signature, built once.
type Environment struct {
	ArchiveName string
	Classes     map[string]*Class  // class binary name -> Class
	Methods     map[string]*Method // owner.name+descriptor -> Method
	Fields      map[string]*Field  // owner.name:descriptor -> Field
}

// Builder accumulates symbols before freezing them into an Environment.
type Builder struct {
	archiveName string
	obfuscated  ObfuscationPredicate
	classes     map[string]*Class
	methods     map[string]*Method
	fields      map[string]*Field
}

// NewBuilder creates an Environment builder for one archive. obfuscated
// is applied to every class/method/field as it is added so the
// "non-obfuscated" predicate is resolved exactly once, at load time.
func NewBuilder(archiveName string, obfuscated ObfuscationPredicate) *Builder {
	if obfuscated == nil {
		obfuscated = NewPrefixObfuscationPredicate(DefaultObfuscationPrefixes)
	}
	return &Builder{
		archiveName: archiveName,
		obfuscated:  obfuscated,
		classes:     make(map[string]*Class),
		methods:     make(map[string]*Method),
		fields:      make(map[string]*Field),
	}
}

// AddClass registers a class and its owned methods/fields.
func (b *Builder) AddClass(name, superName string, interfaces []string, accessFlags uint16) *Class {
	nonObf := func(s string) bool { return IsNonObfuscated(b.obfuscated, s) }
	c := NewClass(name, superName, interfaces, accessFlags, nonObf)
	b.classes[c.FullSignature()] = c
	return c
}

// AddMethod registers a method on an already-added class.
func (b *Builder) AddMethod(owner *Class, name, descriptor string, accessFlags uint16, exceptions []string, instructions []Instr, constants []Constant) *Method {
	nonObf := func(s string) bool { return IsNonObfuscated(b.obfuscated, s) }
	m := NewMethod(owner.Name, name, descriptor, accessFlags, exceptions, instructions, constants, nonObf)
	owner.Methods = append(owner.Methods, m)
	b.methods[m.FullSignature()] = m
	return m
}

// AddField registers a field on an already-added class.
func (b *Builder) AddField(owner *Class, name, descriptor string, accessFlags uint16, initialValue *Constant) *Field {
	nonObf := func(s string) bool { return IsNonObfuscated(b.obfuscated, s) }
	f := NewField(owner.Name, name, descriptor, accessFlags, initialValue, nonObf)
	owner.Fields = append(owner.Fields, f)
	b.fields[f.FullSignature()] = f
	return f
}

// Build freezes the accumulated symbols into a read-only Environment.
// Each class's Methods/Fields slices are sorted by full signature so
// iteration order is reproducible across runs.
func (b *Builder) Build() *Environment {
	for _, c := range b.classes {
		sort.Slice(c.Methods, func(i, j int) bool {
			return c.Methods[i].FullSignature() < c.Methods[j].FullSignature()
		})
		sort.Slice(c.Fields, func(i, j int) bool {
			return c.Fields[i].FullSignature() < c.Fields[j].FullSignature()
		})
	}
	return &Environment{
		ArchiveName: b.archiveName,
		Classes:     b.classes,
		Methods:     b.methods,
		Fields:      b.fields,
	}
}

// SortedClassNames returns every class binary name in the environment, sorted.
func (e *Environment) SortedClassNames() []string {
	names := make([]string, 0, len(e.Classes))
	for name := range e.Classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedMethodKeys returns every method full signature in the environment, sorted.
func (e *Environment) SortedMethodKeys() []string {
	keys := make([]string, 0, len(e.Methods))
	for key := range e.Methods {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SortedFieldKeys returns every field full signature in the environment, sorted.
func (e *Environment) SortedFieldKeys() []string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
