package model

import "strings"

// Class is an immutable record for one class entry in an archive.
type Class struct {
	Name        string   // binary name, slash-form, unique within an archive
	SuperName   string   // "" if this is java/lang/Object
	Interfaces  []string // ordered interface binary names
	AccessFlags uint16

	Methods []*Method // owned methods, unique by FullSignature
	Fields  []*Field  // owned fields, unique by FullSignature

	obfuscated         bool
	isInDefaultPackage bool
}

// NewClass constructs a Class record, deriving Obfuscated and
// IsInDefaultPackage at build time per the injected predicate — downstream
// code must not re-derive obfuscation.
func NewClass(name, superName string, interfaces []string, accessFlags uint16, obfuscated func(simpleName string) bool) *Class {
	return &Class{
		Name:               name,
		SuperName:          superName,
		Interfaces:         interfaces,
		AccessFlags:        accessFlags,
		obfuscated:         !obfuscated(SimpleName(name)),
		isInDefaultPackage: !strings.Contains(name, "/"),
	}
}

// FullSignature is the canonical key for a class: its binary name.
func (c *Class) FullSignature() string { return c.Name }

// Obfuscated reports whether this class's simple name failed to match any
// configured meaningful prefix.
func (c *Class) Obfuscated() bool { return c.obfuscated }

// IsInDefaultPackage reports whether the class has no package qualifier.
func (c *Class) IsInDefaultPackage() bool { return c.isInDefaultPackage }

// SimpleName returns the final path segment of a slash-form binary name.
func SimpleName(binaryName string) string {
	if idx := strings.LastIndexByte(binaryName, '/'); idx >= 0 {
		return binaryName[idx+1:]
	}
	return binaryName
}
