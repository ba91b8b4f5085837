package model

import "strings"

// ClassNamesIn walks a JVM field or method descriptor and returns every
// binary class name referenced by an "L<name>;" segment, in left-to-right
// order (arrays and primitives contribute nothing).
func ClassNamesIn(descriptor string) []string {
	var names []string
	runes := []rune(descriptor)
	for i := 0; i < len(runes); i++ {
		if runes[i] == 'L' {
			end := i + 1
			for end < len(runes) && runes[end] != ';' {
				end++
			}
			if end < len(runes) {
				names = append(names, string(runes[i+1:end]))
				i = end
			}
		}
	}
	return names
}

// RemapDescriptor rewrites every "L<name>;" segment of a descriptor using
// remap. When remap reports no match for a name, the segment is rewritten
// to the wildcard "*" rather than left as the original obfuscated name,
// so two descriptors that differ only in obfuscated type names collapse to
// the same remapped key.
func RemapDescriptor(descriptor string, remap func(className string) (string, bool)) string {
	var b strings.Builder
	runes := []rune(descriptor)
	for i := 0; i < len(runes); i++ {
		if runes[i] == 'L' {
			end := i + 1
			for end < len(runes) && runes[end] != ';' {
				end++
			}
			if end < len(runes) {
				name := string(runes[i+1 : end])
				if target, ok := remap(name); ok {
					b.WriteByte('L')
					b.WriteString(target)
					b.WriteByte(';')
				} else {
					b.WriteString("L*;")
				}
				i = end
				continue
			}
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

// ParamCount returns the number of parameters in a method descriptor
// "(args)ret", or 0 if the descriptor is malformed.
func ParamCount(descriptor string) int {
	start := strings.IndexByte(descriptor, '(')
	end := strings.IndexByte(descriptor, ')')
	if start < 0 || end < 0 || end <= start {
		return 0
	}
	params := descriptor[start+1 : end]

	count := 0
	runes := []rune(params)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '[':
			// array prefix, doesn't itself count; fall through to the element type
			continue
		case 'L':
			for i < len(runes) && runes[i] != ';' {
				i++
			}
			count++
		default:
			count++
		}
	}
	return count
}
