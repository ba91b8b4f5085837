// Package report renders a completed match.Bundle into the on-disk
// formats external tooling consumes: the plain-text mapping file, and an
// optional SCIP index export.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"jmatch/internal/match"
)

// WriteText renders bundle as the plain-text mapping file format: one
// `## <Kind> Mappings` section per symbol kind, one mapping per line,
// sorted by source key for reproducible output, blank line between
// sections.
func WriteText(w io.Writer, bundle *match.Bundle) error {
	bw := bufio.NewWriter(w)

	sections := []struct {
		title string
		m     map[string]string
	}{
		{"Class Mappings", bundle.Classes},
		{"Method Mappings", bundle.Methods},
		{"Field Mappings", bundle.Fields},
	}

	for i, s := range sections {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(bw, "## %s\n", s.title); err != nil {
			return err
		}
		for _, key := range sortedKeys(s.m) {
			if _, err := fmt.Fprintf(bw, "%s -> %s\n", key, s.m[key]); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// WriteTextFile creates (or truncates) path and writes bundle's mapping
// text to it.
func WriteTextFile(path string, bundle *match.Bundle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteText(f, bundle)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
