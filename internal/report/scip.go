package report

import (
	"os"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"jmatch/internal/match"
	"jmatch/internal/version"
)

// WriteSCIP renders bundle as a SCIP index: one document per archive side,
// with a SymbolInformation entry per confirmed class/method/field carrying
// a Relationship back to its counterpart in the other archive. SCIP has no
// native "renamed to" relation, so the mapping is encoded via
// IsImplementation — the closest existing SCIP relationship to "this
// symbol's counterpart in the other build". This is export-only: jmatch
// never reads a SCIP index back in.
func WriteSCIP(bundle *match.Bundle) *scippb.Index {
	docA := &scippb.Document{
		RelativePath: bundle.ArchiveA,
		Language:     "jvm-bytecode",
	}
	docB := &scippb.Document{
		RelativePath: bundle.ArchiveB,
		Language:     "jvm-bytecode",
	}

	addMappings(docA, docB, bundle.Classes, "class")
	addMappings(docA, docB, bundle.Methods, "method")
	addMappings(docA, docB, bundle.Fields, "field")

	return &scippb.Index{
		Metadata: &scippb.Metadata{
			ToolInfo: &scippb.ToolInfo{
				Name:    "jmatch",
				Version: version.Version,
			},
			ProjectRoot: "",
		},
		Documents: []*scippb.Document{docA, docB},
	}
}

// addMappings appends one SymbolInformation to each document per
// source/target pair, cross-linked by a Relationship.
func addMappings(docA, docB *scippb.Document, mapping map[string]string, kind string) {
	for source, target := range mapping {
		docA.Symbols = append(docA.Symbols, &scippb.SymbolInformation{
			Symbol:      source,
			DisplayName: source,
			Documentation: []string{
				"jmatch " + kind + " mapping: matched to " + target,
			},
			Relationships: []*scippb.Relationship{
				{Symbol: target, IsImplementation: true},
			},
		})
		docB.Symbols = append(docB.Symbols, &scippb.SymbolInformation{
			Symbol:      target,
			DisplayName: target,
			Documentation: []string{
				"jmatch " + kind + " mapping: matched from " + source,
			},
			Relationships: []*scippb.Relationship{
				{Symbol: source, IsImplementation: true},
			},
		})
	}
}

// WriteSCIPFile marshals bundle's SCIP index as binary protobuf to path.
func WriteSCIPFile(path string, bundle *match.Bundle) error {
	data, err := proto.Marshal(WriteSCIP(bundle))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
