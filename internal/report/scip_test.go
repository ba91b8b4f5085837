package report

import "testing"

func TestWriteSCIP_ProducesOneDocumentPerArchiveSide(t *testing.T) {
	bundle := sampleBundle()
	idx := WriteSCIP(bundle)

	if len(idx.Documents) != 2 {
		t.Fatalf("len(Documents) = %d, want 2", len(idx.Documents))
	}
	if idx.Documents[0].RelativePath != bundle.ArchiveA {
		t.Errorf("Documents[0].RelativePath = %s, want %s", idx.Documents[0].RelativePath, bundle.ArchiveA)
	}
	if idx.Documents[1].RelativePath != bundle.ArchiveB {
		t.Errorf("Documents[1].RelativePath = %s, want %s", idx.Documents[1].RelativePath, bundle.ArchiveB)
	}
}

func TestWriteSCIP_CrossLinksRelationships(t *testing.T) {
	bundle := sampleBundle()
	idx := WriteSCIP(bundle)

	docA := idx.Documents[0]
	if len(docA.Symbols) == 0 {
		t.Fatal("expected symbols in document A")
	}
	found := false
	for _, sym := range docA.Symbols {
		if sym.Symbol == "a" {
			found = true
			if len(sym.Relationships) != 1 || sym.Relationships[0].Symbol != "A" {
				t.Errorf("class symbol 'a' relationships = %+v, want a single relation to 'A'", sym.Relationships)
			}
		}
	}
	if !found {
		t.Error("expected a SymbolInformation entry for class 'a' in document A")
	}
}
