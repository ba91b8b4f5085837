package report

import (
	"strings"
	"testing"

	"jmatch/internal/match"
)

func sampleBundle() *match.Bundle {
	classes, methods, fields := match.NewTables(), match.NewTables(), match.NewTables()
	classes.ConfirmedForward["a"] = "A"
	classes.ConfirmedInverse["A"] = "a"
	methods.ConfirmedForward["a.foo()V"] = "A.bar()V"
	methods.ConfirmedInverse["A.bar()V"] = "a.foo()V"
	fields.ConfirmedForward["a.x:I"] = "A.y:I"
	fields.ConfirmedInverse["A.y:I"] = "a.x:I"
	return match.NewBundle("a.jar", "b.jar", classes, methods, fields, 1, false)
}

func TestWriteText_SectionsAndOrdering(t *testing.T) {
	bundle := sampleBundle()
	var buf strings.Builder
	if err := WriteText(&buf, bundle); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	out := buf.String()
	wantOrder := []string{
		"## Class Mappings",
		"a -> A",
		"## Method Mappings",
		"a.foo()V -> A.bar()V",
		"## Field Mappings",
		"a.x:I -> A.y:I",
	}

	last := -1
	for _, want := range wantOrder {
		idx := strings.Index(out, want)
		if idx < 0 {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
		if idx <= last {
			t.Errorf("expected %q to appear after the previous line, output:\n%s", want, out)
		}
		last = idx
	}
}

func TestWriteText_EmptyBundleStillEmitsHeaders(t *testing.T) {
	classes, methods, fields := match.NewTables(), match.NewTables(), match.NewTables()
	bundle := match.NewBundle("a.jar", "b.jar", classes, methods, fields, 0, false)

	var buf strings.Builder
	if err := WriteText(&buf, bundle); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	for _, header := range []string{"## Class Mappings", "## Method Mappings", "## Field Mappings"} {
		if !strings.Contains(buf.String(), header) {
			t.Errorf("expected header %q in empty-bundle output", header)
		}
	}
}
