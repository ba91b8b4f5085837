package model

import (
	"reflect"
	"testing"
)

func TestClassNamesIn(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		want       []string
	}{
		{"no refs", "(II)V", nil},
		{"single param", "(Ljava/lang/String;)V", []string{"java/lang/String"}},
		{"return type", "()La/b/C;", []string{"a/b/C"}},
		{"array of object", "([Ljava/lang/String;)V", []string{"java/lang/String"}},
		{"multiple", "(La/B;Lc/D;)Le/F;", []string{"a/B", "c/D", "e/F"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassNamesIn(tt.descriptor)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ClassNamesIn(%q) = %v, want %v", tt.descriptor, got, tt.want)
			}
		})
	}
}

func TestRemapDescriptor(t *testing.T) {
	remap := func(name string) (string, bool) {
		if name == "a/B" {
			return "x/Y", true
		}
		return "", false
	}

	got := RemapDescriptor("(La/B;Lc/D;)V", remap)
	want := "(Lx/Y;L*;)V"
	if got != want {
		t.Errorf("RemapDescriptor() = %q, want %q", got, want)
	}
}

func TestParamCount(t *testing.T) {
	tests := []struct {
		descriptor string
		want       int
	}{
		{"()V", 0},
		{"(I)V", 1},
		{"(IJ)V", 2},
		{"(Ljava/lang/String;I)V", 2},
		{"([Ljava/lang/String;[I)V", 2},
		{"(DD)I", 2},
	}

	for _, tt := range tests {
		got := ParamCount(tt.descriptor)
		if got != tt.want {
			t.Errorf("ParamCount(%q) = %d, want %d", tt.descriptor, got, tt.want)
		}
	}
}
