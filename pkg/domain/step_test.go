package domain

import "testing"

func TestVisualTag_Valid(t *testing.T) {
	for _, tag := range []VisualTag{"", TagPrimary, TagSecondary, TagAccent} {
		if !tag.Valid() {
			t.Errorf("%q should be valid", tag)
		}
	}
	for _, tag := range []VisualTag{"neon", "Primary"} {
		if tag.Valid() {
			t.Errorf("%q should be rejected", tag)
		}
	}
}

func TestNormalizeSteps(t *testing.T) {
	got := NormalizeSteps([]Step{{Ordinal: 7, Label: "a"}, {Label: "b", Tag: TagAccent}})
	want := []Step{{Ordinal: 0, Label: "a", Tag: TagPrimary}, {Ordinal: 1, Label: "b", Tag: TagAccent}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
