package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	preloading := ScreenPreloading
	collecting := ScreenCollecting
	plan := &Itinerary{Destination: "Paris", Days: []DayPlan{{Day: 1}}}

	tests := []struct {
		name     string
		old      *Snapshot
		new      *Snapshot
		wantDiff *SnapshotDiff // nil means we expect no diff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new: &Snapshot{
				SessionID: "sess-1",
				Screen:    ScreenPreloading,
				Animator:  &AnimatorState{CurrentStep: 0, Visible: true},
				Step:      &Step{Ordinal: 0, Label: "Discovering destinations", Tag: TagPrimary},
			},
			wantDiff: &SnapshotDiff{
				SessionID: "sess-1",
				Screen:    &preloading,
				Animator:  &AnimatorState{CurrentStep: 0, Visible: true},
				Step:      &Step{Ordinal: 0, Label: "Discovering destinations", Tag: TagPrimary},
			},
		},
		{
			name:     "No Changes",
			old:      &Snapshot{SessionID: "sess-1", Screen: ScreenCollecting},
			new:      &Snapshot{SessionID: "sess-1", Screen: ScreenCollecting},
			wantDiff: nil,
		},
		{
			name: "Step Advance",
			old: &Snapshot{
				SessionID: "sess-1",
				Screen:    ScreenPreloading,
				Animator:  &AnimatorState{CurrentStep: 0, Visible: true},
			},
			new: &Snapshot{
				SessionID: "sess-1",
				Screen:    ScreenPreloading,
				Animator:  &AnimatorState{CurrentStep: 1, Visible: true},
				Step:      &Step{Ordinal: 1, Label: "Finding perfect locations", Tag: TagSecondary},
			},
			wantDiff: &SnapshotDiff{
				SessionID: "sess-1",
				Animator:  &AnimatorState{CurrentStep: 1, Visible: true},
				Step:      &Step{Ordinal: 1, Label: "Finding perfect locations", Tag: TagSecondary},
			},
		},
		{
			name: "Edit Clears Itinerary",
			old:  &Snapshot{SessionID: "sess-1", Screen: ScreenReviewing, Itinerary: plan},
			new:  &Snapshot{SessionID: "sess-1", Screen: ScreenCollecting},
			wantDiff: &SnapshotDiff{
				SessionID:        "sess-1",
				Screen:           &collecting,
				ItineraryCleared: true,
			},
		},
		{
			name: "Error Cleared",
			old:  &Snapshot{SessionID: "sess-1", Screen: ScreenCollecting, Error: "boom"},
			new:  &Snapshot{SessionID: "sess-1", Screen: ScreenCollecting},
			wantDiff: &SnapshotDiff{
				SessionID: "sess-1",
				Error:     &[]string{""}[0],
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantDiff == nil {
				if got != nil {
					t.Errorf("Diff() = %+v, want nil", got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.wantDiff) {
				t.Errorf("Diff() = %+v, want %+v", got, tt.wantDiff)
			}
		})
	}
}

func TestDiff_ItineraryIsCopied(t *testing.T) {
	plan := &Itinerary{Destination: "Paris", Interests: []string{"food"}}
	diff := Diff(&Snapshot{Screen: ScreenGenerating}, &Snapshot{Screen: ScreenReviewing, Itinerary: plan})
	if diff == nil || diff.Itinerary == nil {
		t.Fatal("expected itinerary in diff")
	}

	diff.Itinerary.Interests[0] = "mutated"
	if plan.Interests[0] != "food" {
		t.Errorf("diff aliased the snapshot itinerary")
	}
}

func TestDiff_JSON(t *testing.T) {
	diff := Diff(
		&Snapshot{SessionID: "s", Screen: ScreenGenerating},
		&Snapshot{SessionID: "s", Screen: ScreenCollecting, Error: "itinerary generation timed out"},
	)
	data, err := json.Marshal(diff)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"screen":"collecting"`, `"error":"itinerary generation timed out"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
	if strings.Contains(out, "itinerary_cleared") {
		t.Errorf("unexpected itinerary_cleared in %s", out)
	}
}
