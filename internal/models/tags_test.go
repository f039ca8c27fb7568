package models

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"keeps order", []string{"work", "review"}, []string{"work", "review"}},
		{"drops duplicates", []string{"work", "analysis", "work"}, []string{"work", "analysis"}},
		{"trims and drops blanks", []string{" work ", "", "  ", "work"}, []string{"work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAddTag_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	original := make([]string, 1, 4)
	original[0] = "work"

	got := AddTag(original, "home")
	if !reflect.DeepEqual(got, []string{"work", "home"}) {
		t.Errorf("Expected [work home], got %v", got)
	}
	if len(original) != 1 {
		t.Errorf("Expected input to be untouched, got %v", original)
	}

	if got := AddTag(got, "work"); len(got) != 2 {
		t.Errorf("Expected duplicate to be suppressed, got %v", got)
	}
}

func TestRemoveTag(t *testing.T) {
	t.Parallel()

	got := RemoveTag([]string{"work", "home", "urgent"}, "home")
	if !reflect.DeepEqual(got, []string{"work", "urgent"}) {
		t.Errorf("Expected [work urgent], got %v", got)
	}
}
