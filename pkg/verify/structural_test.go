package verify

import (
	"reflect"
	"testing"
)

func TestDetectStructuralPatterns(t *testing.T) {
	tests := []struct {
		title string
		want  []string
	}{
		{"Morning Gazette", []string{"TimeBased"}},
		{"Indian Express", []string{"LocationBased", "PublicationType"}},
		{"Weekly Chronicle", []string{"TimeBased", "PublicationType"}},
		{"Standalone Name", nil},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := DetectStructuralPatterns(tt.title)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectStructuralPatterns(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}
