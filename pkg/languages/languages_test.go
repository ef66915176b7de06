package languages

import (
	"reflect"
	"slices"
	"testing"
)

func TestResolveTable(t *testing.T) {
	r := NewResolver([]string{DefaultIgnorePattern})
	for trigger, want := range table {
		for _, tr := range []string{trigger, "flag-" + trigger} {
			got, ok := r.Resolve(tr)
			if !ok || got != want {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, true)", tr, got, ok, want)
			}
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		trigger string
		want    string
		wantOK  bool
	}{
		{
			name: "empty",
		},
		{
			name:    "country_code",
			trigger: "jp",
			want:    "JA",
			wantOK:  true,
		},
		{
			name:    "country_code_uppercase",
			trigger: "JP",
			want:    "JA",
			wantOK:  true,
		},
		{
			name:    "flag_prefix",
			trigger: "flag-jp",
			want:    "JA",
			wantOK:  true,
		},
		{
			name:    "flag_prefix_mixed_case",
			trigger: "Flag-BR",
			want:    "PT-BR",
			wantOK:  true,
		},
		{
			name:    "brazil_without_prefix",
			trigger: "br",
			want:    "PT-BR",
			wantOK:  true,
		},
		{
			name:    "table_beats_shorthand",
			trigger: "flag-ar",
			want:    "ES",
			wantOK:  true,
		},
		{
			name:    "named_flag",
			trigger: "flag-england",
			want:    "EN-GB",
			wantOK:  true,
		},
		{
			name:    "unknown_shorthand",
			trigger: "xx",
			want:    "XX",
			wantOK:  true,
		},
		{
			name:    "unknown_shorthand_with_prefix",
			trigger: "flag-xx",
			want:    "XX",
			wantOK:  true,
		},
		{
			name:    "regular_emoji",
			trigger: "thumbsup",
		},
		{
			name:    "three_letters",
			trigger: "abc",
		},
		{
			name:    "digits",
			trigger: "+1",
		},
		{
			name:    "ignored_custom_emoji",
			trigger: "QP-custom",
		},
		{
			name:    "ignored_even_if_shorthand",
			trigger: "qp",
		},
	}

	r := NewResolver([]string{DefaultIgnorePattern})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.trigger)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.trigger, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveIgnorePatterns(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		trigger  string
		wantOK   bool
	}{
		{
			name:    "no_patterns",
			trigger: "jp",
			wantOK:  true,
		},
		{
			name:     "empty_pattern_is_skipped",
			patterns: []string{"", "  "},
			trigger:  "jp",
			wantOK:   true,
		},
		{
			name:     "pattern_collides_with_table_entry",
			patterns: []string{"JP"},
			trigger:  "flag-jp",
		},
		{
			name:     "case_insensitive_substring",
			patterns: []string{"Custom"},
			trigger:  "my-CUSTOM-fr",
		},
		{
			name:     "second_pattern",
			patterns: []string{"aaa", "de"},
			trigger:  "de",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := NewResolver(tt.patterns).Resolve(tt.trigger)
			if ok != tt.wantOK {
				t.Errorf("Resolve(%q) ok = %v, want %v", tt.trigger, ok, tt.wantOK)
			}
		})
	}
}

func TestTargetLanguages(t *testing.T) {
	got := TargetLanguages()
	if !slices.IsSorted(got) {
		t.Errorf("TargetLanguages() not sorted: %v", got)
	}
	if !reflect.DeepEqual(got, slices.Compact(slices.Clone(got))) {
		t.Errorf("TargetLanguages() has duplicates: %v", got)
	}
	for _, want := range []string{"JA", "EN-US", "EN-GB", "PT-BR", "ZH-HANS"} {
		if !slices.Contains(got, want) {
			t.Errorf("TargetLanguages() missing %q", want)
		}
	}
}
