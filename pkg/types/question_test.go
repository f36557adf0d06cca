// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
		ok   bool
	}{
		{"Easy", Easy, true},
		{"medium", Medium, true},
		{"  HARD ", Hard, true},
		{"impossible", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDifficulty(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDifficulty(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDisplayPreservesSourcePercentStrings(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		want string
	}{
		{"verbatim with percent", Question{AcceptanceRate: 49.2, AcceptanceRaw: "49.15%"}, "49.15%"},
		{"percent appended", Question{AcceptanceRate: 36.4, AcceptanceRaw: "36.4"}, "36.4%"},
		{"numeric fallback", Question{AcceptanceRate: 49.15}, "49.2%"},
		{"zero fallback", Question{}, "0.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Display().AcceptanceDisplay; got != tt.want {
				t.Errorf("AcceptanceDisplay = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayProjection(t *testing.T) {
	q := Question{
		Slug:          "two-sum",
		Title:         "Two Sum",
		Frequency:     93.2,
		FrequencyRaw:  "93.2%",
		AcceptanceRaw: "49.1%",
		Topics:        []string{"Array", "Hash Table"},
	}

	d := q.Display()
	if d.Slug != "two-sum" || d.Title != "Two Sum" {
		t.Errorf("canonical fields not carried: %+v", d.Question)
	}
	if d.FrequencyDisplay != "93.2%" {
		t.Errorf("FrequencyDisplay = %q, want 93.2%%", d.FrequencyDisplay)
	}
	if d.TopicsDisplay != "Array, Hash Table" {
		t.Errorf("TopicsDisplay = %q", d.TopicsDisplay)
	}
}
