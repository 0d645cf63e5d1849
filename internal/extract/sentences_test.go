package extract

import "testing"

func TestCollapseRepeatedSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "consecutive duplicates collapsed",
			input: "Buy now. Buy now. Sell later. Buy now.",
			want:  "Buy now. Sell later. Buy now.",
		},
		{
			name:  "non-consecutive duplicates preserved",
			input: "Alpha. Beta. Alpha.",
			want:  "Alpha. Beta. Alpha.",
		},
		{
			name:  "no duplicates unchanged",
			input: "One thing. Another thing. A third thing.",
			want:  "One thing. Another thing. A third thing.",
		},
		{
			name:  "question and exclamation boundaries",
			input: "Really? Really? Yes! Yes! Fine.",
			want:  "Really? Yes! Fine.",
		},
		{
			name:  "single sentence",
			input: "Only one sentence here.",
			want:  "Only one sentence here.",
		},
		{
			name:  "no terminator",
			input: "no punctuation at all",
			want:  "no punctuation at all",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "triple repeat collapses to one",
			input: "Same. Same. Same. Different.",
			want:  "Same. Different.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollapseRepeatedSentences(tt.input)
			if got != tt.want {
				t.Errorf("CollapseRepeatedSentences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitSentences_KeepsTerminators(t *testing.T) {
	got := splitSentences("First. Second! Third?")
	want := []string{"First.", "Second!", "Third?"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitSentences_PeriodWithoutSpaceNotABoundary(t *testing.T) {
	got := splitSentences("Version 1.5 shipped. Done.")
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "Version 1.5 shipped." {
		t.Errorf("got %q", got[0])
	}
}
