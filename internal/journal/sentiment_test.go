package journal

import (
	"math"
	"testing"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{
			name: "all positive",
			text: "I am happy and proud",
			want: 1.0,
		},
		{
			name: "all negative",
			text: "terrible awful failure",
			want: -1.0,
		},
		{
			name: "no lexicon words is neutral",
			text: "the cat sat",
			want: 0.0,
		},
		{
			name: "balanced is neutral",
			text: "happy but sad",
			want: 0.0,
		},
		{
			name: "empty text is neutral",
			text: "",
			want: 0.0,
		},
		{
			name: "mixed leaning positive",
			text: "a great wonderful happy day, one sad moment",
			want: 0.5,
		},
		{
			name: "case insensitive",
			text: "HAPPY Proud",
			want: 1.0,
		},
		{
			name: "punctuation does not join words",
			text: "happy,proud!",
			want: 1.0,
		},
		{
			name: "substrings do not count",
			text: "unhappy happiness",
			want: 0.0,
		},
		{
			name: "repeated words count per occurrence",
			text: "happy happy sad",
			want: 1.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeSentiment(tt.text)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AnalyzeSentiment(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyzeSentimentDeterministic(t *testing.T) {
	text := "a happy day with one terrible meeting"
	first := AnalyzeSentiment(text)
	for i := 0; i < 10; i++ {
		if got := AnalyzeSentiment(text); got != first {
			t.Fatalf("AnalyzeSentiment not deterministic: %v != %v", got, first)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "simple words", text: "Hello World", want: []string{"hello", "world"}},
		{name: "digits and underscore", text: "day_1 log2", want: []string{"day_1", "log2"}},
		{name: "punctuation split", text: "good-bad, ugly.", want: []string{"good", "bad", "ugly"}},
		{name: "empty", text: "", want: nil},
		{name: "only separators", text: " ,.;! ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}
