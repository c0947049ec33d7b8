package readability

import (
	"errors"
	"testing"
)

func TestFleschReadingEase(t *testing.T) {
	t.Run("simple prose scores high", func(t *testing.T) {
		score, err := FleschReadingEase("The cat sat on the mat. The dog ran to the park.")
		if err != nil {
			t.Fatalf("FleschReadingEase() failed: %v", err)
		}
		if score < 80 {
			t.Errorf("score = %v, want > 80 for simple monosyllabic prose", score)
		}
	})

	t.Run("dense prose scores lower than simple prose", func(t *testing.T) {
		simple, err := FleschReadingEase("The cat sat. The dog ran.")
		if err != nil {
			t.Fatalf("simple text failed: %v", err)
		}
		dense, err := FleschReadingEase(
			"Multidimensional organizational considerations necessitate comprehensive infrastructural reevaluation procedures.")
		if err != nil {
			t.Fatalf("dense text failed: %v", err)
		}
		if dense >= simple {
			t.Errorf("dense (%v) should score below simple (%v)", dense, simple)
		}
	})

	t.Run("empty text is degenerate", func(t *testing.T) {
		if _, err := FleschReadingEase(""); !errors.Is(err, ErrDegenerateText) {
			t.Errorf("error = %v, want ErrDegenerateText", err)
		}
	})

	t.Run("punctuation-only text is degenerate", func(t *testing.T) {
		if _, err := FleschReadingEase("... !!! ???"); !errors.Is(err, ErrDegenerateText) {
			t.Errorf("error = %v, want ErrDegenerateText", err)
		}
	})
}

func TestFleschKincaidGrade(t *testing.T) {
	t.Run("simple prose maps to a low grade", func(t *testing.T) {
		grade, err := FleschKincaidGrade("The cat sat on the mat. The dog ran to the park.")
		if err != nil {
			t.Fatalf("FleschKincaidGrade() failed: %v", err)
		}
		if grade > 4 {
			t.Errorf("grade = %v, want <= 4 for simple prose", grade)
		}
	})

	t.Run("empty text is degenerate", func(t *testing.T) {
		if _, err := FleschKincaidGrade(""); !errors.Is(err, ErrDegenerateText) {
			t.Errorf("error = %v, want ErrDegenerateText", err)
		}
	})
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"two periods", "One sentence. Two sentences.", 2},
		{"mixed terminators", "Really? Yes! Fine.", 3},
		{"ellipsis counts once", "Wait... done.", 2},
		{"no terminator", "half a thought", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countSentences(tt.text); got != tt.want {
				t.Errorf("countSentences(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"hello", 2},
		{"beautiful", 3},
		{"strength", 1},
		{"late", 1},
		{"table", 2},
		{"rhythm", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := countSyllables(tt.word); got != tt.want {
				t.Errorf("countSyllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}
