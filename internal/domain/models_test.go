package domain

import (
	"errors"
	"testing"
)

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr error
	}{
		{
			name: "single correct",
			q:    Question{Text: "q", Options: []Option{{Text: "a", Correct: true}, {Text: "b"}}},
		},
		{
			name:    "no options",
			q:       Question{Text: "q"},
			wantErr: ErrNoOptions,
		},
		{
			name:    "no correct option",
			q:       Question{Text: "q", Options: []Option{{Text: "a"}, {Text: "b"}}},
			wantErr: ErrCorrectOptionCount,
		},
		{
			name:    "two correct options",
			q:       Question{Text: "q", Options: []Option{{Text: "a", Correct: true}, {Text: "b", Correct: true}}},
			wantErr: ErrCorrectOptionCount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateBankReportsPosition(t *testing.T) {
	bank := []Question{
		{Text: "ok", Options: []Option{{Text: "a", Correct: true}}},
		{Text: "broken", Options: []Option{{Text: "a"}}},
	}
	err := ValidateBank(bank)
	if !errors.Is(err, ErrCorrectOptionCount) {
		t.Fatalf("expected correct option error, got %v", err)
	}
	if got := err.Error(); got != `question 2 ("broken"): question must have exactly one correct option: found 0` {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestQuestionHelpers(t *testing.T) {
	q := Question{Text: "q", Options: []Option{{Text: "Beijing", Correct: true}, {Text: "Shanghai"}}}

	correct, ok := q.CorrectOption()
	if !ok || correct.Text != "Beijing" {
		t.Fatalf("expected Beijing, got %+v (ok=%v)", correct, ok)
	}
	if !q.HasOption("Shanghai") || q.HasOption("shanghai") {
		t.Fatalf("option match must be exact")
	}
	texts := q.OptionTexts()
	if len(texts) != 2 || texts[0] != "Beijing" || texts[1] != "Shanghai" {
		t.Fatalf("unexpected option texts %v", texts)
	}
}
