package domain

import "fmt"

// Option represents a possible answer for a question.
type Option struct {
	Text    string `json:"text" yaml:"text"`
	Correct bool   `json:"correct" yaml:"correct"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	Text    string   `json:"question" yaml:"question"`
	Options []Option `json:"options" yaml:"options"`
}

// Bank is a named collection of questions.
type Bank struct {
	ID        string     `json:"id" yaml:"id"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// AnswerRecord is the outcome of checking one question. It is written once.
type AnswerRecord struct {
	QuestionIndex int    `json:"questionIndex"`
	Question      string `json:"question"`
	Selected      string `json:"selected"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}

// Status is the coarse state of a quiz session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// Outcome says how a finished session got there.
type Outcome string

const (
	OutcomeCompleted  Outcome = "completed"
	OutcomeEndedEarly Outcome = "ended_early"
)

// Validate checks the question has options and exactly one of them is correct.
func (q Question) Validate() error {
	if len(q.Options) == 0 {
		return ErrNoOptions
	}
	correct := 0
	for _, opt := range q.Options {
		if opt.Correct {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("%w: found %d", ErrCorrectOptionCount, correct)
	}
	return nil
}

// CorrectOption returns the option flagged as correct.
func (q Question) CorrectOption() (Option, bool) {
	for _, opt := range q.Options {
		if opt.Correct {
			return opt, true
		}
	}
	return Option{}, false
}

// HasOption reports whether text matches one of the option labels exactly.
func (q Question) HasOption(text string) bool {
	for _, opt := range q.Options {
		if opt.Text == text {
			return true
		}
	}
	return false
}

// OptionTexts returns the option labels in display order.
func (q Question) OptionTexts() []string {
	texts := make([]string, len(q.Options))
	for i, opt := range q.Options {
		texts[i] = opt.Text
	}
	return texts
}

// ValidateBank validates every question and reports the first bad one by position.
func ValidateBank(questions []Question) error {
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d (%q): %w", i+1, q.Text, err)
		}
	}
	return nil
}
