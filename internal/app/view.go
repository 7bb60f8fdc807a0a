package app

import "quiz-session-service/internal/domain"

// Actions lists which user actions currently change anything.
type Actions struct {
	Check    bool `json:"check"`
	Next     bool `json:"next"`
	Previous bool `json:"previous"`
	End      bool `json:"end"`
	Restart  bool `json:"restart"`
}

// View is everything a client needs to draw the session after an action.
type View struct {
	SessionID string         `json:"sessionId"`
	BankID    string         `json:"bankId,omitempty"`
	Status    domain.Status  `json:"status"`
	Outcome   domain.Outcome `json:"outcome,omitempty"`
	Position  int            `json:"position"`
	Total     int            `json:"total"`
	Answered  int            `json:"answered"`

	Question string               `json:"question,omitempty"`
	Options  []string             `json:"options,omitempty"`
	Selected string               `json:"selected,omitempty"`
	Checked  bool                 `json:"checked"`
	Feedback *domain.AnswerRecord `json:"feedback,omitempty"`

	Actions Actions               `json:"actions"`
	Review  []domain.AnswerRecord `json:"review,omitempty"`
}

// Render builds the view of s. It does not modify the session.
func Render(id string, s *QuizSession) View {
	v := View{
		SessionID: id,
		Status:    s.Status(),
		Total:     s.Len(),
		Answered:  s.AnsweredCount(),
		Actions:   Actions{Restart: true},
	}

	q, ok := s.CurrentQuestion()
	if !ok {
		v.Outcome = s.Outcome()
		v.Position = s.Len()
		v.Review = s.ReviewList()
		return v
	}

	cursor := s.Cursor()
	v.Position = cursor + 1
	v.Question = q.Text
	v.Options = q.OptionTexts()
	v.Selected = s.Selection()
	if rec, answered := s.Answer(cursor); answered {
		v.Checked = true
		v.Feedback = &rec
	}
	v.Actions.Check = !v.Checked
	v.Actions.Next = cursor < s.Len()-1
	v.Actions.Previous = cursor > 0
	v.Actions.End = true
	return v
}
