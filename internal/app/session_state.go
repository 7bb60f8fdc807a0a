package app

import (
	"math/rand"
	"sort"

	"quiz-session-service/internal/domain"
)

// LoadQuestions validates the bank and returns a random permutation of a copy of it.
// The caller's slice is left in its original order.
func LoadQuestions(bank []domain.Question, rnd *rand.Rand) ([]domain.Question, error) {
	if err := domain.ValidateBank(bank); err != nil {
		return nil, err
	}
	return shuffle(bank, rnd), nil
}

func shuffle(bank []domain.Question, rnd *rand.Rand) []domain.Question {
	out := make([]domain.Question, len(bank))
	for i, j := range rnd.Perm(len(bank)) {
		out[i] = bank[j]
	}
	return out
}

// QuizSession is the state machine for one user working through one question set.
// It is not safe for concurrent use; Session adds the locking.
type QuizSession struct {
	bank      []domain.Question
	rnd       *rand.Rand
	questions []domain.Question
	cursor    int
	answers   map[int]domain.AnswerRecord
	ended     bool
	// pending is the option picked in the UI but not yet checked; valid only when hasPending.
	pending    string
	hasPending bool
}

// NewQuizSession validates the bank and draws the first question order from rnd.
func NewQuizSession(bank []domain.Question, rnd *rand.Rand) (*QuizSession, error) {
	questions, err := LoadQuestions(bank, rnd)
	if err != nil {
		return nil, err
	}
	stored := make([]domain.Question, len(bank))
	copy(stored, bank)
	return &QuizSession{
		bank:      stored,
		rnd:       rnd,
		questions: questions,
		answers:   make(map[int]domain.AnswerRecord),
	}, nil
}

// Len is the number of questions in the session.
func (s *QuizSession) Len() int {
	return len(s.questions)
}

// Cursor is the index of the presented question.
func (s *QuizSession) Cursor() int {
	return s.cursor
}

// Questions returns the question set in presentation order.
func (s *QuizSession) Questions() []domain.Question {
	out := make([]domain.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Finished reports whether the session is past its last question or was ended.
func (s *QuizSession) Finished() bool {
	return s.ended || s.cursor >= len(s.questions)
}

// Status maps Finished onto the domain status.
func (s *QuizSession) Status() domain.Status {
	if s.Finished() {
		return domain.StatusFinished
	}
	return domain.StatusInProgress
}

// Outcome is only meaningful once finished: completed when every question was checked.
func (s *QuizSession) Outcome() domain.Outcome {
	if len(s.answers) == len(s.questions) {
		return domain.OutcomeCompleted
	}
	return domain.OutcomeEndedEarly
}

// CurrentQuestion returns the question under the cursor, or false when finished.
func (s *QuizSession) CurrentQuestion() (domain.Question, bool) {
	if s.Finished() {
		return domain.Question{}, false
	}
	return s.questions[s.cursor], true
}

// IsAnswered reports whether the question at index has been checked.
func (s *QuizSession) IsAnswered(index int) bool {
	_, ok := s.answers[index]
	return ok
}

// Answer returns the record for index if one was checked.
func (s *QuizSession) Answer(index int) (domain.AnswerRecord, bool) {
	rec, ok := s.answers[index]
	return rec, ok
}

// AnsweredCount is the number of checked questions.
func (s *QuizSession) AnsweredCount() int {
	return len(s.answers)
}

// SubmitAnswer records selected for the current question. Matching against the correct
// option is exact text equality. A question can only be checked once: later calls
// return the first record unchanged. Returns false when the session is finished.
func (s *QuizSession) SubmitAnswer(selected string) (domain.AnswerRecord, bool) {
	q, ok := s.CurrentQuestion()
	if !ok {
		return domain.AnswerRecord{}, false
	}
	if rec, ok := s.answers[s.cursor]; ok {
		return rec, true
	}
	correct, _ := q.CorrectOption()
	rec := domain.AnswerRecord{
		QuestionIndex: s.cursor,
		Question:      q.Text,
		Selected:      selected,
		CorrectAnswer: correct.Text,
		IsCorrect:     selected == correct.Text,
	}
	s.answers[s.cursor] = rec
	s.clearPending()
	return rec, true
}

// Select marks text as the UI choice for the current question. Unknown labels and
// already-checked questions are ignored.
func (s *QuizSession) Select(text string) {
	q, ok := s.CurrentQuestion()
	if !ok || s.IsAnswered(s.cursor) || !q.HasOption(text) {
		return
	}
	s.pending = text
	s.hasPending = true
}

func (s *QuizSession) clearPending() {
	s.pending = ""
	s.hasPending = false
}

// Selection is the option shown as chosen: the checked answer if there is one,
// then the pending UI choice, then the first option.
func (s *QuizSession) Selection() string {
	q, ok := s.CurrentQuestion()
	if !ok {
		return ""
	}
	if rec, ok := s.answers[s.cursor]; ok {
		return rec.Selected
	}
	if s.hasPending {
		return s.pending
	}
	return q.Options[0].Text
}

// Check submits the current selection.
func (s *QuizSession) Check() (domain.AnswerRecord, bool) {
	if s.Finished() {
		return domain.AnswerRecord{}, false
	}
	return s.SubmitAnswer(s.Selection())
}

// Advance moves to the next question. It stops at the last one.
func (s *QuizSession) Advance() {
	if s.Finished() || s.cursor >= len(s.questions)-1 {
		return
	}
	s.cursor++
	s.clearPending()
}

// Retreat moves to the previous question. It stops at the first one.
func (s *QuizSession) Retreat() {
	if s.Finished() || s.cursor <= 0 {
		return
	}
	s.cursor--
	s.clearPending()
}

// EndQuiz finishes the session early. Recorded answers are kept for review.
func (s *QuizSession) EndQuiz() {
	s.ended = true
}

// Restart clears all progress and draws a new order of the same bank.
func (s *QuizSession) Restart() {
	s.questions = shuffle(s.bank, s.rnd)
	s.cursor = 0
	s.answers = make(map[int]domain.AnswerRecord)
	s.ended = false
	s.clearPending()
}

// ReviewList returns the recorded answers ordered by presentation index.
func (s *QuizSession) ReviewList() []domain.AnswerRecord {
	out := make([]domain.AnswerRecord, 0, len(s.answers))
	for _, rec := range s.answers {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].QuestionIndex < out[j].QuestionIndex
	})
	return out
}
