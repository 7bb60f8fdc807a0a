package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"quiz-session-service/internal/domain"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, bool)
	Delete(ctx context.Context, id string)
}

// BankRepository loads question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// ActionType names a user action on a session.
type ActionType string

const (
	ActionSelect   ActionType = "select"
	ActionCheck    ActionType = "check"
	ActionNext     ActionType = "next"
	ActionPrevious ActionType = "previous"
	ActionEnd      ActionType = "end"
	ActionRestart  ActionType = "restart"
)

// Action is one user command. Text is only used by ActionSelect.
type Action struct {
	Type ActionType `json:"type"`
	Text string     `json:"text,omitempty"`
}

// QuizService contains the quiz session use cases.
type QuizService struct {
	sessions SessionRepository
	banks    BankRepository
	newRand  func() *rand.Rand
	now      func() time.Time
}

func NewQuizService(store SessionRepository, banks BankRepository) *QuizService {
	return NewQuizServiceWithRand(store, banks, func() *rand.Rand {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	})
}

// NewQuizServiceWithRand lets tests control question order.
func NewQuizServiceWithRand(store SessionRepository, banks BankRepository, newRand func() *rand.Rand) *QuizService {
	return &QuizService{
		sessions: store,
		banks:    banks,
		newRand:  newRand,
		now:      time.Now,
	}
}

// Start creates a session over a freshly shuffled copy of the bank.
func (s *QuizService) Start(ctx context.Context, bankID string) (View, error) {
	bank, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		return View{}, err
	}
	quiz, err := NewQuizSession(bank.Questions, s.newRand())
	if err != nil {
		return View{}, fmt.Errorf("bank %s: %w", bankID, err)
	}

	session := newSessionWithClock(uuid.NewString(), bankID, quiz, s.now)
	if err := s.sessions.Save(ctx, session); err != nil {
		return View{}, fmt.Errorf("save session: %w", err)
	}
	return session.View(), nil
}

// View renders the current state of a session.
func (s *QuizService) View(ctx context.Context, id string) (View, error) {
	session, ok := s.sessions.Get(ctx, id)
	if !ok {
		return View{}, domain.ErrSessionNotFound
	}
	return session.View(), nil
}

// Apply runs one user action. Actions whose preconditions do not hold leave the
// session unchanged and still return its view.
func (s *QuizService) Apply(ctx context.Context, id string, action Action) (View, error) {
	session, ok := s.sessions.Get(ctx, id)
	if !ok {
		return View{}, domain.ErrSessionNotFound
	}
	view, err := session.apply(action)
	if err != nil {
		return View{}, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return View{}, fmt.Errorf("save session: %w", err)
	}
	return view, nil
}

// Close drops the session.
func (s *QuizService) Close(ctx context.Context, id string) {
	s.sessions.Delete(ctx, id)
}

// Session pairs a QuizSession with its identity and guards it for use from handlers.
type Session struct {
	id        string
	bankID    string
	createdAt time.Time
	now       func() time.Time

	mu         sync.Mutex
	lastActive time.Time
	quiz       *QuizSession
}

// Snapshot is a flat summary of session progress for stores that mirror it externally.
type Snapshot struct {
	ID         string
	BankID     string
	Cursor     int
	Total      int
	Answered   int
	Status     domain.Status
	CreatedAt  time.Time
	LastActive time.Time
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id, bankID string, quiz *QuizSession) *Session {
	return newSessionWithClock(id, bankID, quiz, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id, bankID string, quiz *QuizSession, now func() time.Time) *Session {
	return newSessionWithClock(id, bankID, quiz, now)
}

func newSessionWithClock(id, bankID string, quiz *QuizSession, now func() time.Time) *Session {
	created := now()
	return &Session{
		id:         id,
		bankID:     bankID,
		createdAt:  created,
		now:        now,
		lastActive: created,
		quiz:       quiz,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) BankID() string {
	return s.bankID
}

// LastActive is the time of the last applied action.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// View renders the session under its lock.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:         s.id,
		BankID:     s.bankID,
		Cursor:     s.quiz.Cursor(),
		Total:      s.quiz.Len(),
		Answered:   s.quiz.AnsweredCount(),
		Status:     s.quiz.Status(),
		CreatedAt:  s.createdAt,
		LastActive: s.lastActive,
	}
}

func (s *Session) apply(action Action) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch action.Type {
	case ActionSelect:
		s.quiz.Select(action.Text)
	case ActionCheck:
		s.quiz.Check()
	case ActionNext:
		s.quiz.Advance()
	case ActionPrevious:
		s.quiz.Retreat()
	case ActionEnd:
		s.quiz.EndQuiz()
	case ActionRestart:
		s.quiz.Restart()
	default:
		return View{}, fmt.Errorf("%w: %q", domain.ErrUnknownAction, action.Type)
	}
	s.lastActive = s.now()
	return s.viewLocked(), nil
}

func (s *Session) viewLocked() View {
	v := Render(s.id, s.quiz)
	v.BankID = s.bankID
	return v
}
