package app_test

import (
	"testing"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"
)

func TestRenderInProgress(t *testing.T) {
	quiz := newQuiz(t, 3)
	q, _ := quiz.CurrentQuestion()

	v := app.Render("s1", quiz)
	if v.Status != domain.StatusInProgress || v.Position != 1 || v.Total != 3 {
		t.Fatalf("unexpected header %+v", v)
	}
	if v.Question != q.Text || len(v.Options) != 2 || v.Selected != q.Options[0].Text {
		t.Fatalf("unexpected question view %+v", v)
	}
	want := app.Actions{Check: true, Next: true, End: true, Restart: true}
	if v.Actions != want {
		t.Fatalf("expected actions %+v, got %+v", want, v.Actions)
	}
	if v.Checked || v.Feedback != nil || v.Review != nil {
		t.Fatalf("fresh question must not carry feedback: %+v", v)
	}
}

func TestRenderAfterCheckOnLastQuestion(t *testing.T) {
	quiz := newQuiz(t, 2)
	quiz.Advance()
	q, _ := quiz.CurrentQuestion()
	quiz.Select(correctText(q))
	quiz.Check()

	v := app.Render("s1", quiz)
	if !v.Checked || v.Feedback == nil || !v.Feedback.IsCorrect {
		t.Fatalf("expected correct feedback, got %+v", v.Feedback)
	}
	want := app.Actions{Previous: true, End: true, Restart: true}
	if v.Actions != want {
		t.Fatalf("expected actions %+v, got %+v", want, v.Actions)
	}
}

func TestRenderFinished(t *testing.T) {
	quiz := newQuiz(t, 3)
	quiz.Check()
	quiz.EndQuiz()

	v := app.Render("s1", quiz)
	if v.Status != domain.StatusFinished || v.Outcome != domain.OutcomeEndedEarly {
		t.Fatalf("unexpected status %s/%s", v.Status, v.Outcome)
	}
	if v.Question != "" || v.Options != nil {
		t.Fatalf("finished view must not show a question: %+v", v)
	}
	if len(v.Review) != 1 || v.Answered != 1 {
		t.Fatalf("expected one review item, got %+v", v.Review)
	}
	if v.Actions != (app.Actions{Restart: true}) {
		t.Fatalf("only restart should be enabled, got %+v", v.Actions)
	}
}
