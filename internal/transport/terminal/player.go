package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"
)

// Run plays quiz in a terminal until the user quits or input ends.
//
// Commands: a number selects that option, c checks it, n/p move next/previous,
// e ends the quiz, r restarts, q quits.
func Run(quiz *app.QuizSession, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	for {
		printView(out, app.Render("", quiz))
		fmt.Fprint(out, "> ")

		line, err := reader.ReadString('\n')
		cmd := strings.ToLower(strings.TrimSpace(line))
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if cmd == "" && err != nil {
			fmt.Fprintln(out)
			return nil
		}

		switch cmd {
		case "q", "quit":
			return nil
		case "c", "check":
			quiz.Check()
		case "n", "next":
			quiz.Advance()
		case "p", "prev", "previous":
			quiz.Retreat()
		case "e", "end":
			quiz.EndQuiz()
		case "r", "restart":
			quiz.Restart()
		default:
			if !selectByNumber(quiz, cmd) {
				fmt.Fprintf(out, "Unknown command %q.\n", cmd)
			}
		}

		if err != nil {
			printView(out, app.Render("", quiz))
			return nil
		}
	}
}

func selectByNumber(quiz *app.QuizSession, cmd string) bool {
	n, err := strconv.Atoi(cmd)
	if err != nil {
		return false
	}
	q, ok := quiz.CurrentQuestion()
	if !ok || n < 1 || n > len(q.Options) {
		return false
	}
	quiz.Select(q.Options[n-1].Text)
	return true
}

func printView(out io.Writer, v app.View) {
	fmt.Fprintln(out)
	if v.Status == domain.StatusFinished {
		printReview(out, v)
		return
	}

	fmt.Fprintf(out, "Question %d of %d\n", v.Position, v.Total)
	fmt.Fprintf(out, "%s\n\n", v.Question)
	for i, opt := range v.Options {
		marker := " "
		if opt == v.Selected {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %d. %s\n", marker, i+1, opt)
	}
	fmt.Fprintln(out)

	if v.Feedback != nil {
		if v.Feedback.IsCorrect {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Incorrect! The correct answer is: %s\n", v.Feedback.CorrectAnswer)
		}
	}
	fmt.Fprintln(out, actionHelp(v.Actions))
}

func printReview(out io.Writer, v app.View) {
	if v.Outcome == domain.OutcomeCompleted {
		fmt.Fprintln(out, "Quiz Complete!")
	} else {
		fmt.Fprintln(out, "Quiz Ended Early!")
	}
	fmt.Fprintln(out, "Review your answers")
	for i, rec := range v.Review {
		fmt.Fprintf(out, "\nQ%d: %s\n", i+1, rec.Question)
		fmt.Fprintf(out, "  Correct answer: %s\n", rec.CorrectAnswer)
		fmt.Fprintf(out, "  Your answer:    %s\n", rec.Selected)
		if rec.IsCorrect {
			fmt.Fprintln(out, "  Correct")
		} else {
			fmt.Fprintln(out, "  Incorrect")
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, actionHelp(v.Actions))
}

func actionHelp(a app.Actions) string {
	var parts []string
	if a.Check {
		parts = append(parts, "[1-9] select", "[c] check")
	}
	if a.Next {
		parts = append(parts, "[n] next")
	}
	if a.Previous {
		parts = append(parts, "[p] previous")
	}
	if a.End {
		parts = append(parts, "[e] end")
	}
	if a.Restart {
		parts = append(parts, "[r] restart")
	}
	parts = append(parts, "[q] quit")
	return strings.Join(parts, "  ")
}
