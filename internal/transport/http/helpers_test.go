package http

import (
	"math/rand"
	"time"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"
	"quiz-session-service/internal/infra/memory"
)

func newTestService() *app.QuizService {
	store := memory.NewSessionStore()
	banks := memory.NewBankRepository(memory.NewStaticBankLoader(sampleBanks()), time.Minute)
	return app.NewQuizServiceWithRand(store, banks, func() *rand.Rand {
		return rand.New(rand.NewSource(1))
	})
}

func sampleBanks() map[string]domain.Bank {
	return map[string]domain.Bank{
		"china": {
			ID: "china",
			Questions: []domain.Question{
				{
					Text: "What is the capital of China?",
					Options: []domain.Option{
						{Text: "Shanghai", Correct: false},
						{Text: "Beijing", Correct: true},
						{Text: "Guangzhou", Correct: false},
					},
				},
				{
					Text: "Which animal is first in the Chinese zodiac?",
					Options: []domain.Option{
						{Text: "Rat", Correct: true},
						{Text: "Ox", Correct: false},
					},
				},
			},
		},
		"broken": {
			ID:        "broken",
			Questions: []domain.Question{{Text: "Nothing to pick"}},
		},
	}
}

// correctFor finds the correct label for a question text in the sample banks.
func correctFor(question string) string {
	for _, bank := range sampleBanks() {
		for _, q := range bank.Questions {
			if q.Text == question {
				opt, _ := q.CorrectOption()
				return opt.Text
			}
		}
	}
	return ""
}
