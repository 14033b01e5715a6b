package service

import (
	"time"

	"emberarena/internal/models"
)

// QuestionTimeLimit is how long a question stays open once shown.
const QuestionTimeLimit = 60 * time.Second

// Score is the outcome of grading one attempt
type Score struct {
	CorrectCount   int     `json:"correctCount"`
	TotalQuestions int     `json:"totalQuestions"`
	Accuracy       float64 `json:"accuracy"`
	EarnedEmbers   int64   `json:"earnedEmbers"`
}

// ScoreAttempt grades answers against the quiz. Missing positions count as
// unanswered and models.NoAnswer never matches.
func ScoreAttempt(quiz models.Quiz, answers []int) Score {
	total := len(quiz.Questions)
	s := Score{TotalQuestions: total}
	if total == 0 {
		return s
	}
	for i, q := range quiz.Questions {
		if i < len(answers) && answers[i] != models.NoAnswer && answers[i] == q.CorrectAnswer {
			s.CorrectCount++
		}
	}
	s.Accuracy = float64(s.CorrectCount) / float64(total) * 100
	// integer division floors for non-negative operands
	s.EarnedEmbers = quiz.Reward * int64(s.CorrectCount) / int64(total)
	return s
}

// padAnswers fills unanswered positions with models.NoAnswer.
func padAnswers(answers []int, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = models.NoAnswer
		if i < len(answers) {
			out[i] = answers[i]
		}
	}
	return out
}
