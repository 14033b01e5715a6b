package catalog

import (
	"testing"

	"emberarena/internal/models"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()
	if len(c.Quizzes()) != 4 {
		t.Fatalf("expected 4 seeded quizzes, got %d", len(c.Quizzes()))
	}
	for _, q := range c.Quizzes() {
		for _, question := range q.Questions {
			if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Choices) {
				t.Errorf("quiz %s question %s correct answer out of range", q.ID, question.ID)
			}
		}
	}
	if _, ok := c.Quiz("mythology-legendary"); !ok {
		t.Fatal("mythology-legendary missing")
	}
	if it, ok := c.Item("title-scholar"); !ok || it.Cost != 30 {
		t.Fatalf("title-scholar = %+v, %v", it, ok)
	}
}

func TestFilters(t *testing.T) {
	c := Default()
	if got := c.QuizzesByDifficulty("hard"); len(got) != 1 || got[0].ID != "literature-hard" {
		t.Fatalf("QuizzesByDifficulty(hard) = %+v", got)
	}
	if got := c.ItemsByCategory(models.CategoryBoost); len(got) != 3 {
		t.Fatalf("expected 3 boosts, got %d", len(got))
	}
	if got := c.ItemsByCategory(""); len(got) != len(c.Items()) {
		t.Fatal("empty category should return everything")
	}
}

func TestNewRejectsOutOfRangeAnswer(t *testing.T) {
	bad := models.Quiz{
		ID: "bad",
		Questions: []models.Question{
			{ID: "q1", Prompt: "?", Choices: []string{"a", "b"}, CorrectAnswer: 2},
		},
	}
	if _, err := New([]models.Quiz{bad}, nil); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	q := SeededQuizzes()[0]
	if _, err := New([]models.Quiz{q, q}, nil); err == nil {
		t.Fatal("expected duplicate quiz error")
	}
	it := SeededShopItems()[0]
	if _, err := New(nil, []models.ShopItem{it, it}); err == nil {
		t.Fatal("expected duplicate item error")
	}
}
