package catalog

import (
	"fmt"

	"emberarena/internal/models"
)

// Catalog indexes the static quiz and shop data for quick lookup
type Catalog struct {
	quizzes  []models.Quiz
	quizByID map[string]models.Quiz
	items    []models.ShopItem
	itemByID map[string]models.ShopItem
}

// New validates the given reference data and indexes it.
func New(quizzes []models.Quiz, items []models.ShopItem) (*Catalog, error) {
	c := &Catalog{
		quizByID: make(map[string]models.Quiz, len(quizzes)),
		itemByID: make(map[string]models.ShopItem, len(items)),
	}
	for _, q := range quizzes {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.quizByID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate quiz id %q", q.ID)
		}
		c.quizByID[q.ID] = q
		c.quizzes = append(c.quizzes, q)
	}
	for _, it := range items {
		if it.Cost < 0 {
			return nil, fmt.Errorf("shop item %q has negative cost", it.ID)
		}
		if _, dup := c.itemByID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate shop item id %q", it.ID)
		}
		c.itemByID[it.ID] = it
		c.items = append(c.items, it)
	}
	return c, nil
}

// Default loads the seeded content. The seeded content is static, so a failure is a programming error.
func Default() *Catalog {
	c, err := New(SeededQuizzes(), SeededShopItems())
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

func (c *Catalog) Quizzes() []models.Quiz {
	return c.quizzes
}

func (c *Catalog) Quiz(id string) (models.Quiz, bool) {
	q, ok := c.quizByID[id]
	return q, ok
}

// QuizzesByDifficulty filters trials by tier; an empty tier returns all of them.
func (c *Catalog) QuizzesByDifficulty(difficulty string) []models.Quiz {
	if difficulty == "" {
		return c.quizzes
	}
	var out []models.Quiz
	for _, q := range c.quizzes {
		if q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out
}

func (c *Catalog) Items() []models.ShopItem {
	return c.items
}

func (c *Catalog) Item(id string) (models.ShopItem, bool) {
	it, ok := c.itemByID[id]
	return it, ok
}

// ItemsByCategory filters the market; an empty category returns everything.
func (c *Catalog) ItemsByCategory(category string) []models.ShopItem {
	if category == "" {
		return c.items
	}
	var out []models.ShopItem
	for _, it := range c.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}
