package models

import "fmt"

// NoAnswer marks a question that was skipped or timed out.
const NoAnswer = -1

// Validate checks the choice bounds of every question.
func (q Quiz) Validate() error {
	if q.ID == "" || len(q.Questions) == 0 {
		return fmt.Errorf("quiz %q has no questions", q.ID)
	}
	if q.Reward < 0 || q.MinDurationSeconds < 0 {
		return fmt.Errorf("quiz %q has negative reward or duration", q.ID)
	}
	for i, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return fmt.Errorf("quiz %q question %d: %w", q.ID, i, err)
		}
	}
	return nil
}

// Validate checks that the correct answer indexes into the choices.
func (q Question) Validate() error {
	if len(q.Choices) < 2 {
		return fmt.Errorf("question %q needs at least two choices", q.ID)
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Choices) {
		return fmt.Errorf("question %q correct answer %d out of range", q.ID, q.CorrectAnswer)
	}
	return nil
}

// ValidChoice reports whether choice is NoAnswer or indexes a choice.
func (q Question) ValidChoice(choice int) bool {
	return choice == NoAnswer || (choice >= 0 && choice < len(q.Choices))
}

// Validate checks a play session decoded from a store.
func (s *PlaySession) Validate() error {
	if s.ID == "" || s.UserID == "" || s.QuizID == "" {
		return fmt.Errorf("%w: play session without identity", ErrCorruptRecord)
	}
	if s.StartedAt.IsZero() {
		return fmt.Errorf("%w: play session %s without start time", ErrCorruptRecord, s.ID)
	}
	for _, a := range s.Answers {
		if a < NoAnswer {
			return fmt.Errorf("%w: play session %s answer %d", ErrCorruptRecord, s.ID, a)
		}
	}
	return nil
}

// Validate checks an inventory row decoded from a store.
func (e *InventoryEntry) Validate() error {
	switch e.Category {
	case CategoryTheme, CategoryAvatar, CategoryTitle, CategoryBoost:
	default:
		return fmt.Errorf("%w: inventory item %q category %q", ErrCorruptRecord, e.ItemID, e.Category)
	}
	if e.UserID == "" || e.ItemID == "" {
		return fmt.Errorf("%w: inventory row without identity", ErrCorruptRecord)
	}
	return nil
}

// Validate checks a history row decoded from a store.
func (r *TrialRecord) Validate() error {
	if r.ID == "" || r.UserID == "" || r.QuizID == "" {
		return fmt.Errorf("%w: trial record without identity", ErrCorruptRecord)
	}
	if r.TotalQuestions <= 0 || r.CorrectCount < 0 || r.CorrectCount > r.TotalQuestions || r.EarnedEmbers < 0 {
		return fmt.Errorf("%w: trial record %s has invalid counts", ErrCorruptRecord, r.ID)
	}
	return nil
}

// Validate checks a ledger row decoded from a store.
func (e *LedgerEntry) Validate() error {
	if e.ID == "" || e.UserID == "" {
		return fmt.Errorf("%w: ledger entry without identity", ErrCorruptRecord)
	}
	if e.Kind != LedgerEarn && e.Kind != LedgerSpend {
		return fmt.Errorf("%w: ledger entry %s has kind %q", ErrCorruptRecord, e.ID, e.Kind)
	}
	if e.Amount < 0 {
		return fmt.Errorf("%w: ledger entry %s has negative amount", ErrCorruptRecord, e.ID)
	}
	return nil
}
