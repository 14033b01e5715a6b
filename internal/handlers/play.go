package handlers

import (
	"github.com/gofiber/fiber/v2"

	"emberarena/internal/models"
	"emberarena/internal/service"
)

// questionView hides the answer key from clients
type questionView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

type quizView struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Category           string         `json:"category"`
	Difficulty         string         `json:"difficulty"`
	Reward             int64          `json:"reward"`
	MinDurationSeconds int            `json:"minDurationSeconds"`
	QuestionCount      int            `json:"questionCount"`
	Questions          []questionView `json:"questions,omitempty"`
}

func newQuizView(q models.Quiz, withQuestions bool) quizView {
	v := quizView{
		ID:                 q.ID,
		Title:              q.Title,
		Category:           q.Category,
		Difficulty:         q.Difficulty,
		Reward:             q.Reward,
		MinDurationSeconds: q.MinDurationSeconds,
		QuestionCount:      len(q.Questions),
	}
	if withQuestions {
		v.Questions = make([]questionView, len(q.Questions))
		for i, qq := range q.Questions {
			v.Questions[i] = questionView{ID: qq.ID, Question: qq.Prompt, Choices: qq.Choices}
		}
	}
	return v
}

func sessionResponse(sess *models.PlaySession, quiz models.Quiz) fiber.Map {
	return fiber.Map{
		"sessionId":                sess.ID,
		"duelId":                   sess.DuelID,
		"startedAt":                sess.StartedAt,
		"questionTimeLimitSeconds": int(service.QuestionTimeLimit.Seconds()),
		"quiz":                     newQuizView(quiz, true),
	}
}

// HandleListTrials handles GET /v1/trials?difficulty=
func (h *Handlers) HandleListTrials(c *fiber.Ctx) error {
	quizzes := h.trialService.Trials(c.Query("difficulty"))
	out := make([]quizView, len(quizzes))
	for i, q := range quizzes {
		out[i] = newQuizView(q, false)
	}
	return c.JSON(out)
}

// HandleStartTrial handles POST /v1/trials/:quizId/start
func (h *Handlers) HandleStartTrial(c *fiber.Ctx) error {
	sess, quiz, err := h.trialService.Start(c.UserContext(), callerID(c), c.Params("quizId"))
	if err != nil {
		return respondError(c, err, "start trial")
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse(sess, quiz))
}

// HandleAnswer handles POST /v1/sessions/:id/answer for trials and duel rounds
func (h *Handlers) HandleAnswer(c *fiber.Ctx) error {
	var req struct {
		Answer *int `json:"answer"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Answer == nil {
		return badRequest(c, "answer is required")
	}
	res, err := h.trialService.Answer(c.UserContext(), callerID(c), c.Params("id"), *req.Answer)
	if err != nil {
		return respondError(c, err, "submit answer")
	}
	return c.JSON(res)
}

// HandleCompleteTrial handles POST /v1/trials/sessions/:id/complete
func (h *Handlers) HandleCompleteTrial(c *fiber.Ctx) error {
	res, err := h.trialService.Complete(c.UserContext(), callerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "complete trial")
	}
	return c.JSON(res)
}

// HandleListDuels handles GET /v1/duels
func (h *Handlers) HandleListDuels(c *fiber.Ctx) error {
	duels, err := h.duelService.List(c.UserContext(), callerID(c))
	if err != nil {
		return respondError(c, err, "list duels")
	}
	return c.JSON(duels)
}

// HandleCreateDuel handles POST /v1/duels
func (h *Handlers) HandleCreateDuel(c *fiber.Ctx) error {
	var req struct {
		OpponentID string `json:"opponentId"`
		QuizID     string `json:"quizId"`
		Wager      int64  `json:"wager"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.OpponentID == "" || req.QuizID == "" {
		return badRequest(c, "opponentId and quizId are required")
	}
	d, err := h.duelService.Create(c.UserContext(), callerID(c), req.OpponentID, req.QuizID, req.Wager)
	if err != nil {
		return respondError(c, err, "create duel")
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

// HandleGetDuel handles GET /v1/duels/:id
func (h *Handlers) HandleGetDuel(c *fiber.Ctx) error {
	d, err := h.duelService.Get(c.UserContext(), callerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "get duel")
	}
	return c.JSON(d)
}

// HandleAcceptDuel handles POST /v1/duels/:id/accept
func (h *Handlers) HandleAcceptDuel(c *fiber.Ctx) error {
	d, err := h.duelService.Accept(c.UserContext(), callerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "accept duel")
	}
	return c.JSON(d)
}

// HandleDeclineDuel handles POST /v1/duels/:id/decline
func (h *Handlers) HandleDeclineDuel(c *fiber.Ctx) error {
	d, err := h.duelService.Decline(c.UserContext(), callerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "decline duel")
	}
	return c.JSON(d)
}

// HandleStartRound handles POST /v1/duels/:id/start
func (h *Handlers) HandleStartRound(c *fiber.Ctx) error {
	sess, quiz, err := h.duelService.StartRound(c.UserContext(), callerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "start duel round")
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse(sess, quiz))
}

// HandleCompleteRound handles POST /v1/duels/sessions/:id/complete
func (h *Handlers) HandleCompleteRound(c *fiber.Ctx) error {
	res, err := h.duelService.CompleteRound(c.UserContext(), callerID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "complete duel round")
	}
	return c.JSON(res)
}
