package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
	"github.com/yourusername/quizgame-api/internal/handler/dto"
	"github.com/yourusername/quizgame-api/internal/middleware"
	"github.com/yourusername/quizgame-api/internal/service"
	"github.com/yourusername/quizgame-api/internal/service/gamesession"
)

// GameHandler обрабатывает запросы игровой сессии
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler создает новый игровой обработчик
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// StartGameRequest представляет запрос на запуск сессии
type StartGameRequest struct {
	Mode      entity.Mode `json:"mode" binding:"required"`
	ThemeID   uint        `json:"theme_id" binding:"required"`
	Section   int         `json:"section"`
	OldRecord int         `json:"old_record"`
}

// AnswerRequest представляет ответ на текущий вопрос
type AnswerRequest struct {
	Selected []int  `json:"selected"`
	FreeText string `json:"free_text"`
}

// StartGame запускает новую сессию и возвращает первый вопрос
func (h *GameHandler) StartGame(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	step, err := h.gameService.StartGame(c.Request.Context(), userID, entity.GameSessionPayload{
		Mode:      req.Mode,
		ThemeID:   req.ThemeID,
		Section:   req.Section,
		OldRecord: req.OldRecord,
	})
	if err != nil {
		h.handleStepError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStepResponse(step))
}

// NextQuestion возвращает следующий вопрос либо сигнал окончания сессии
func (h *GameHandler) NextQuestion(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	step, err := h.gameService.NextQuestion(c.Request.Context(), userID)
	if err != nil {
		h.handleStepError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStepResponse(step))
}

// Answer проверяет ответ на текущий вопрос
func (h *GameHandler) Answer(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	result, err := h.gameService.AnswerQuestion(c.Request.Context(), userID, req.Selected, req.FreeText)
	if err != nil {
		switch {
		case errors.Is(err, gamesession.ErrNotStarted):
			c.JSON(http.StatusConflict, gin.H{"error": "Game session is not started", "error_type": "session_not_started"})
		case errors.Is(err, gamesession.ErrNoCurrentQuestion):
			c.JSON(http.StatusConflict, gin.H{"error": "No current question to answer", "error_type": "no_current_question"})
		case errors.Is(err, gamesession.ErrUnknownQuestionType):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unknown question type", "error_type": "unknown_question_type"})
		default:
			log.Printf("[GameHandler] Ошибка проверки ответа: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check answer", "error_type": "internal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewAnswerResponse(result))
}

// EarnReward начисляет жизнь за просмотр рекламы
func (h *GameHandler) EarnReward(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	if err := h.gameService.EarnReward(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Game session is not started", "error_type": "session_not_started"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// FinishGame завершает сессию и возвращает итоги
func (h *GameHandler) FinishGame(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	payload, err := h.gameService.FinishGame(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gamesession.ErrNotStarted) {
			c.JSON(http.StatusConflict, gin.H{"error": "Game session is not started", "error_type": "session_not_started"})
			return
		}
		log.Printf("[GameHandler] Ошибка завершения сессии: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finish game", "error_type": "internal"})
		return
	}

	c.JSON(http.StatusOK, dto.NewGameEndResponse(payload))
}

// AbandonGame обрабатывает выход из сессии до ее завершения
func (h *GameHandler) AbandonGame(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	payload, err := h.gameService.AbandonGame(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gamesession.ErrNotStarted) {
			c.JSON(http.StatusConflict, gin.H{"error": "Game session is not started", "error_type": "session_not_started"})
			return
		}
		log.Printf("[GameHandler] Ошибка выхода из сессии: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to abandon game", "error_type": "internal"})
		return
	}

	if payload == nil {
		// Вне тренировки бросить сессию — значит просто закрыть ее без итогов
		c.JSON(http.StatusOK, gin.H{"status": "abandoned"})
		return
	}
	c.JSON(http.StatusOK, dto.NewGameEndResponse(payload))
}

// handleStepError переводит сигналы контроллера в JSON-ответы
func (h *GameHandler) handleStepError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gamesession.ErrRewardedRetryOffered):
		c.JSON(http.StatusOK, dto.StepResponse{Status: dto.StatusRewardOffered})
	case errors.Is(err, gamesession.ErrSessionExhausted):
		c.JSON(http.StatusOK, dto.StepResponse{Status: dto.StatusExhausted})
	case errors.Is(err, gamesession.ErrNotStarted):
		c.JSON(http.StatusConflict, gin.H{"error": "Game session is not started", "error_type": "session_not_started"})
	default:
		log.Printf("[GameHandler] Ошибка шага сессии: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance game", "error_type": "internal"})
	}
}
