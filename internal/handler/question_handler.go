package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgame-api/internal/middleware"
	apperrors "github.com/yourusername/quizgame-api/internal/pkg/errors"
	"github.com/yourusername/quizgame-api/internal/service"
)

// QuestionHandler обрабатывает запросы тем, прогресса, рекордов,
// ошибок и избранного
type QuestionHandler struct {
	progressService *service.ProgressService
	reportService   service.ReportService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(progressService *service.ProgressService, reportService service.ReportService) *QuestionHandler {
	return &QuestionHandler{
		progressService: progressService,
		reportService:   reportService,
	}
}

// ReportRequest представляет жалобу на вопрос
type ReportRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Message    string `json:"message" binding:"omitempty,max=1000"`
}

// Themes возвращает список тем с прогрессом пользователя
func (h *QuestionHandler) Themes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	themes, err := h.progressService.Themes(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[QuestionHandler] Ошибка загрузки тем: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load themes", "error_type": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"themes": themes})
}

// Sections возвращает секции темы с прогрессом пользователя
func (h *QuestionHandler) Sections(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	themeID, err := parseUintParam(c, "themeID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theme id", "error_type": "validation"})
		return
	}

	sections, err := h.progressService.Sections(c.Request.Context(), userID, themeID)
	if err != nil {
		log.Printf("[QuestionHandler] Ошибка загрузки секций темы #%d: %v", themeID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sections", "error_type": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// Records возвращает рекорды пользователя
func (h *QuestionHandler) Records(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	records, err := h.progressService.Records(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[QuestionHandler] Ошибка загрузки рекордов: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records", "error_type": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

// Errors возвращает вопросы из списка ошибок
func (h *QuestionHandler) Errors(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	questions, err := h.progressService.ErrorQuestions(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[QuestionHandler] Ошибка загрузки списка ошибок: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load errors", "error_type": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// RemoveError удаляет вопрос из списка ошибок
func (h *QuestionHandler) RemoveError(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	questionID, err := parseUintParam(c, "questionID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id", "error_type": "validation"})
		return
	}

	if err := h.progressService.RemoveError(c.Request.Context(), userID, questionID); err != nil {
		log.Printf("[QuestionHandler] Ошибка удаления ошибки #%d: %v", questionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove error", "error_type": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Favorites возвращает избранные вопросы
func (h *QuestionHandler) Favorites(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	questions, err := h.progressService.FavoriteQuestions(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[QuestionHandler] Ошибка загрузки избранного: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load favorites", "error_type": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// AddFavorite добавляет вопрос в избранное
func (h *QuestionHandler) AddFavorite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	questionID, err := parseUintParam(c, "questionID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id", "error_type": "validation"})
		return
	}

	if err := h.progressService.AddFavorite(c.Request.Context(), userID, questionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found", "error_type": "not_found"})
			return
		}
		log.Printf("[QuestionHandler] Ошибка добавления в избранное #%d: %v", questionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite", "error_type": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RemoveFavorite удаляет вопрос из избранного
func (h *QuestionHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	questionID, err := parseUintParam(c, "questionID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id", "error_type": "validation"})
		return
	}

	if err := h.progressService.RemoveFavorite(c.Request.Context(), userID, questionID); err != nil {
		log.Printf("[QuestionHandler] Ошибка удаления из избранного #%d: %v", questionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite", "error_type": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Report отправляет жалобу на вопрос
func (h *QuestionHandler) Report(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "unauthorized"})
		return
	}

	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	if err := h.reportService.ReportQuestion(c.Request.Context(), userID, req.QuestionID, req.Message); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found", "error_type": "not_found"})
			return
		}
		log.Printf("[QuestionHandler] Ошибка отправки жалобы на вопрос #%d: %v", req.QuestionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send report", "error_type": "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseUintParam читает числовой параметр пути
func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
