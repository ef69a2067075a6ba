package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/yourusername/quizgame-api/internal/domain/entity"
	"github.com/yourusername/quizgame-api/internal/domain/repository"
)

// ReportService отправляет жалобы на некорректные вопросы
type ReportService interface {
	ReportQuestion(ctx context.Context, userID, questionID uint, message string) error
}

// NoopReportService используется, когда отправка писем отключена
type NoopReportService struct{}

func (s *NoopReportService) ReportQuestion(ctx context.Context, userID, questionID uint, message string) error {
	log.Printf("[ReportService] noop report: userID=%d, questionID=%d", userID, questionID)
	return nil
}

// ResendReportService отправляет жалобы редакции через Resend REST API
type ResendReportService struct {
	from         string
	to           string
	client       *resend.Client
	questionRepo repository.QuestionRepository
}

func NewResendReportService(apiKey, from, to string, questionRepo repository.QuestionRepository) (*ResendReportService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("report from and to addresses are required")
	}
	return &ResendReportService{
		from:         from,
		to:           to,
		client:       resend.NewClient(apiKey),
		questionRepo: questionRepo,
	}, nil
}

func (s *ResendReportService) ReportQuestion(ctx context.Context, userID, questionID uint, message string) error {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return fmt.Errorf("failed to load reported question #%d: %w", questionID, err)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		Subject: fmt.Sprintf("Жалоба на вопрос #%d", questionID),
		Text:    buildReportBody(userID, question, message),
	}

	// Один пользователь не должен заспамить редакцию повторами одной жалобы
	options := &resend.SendEmailOptions{
		IdempotencyKey: fmt.Sprintf("report-%d-%d", userID, questionID),
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func buildReportBody(userID uint, question *entity.Question, message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Пользователь #%d сообщил о проблеме с вопросом #%d.\n\n", userID, question.ID)
	fmt.Fprintf(&b, "Тема: %d, секция: %d, тип: %s\n", question.ThemeID, question.Section, question.Type)
	fmt.Fprintf(&b, "Текст вопроса: %s\n", question.Quest)
	if message != "" {
		fmt.Fprintf(&b, "\nКомментарий пользователя:\n%s\n", message)
	}
	return b.String()
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
