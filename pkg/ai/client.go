package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const graderSystemPrompt = "Ты проверяешь ответы в викторине. Тебе дают вопрос, эталонный ответ и ответ игрока. " +
	"Ответ игрока засчитывается, если он совпадает с эталонным по смыслу: опечатки, регистр, порядок слов " +
	"и синонимы не считаются ошибкой. Ответь ровно одним словом: YES если ответ верный, NO если неверный."

// Client проверяет свободные ответы через API нейросети
type Client struct {
	client     *openai.Client
	modelName  string
	timeout    time.Duration
	maxRetries int
}

// Config содержит конфигурацию для клиента нейросети
type Config struct {
	APIKey     string
	BaseURL    string
	ModelName  string
	Timeout    int
	MaxRetries int
}

// New создает новый экземпляр клиента нейросети
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("не указан API ключ для проверки ответов")
	}

	if cfg.ModelName == "" {
		cfg.ModelName = "gpt-4o-mini"
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30
	}

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:     openai.NewClientWithConfig(config),
		modelName:  cfg.ModelName,
		timeout:    time.Duration(cfg.Timeout) * time.Second,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// IsAnswerCorrect спрашивает модель, совпадает ли ответ игрока с эталонным по смыслу
func (c *Client) IsAnswerCorrect(ctx context.Context, quest, trueAnswer, userAnswer string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	userPrompt := fmt.Sprintf("Вопрос: %s\nЭталонный ответ: %s\nОтвет игрока: %s", quest, trueAnswer, userAnswer)

	attempts := 0
	for attempts < c.maxRetries {
		attempts++

		req := openai.ChatCompletionRequest{
			Model: c.modelName,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: graderSystemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			Temperature: 0,
			MaxTokens:   5,
		}

		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			log.Printf("[AIClient] Ошибка запроса (попытка %d): %v", attempts, err)
			if attempts >= c.maxRetries {
				return false, fmt.Errorf("ошибка проверки ответа после %d попыток: %w", attempts, err)
			}
			time.Sleep(time.Duration(attempts) * time.Second)
			continue
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			if attempts >= c.maxRetries {
				return false, errors.New("пустой ответ от API после нескольких попыток")
			}
			time.Sleep(time.Duration(attempts) * time.Second)
			continue
		}

		verdict := strings.ToUpper(strings.TrimSpace(resp.Choices[0].Message.Content))
		return strings.HasPrefix(verdict, "YES"), nil
	}

	return false, errors.New("не удалось получить ответ от API после нескольких попыток")
}
