package generator

import (
	"context"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// OpenAIGenerator implements Generator using the official openai-go SDK.
// Each instruction is sent as a single system-role message with a fixed
// model and default sampling parameters.
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewOpenAIGenerator(apiKey, baseURL, model string, timeout time.Duration, logger *zap.Logger) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("generation model is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIGenerator{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Generate sends the instruction to the chat completions API. Every failure
// is collapsed to ErrGeneration; the underlying cause is only logged.
func (g *OpenAIGenerator) Generate(ctx context.Context, instruction string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instruction),
		},
	})
	if err != nil {
		g.logger.Error("generation request failed",
			zap.Error(err),
			zap.String("model", g.model))
		return "", ErrGeneration
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		g.logger.Error("generation returned empty response",
			zap.String("model", g.model))
		return "", ErrGeneration
	}

	return resp.Choices[0].Message.Content, nil
}
