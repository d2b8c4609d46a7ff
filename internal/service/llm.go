package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
	"google.golang.org/genai"
)

const (
	LLMProviderOpenAI = "openai"
	LLMProviderGemini = "gemini"
)

// Completer 大模型文本生成
type Completer interface {
	Complete(ctx context.Context, instructions, prompt string) (string, error)
	Model() string
}

// OpenAICompleter 基于 OpenAI 兼容接口
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

func NewOpenAICompleter(client *openai.Client, model string) *OpenAICompleter {
	return &OpenAICompleter{client: client, model: model}
}

func (c *OpenAICompleter) Complete(ctx context.Context, instructions, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instructions),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAICompleter) Model() string { return c.model }

// GeminiCompleter 基于 Gemini API
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

func NewGeminiCompleter(client *genai.Client, model string) *GeminiCompleter {
	return &GeminiCompleter{client: client, model: model}
}

func (c *GeminiCompleter) Complete(ctx context.Context, instructions, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instructions, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (c *GeminiCompleter) Model() string { return c.model }
