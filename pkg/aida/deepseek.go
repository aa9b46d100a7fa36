package aida

import (
	"context"
	"fmt"

	"github.com/go-deepseek/deepseek"
	"github.com/go-deepseek/deepseek/request"
)

type DeepseekConfig struct {
	APIKey string `json:"api_key" yaml:"api_key"`
	Model  string `json:"model" yaml:"model"`
}

// DeepseekClient is the fallback completion backend for deployments without
// an Aida gateway. It speaks to the DeepSeek API directly.
type DeepseekClient struct {
	client deepseek.Client
	model  string
}

func NewDeepseekClient(config DeepseekConfig) (*DeepseekClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("deepseek api key is required")
	}

	client, err := deepseek.NewClient(config.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create deepseek client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = deepseek.DEEPSEEK_CHAT_MODEL
	}

	return &DeepseekClient{
		client: client,
		model:  model,
	}, nil
}

func (c *DeepseekClient) Complete(ctx context.Context, systemPrompt string, userPrompt string, userTag string) (string, error) {
	chatReq := &request.ChatCompletionsRequest{
		Model:  c.model,
		Stream: false,
		Messages: []*request.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	resp, err := c.client.CallChatCompletionsChat(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("deepseek request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("deepseek reply contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
