package aida

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultRequestTimeout = 15 * time.Second

type GatewayConfig struct {
	// Base URL of the completion gateway, without the /v1 suffix.
	URL            string        `json:"url" yaml:"url"`
	Token          string        `json:"token" yaml:"token"`
	AgentID        string        `json:"agent_id" yaml:"agent_id"`
	Model          string        `json:"model" yaml:"model"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// GatewayClient talks to the Aida completion gateway through its
// chat-completions endpoint.
type GatewayClient struct {
	config GatewayConfig
	client *http.Client
}

func NewGatewayClient(config GatewayConfig) *GatewayClient {
	config.URL = NormalizeGatewayURL(config.URL)
	if config.AgentID == "" {
		config.AgentID = "main"
	}
	if config.Model == "" {
		config.Model = "openclaw:" + config.AgentID
	}

	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &GatewayClient{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

// IsConfigured reports whether the gateway can be called at all.
func (c *GatewayClient) IsConfigured() bool {
	return c.config.URL != "" && c.config.Token != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsReq struct {
	Model    string        `json:"model"`
	Stream   bool          `json:"stream"`
	User     string        `json:"user"`
	Messages []chatMessage `json:"messages"`
}

// Complete sends one system+user exchange and returns the raw reply text.
func (c *GatewayClient) Complete(ctx context.Context, systemPrompt string, userPrompt string, userTag string) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("aida gateway not configured")
	}

	payload := chatCompletionsReq{
		Model:  c.config.Model,
		Stream: false,
		User:   userTag,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	json_data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL+"/v1/chat/completions", bytes.NewBuffer(json_data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("x-openclaw-agent-id", c.config.AgentID)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("aida gateway returned %d", resp.StatusCode)
	}

	var data interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}

	text := ExtractCompletionText(data)
	if text == "" {
		return "", fmt.Errorf("aida gateway reply contained no text")
	}
	return text, nil
}
