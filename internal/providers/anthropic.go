package providers

import (
	"context"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// AnthropicClient implements Client by calling the Anthropic SDK
// directly.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicClient creates a new Anthropic-backed client.
func NewAnthropicClient(apiKey, modelName string) (*AnthropicClient, error) {
	return &AnthropicClient{
		client: anthropic.NewClient(apiKey),
		model:  modelName,
	}, nil
}

// Complete implements Client.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	msgReq := anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{{
			Role:    anthropic.RoleUser,
			Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(req.User)},
		}},
		MaxTokens: maxTokens,
	}
	if req.System != "" {
		msgReq.MultiSystem = []anthropic.MessageSystemPart{{Type: "text", Text: req.System}}
	}
	if req.Temperature > 0 {
		temperature := req.Temperature
		msgReq.Temperature = &temperature
	}

	resp, err := c.client.CreateMessages(ctx, msgReq)
	if err != nil {
		return "", fmt.Errorf("anthropic completion failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			text += *block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("empty response from Anthropic")
	}
	return text, nil
}
