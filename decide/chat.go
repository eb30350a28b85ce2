package decide

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChatBackend talks to an OpenAI-style chat completions API. OpenAI and
// Mistral share the wire format, so one client covers both.
type ChatBackend struct {
	baseURL     string
	model       string
	apiKey      string
	temperature float64
	hc          *http.Client
}

func NewOpenAI(apiKey string) *ChatBackend {
	return &ChatBackend{
		baseURL:     "https://api.openai.com/v1",
		model:       "gpt-4",
		apiKey:      apiKey,
		temperature: 0.8,
		hc:          &http.Client{Timeout: 90 * time.Second},
	}
}

func NewMistral(apiKey string) *ChatBackend {
	return &ChatBackend{
		baseURL:     "https://api.mistral.ai/v1",
		model:       "mistral-small-latest",
		apiKey:      apiKey,
		temperature: 0.8,
		hc:          &http.Client{Timeout: 90 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (c *ChatBackend) Complete(ctx context.Context, system, prompt string, history []Exchange) (string, error) {
	msgs := []chatMessage{{Role: "system", Content: system}}
	for _, e := range history {
		msgs = append(msgs, chatMessage{Role: "user", Content: e.Prompt})
		msgs = append(msgs, chatMessage{Role: "assistant", Content: e.Reply})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages:    msgs,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%s: %w", c.model, ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		var cr chatResponse
		if json.Unmarshal(data, &cr) == nil && cr.Error != nil {
			return "", fmt.Errorf("chat api: %s: %s", cr.Error.Type, cr.Error.Message)
		}
		return "", fmt.Errorf("chat api: status %s", resp.Status)
	}

	var cr chatResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("chat api: empty response")
	}

	return cr.Choices[0].Message.Content, nil
}
