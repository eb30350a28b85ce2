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

// GeminiBackend talks to the Gemini generateContent API over plain HTTP.
type GeminiBackend struct {
	endpoint string
	model    string
	apiKey   string
	hc       *http.Client
}

func NewGemini(apiKey string) *GeminiBackend {
	return &GeminiBackend{
		endpoint: "https://generativelanguage.googleapis.com/v1beta/models",
		model:    "gemini-2.5-pro",
		apiKey:   apiKey,
		hc:       &http.Client{Timeout: 90 * time.Second},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (g *GeminiBackend) Complete(ctx context.Context, system, prompt string, history []Exchange) (string, error) {
	req := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
	}
	for _, e := range history {
		req.Contents = append(req.Contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: e.Prompt}}})
		req.Contents = append(req.Contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: e.Reply}}})
	}
	req.Contents = append(req.Contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: prompt}}})

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.endpoint, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.hc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%s: %w", g.model, ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		var gr geminiResponse
		if json.Unmarshal(data, &gr) == nil && gr.Error != nil {
			return "", fmt.Errorf("gemini api: %s: %s", gr.Error.Status, gr.Error.Message)
		}
		return "", fmt.Errorf("gemini api: status %s", resp.Status)
	}

	var gr geminiResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini api: empty response")
	}

	return gr.Candidates[0].Content.Parts[0].Text, nil
}
