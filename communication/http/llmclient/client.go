// Package llmclient implements the model-backed decision source: each
// team's strategy text becomes the system prompt of an OpenAI-compatible
// chat completions call, and the response is parsed down to a single
// integer bid.
package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"code.cloudfoundry.org/lager"
	"github.com/tedsuo/rata"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/communication/http/routes"
)

const maxResponseTokens = 50

type Client struct {
	client           *http.Client
	model            string
	apiKey           string
	temperature      float64
	requestGenerator *rata.RequestGenerator
	logger           lager.Logger
}

func New(client *http.Client, address, model, apiKey string, temperature float64, logger lager.Logger) *Client {
	return &Client{
		client:           client,
		model:            model,
		apiKey:           apiKey,
		temperature:      temperature,
		requestGenerator: rata.NewRequestGenerator(address, routes.LLMRoutes),
		logger:           logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends one system+user exchange and returns the assistant's
// text. Transport failures, non-200 statuses, and undecodable bodies are
// all errors; the caller decides how a failed call degrades.
func (c *Client) ChatCompletion(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	logger := c.logger.Session("chat-completion", lager.Data{"model": c.model})

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: c.temperature,
		MaxTokens:   maxResponseTokens,
	})
	if err != nil {
		logger.Error("failed-to-marshal-request", err)
		return "", err
	}

	req, err := c.requestGenerator.CreateRequest(routes.ChatCompletions, nil, bytes.NewReader(body))
	if err != nil {
		logger.Error("failed-to-create-request", err)
		return "", err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("failed-to-perform-request", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("invalid-status-code", fmt.Errorf("%d", resp.StatusCode))
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		logger.Error("failed-to-decode-response", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		logger.Info("empty-completion")
		return "", fmt.Errorf("completion had no choices")
	}

	logger.Debug("done")
	return completion.Choices[0].Message.Content, nil
}
