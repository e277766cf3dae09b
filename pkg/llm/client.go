// Package llm fornece um cliente para o classificador externo (LLM), via API
// compatível com chat completions.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/renanbrackmann-glitch/modelfinder/internal/config"
)

// Client define a interface do cliente LLM.
type Client interface {
	// Complete envia um prompt único e retorna o texto completo da resposta.
	// Uma única ida e volta bloqueante, sem retry; o cancelamento vem do ctx.
	Complete(ctx context.Context, prompt string) (string, error)
}

type openAIClient struct {
	cfg    config.LLMConfig
	client *http.Client
}

// NewClient cria um cliente LLM a partir da configuração.
func NewClient(cfg config.LLMConfig) Client {
	return &openAIClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Message representa uma mensagem com papel.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:    c.cfg.Model,
		Messages: []Message{{Role: "user", Content: prompt}},
		Stream:   false,
	}
	// Parâmetros de geração vindos da configuração (quando não-zero)
	if c.cfg.Temperature != 0 {
		t := c.cfg.Temperature
		reqBody.Temperature = &t
	}
	if c.cfg.MaxTokens != 0 {
		m := c.cfg.MaxTokens
		reqBody.MaxTokens = &m
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("falha ao serializar a requisição de chat: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("falha ao criar a requisição de chat: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("falha ao chamar a API de chat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API de chat retornou status não-200: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("falha ao decodificar a resposta de chat: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("resposta de chat sem choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
