package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ad-board/internal/config/configs"
	"ad-board/internal/core/port"
)

// HFClient calls the Hugging Face inference API to generate images. It
// implements port.ImageGenerator. Each request is bounded by the configured
// timeout; a missed deadline maps to port.ErrGenerationTimeout and the
// backend's 503 "model loading" status to port.ErrModelLoading.
type HFClient struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
}

// NewHFClient returns a generator client for the configured endpoint.
func NewHFClient(cfg configs.GenAI) *HFClient {
	return &HFClient{
		baseURL: strings.TrimRight(cfg.HuggingFaceURL, "/"),
		token:   cfg.HuggingFaceToken,
		timeout: cfg.Timeout,
		http:    &http.Client{},
	}
}

type generatePayload struct {
	Inputs         string `json:"inputs"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
}

// Generate posts the prompt to the model endpoint and returns the raw image
// bytes.
func (c *HFClient) Generate(ctx context.Context, modelPath, prompt, negativePrompt string) ([]byte, error) {
	if c.token == "" {
		return nil, errors.New("huggingface token is not configured")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(generatePayload{Inputs: prompt, NegativePrompt: negativePrompt})
	if err != nil {
		return nil, err
	}
	url := c.baseURL + "/" + modelPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, port.ErrGenerationTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read image response: %w", err)
		}
		return data, nil
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, port.ErrModelLoading
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, &port.GenerationError{StatusCode: resp.StatusCode, Body: string(body)}
	}
}
