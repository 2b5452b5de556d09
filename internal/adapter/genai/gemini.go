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
)

// translationInstruction asks for a bare translation suitable for an image
// generation prompt, preserving descriptive detail.
const translationInstruction = `Translate the following text into English for use as an AI image generation prompt.
Return only the translation, no explanations.
Preserve the descriptive details and style.

Text: %s
English:`

// GeminiTranslator translates prompts to English through the Generative
// Language API. It implements port.Translator. An unset API key is reported
// as an error; callers treat any translation error as non-fatal and keep
// the original text.
type GeminiTranslator struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewGeminiTranslator returns a translator backed by the gemini-pro model.
func NewGeminiTranslator(cfg configs.GenAI) *GeminiTranslator {
	return &GeminiTranslator{
		baseURL: strings.TrimRight(cfg.GeminiURL, "/"),
		apiKey:  cfg.GeminiAPIKey,
		model:   "gemini-pro",
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// TranslateToEnglish returns an English rendering of text.
func (t *GeminiTranslator) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	if t.apiKey == "" {
		return "", errors.New("gemini api key is not configured")
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: fmt.Sprintf(translationInstruction, text)}}}},
	})
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", t.baseURL, t.model, t.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translate: HTTP %d: %s", resp.StatusCode, body)
	}

	var out geminiResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode translation response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty translation response")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}
