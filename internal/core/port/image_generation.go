package port

import (
	"context"
	"errors"
	"fmt"

	"ad-board/internal/core/domain"
)

var (
	// ErrUnsupportedModel is returned for generation model ids outside the
	// fixed catalog.
	ErrUnsupportedModel = errors.New("unsupported model")
	// ErrModelLoading means the backend is still loading the model; the
	// caller should retry in 20-30 seconds.
	ErrModelLoading = errors.New("model is loading, retry later")
	// ErrGenerationTimeout means the backend did not answer within the
	// configured deadline.
	ErrGenerationTimeout = errors.New("generation request timed out")
	// ErrInvalidPrompt is returned for empty or oversized prompts.
	ErrInvalidPrompt = errors.New("prompt must be between 1 and 1000 characters")
)

// GenerationError carries the raw error reported by the generation backend
// for non-2xx responses other than the loading status.
type GenerationError struct {
	StatusCode int
	Body       string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("image generation failed (HTTP %d): %s", e.StatusCode, e.Body)
}

// GenerateRequest describes one image-generation call. Model is a catalog
// id; empty means the default model. NegativePrompt is optional.
type GenerateRequest struct {
	Prompt         string
	Model          string
	NegativePrompt string
}

// GeneratedImage is the result of a successful generation. Prompt is the
// effective (possibly translated) prompt sent upstream; OriginalPrompt is
// what the caller submitted.
type GeneratedImage struct {
	ImageBase64    string `json:"image_base64"`
	Size           int    `json:"size"`
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	OriginalPrompt string `json:"original_prompt"`
}

// ModelCatalog is the fixed model listing exposed to clients.
type ModelCatalog struct {
	Models  []domain.GenerationModel `json:"models"`
	Default string                   `json:"default"`
}

// ImageGenerator calls the generation backend for a resolved model path.
// Implementations map backend failures onto ErrModelLoading,
// ErrGenerationTimeout or *GenerationError.
type ImageGenerator interface {
	Generate(ctx context.Context, modelPath, prompt, negativePrompt string) ([]byte, error)
}

// Translator produces a best-effort English translation of text. Callers
// treat every error as non-fatal and fall back to the original text.
type Translator interface {
	TranslateToEnglish(ctx context.Context, text string) (string, error)
}

// GenerationUseCase is the primary port of the image-generation feature. It
// is stateless and unrelated to advertisement persistence; its output is
// handed to AdUseCase.Create by the caller.
type GenerationUseCase interface {
	Generate(ctx context.Context, req GenerateRequest) (*GeneratedImage, error)
	Models() ModelCatalog
}
