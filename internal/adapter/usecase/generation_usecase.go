package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"unicode"

	"ad-board/internal/core/domain"
	"ad-board/internal/core/port"
	"ad-board/internal/metrics"
)

// GenerationService produces preview images from text prompts. Prompts
// containing CJK ideographs are translated to English first; translation
// failures degrade to the original prompt and never abort generation. The
// service is stateless and unrelated to advertisement persistence.
type GenerationService struct {
	generator  port.ImageGenerator
	translator port.Translator
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewGenerationService creates the generation service with its backends.
func NewGenerationService(gen port.ImageGenerator, tr port.Translator, m *metrics.Metrics, logger *slog.Logger) *GenerationService {
	return &GenerationService{generator: gen, translator: tr, metrics: m, logger: logger}
}

// Generate validates the request, resolves the model, translates the
// prompts when needed and calls the generation backend.
func (s *GenerationService) Generate(ctx context.Context, req port.GenerateRequest) (*port.GeneratedImage, error) {
	promptLen := len([]rune(req.Prompt))
	if promptLen < 1 || promptLen > 1000 {
		return nil, port.ErrInvalidPrompt
	}

	model := req.Model
	if model == "" {
		model = domain.DefaultGenerationModel
	}
	modelPath, ok := domain.GenerationModelPath(model)
	if !ok {
		return nil, fmt.Errorf("%w: %s", port.ErrUnsupportedModel, model)
	}

	prompt := s.maybeTranslate(ctx, req.Prompt)
	negative := req.NegativePrompt
	if negative != "" {
		negative = s.maybeTranslate(ctx, negative)
	}

	image, err := s.generator.Generate(ctx, modelPath, prompt, negative)
	if err != nil {
		s.metrics.ImagesGenerated.WithLabelValues("error").Inc()
		return nil, err
	}
	s.metrics.ImagesGenerated.WithLabelValues("success").Inc()

	return &port.GeneratedImage{
		ImageBase64:    base64.StdEncoding.EncodeToString(image),
		Size:           len(image),
		Model:          model,
		Prompt:         prompt,
		OriginalPrompt: req.Prompt,
	}, nil
}

// Models returns the fixed model catalog.
func (s *GenerationService) Models() port.ModelCatalog {
	return port.ModelCatalog{
		Models:  domain.GenerationModels(),
		Default: domain.DefaultGenerationModel,
	}
}

// maybeTranslate returns an English rendering of text when it contains CJK
// ideographs. Any translation failure keeps the original text.
func (s *GenerationService) maybeTranslate(ctx context.Context, text string) string {
	if !containsHan(text) {
		return text
	}
	translated, err := s.translator.TranslateToEnglish(ctx, text)
	if err != nil {
		s.logger.Warn("prompt translation failed, using original", slog.Any("error", err))
		return text
	}
	s.logger.Debug("translated prompt", slog.String("original", text), slog.String("translated", translated))
	return translated
}

func containsHan(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
