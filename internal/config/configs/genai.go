package configs

import "time"

// GenAI holds configuration for the image generation and translation
// backends. HuggingFaceToken is required for generation; GeminiAPIKey is
// optional and only used to translate non-English prompts. A missing
// Gemini key degrades to untranslated prompts, it never blocks generation.
type GenAI struct {
	// HuggingFaceToken authenticates generation requests.
	HuggingFaceToken string `env:"HUGGINGFACE_TOKEN"`
	// HuggingFaceURL is the inference endpoint prefix; the model path is
	// appended to it.
	HuggingFaceURL string `env:"HUGGINGFACE_URL" envDefault:"https://router.huggingface.co/hf-inference/models"`
	// GeminiAPIKey authenticates translation requests.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	// GeminiURL is the Generative Language API base URL.
	GeminiURL string `env:"GEMINI_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	// Timeout bounds a single generation request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
}
