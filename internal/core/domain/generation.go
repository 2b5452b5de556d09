package domain

// GenerationModel describes one entry of the fixed image-generation
// model catalog.
type GenerationModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Recommended bool   `json:"recommended"`
}

// DefaultGenerationModel is used when a generation request omits the model.
const DefaultGenerationModel = "flux-schnell"

// generationModelPaths maps the public model ids to upstream model paths.
var generationModelPaths = map[string]string{
	"flux-schnell": "black-forest-labs/FLUX.1-schnell",
	"sdxl":         "stabilityai/stable-diffusion-xl-base-1.0",
	"sd-1.5":       "runwayml/stable-diffusion-v1-5",
}

// GenerationModels returns the fixed model catalog in display order.
func GenerationModels() []GenerationModel {
	return []GenerationModel{
		{ID: "flux-schnell", Name: "FLUX.1 Schnell", Description: "Fast with excellent quality, recommended", Recommended: true},
		{ID: "sdxl", Name: "Stable Diffusion XL", Description: "High quality image generation"},
		{ID: "sd-1.5", Name: "Stable Diffusion 1.5", Description: "Classic model"},
	}
}

// GenerationModelPath resolves a public model id to the upstream model path.
// The second return value is false for unknown ids.
func GenerationModelPath(id string) (string, bool) {
	path, ok := generationModelPaths[id]
	return path, ok
}
