package httpadapter

import (
	"encoding/json"
	"net/http"

	"ad-board/internal/core/port"
)

// generateImageRequest is the JSON body of the generation endpoint. Model
// defaults to the catalog's default when empty.
type generateImageRequest struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model"`
	NegativePrompt string `json:"negative_prompt"`
}

// handleGenerateImage produces a preview image from a text prompt. The
// result is a base64 image plus metadata; the caller may submit the decoded
// bytes as a new advertisement's artwork.
func (h *Handler) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	image, err := h.gen.Generate(r.Context(), port.GenerateRequest{
		Prompt:         req.Prompt,
		Model:          req.Model,
		NegativePrompt: req.NegativePrompt,
	})
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	h.respondOK(w, http.StatusOK, "image generated", image)
}

// handleListModels returns the fixed generation model catalog.
func (h *Handler) handleListModels(w http.ResponseWriter, r *http.Request) {
	h.respondOK(w, http.StatusOK, "models listed", h.gen.Models())
}
