package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"ad-board/internal/core/domain"
	"ad-board/internal/core/port"
)

// maxImageSize caps uploaded advertisement images at 10MB.
const maxImageSize = 10 << 20

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// handleCreateAdvertisement accepts a multipart form with the image file
// and scheduling metadata, validates the upload before any side effect and
// delegates to the lifecycle service. On success it responds 201 with the
// persisted record.
func (h *Handler) handleCreateAdvertisement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize + 1<<20); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		h.respondError(w, http.StatusBadRequest, "only image files are accepted")
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "failed to read image")
		return
	}
	if len(data) > maxImageSize {
		h.respondError(w, http.StatusBadRequest, "image must not exceed 10MB")
		return
	}

	startTime, err := parseISOTime(r.FormValue("start_time"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid start_time, use ISO 8601 (e.g. 2024-01-01T00:00:00)")
		return
	}
	endTime, err := parseISOTime(r.FormValue("end_time"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid end_time, use ISO 8601 (e.g. 2024-12-31T23:59:59)")
		return
	}
	impressionCount, err := strconv.Atoi(r.FormValue("impression_count"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid impression_count")
		return
	}

	ad, err := h.ads.Create(r.Context(), port.CreateAdRequest{
		ImageData:       data,
		ImageFilename:   header.Filename,
		Description:     r.FormValue("description"),
		StartTime:       startTime,
		EndTime:         endTime,
		ImpressionCount: impressionCount,
	})
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	h.respondOK(w, http.StatusCreated, "advertisement created", ad)
}

// handleListAdvertisements returns a page of advertisements, optionally
// filtered by status. Limit must be within [1,1000], offset non-negative.
func (h *Handler) handleListAdvertisements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := port.AdFilter{Limit: defaultListLimit}

	if s := q.Get("status"); s != "" {
		status := domain.Status(s)
		if !status.Valid() {
			h.respondError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		filter.Status = &status
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > maxListLimit {
			h.respondError(w, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			h.respondError(w, http.StatusBadRequest, "offset must be non-negative")
			return
		}
		filter.Offset = offset
	}

	ads, err := h.ads.List(r.Context(), filter)
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	if ads == nil {
		ads = []domain.Advertisement{}
	}
	h.writeJSON(w, http.StatusOK, listEnvelope{
		Success: true,
		Message: "advertisements listed",
		Data:    ads,
		Count:   len(ads),
		Limit:   filter.Limit,
		Offset:  &filter.Offset,
	})
}

// handleListActiveAdvertisements returns advertisements with stored status
// active. No time-window or quota filtering is applied here.
func (h *Handler) handleListActiveAdvertisements(w http.ResponseWriter, r *http.Request) {
	ads, err := h.ads.ListActive(r.Context())
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	if ads == nil {
		ads = []domain.Advertisement{}
	}
	h.writeJSON(w, http.StatusOK, listEnvelope{
		Success: true,
		Message: "active advertisements listed",
		Data:    ads,
		Count:   len(ads),
	})
}

func (h *Handler) handleGetAdvertisement(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	ad, err := h.ads.Get(r.Context(), id)
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	h.respondOK(w, http.StatusOK, "advertisement found", ad)
}

// updateAdvertisementRequest is the PATCH body; absent fields are left
// untouched.
type updateAdvertisementRequest struct {
	Description     *string `json:"description"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	ImpressionCount *int    `json:"impression_count"`
	Status          *string `json:"status"`
}

func (h *Handler) handleUpdateAdvertisement(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	var req updateAdvertisementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	upd := port.AdUpdate{
		Description:     req.Description,
		ImpressionCount: req.ImpressionCount,
	}
	if req.StartTime != nil {
		t, err := parseISOTime(*req.StartTime)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid start_time, use ISO 8601")
			return
		}
		upd.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := parseISOTime(*req.EndTime)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid end_time, use ISO 8601")
			return
		}
		upd.EndTime = &t
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		upd.Status = &status
	}

	ad, err := h.ads.Update(r.Context(), id, upd)
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	h.respondOK(w, http.StatusOK, "advertisement updated", ad)
}

// handleIncrementImpression records one display event. When the quota is
// reached the returned record carries status completed.
func (h *Handler) handleIncrementImpression(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	ad, err := h.ads.IncrementImpression(r.Context(), id)
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	h.respondOK(w, http.StatusOK, "impression recorded", ad)
}

func (h *Handler) handleDeleteAdvertisement(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.ads.Delete(r.Context(), id); err != nil {
		h.respondFailure(w, err)
		return
	}
	h.respondOK(w, http.StatusOK, "advertisement deleted", nil)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid advertisement id")
		return 0, false
	}
	return id, true
}
