package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rotalog/rotalog/internal/domain"
	"github.com/rotalog/rotalog/internal/service/placement"
)

// placementService defines the minimal interface needed by PlacementHandler.
type placementService interface {
	Log(ctx context.Context, input placement.LogInput) (*domain.Placement, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Placement, error)
	Update(ctx context.Context, input placement.UpdateInput) (*domain.Placement, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, input placement.ListInput) ([]domain.Placement, int, error)
}

// PlacementHandler serves placement history REST endpoints.
type PlacementHandler struct {
	svc placementService
	log *slog.Logger
}

// NewPlacementHandler creates a PlacementHandler.
func NewPlacementHandler(svc placementService, logger *slog.Logger) *PlacementHandler {
	return &PlacementHandler{svc: svc, log: logger.With("handler", "placement")}
}

type logPlacementRequest struct {
	SiteKey    string     `json:"siteKey"`
	OccurredAt *time.Time `json:"occurredAt,omitempty"`
	Note       *string    `json:"note,omitempty"`
}

type updatePlacementRequest struct {
	SiteKey    *string    `json:"siteKey,omitempty"`
	OccurredAt *time.Time `json:"occurredAt,omitempty"`
	Note       *string    `json:"note,omitempty"`
	ClearNote  bool       `json:"clearNote,omitempty"`
}

type placementResponse struct {
	ID         string     `json:"id"`
	SiteKey    string     `json:"siteKey"`
	OccurredAt time.Time  `json:"occurredAt"`
	Note       *string    `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type placementListResponse struct {
	Placements []placementResponse `json:"placements"`
	Total      int                 `json:"total"`
}

func toPlacementResponse(p *domain.Placement) placementResponse {
	return placementResponse{
		ID:         p.ID.String(),
		SiteKey:    p.SiteKey,
		OccurredAt: p.OccurredAt,
		Note:       p.Note,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// Log handles POST /api/v1/placements.
func (h *PlacementHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req logPlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Log(r.Context(), placement.LogInput{
		SiteKey:    req.SiteKey,
		OccurredAt: req.OccurredAt,
		Note:       req.Note,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPlacementResponse(created))
}

// Get handles GET /api/v1/placements/{id}.
func (h *PlacementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlacementResponse(p))
}

// Update handles PATCH /api/v1/placements/{id}.
func (h *PlacementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updatePlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), placement.UpdateInput{
		ID:         id,
		SiteKey:    req.SiteKey,
		OccurredAt: req.OccurredAt,
		Note:       req.Note,
		ClearNote:  req.ClearNote,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlacementResponse(updated))
}

// Delete handles DELETE /api/v1/placements/{id}.
func (h *PlacementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/v1/placements.
// Query: from, to (RFC 3339), siteKey, limit, offset.
func (h *PlacementHandler) List(w http.ResponseWriter, r *http.Request) {
	input := placement.ListInput{}

	from, err := parseTimeParam(r, "from")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	input.From = from

	to, err := parseTimeParam(r, "to")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	input.To = to

	if siteKey := r.URL.Query().Get("siteKey"); siteKey != "" {
		input.SiteKey = &siteKey
	}

	input.Limit, err = intParam(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	input.Offset, err = intParam(r, "offset")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	placements, total, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := placementListResponse{
		Placements: make([]placementResponse, len(placements)),
		Total:      total,
	}
	for i := range placements {
		resp.Placements[i] = toPlacementResponse(&placements[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// pathID parses the {id} path segment as a UUID, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid placement id")
		return uuid.Nil, false
	}
	return id, true
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}
