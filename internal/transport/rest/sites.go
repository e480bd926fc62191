package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rotalog/rotalog/internal/domain"
	"github.com/rotalog/rotalog/internal/service/site"
)

// siteService defines the minimal interface needed by SiteHandler.
type siteService interface {
	Catalog(ctx context.Context) ([]domain.Site, error)
	CreateCustomSite(ctx context.Context, input site.CreateCustomSiteInput) (*domain.Site, error)
	RenameCustomSite(ctx context.Context, input site.RenameCustomSiteInput) (*domain.Site, error)
	DeleteCustomSite(ctx context.Context, key string) error
	SetSiteEnabled(ctx context.Context, key string, enabled bool) error
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, input site.UpdateSettingsInput) (*domain.Settings, error)
}

// SiteHandler serves site-catalog and settings REST endpoints.
type SiteHandler struct {
	svc siteService
	log *slog.Logger
}

// NewSiteHandler creates a SiteHandler.
func NewSiteHandler(svc siteService, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{svc: svc, log: logger.With("handler", "site")}
}

type siteResponse struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Icon    string `json:"icon,omitempty"`
	Kind    string `json:"kind"`
	Enabled bool   `json:"enabled"`
}

type createSiteRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type renameSiteRequest struct {
	Name string `json:"name"`
}

type setEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

type settingsResponse struct {
	MinRestDays       int       `json:"minRestDays"`
	EnabledSiteKeys   []string  `json:"enabledSiteKeys"`
	ShowDisabledSites bool      `json:"showDisabledSites"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type updateSettingsRequest struct {
	MinRestDays       *int  `json:"minRestDays,omitempty"`
	ShowDisabledSites *bool `json:"showDisabledSites,omitempty"`
}

func toSiteResponse(s domain.Site) siteResponse {
	return siteResponse{
		Key:     s.Key,
		Name:    s.Name,
		Icon:    s.Icon,
		Kind:    string(s.Kind),
		Enabled: s.Enabled,
	}
}

func toSettingsResponse(s *domain.Settings) settingsResponse {
	return settingsResponse{
		MinRestDays:       s.MinRestDays,
		EnabledSiteKeys:   s.EnabledSiteKeys,
		ShowDisabledSites: s.ShowDisabledSites,
		UpdatedAt:         s.UpdatedAt,
	}
}

// List handles GET /api/v1/sites.
func (h *SiteHandler) List(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.svc.Catalog(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]siteResponse, len(catalog))
	for i, s := range catalog {
		resp[i] = toSiteResponse(s)
	}
	writeJSON(w, http.StatusOK, map[string]any{"sites": resp})
}

// Create handles POST /api/v1/sites.
func (h *SiteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateCustomSite(r.Context(), site.CreateCustomSiteInput{
		Name: req.Name,
		Icon: req.Icon,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSiteResponse(*created))
}

// Rename handles PATCH /api/v1/sites/{key}.
func (h *SiteHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	renamed, err := h.svc.RenameCustomSite(r.Context(), site.RenameCustomSiteInput{
		Key:  r.PathValue("key"),
		Name: req.Name,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSiteResponse(*renamed))
}

// Delete handles DELETE /api/v1/sites/{key}.
func (h *SiteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCustomSite(r.Context(), r.PathValue("key")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetEnabled handles PUT /api/v1/sites/{key}/enabled.
func (h *SiteHandler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	var req setEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetSiteEnabled(r.Context(), r.PathValue("key"), req.Enabled); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSettings handles GET /api/v1/settings.
func (h *SiteHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// UpdateSettings handles PATCH /api/v1/settings.
func (h *SiteHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateSettings(r.Context(), site.UpdateSettingsInput{
		MinRestDays:       req.MinRestDays,
		ShowDisabledSites: req.ShowDisabledSites,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(updated))
}
