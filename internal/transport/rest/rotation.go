package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rotalog/rotalog/internal/domain"
	"github.com/rotalog/rotalog/internal/service/rotation"
)

// defaultRangeDays is the window used when a range endpoint is called
// without explicit from/to dates.
const defaultRangeDays = 90

// rotationService defines the minimal interface needed by RotationHandler.
type rotationService interface {
	Recommend(ctx context.Context) (*domain.Recommendation, error)
	GetStatuses(ctx context.Context) ([]domain.SiteStatus, error)
	Heatmap(ctx context.Context, input rotation.RangeInput) ([]domain.HeatmapEntry, error)
	Score(ctx context.Context, input rotation.RangeInput) (domain.RotationScore, error)
	Trend(ctx context.Context, input rotation.TrendInput) ([]domain.TrendPoint, error)
	TrendBySite(ctx context.Context, input rotation.TrendInput) ([]domain.SiteTrend, error)
	Streak(ctx context.Context) (int, error)
	Dashboard(ctx context.Context) (domain.Dashboard, error)
}

// RotationHandler serves the derived rotation-state REST endpoints.
type RotationHandler struct {
	svc rotationService
	log *slog.Logger
}

// NewRotationHandler creates a RotationHandler.
func NewRotationHandler(svc rotationService, logger *slog.Logger) *RotationHandler {
	return &RotationHandler{svc: svc, log: logger.With("handler", "rotation")}
}

// restResponse is the wire shape of a rest duration: either never used,
// or a whole number of days since last use.
type restResponse struct {
	NeverUsed bool `json:"neverUsed"`
	Days      *int `json:"days,omitempty"`
}

func toRestResponse(rest domain.Rest) restResponse {
	if days, ok := rest.Days(); ok {
		return restResponse{Days: &days}
	}
	return restResponse{NeverUsed: true}
}

type recommendationResponse struct {
	Site        siteResponse `json:"site"`
	Rest        restResponse `json:"rest"`
	Reason      string       `json:"reason"`
	Description string       `json:"description"`
}

func toRecommendationResponse(rec *domain.Recommendation) *recommendationResponse {
	if rec == nil {
		return nil
	}
	return &recommendationResponse{
		Site:        toSiteResponse(rec.Site),
		Rest:        toRestResponse(rec.Rest),
		Reason:      string(rec.Reason),
		Description: rec.Reason.Description(),
	}
}

type siteStatusResponse struct {
	Site  siteResponse `json:"site"`
	Rest  restResponse `json:"rest"`
	State string       `json:"state"`
}

type heatmapEntryResponse struct {
	Site           siteResponse `json:"site"`
	UsageCount     int          `json:"usageCount"`
	Intensity      float64      `json:"intensity"`
	LastUsed       *time.Time   `json:"lastUsed,omitempty"`
	PercentOfTotal float64      `json:"percentOfTotal"`
}

type scoreResponse struct {
	Total          int    `json:"total"`
	Distribution   int    `json:"distribution"`
	RestCompliance int    `json:"restCompliance"`
	Explanation    string `json:"explanation"`
}

func toScoreResponse(score domain.RotationScore) scoreResponse {
	return scoreResponse{
		Total:          score.Total,
		Distribution:   score.Distribution,
		RestCompliance: score.RestCompliance,
		Explanation:    score.Explanation,
	}
}

type trendPointResponse struct {
	PeriodStart string `json:"periodStart"`
	Count       int    `json:"count"`
}

func toTrendPoints(points []domain.TrendPoint) []trendPointResponse {
	resp := make([]trendPointResponse, len(points))
	for i, p := range points {
		resp[i] = trendPointResponse{
			PeriodStart: p.PeriodStart.Format(dateLayout),
			Count:       p.Count,
		}
	}
	return resp
}

type dashboardResponse struct {
	Recommendation  *recommendationResponse `json:"recommendation"`
	Statuses        []siteStatusResponse    `json:"statuses"`
	Streak          int                     `json:"streak"`
	Score           scoreResponse           `json:"score"`
	TotalPlacements int                     `json:"totalPlacements"`
	GeneratedAt     time.Time               `json:"generatedAt"`
}

// Recommendation handles GET /api/v1/rotation/recommendation.
func (h *RotationHandler) Recommendation(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Recommend(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"recommendation": toRecommendationResponse(rec)})
}

// Statuses handles GET /api/v1/rotation/status.
func (h *RotationHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.svc.GetStatuses(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]siteStatusResponse, len(statuses))
	for i, st := range statuses {
		resp[i] = siteStatusResponse{
			Site:  toSiteResponse(st.Site),
			Rest:  toRestResponse(st.Rest),
			State: string(st.State),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"statuses": resp})
}

// Heatmap handles GET /api/v1/rotation/heatmap?from&to.
func (h *RotationHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	input, err := h.rangeInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	entries, err := h.svc.Heatmap(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := make([]heatmapEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = heatmapEntryResponse{
			Site:           toSiteResponse(e.Site),
			UsageCount:     e.UsageCount,
			Intensity:      e.Intensity,
			LastUsed:       e.LastUsed,
			PercentOfTotal: e.PercentOfTotal,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": resp})
}

// Score handles GET /api/v1/rotation/score?from&to.
func (h *RotationHandler) Score(w http.ResponseWriter, r *http.Request) {
	input, err := h.rangeInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	score, err := h.svc.Score(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toScoreResponse(score))
}

// Trend handles GET /api/v1/rotation/trend?from&to&granularity.
func (h *RotationHandler) Trend(w http.ResponseWriter, r *http.Request) {
	input, err := h.trendInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	points, err := h.svc.Trend(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"points": toTrendPoints(points)})
}

// TrendBySite handles GET /api/v1/rotation/trend/sites?from&to&granularity.
func (h *RotationHandler) TrendBySite(w http.ResponseWriter, r *http.Request) {
	input, err := h.trendInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	trends, err := h.svc.TrendBySite(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	type siteTrendResponse struct {
		Site   siteResponse         `json:"site"`
		Points []trendPointResponse `json:"points"`
	}
	resp := make([]siteTrendResponse, len(trends))
	for i, tr := range trends {
		resp[i] = siteTrendResponse{
			Site:   toSiteResponse(tr.Site),
			Points: toTrendPoints(tr.Points),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sites": resp})
}

// Streak handles GET /api/v1/rotation/streak.
func (h *RotationHandler) Streak(w http.ResponseWriter, r *http.Request) {
	streak, err := h.svc.Streak(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"streak": streak})
}

// Dashboard handles GET /api/v1/dashboard.
func (h *RotationHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Dashboard(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	statuses := make([]siteStatusResponse, len(dash.Statuses))
	for i, st := range dash.Statuses {
		statuses[i] = siteStatusResponse{
			Site:  toSiteResponse(st.Site),
			Rest:  toRestResponse(st.Rest),
			State: string(st.State),
		}
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		Recommendation:  toRecommendationResponse(dash.Recommendation),
		Statuses:        statuses,
		Streak:          dash.Streak,
		Score:           toScoreResponse(dash.Score),
		TotalPlacements: dash.TotalPlacements,
		GeneratedAt:     dash.GeneratedAt,
	})
}

// rangeInput parses from/to date params, defaulting to the trailing
// 90-day window when both are absent.
func (h *RotationHandler) rangeInput(r *http.Request) (rotation.RangeInput, error) {
	from, hasFrom, err := parseDateParam(r, "from")
	if err != nil {
		return rotation.RangeInput{}, err
	}
	to, hasTo, err := parseDateParam(r, "to")
	if err != nil {
		return rotation.RangeInput{}, err
	}

	if !hasFrom && !hasTo {
		now := time.Now().UTC()
		return rotation.RangeInput{
			From: now.AddDate(0, 0, -(defaultRangeDays - 1)),
			To:   now,
		}, nil
	}
	return rotation.RangeInput{From: from, To: to}, nil
}

func (h *RotationHandler) trendInput(r *http.Request) (rotation.TrendInput, error) {
	rng, err := h.rangeInput(r)
	if err != nil {
		return rotation.TrendInput{}, err
	}
	return rotation.TrendInput{
		From:        rng.From,
		To:          rng.To,
		Granularity: domain.TrendGranularity(r.URL.Query().Get("granularity")),
	}, nil
}
