// Package rest exposes the HTTP API: placement history CRUD, the site
// catalog with settings, and the derived rotation views (recommendation,
// status, heatmap, score, trends, streak, dashboard).
package rest

import "net/http"

// NewRouter builds the ServeMux with all API routes registered.
func NewRouter(
	placements *PlacementHandler,
	sites *SiteHandler,
	rotation *RotationHandler,
	health *HealthHandler,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Probes.
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	// Placement history.
	mux.HandleFunc("POST /api/v1/placements", placements.Log)
	mux.HandleFunc("GET /api/v1/placements", placements.List)
	mux.HandleFunc("GET /api/v1/placements/{id}", placements.Get)
	mux.HandleFunc("PATCH /api/v1/placements/{id}", placements.Update)
	mux.HandleFunc("DELETE /api/v1/placements/{id}", placements.Delete)

	// Site catalog and settings.
	mux.HandleFunc("GET /api/v1/sites", sites.List)
	mux.HandleFunc("POST /api/v1/sites", sites.Create)
	mux.HandleFunc("PATCH /api/v1/sites/{key}", sites.Rename)
	mux.HandleFunc("DELETE /api/v1/sites/{key}", sites.Delete)
	mux.HandleFunc("PUT /api/v1/sites/{key}/enabled", sites.SetEnabled)
	mux.HandleFunc("GET /api/v1/settings", sites.GetSettings)
	mux.HandleFunc("PATCH /api/v1/settings", sites.UpdateSettings)

	// Derived rotation state.
	mux.HandleFunc("GET /api/v1/rotation/recommendation", rotation.Recommendation)
	mux.HandleFunc("GET /api/v1/rotation/status", rotation.Statuses)
	mux.HandleFunc("GET /api/v1/rotation/heatmap", rotation.Heatmap)
	mux.HandleFunc("GET /api/v1/rotation/score", rotation.Score)
	mux.HandleFunc("GET /api/v1/rotation/trend", rotation.Trend)
	mux.HandleFunc("GET /api/v1/rotation/trend/sites", rotation.TrendBySite)
	mux.HandleFunc("GET /api/v1/rotation/streak", rotation.Streak)
	mux.HandleFunc("GET /api/v1/dashboard", rotation.Dashboard)

	return mux
}
