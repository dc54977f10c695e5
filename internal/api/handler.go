// internal/api/handler.go
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"

	"vibe-apps-aggregator/internal/database"
	"vibe-apps-aggregator/internal/export"
)

// Handler is the container for API dependencies.
type Handler struct {
	db     database.Querier
	logger *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(db database.Querier, logger *slog.Logger) http.Handler {
	h := &Handler{
		db:     db,
		logger: logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/platforms", h.listPlatforms)
		r.Get("/stats/platforms", h.getPlatformStatistics)
		r.Get("/stats/tools", h.getAiToolUsage)
		r.Get("/stats/languages", h.getGithubRepositoryStats)
		r.Get("/applications", h.listApplications)
		r.Get("/applications/{id}", h.getApplication)
		r.Get("/export/applications.csv", h.exportApplicationsCSV)
		r.Get("/jobs", h.listJobs)
		r.Post("/applications/{id}/deactivate", h.deactivateApplication)
		r.Delete("/applications/{id}", h.deleteApplication)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listPlatforms returns the seeded platform reference rows.
// GET /v1/platforms
func (h *Handler) listPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.db.ListPlatforms(r.Context())
	if err != nil {
		h.logger.Error("Failed to list platforms", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondWithJSON(w, http.StatusOK, platforms)
}

// getPlatformStatistics returns per-platform aggregate counts.
// GET /v1/stats/platforms
func (h *Handler) getPlatformStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetPlatformStatistics(r.Context())
	if err != nil {
		h.logger.Error("Failed to get platform statistics", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// getAiToolUsage returns per-tool aggregate counts.
// GET /v1/stats/tools
func (h *Handler) getAiToolUsage(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetAiToolUsage(r.Context())
	if err != nil {
		h.logger.Error("Failed to get tool usage", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// getGithubRepositoryStats returns per-language repository aggregates.
// GET /v1/stats/languages
func (h *Handler) getGithubRepositoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetGithubRepositoryStats(r.Context())
	if err != nil {
		h.logger.Error("Failed to get repository statistics", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// listApplications returns the flat application projection.
// GET /v1/applications?platform=NAME&limit=N
func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, 100)
	if !ok {
		return
	}

	rows, err := h.db.ListApplicationExport(r.Context(), database.ListApplicationExportParams{
		PlatformName: r.URL.Query().Get("platform"),
		Limit:        limit,
	})
	if err != nil {
		h.logger.Error("Failed to list applications", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondWithJSON(w, http.StatusOK, export.ToRows(rows))
}

// applicationDetail is one application with its extension rows.
type applicationDetail struct {
	Application  database.Application       `json:"application"`
	GithubRepo   *database.GithubRepository `json:"github_repository,omitempty"`
	Files        []database.RepositoryFile  `json:"repository_files,omitempty"`
	CommunityApp *database.CommunityApp     `json:"community_app,omitempty"`
}

// getApplication returns one application with its GitHub or community
// extension rows.
// GET /v1/applications/{id}
func (h *Handler) getApplication(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	app, err := h.db.GetApplication(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		respondWithError(w, http.StatusNotFound, "Application not found")
		return
	} else if err != nil {
		h.logger.Error("Failed to get application", "id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	detail := applicationDetail{Application: app}

	repo, err := h.db.GetGithubRepositoryByApplicationID(r.Context(), id)
	switch {
	case err == nil:
		detail.GithubRepo = &repo
		files, err := h.db.ListRepositoryFiles(r.Context(), repo.ID)
		if err != nil {
			h.logger.Error("Failed to list repository files", "id", id, "error", err)
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		detail.Files = files
	case !errors.Is(err, pgx.ErrNoRows):
		h.logger.Error("Failed to get github repository", "id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	community, err := h.db.GetCommunityAppByApplicationID(r.Context(), id)
	switch {
	case err == nil:
		detail.CommunityApp = &community
	case !errors.Is(err, pgx.ErrNoRows):
		h.logger.Error("Failed to get community app", "id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

// exportApplicationsCSV streams the flat projection as CSV.
// GET /v1/export/applications.csv?platform=NAME&limit=N
func (h *Handler) exportApplicationsCSV(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, 10000)
	if !ok {
		return
	}

	rows, err := h.db.ListApplicationExport(r.Context(), database.ListApplicationExportParams{
		PlatformName: r.URL.Query().Get("platform"),
		Limit:        limit,
	})
	if err != nil {
		h.logger.Error("Failed to export applications", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="applications.csv"`)
	if err := export.WriteCSV(w, rows); err != nil {
		h.logger.Error("Failed to write CSV", "error", err)
	}
}

// listJobs returns recent scraping jobs, newest first.
// GET /v1/jobs?limit=N
func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, 20)
	if !ok {
		return
	}

	jobs, err := h.db.ListRecentScrapingJobs(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list jobs", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondWithJSON(w, http.StatusOK, jobs)
}

// deactivateApplication soft-deletes an application; extension rows stay.
// POST /v1/applications/{id}/deactivate
func (h *Handler) deactivateApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := h.lookupApplication(w, r)
	if !ok {
		return
	}
	if err := h.db.DeactivateApplication(r.Context(), id); err != nil {
		h.logger.Error("Failed to deactivate application", "id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// deleteApplication hard-deletes an application; extension and join rows
// cascade with it.
// DELETE /v1/applications/{id}
func (h *Handler) deleteApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := h.lookupApplication(w, r)
	if !ok {
		return
	}
	if err := h.db.DeleteApplication(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete application", "id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// lookupApplication parses the {id} URL param and verifies the row exists.
func (h *Handler) lookupApplication(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid application id")
		return 0, false
	}

	if _, err := h.db.GetApplication(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondWithError(w, http.StatusNotFound, "Application not found")
			return 0, false
		}
		h.logger.Error("Failed to get application", "id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return 0, false
	}
	return id, true
}

func parseLimit(w http.ResponseWriter, r *http.Request, def int32) (int32, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return def, true
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 10000 {
		respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter. Must be an integer between 1 and 10000.")
		return 0, false
	}
	return int32(limit), true
}
