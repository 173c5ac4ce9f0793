package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/jobsink/internal/filter"
	"github.com/jimezsa/jobsink/internal/ingest"
	"github.com/jimezsa/jobsink/internal/models"
	"github.com/jimezsa/jobsink/internal/store"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	storeFilter := store.Filter{
		Q:            query.Get("q"),
		Source:       query.Get("source"),
		Company:      query.Get("company"),
		OriginDomain: query.Get("origin_domain"),
		OnlyATS:      boolParam(query.Get("only_ats"), false),
		Remote:       boolPtrParam(query.Get("remote")),
		Contract:     boolPtrParam(query.Get("contract")),
	}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			storeFilter.Limit = limit
		}
	}

	content, err := filter.NewContent(s.catalog, filter.ContentOptions{
		KeepEducation:  !boolParam(query.Get("exclude_tutoring"), true),
		KeepEntryLevel: !boolParam(query.Get("exclude_entry"), true),
		KeepUnpaid:     !boolParam(query.Get("exclude_unpaid"), true),
		Role:           query.Get("role"),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), storeFilter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	kept := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if content.Keep(job) {
			kept = append(kept, job)
		}
	}

	writeJSON(w, http.StatusOK, kept)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := s.store.GetJob(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, job)
}

type createJobRequest struct {
	Source      string   `json:"source"`
	SourceJobID string   `json:"source_job_id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	Contract    bool     `json:"contract"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	ApplyURL    string   `json:"apply_url"`
	Description string   `json:"description"`
	PostedAt    string   `json:"posted_at"`
}

// handleCreateJob accepts a manually submitted posting and runs it
// through the same normalize-and-upsert path as the ingestion pipeline,
// so manual entries dedupe against scraped ones.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var payload createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	source := strings.TrimSpace(payload.Source)
	if source == "" {
		source = "manual"
	}

	raw := models.RawJob{
		Source:      source,
		SourceJobID: payload.SourceJobID,
		Title:       payload.Title,
		Company:     payload.Company,
		Location:    payload.Location,
		Remote:      payload.Remote,
		Contract:    payload.Contract,
		Tags:        payload.Tags,
		URL:         payload.URL,
		ApplyURL:    payload.ApplyURL,
		Description: payload.Description,
	}
	if posted := strings.TrimSpace(payload.PostedAt); posted != "" {
		if ts, err := time.Parse(time.RFC3339, posted); err == nil {
			raw.PostedAt = ts
		}
	}

	job := ingest.Normalize(raw)

	tx, err := s.store.BeginTx(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	inserted, err := s.store.UpsertJob(r.Context(), tx, &job)
	if err != nil {
		_ = tx.Rollback()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	writeJSON(w, status, job)
}

func boolParam(value string, fallback bool) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	switch value {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func boolPtrParam(value string) *bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return nil
	}
	parsed := boolParam(value, false)
	return &parsed
}
