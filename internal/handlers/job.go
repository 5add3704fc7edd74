package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jobstack-io/apiserver/internal/services"
	"github.com/jobstack-io/apiserver/internal/store"
	"github.com/jobstack-io/apiserver/types"
)

const (
	defaultListOffset = 0
	// Default page size when the caller does not send one. There is no
	// upper bound on the limit parameter; clamping it would change the
	// observable contract.
	defaultListLimit = 50
)

// JobHandler provides HTTP handlers for job postings.
type JobHandler struct {
	jobService *services.JobService
}

// NewJobHandler constructs a handler with the provided service.
func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// JobRouter registers job routes on the given router. Reads are public;
// mutations require authentication.
func JobRouter(r chi.Router, jobService *services.JobService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewJobHandler(jobService)

	r.Get("/", handler.ListJobs)
	r.With(authMiddleware).Post("/", handler.CreateJob)
	r.Route("/{jobID}", func(r chi.Router) {
		r.Get("/", handler.GetJob)
		r.With(authMiddleware).Put("/", handler.UpdateJob)
		r.With(authMiddleware).Delete("/", handler.DeleteJob)
	})
}

// ListJobs returns a filtered, paginated page of postings together with
// the total match count.
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := parseJobFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobs, count, err := h.jobService.List(r.Context(), filter, offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	writeJSON(w, http.StatusOK, JobListResponse{Jobs: jobs, Count: count})
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := parseJobID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	job, err := h.jobService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch job")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// CreateJob creates a posting owned by the authenticated user and
// returns it.
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var job types.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.jobService.Create(r.Context(), job, userID)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			writeError(w, http.StatusBadRequest, "missing required fields")
			return
		}
		writeError(w, http.StatusUnauthorized, "error in creating job")
		return
	}

	writeJSON(w, http.StatusOK, created)
}

func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseJobID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	var job types.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if _, err := h.jobService.Update(r.Context(), id, job, userID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "job not found")
		case errors.Is(err, services.ErrNotOwner):
			writeError(w, http.StatusUnauthorized, "you are not authorized to update this job")
		case errors.Is(err, services.ErrValidation):
			writeError(w, http.StatusBadRequest, "missing required fields")
		default:
			writeError(w, http.StatusInternalServerError, "error in updating job")
		}
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "job updated successfully"})
}

// DeleteJob removes a posting. A missing posting answers 400 here, not
// 404; clients depend on that distinction from the update path.
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseJobID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "job not found")
		return
	}

	if err := h.jobService.Delete(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusBadRequest, "job not found")
		case errors.Is(err, services.ErrNotOwner):
			writeError(w, http.StatusUnauthorized, "you are not authorized to delete this job")
		default:
			writeError(w, http.StatusInternalServerError, "error in deleting job")
		}
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "job deleted successfully"})
}

// JobListResponse is the search/list response payload.
type JobListResponse struct {
	Jobs  []types.Job `json:"jobs"`
	Count int         `json:"count"`
}

func parseJobID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "jobID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid job id")
	}
	return id, nil
}

func parseWindow(r *http.Request) (offset, limit int, err error) {
	offset = defaultListOffset
	limit = defaultListLimit

	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, errors.New("invalid offset")
		}
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, errors.New("invalid limit")
		}
	}

	return offset, limit, nil
}

// parseJobFilter reads the supported search parameters. Only salary,
// name and skillsRequired narrow the result set; jobPosition, jobType
// and mode are accepted for compatibility but have never filtered.
func parseJobFilter(r *http.Request) (types.JobFilter, error) {
	var filter types.JobFilter

	if raw := strings.TrimSpace(r.URL.Query().Get("salary")); raw != "" {
		salary, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || salary < 0 {
			return types.JobFilter{}, errors.New("invalid salary")
		}
		filter.Salary = salary
	}

	filter.CompanyName = strings.TrimSpace(r.URL.Query().Get("name"))
	filter.Skills = splitSkills(r.URL.Query().Get("skillsRequired"))

	return filter, nil
}

// splitSkills parses the comma-separated skillsRequired parameter,
// dropping empty entries.
func splitSkills(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		skill := strings.TrimSpace(part)
		if skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}
