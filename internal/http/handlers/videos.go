package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/generation"
	"server/internal/middleware"
)

type videoGenerateRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"`
	Resolution  string `json:"resolution"`
}

// SubmitVideo validates the request, queues a video generation job, and
// returns immediately. The worker picks the job up and runs the long poll.
func (a *App) SubmitVideo(w http.ResponseWriter, r *http.Request) {
	var req videoGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	genReq, err := generation.Build(generation.IntentVideoGeneration, generation.Input{
		Prompt: req.Prompt,
		Config: generation.Config{AspectRatio: req.AspectRatio, Resolution: req.Resolution},
	})
	if err != nil {
		a.generationError(w, r, err)
		return
	}

	promptJSON, err := json.Marshal(genReq)
	if err != nil {
		a.Logger.Error().Err(err).Msg("marshal video request")
		a.error(w, http.StatusInternalServerError, "internal", "could not queue job")
		return
	}

	job := &domain.Job{
		ID:          uuid.NewString(),
		UserID:      a.currentUserID(r),
		Type:        domain.JobTypeVideoGenerate,
		Status:      domain.JobStatusQueued,
		PromptJSON:  promptJSON,
		AspectRatio: req.AspectRatio,
	}
	if err := a.Jobs.Create(r.Context(), job); err != nil {
		a.Logger.Error().Err(err).Msg("create video job")
		a.error(w, http.StatusInternalServerError, "internal", "could not queue job")
		return
	}

	a.json(w, http.StatusAccepted, map[string]string{
		"jobId":  job.ID,
		"status": string(job.Status),
	})
}

func (a *App) GetVideoJob(w http.ResponseWriter, r *http.Request) {
	job, err := a.Jobs.GetByID(r.Context(), a.currentUserID(r), chi.URLParam(r, "jobID"))
	if err != nil {
		a.notFoundOr(w, err, "job")
		return
	}

	resp := map[string]any{
		"jobId":     job.ID,
		"status":    string(job.Status),
		"createdAt": job.CreatedAt,
		"updatedAt": job.UpdatedAt,
	}

	switch job.Status {
	case domain.JobStatusFailed:
		classified := &generation.ClassifiedError{Kind: generation.Kind(job.ErrorKind)}
		resp["error"] = job.ErrorKind
		resp["message"] = classified.UserMessage(middleware.LocaleFromContext(r.Context()))
	case domain.JobStatusSucceeded:
		assets, err := a.Assets.ListByJobID(r.Context(), job.ID)
		if err != nil {
			a.Logger.Error().Err(err).Str("job_id", job.ID).Msg("list job assets")
			a.error(w, http.StatusInternalServerError, "internal", "could not load assets")
			return
		}
		resp["assets"] = assets
	}

	a.json(w, http.StatusOK, resp)
}

func (a *App) ListVideoJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := a.Jobs.ListByUser(r.Context(), a.currentUserID(r), 50)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list video jobs")
		a.error(w, http.StatusInternalServerError, "internal", "could not list jobs")
		return
	}

	out := make([]map[string]any, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, map[string]any{
			"jobId":     job.ID,
			"status":    string(job.Status),
			"createdAt": job.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"jobs": out})
}
