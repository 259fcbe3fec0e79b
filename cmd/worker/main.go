package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/generation"
	"server/internal/infra"
	"server/internal/infra/credentials"
	"server/internal/providers/genai"
	"server/internal/storage"
)

const (
	videoAttempts     = 2
	videoRetryBackoff = 15 * time.Second
)

type worker struct {
	jobs   *repo.JobRepositoryPG
	assets *repo.AssetRepositoryPG
	videos *generation.VideoClient

	assetBaseURL string
	pollInterval time.Duration
	logger       infra.Logger
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	files, err := storage.NewFileStore(cfg.StorageDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
	}

	api, err := genai.NewClient(genai.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure generation provider")
	}

	creds := credentials.NewStore(pool, cfg.GeminiAPIKey)
	videos := generation.NewVideoClient(api, cfg.ModelVideo, creds, files, generation.VideoOptions{
		PollInterval: cfg.VideoPollInterval,
		WaitBudget:   cfg.VideoWaitBudget,
		Resolution:   cfg.VideoResolution,
	}, logger)

	w := &worker{
		jobs:         repo.NewJobRepository(pool),
		assets:       repo.NewAssetRepository(pool),
		videos:       videos,
		assetBaseURL: cfg.StorageBaseURL,
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}

	if err := w.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func (w *worker) run(ctx context.Context) error {
	w.logger.Info().Msg("worker: started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		job, err := w.jobs.ClaimNext(ctx, domain.JobTypeVideoGenerate)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				if err := sleep(ctx, w.pollInterval); err != nil {
					return err
				}
				continue
			}
			w.logger.Error().Err(err).Msg("worker: failed to claim job")
			if err := sleep(ctx, w.pollInterval); err != nil {
				return err
			}
			continue
		}

		w.handle(ctx, job)
	}
}

func (w *worker) handle(ctx context.Context, job *domain.Job) {
	w.logger.Info().Str("job_id", job.ID).Msg("worker: picked job")

	result, err := w.process(ctx, job)
	if err != nil {
		classified := generation.Classify(err)
		w.logger.Error().
			Str("job_id", job.ID).
			Str("kind", string(classified.Kind)).
			Str("diagnostic", classified.Diagnostic).
			Msg("worker: job failed")
		if markErr := w.jobs.MarkFailed(ctx, job.ID, string(classified.Kind), classified.Diagnostic); markErr != nil {
			w.logger.Error().Err(markErr).Str("job_id", job.ID).Msg("worker: mark failed errored")
		}
		return
	}

	if err := w.jobs.MarkSucceeded(ctx, job.ID, result); err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: mark succeeded errored")
		return
	}
	w.logger.Info().Str("job_id", job.ID).Msg("worker: job succeeded")
}

// process runs the long video poll and records the downloaded asset. It
// returns the result payload stored on the job row.
func (w *worker) process(ctx context.Context, job *domain.Job) ([]byte, error) {
	var req generation.Request
	if err := json.Unmarshal(job.PromptJSON, &req); err != nil {
		return nil, fmt.Errorf("decode job prompt: %w", err)
	}

	opts := generation.RetryOptions{Attempts: videoAttempts, Backoff: videoRetryBackoff}
	video, err := generation.WithRetry(ctx, opts, func(ctx context.Context) (*generation.VideoResult, error) {
		result, err := w.videos.Generate(ctx, req)
		if err != nil && generation.IsTimeout(err) {
			// An exhausted poll budget already held the claim for the full
			// wait; fail the job instead of burning a second budget.
			classified := generation.Classify(err)
			return nil, &generation.ClassifiedError{Kind: classified.Kind, Diagnostic: classified.Diagnostic}
		}
		return result, err
	})
	if err != nil {
		return nil, err
	}

	asset := &domain.Asset{
		ID:         uuid.NewString(),
		UserID:     job.UserID,
		JobID:      job.ID,
		Kind:       domain.AssetKindVideo,
		StorageKey: video.StorageKey,
		MIMEType:   video.MIMEType,
		Bytes:      video.Bytes,
		SourceURI:  video.SourceURI,
	}
	asset.URL = w.assetBaseURL + "/" + asset.ID
	if err := w.assets.Save(ctx, asset); err != nil {
		return nil, fmt.Errorf("save asset: %w", err)
	}

	return json.Marshal(map[string]any{
		"assetId":  asset.ID,
		"url":      asset.URL,
		"mimeType": asset.MIMEType,
		"bytes":    asset.Bytes,
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
