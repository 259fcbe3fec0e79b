package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"server/internal/infra"
	"server/internal/providers/genai"
)

// AssetStore materializes downloaded binaries into locally addressable
// resources. Satisfied by storage.FileStore.
type AssetStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
}

// VideoOptions tunes the long-running job client. Zero values fall back to
// the defaults below.
type VideoOptions struct {
	// PollInterval is the fixed wait between status polls.
	PollInterval time.Duration
	// WaitBudget bounds the total time spent polling before the job is
	// abandoned with a Timeout-classified error.
	WaitBudget time.Duration
	// NumberOfVideos and Resolution are passed through to the remote config.
	NumberOfVideos int
	Resolution     string
}

const (
	defaultPollInterval = 10 * time.Second
	defaultWaitBudget   = 10 * time.Minute
)

// VideoClient drives asynchronous video generation: submit, poll to
// completion within a bounded budget, then fetch and store the asset.
type VideoClient struct {
	api      *genai.Client
	model    string
	creds    CredentialGate
	store    AssetStore
	interval time.Duration
	budget   time.Duration
	videos   int
	res      string
	logger   infra.Logger
}

// NewVideoClient wires a long-running job client.
func NewVideoClient(api *genai.Client, model string, creds CredentialGate, store AssetStore, opts VideoOptions, logger infra.Logger) *VideoClient {
	if creds == nil {
		creds = AlwaysAllow{}
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	budget := opts.WaitBudget
	if budget <= 0 {
		budget = defaultWaitBudget
	}
	videos := opts.NumberOfVideos
	if videos <= 0 {
		videos = 1
	}
	res := opts.Resolution
	if res == "" {
		res = "720p"
	}
	return &VideoClient{
		api:      api,
		model:    model,
		creds:    creds,
		store:    store,
		interval: interval,
		budget:   budget,
		videos:   videos,
		res:      res,
		logger:   logger,
	}
}

// Generate runs the full submit/poll/fetch lifecycle and returns a handle to
// the locally stored asset. Cancellation is honored before every poll and
// before the final fetch. All failures are *ClassifiedError.
func (v *VideoClient) Generate(ctx context.Context, req Request) (*VideoResult, error) {
	if req.Intent != IntentVideoGeneration {
		return nil, Classify(&ValidationError{Field: "intent", Reason: fmt.Sprintf("expected %s, got %s", IntentVideoGeneration, req.Intent)})
	}
	key, err := v.creds.Ensure(ctx)
	if err != nil {
		return nil, Classify(err)
	}
	// The selected key authenticates the whole submit/poll/fetch lifecycle.
	api := v.api
	if key != "" {
		api = api.WithAPIKey(key)
	}

	aspect := req.Config.AspectRatio
	if aspect == "" {
		aspect = "16:9"
	}
	op, err := api.GenerateVideos(ctx, v.model, req.Prompt, genai.VideoConfig{
		NumberOfVideos: v.videos,
		Resolution:     v.res,
		AspectRatio:    aspect,
	})
	if err != nil {
		classified := Classify(err)
		// A rejected project/credential on submit re-opens the selection
		// flow so the next attempt can pick a different one.
		if classified.Kind == KindResourceNotFound {
			if invErr := v.creds.Invalidate(ctx); invErr != nil {
				v.logger.Warn().Err(invErr).Msg("video: failed to invalidate credential selection")
			}
		}
		return nil, classified
	}

	op, err = v.pollUntilDone(ctx, api, op)
	if err != nil {
		return nil, Classify(err)
	}
	if op.Error != nil {
		return nil, Classify(&genai.APIError{StatusCode: op.Error.Code, Message: op.Error.Message})
	}

	locator := firstVideoURI(op)
	if locator == "" {
		return nil, Classify(&ParseError{Intent: req.Intent, Err: ErrEmptyResponse})
	}

	if err := ctx.Err(); err != nil {
		return nil, Classify(err)
	}
	data, mime, err := api.DownloadFile(ctx, locator)
	if err != nil {
		return nil, Classify(err)
	}
	if mime == "" {
		mime = "video/mp4"
	}

	objectKey := fmt.Sprintf("videos/%s.mp4", uuid.NewString())
	storedKey, err := v.store.Write(ctx, objectKey, data)
	if err != nil {
		return nil, Classify(err)
	}

	v.logger.Info().
		Str("operation", op.Name).
		Str("storage_key", storedKey).
		Int("bytes", len(data)).
		Msg("video: asset materialized")

	return &VideoResult{
		StorageKey: storedKey,
		MIMEType:   mime,
		Bytes:      len(data),
		SourceURI:  locator,
	}, nil
}

// pollUntilDone re-queries the operation at a fixed interval until it
// completes, the context is cancelled, or the wait budget is exhausted.
func (v *VideoClient) pollUntilDone(ctx context.Context, api *genai.Client, op *genai.Operation) (*genai.Operation, error) {
	deadline := time.Now().Add(v.budget)
	timer := time.NewTimer(v.interval)
	defer timer.Stop()

	for !op.Done {
		if time.Now().After(deadline) {
			v.logger.Warn().
				Str("operation", op.Name).
				Dur("budget", v.budget).
				Msg("video: wait budget exhausted, abandoning job")
			return nil, errTimeout(v.budget.String())
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
		timer.Reset(v.interval)

		next, err := api.GetOperation(ctx, op.Name)
		if err != nil {
			return nil, err
		}
		op = next
		v.logger.Debug().
			Str("operation", op.Name).
			Bool("done", op.Done).
			Msg("video: polled operation")
	}
	return op, nil
}

func firstVideoURI(op *genai.Operation) string {
	if op == nil || op.Response == nil {
		return ""
	}
	for _, video := range op.Response.GeneratedVideos {
		if video.Video != nil && strings.TrimSpace(video.Video.URI) != "" {
			return video.Video.URI
		}
	}
	return ""
}

// IsTimeout reports whether err is the poll-budget timeout.
func IsTimeout(err error) bool {
	var classified *ClassifiedError
	return errors.As(err, &classified) && classified.Kind == KindTimeout
}
