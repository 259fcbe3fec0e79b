package generation

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/providers/genai"
)

// ModelConfig names the model variant used per capability tier.
type ModelConfig struct {
	Fast     string
	Pro      string
	Image    string
	ImagePro string
	Video    string
}

// Client executes synchronous generation requests: structured plans and
// reports, chat, and image generation/editing. Long-running video requests
// go through VideoClient.
type Client struct {
	api    *genai.Client
	models ModelConfig
	creds  CredentialGate
	logger infra.Logger
}

// NewClient wires a synchronous content client. A nil gate disables the
// credential precondition (useful for tests and free-tier deployments).
func NewClient(api *genai.Client, models ModelConfig, creds CredentialGate, logger infra.Logger) *Client {
	if creds == nil {
		creds = AlwaysAllow{}
	}
	return &Client{api: api, models: models, creds: creds, logger: logger}
}

const chatTemperature = 0.7

// Generate dispatches the request to the remote capability, validates the
// response against the intent's contract, and returns a typed result. Every
// failure is a *ClassifiedError; validation failures are never retried here.
func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	switch req.Intent {
	case IntentPlanGeneration, IntentDayRegeneration, IntentNutritionPlan,
		IntentBiometricAnalysis, IntentExerciseDiscovery:
		return c.generateStructured(ctx, req)
	case IntentExerciseRegeneration:
		return c.generateText(ctx, req)
	case IntentChat:
		return c.generateChat(ctx, req)
	case IntentImageGeneration, IntentImageEdit:
		return c.generateImage(ctx, req)
	default:
		return nil, Classify(&ValidationError{Field: "intent", Reason: fmt.Sprintf("unsupported intent %q", req.Intent)})
	}
}

func (c *Client) generateStructured(ctx context.Context, req Request) (*Result, error) {
	contract, ok := ContractFor(req.Intent)
	if !ok {
		return nil, Classify(&ValidationError{Field: "intent", Reason: "no contract registered"})
	}

	wireReq := genai.GenerateContentRequest{
		Contents: []genai.Content{{Role: domain.RoleUser, Parts: c.buildParts(req)}},
		GenerationConfig: &genai.GenerationConfig{
			Temperature:      req.Config.Temperature,
			ResponseMIMEType: "application/json",
			ResponseSchema:   contract.ResponseSchema,
		},
	}

	resp, err := c.api.GenerateContent(ctx, c.modelFor(req.Intent), wireReq)
	if err != nil {
		return nil, Classify(err)
	}

	typed, applied, err := contract.Validate([]byte(resp.Text()))
	if err != nil {
		return nil, Classify(err)
	}
	for _, field := range applied {
		c.logger.Warn().
			Str("intent", string(req.Intent)).
			Str("field", field).
			Msg("generation: contract fallback default applied")
	}

	result := &Result{Intent: req.Intent, Seq: req.Seq, AppliedDefaults: applied}
	switch v := typed.(type) {
	case *domain.TrainingPlan:
		result.Plan = v
	case *domain.DailyRoutine:
		result.Day = v
	case *domain.NutritionPlan:
		result.Nutrition = v
	case *domain.BiometricReport:
		result.Report = v
	case *domain.Exercise:
		result.Exercise = v
	}
	return result, nil
}

func (c *Client) generateText(ctx context.Context, req Request) (*Result, error) {
	wireReq := genai.GenerateContentRequest{
		Contents: []genai.Content{{Role: domain.RoleUser, Parts: []genai.Part{{Text: req.Prompt}}}},
	}
	resp, err := c.api.GenerateContent(ctx, c.models.Fast, wireReq)
	if err != nil {
		return nil, Classify(err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, Classify(&ParseError{Intent: req.Intent, Err: ErrEmptyResponse})
	}
	return &Result{Intent: req.Intent, Seq: req.Seq, Text: text}, nil
}

func (c *Client) generateChat(ctx context.Context, req Request) (*Result, error) {
	contents := make([]genai.Content, 0, len(req.History)+1)
	for _, msg := range req.History {
		role := domain.RoleUser
		if msg.Role == domain.RoleModel {
			role = "model"
		}
		contents = append(contents, genai.Content{Role: role, Parts: []genai.Part{{Text: msg.Text}}})
	}
	contents = append(contents, genai.Content{Role: domain.RoleUser, Parts: []genai.Part{{Text: req.Prompt}}})

	temp := chatTemperature
	if req.Config.Temperature != nil {
		temp = *req.Config.Temperature
	}
	wireReq := genai.GenerateContentRequest{
		Contents:         contents,
		GenerationConfig: &genai.GenerationConfig{Temperature: &temp},
	}
	if req.Config.UseSearch {
		wireReq.Tools = []genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := c.api.GenerateContent(ctx, c.models.Fast, wireReq)
	if err != nil {
		return nil, Classify(err)
	}
	return &Result{
		Intent:    req.Intent,
		Seq:       req.Seq,
		Text:      resp.Text(),
		Citations: collectCitations(resp),
	}, nil
}

func (c *Client) generateImage(ctx context.Context, req Request) (*Result, error) {
	// Paid image tiers resolve the credential selection up front so the
	// failure is immediate and actionable instead of a rejected call. The
	// selected key authenticates this call, not the process-level binding.
	key, err := c.creds.Ensure(ctx)
	if err != nil {
		return nil, Classify(err)
	}
	api := c.api
	if key != "" {
		api = api.WithAPIKey(key)
	}

	model := c.models.Image
	wireReq := genai.GenerateContentRequest{
		Contents: []genai.Content{{Role: domain.RoleUser, Parts: c.buildParts(req)}},
	}
	if req.Intent == IntentImageGeneration {
		model = c.models.ImagePro
		aspect := req.Config.AspectRatio
		if aspect == "" {
			aspect = "1:1"
		}
		size := req.Config.ImageSize
		if size == "" {
			size = "1K"
		}
		wireReq.GenerationConfig = &genai.GenerationConfig{
			ImageConfig: &genai.ImageConfig{AspectRatio: aspect, ImageSize: size},
		}
	}

	resp, err := api.GenerateContent(ctx, model, wireReq)
	if err != nil {
		return nil, Classify(err)
	}

	for _, part := range resp.Parts() {
		if part.InlineData == nil || part.InlineData.Data == "" {
			continue
		}
		mime := part.InlineData.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return &Result{
			Intent:       req.Intent,
			Seq:          req.Seq,
			ImageDataURI: fmt.Sprintf("data:%s;base64,%s", mime, part.InlineData.Data),
		}, nil
	}
	return nil, Classify(&ParseError{Intent: req.Intent, Err: ErrEmptyResponse})
}

// buildParts assembles content parts in media-then-text order, matching how
// the image-conditioned prompts are phrased.
func (c *Client) buildParts(req Request) []genai.Part {
	parts := make([]genai.Part, 0, len(req.Media)+1)
	for _, blob := range req.Media {
		parts = append(parts, genai.Part{InlineData: &genai.Blob{
			MIMEType: blob.MIME,
			Data:     base64.StdEncoding.EncodeToString(blob.Data),
		}})
	}
	parts = append(parts, genai.Part{Text: req.Prompt})
	return parts
}

// modelFor selects the model tier for a structured intent. Plan work uses the
// higher-capability variant; quick lookups stay on the fast tier.
func (c *Client) modelFor(intent Intent) string {
	switch intent {
	case IntentPlanGeneration, IntentDayRegeneration:
		return c.models.Pro
	default:
		return c.models.Fast
	}
}
