package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"server/internal/infra"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client is a thin facade over the Gemini REST surface. It knows how to issue
// synchronous generateContent calls, start and poll long-running video
// operations, and fetch generated assets. Translation between domain intents
// and wire payloads lives in the generation package; this client only speaks
// the wire contract.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// Blob is inline binary data carried in a content part.
type Blob struct {
	MIMEType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// FileRef points at remotely hosted media.
type FileRef struct {
	MIMEType string `json:"mimeType,omitempty"`
	FileURI  string `json:"fileUri,omitempty"`
}

// Part is one element of a content turn. Exactly one field is set.
type Part struct {
	Text       string   `json:"text,omitempty"`
	InlineData *Blob    `json:"inlineData,omitempty"`
	FileData   *FileRef `json:"fileData,omitempty"`
}

// Content is a single conversational turn.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts,omitempty"`
}

// Tool enables an augmentation for a request.
type Tool struct {
	GoogleSearch *GoogleSearch `json:"googleSearch,omitempty"`
}

// GoogleSearch enables live web-search grounding.
type GoogleSearch struct{}

// ImageConfig tunes image-producing models.
type ImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

// GenerationConfig tunes a generateContent call. ResponseSchema is raw JSON
// so the caller can hand over a prebuilt schema document untouched.
type GenerationConfig struct {
	Temperature      *float64        `json:"temperature,omitempty"`
	CandidateCount   int             `json:"candidateCount,omitempty"`
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
	ImageConfig      *ImageConfig    `json:"imageConfig,omitempty"`
}

// GenerateContentRequest is the synchronous generation payload.
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	Tools            []Tool            `json:"tools,omitempty"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// WebSource identifies a grounded web citation.
type WebSource struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

// GroundingChunk is a single grounding source reference.
type GroundingChunk struct {
	Web *WebSource `json:"web,omitempty"`
}

// GroundingMetadata carries search-augmentation sources for a candidate.
type GroundingMetadata struct {
	GroundingChunks []GroundingChunk `json:"groundingChunks,omitempty"`
}

// Candidate is one generated answer.
type Candidate struct {
	Content           Content            `json:"content"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// GenerateContentResponse is the synchronous generation envelope.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Text returns the first non-empty text part across candidates.
func (r *GenerateContentResponse) Text() string {
	if r == nil {
		return ""
	}
	for _, cand := range r.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

// Parts returns the parts of the first candidate, or nil.
func (r *GenerateContentResponse) Parts() []Part {
	if r == nil || len(r.Candidates) == 0 {
		return nil
	}
	return r.Candidates[0].Content.Parts
}

// VideoConfig tunes a long-running video generation.
type VideoConfig struct {
	NumberOfVideos int    `json:"numberOfVideos,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
}

// VideoFile locates a produced video asset on the files service.
type VideoFile struct {
	URI      string `json:"uri,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
}

// GeneratedVideo is a single produced video sample.
type GeneratedVideo struct {
	Video *VideoFile `json:"video,omitempty"`
}

// VideoOperationResponse is the payload of a completed video operation.
type VideoOperationResponse struct {
	GeneratedVideos []GeneratedVideo `json:"generatedVideos,omitempty"`
}

// OperationError reports a failed long-running operation.
type OperationError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Operation is a long-running job handle. Done stays false until the remote
// operation finishes, at which point either Response or Error is populated.
type Operation struct {
	Name     string                  `json:"name"`
	Done     bool                    `json:"done"`
	Error    *OperationError         `json:"error,omitempty"`
	Response *VideoOperationResponse `json:"response,omitempty"`
}

type videoInstance struct {
	Prompt string `json:"prompt"`
}

type predictLongRunningRequest struct {
	Instances  []videoInstance `json:"instances"`
	Parameters *VideoConfig    `json:"parameters,omitempty"`
}

// operationEnvelope unwraps the nested response key some operation payloads use.
type operationEnvelope struct {
	Name     string          `json:"name"`
	Done     bool            `json:"done"`
	Error    *OperationError `json:"error,omitempty"`
	Response *struct {
		GenerateVideoResponse *VideoOperationResponse `json:"generateVideoResponse,omitempty"`
		GeneratedVideos       []GeneratedVideo        `json:"generatedVideos,omitempty"`
	} `json:"response,omitempty"`
}

// APIError is a non-2xx reply from the remote service, preserving the status
// code and the diagnostic message for classification.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gemini status %d", e.StatusCode)
}

type apiErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
		Status  string `json:"status,omitempty"`
	} `json:"error"`
}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// a nil HTTP client; a reusable one with sensible timeouts will be created.
func NewClient(opts Options) (*Client, error) {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}, nil
}

// WithAPIKey returns a copy of the client bound to a different credential.
// The HTTP client, base URL and logger are shared.
func (c *Client) WithAPIKey(key string) *Client {
	clone := *c
	clone.apiKey = strings.TrimSpace(key)
	return &clone
}

// HasAPIKey reports whether a credential is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// GenerateContent issues a synchronous generation call against the given model.
func (c *Client) GenerateContent(ctx context.Context, model string, req GenerateContentRequest) (*GenerateContentResponse, error) {
	var resp GenerateContentResponse
	path := fmt.Sprintf("/models/%s:generateContent", url.PathEscape(model))
	if err := c.invoke(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateVideos starts a long-running video generation and returns the
// operation handle. The operation is almost never done on return; callers
// poll it via GetOperation.
func (c *Client) GenerateVideos(ctx context.Context, model, prompt string, cfg VideoConfig) (*Operation, error) {
	payload := predictLongRunningRequest{
		Instances:  []videoInstance{{Prompt: prompt}},
		Parameters: &cfg,
	}
	var envelope operationEnvelope
	path := fmt.Sprintf("/models/%s:predictLongRunning", url.PathEscape(model))
	if err := c.invoke(ctx, http.MethodPost, path, payload, &envelope); err != nil {
		return nil, err
	}
	op := envelope.toOperation()
	c.logger.Debug().
		Str("model", model).
		Str("operation", op.Name).
		Msg("genai: video operation started")
	return op, nil
}

// GetOperation re-queries a long-running operation by name.
func (c *Client) GetOperation(ctx context.Context, name string) (*Operation, error) {
	var envelope operationEnvelope
	path := "/" + strings.TrimLeft(name, "/")
	if err := c.invoke(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.toOperation(), nil
}

func (e *operationEnvelope) toOperation() *Operation {
	op := &Operation{Name: e.Name, Done: e.Done, Error: e.Error}
	if e.Response != nil {
		if e.Response.GenerateVideoResponse != nil {
			op.Response = e.Response.GenerateVideoResponse
		} else if len(e.Response.GeneratedVideos) > 0 {
			op.Response = &VideoOperationResponse{GeneratedVideos: e.Response.GeneratedVideos}
		}
	}
	return op
}

// DownloadFile performs an authenticated fetch of a generated asset locator
// and returns the raw bytes plus the reported content type.
func (c *Client) DownloadFile(ctx context.Context, uri string) ([]byte, string, error) {
	target := uri
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(uri, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create download request: %w", err)
	}
	if c.apiKey != "" {
		q := req.URL.Query()
		q.Set("key", c.apiKey)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, "", decodeAPIError(resp)
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return blob, resp.Header.Get("Content-Type"), nil
}

func (c *Client) invoke(ctx context.Context, method, path string, payload, out any) error {
	endpoint := c.baseURL + path
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, _ := io.ReadAll(resp.Body)
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
		apiErr.Status = envelope.Error.Status
		return apiErr
	}
	if len(data) > 0 {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
