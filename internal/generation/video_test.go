package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type fakeStore struct {
	keys []string
	data [][]byte
}

func (s *fakeStore) Write(_ context.Context, key string, data []byte) (string, error) {
	s.keys = append(s.keys, key)
	s.data = append(s.data, data)
	return key, nil
}

func fastVideoOptions() VideoOptions {
	return VideoOptions{PollInterval: time.Millisecond, WaitBudget: time.Second}
}

func pendingOperation(name string) map[string]any {
	return map[string]any{"name": name, "done": false}
}

func doneOperation(name, uri string) map[string]any {
	return map[string]any{
		"name": name,
		"done": true,
		"response": map[string]any{
			"generateVideoResponse": map[string]any{
				"generatedVideos": []any{map[string]any{"video": map[string]any{"uri": uri}}},
			},
		},
	}
}

// videoTransport routes submit, poll and download calls to canned handlers.
type videoTransport struct {
	t         *testing.T
	submit    func(*http.Request) (*http.Response, error)
	poll      func(*http.Request) (*http.Response, error)
	download  func(*http.Request) (*http.Response, error)
	polls     int
	downloads int
}

func (v *videoTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	switch {
	case r.Method == http.MethodPost && strings.Contains(r.URL.Path, ":predictLongRunning"):
		return v.submit(r)
	case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/operations/"):
		v.polls++
		return v.poll(r)
	case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/files/"):
		v.downloads++
		return v.download(r)
	default:
		v.t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		return nil, nil
	}
}

func binaryResponse(data []byte, contentType string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{contentType}},
		Body:       io.NopCloser(bytes.NewReader(data)),
	}
}

func TestVideoGeneratePollsUntilDoneThenStoresAsset(t *testing.T) {
	const pendingPolls = 3
	payload := []byte("mp4 bytes")

	transport := &videoTransport{t: t}
	transport.submit = func(r *http.Request) (*http.Response, error) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode submit body: %v", err)
		}
		params := body["parameters"].(map[string]any)
		if params["resolution"] != "720p" || params["aspectRatio"] != "16:9" {
			t.Fatalf("parameters = %v, want defaults applied", params)
		}
		instances := body["instances"].([]any)
		if instances[0].(map[string]any)["prompt"] != "slow-motion sprint" {
			t.Fatalf("instances = %v, want prompt carried", instances)
		}
		return jsonResponse(t, http.StatusOK, pendingOperation("operations/op-1")), nil
	}
	transport.poll = func(r *http.Request) (*http.Response, error) {
		if transport.polls <= pendingPolls {
			return jsonResponse(t, http.StatusOK, pendingOperation("operations/op-1")), nil
		}
		return jsonResponse(t, http.StatusOK, doneOperation("operations/op-1", "files/vid-1")), nil
	}
	transport.download = func(r *http.Request) (*http.Response, error) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Fatalf("download not authenticated: %q", r.URL.RawQuery)
		}
		return binaryResponse(payload, "video/mp4"), nil
	}

	api := newTestAPI(t, transport.RoundTrip)
	store := &fakeStore{}
	gate := &fakeGate{}
	client := NewVideoClient(api, "video-model", gate, store, fastVideoOptions(), testLogger())

	result, err := client.Generate(context.Background(), Request{Intent: IntentVideoGeneration, Prompt: "slow-motion sprint"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if transport.polls != pendingPolls+1 {
		t.Fatalf("polls = %d, want %d pending polls plus the completing one", transport.polls, pendingPolls+1)
	}
	if transport.downloads != 1 {
		t.Fatalf("downloads = %d, want exactly one fetch", transport.downloads)
	}
	if len(store.keys) != 1 {
		t.Fatalf("store writes = %d, want one", len(store.keys))
	}
	if !strings.HasPrefix(store.keys[0], "videos/") || !strings.HasSuffix(store.keys[0], ".mp4") {
		t.Fatalf("storage key = %q, want videos/<id>.mp4", store.keys[0])
	}
	if !bytes.Equal(store.data[0], payload) {
		t.Fatal("stored bytes differ from downloaded bytes")
	}
	if result.StorageKey != store.keys[0] || result.MIMEType != "video/mp4" || result.Bytes != len(payload) {
		t.Fatalf("result = %+v", result)
	}
	if result.SourceURI != "files/vid-1" {
		t.Fatalf("SourceURI = %q, want remote locator preserved", result.SourceURI)
	}
	if gate.ensures != 1 {
		t.Fatalf("gate.ensures = %d, want one pre-flight check", gate.ensures)
	}
}

func TestVideoGenerateAuthenticatesWithSelectedCredential(t *testing.T) {
	transport := &videoTransport{t: t}
	transport.submit = func(r *http.Request) (*http.Response, error) {
		if got := r.Header.Get("x-goog-api-key"); got != "stored-key" {
			t.Fatalf("submit x-goog-api-key = %q, want the gate-selected key", got)
		}
		return jsonResponse(t, http.StatusOK, pendingOperation("operations/op-5")), nil
	}
	transport.poll = func(r *http.Request) (*http.Response, error) {
		if got := r.Header.Get("x-goog-api-key"); got != "stored-key" {
			t.Fatalf("poll x-goog-api-key = %q, want the gate-selected key", got)
		}
		return jsonResponse(t, http.StatusOK, doneOperation("operations/op-5", "files/vid-5")), nil
	}
	transport.download = func(r *http.Request) (*http.Response, error) {
		if r.URL.Query().Get("key") != "stored-key" {
			t.Fatalf("download not authenticated with the gate-selected key: %q", r.URL.RawQuery)
		}
		return binaryResponse([]byte("mp4"), "video/mp4"), nil
	}

	api := newTestAPI(t, transport.RoundTrip)
	gate := &fakeGate{key: "stored-key"}
	client := NewVideoClient(api, "video-model", gate, &fakeStore{}, fastVideoOptions(), testLogger())

	if _, err := client.Generate(context.Background(), Request{Intent: IntentVideoGeneration, Prompt: "x"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestVideoGenerateTimesOutWhenBudgetExhausted(t *testing.T) {
	transport := &videoTransport{t: t}
	transport.submit = func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, pendingOperation("operations/op-2")), nil
	}
	transport.poll = func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, pendingOperation("operations/op-2")), nil
	}
	transport.download = func(*http.Request) (*http.Response, error) {
		t.Fatal("no download expected after timeout")
		return nil, nil
	}

	api := newTestAPI(t, transport.RoundTrip)
	store := &fakeStore{}
	opts := VideoOptions{PollInterval: time.Millisecond, WaitBudget: 20 * time.Millisecond}
	client := NewVideoClient(api, "video-model", nil, store, opts, testLogger())

	_, err := client.Generate(context.Background(), Request{Intent: IntentVideoGeneration, Prompt: "x"})
	if !IsTimeout(err) {
		t.Fatalf("err = %v, want poll-budget timeout", err)
	}
	if len(store.keys) != 0 {
		t.Fatal("abandoned job must not store an asset")
	}
}

func TestVideoGenerateCancelledBetweenPolls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	transport := &videoTransport{t: t}
	transport.submit = func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, pendingOperation("operations/op-3")), nil
	}
	transport.poll = func(*http.Request) (*http.Response, error) {
		cancel()
		return jsonResponse(t, http.StatusOK, pendingOperation("operations/op-3")), nil
	}

	api := newTestAPI(t, transport.RoundTrip)
	client := NewVideoClient(api, "video-model", nil, &fakeStore{}, fastVideoOptions(), testLogger())

	_, err := client.Generate(ctx, Request{Intent: IntentVideoGeneration, Prompt: "x"})
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if IsTimeout(err) {
		t.Fatalf("err = %v, want cancellation, not budget timeout", err)
	}
}

func TestVideoGenerateSubmitNotFoundInvalidatesCredential(t *testing.T) {
	transport := &videoTransport{t: t}
	transport.submit = func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusNotFound, map[string]any{
			"error": map[string]any{"code": 404, "message": "Requested entity was not found.", "status": "NOT_FOUND"},
		}), nil
	}

	api := newTestAPI(t, transport.RoundTrip)
	gate := &fakeGate{}
	client := NewVideoClient(api, "video-model", gate, &fakeStore{}, fastVideoOptions(), testLogger())

	_, err := client.Generate(context.Background(), Request{Intent: IntentVideoGeneration, Prompt: "x"})
	classified := Classify(err)
	if classified.Kind != KindResourceNotFound {
		t.Fatalf("Kind = %q, want %q", classified.Kind, KindResourceNotFound)
	}
	if gate.invalidated != 1 {
		t.Fatalf("gate.invalidated = %d, want the selection dropped once", gate.invalidated)
	}
	if transport.polls != 0 {
		t.Fatal("rejected submit must not be polled")
	}
}

func TestVideoGenerateOperationFailure(t *testing.T) {
	transport := &videoTransport{t: t}
	transport.submit = func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, pendingOperation("operations/op-4")), nil
	}
	transport.poll = func(*http.Request) (*http.Response, error) {
		return jsonResponse(t, http.StatusOK, map[string]any{
			"name": "operations/op-4",
			"done": true,
			"error": map[string]any{
				"code":    429,
				"message": "quota exhausted for video generation",
			},
		}), nil
	}
	transport.download = func(*http.Request) (*http.Response, error) {
		t.Fatal("no download expected for a failed operation")
		return nil, nil
	}

	api := newTestAPI(t, transport.RoundTrip)
	client := NewVideoClient(api, "video-model", nil, &fakeStore{}, fastVideoOptions(), testLogger())

	_, err := client.Generate(context.Background(), Request{Intent: IntentVideoGeneration, Prompt: "x"})
	classified := Classify(err)
	if classified.Kind != KindQuotaExceeded {
		t.Fatalf("Kind = %q, want %q", classified.Kind, KindQuotaExceeded)
	}
}

func TestVideoGenerateRejectsForeignIntent(t *testing.T) {
	transport := &videoTransport{t: t}
	api := newTestAPI(t, transport.RoundTrip)
	client := NewVideoClient(api, "video-model", nil, &fakeStore{}, fastVideoOptions(), testLogger())

	_, err := client.Generate(context.Background(), Request{Intent: IntentChat, Prompt: "x"})
	if err == nil {
		t.Fatal("expected error for non-video intent")
	}
	if transport.polls != 0 || transport.downloads != 0 {
		t.Fatal("intent check must run before any network call")
	}
}
