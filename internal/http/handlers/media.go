package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"server/internal/generation"
)

type imageGenerateRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"`
	ImageSize   string `json:"imageSize"`
}

// GenerateImage produces a marketing-style image and returns it as a data
// URI, matching what the client renders directly into an <img> tag.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req imageGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	genReq, err := generation.Build(generation.IntentImageGeneration, generation.Input{
		Prompt: req.Prompt,
		Config: generation.Config{AspectRatio: req.AspectRatio, ImageSize: req.ImageSize},
	})
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	result, err := a.Gen.Generate(r.Context(), genReq)
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"image": result.ImageDataURI})
}

// EditImage applies a prompt-driven edit to an uploaded image. Multipart
// fields: "image" (the source) and "prompt".
func (a *App) EditImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxScanPhotoBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "expected multipart form with image and prompt")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxScanPhotoBytes))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "could not read image")
		return
	}

	genReq, err := generation.Build(generation.IntentImageEdit, generation.Input{
		Prompt: r.FormValue("prompt"),
		Source: &generation.MediaBlob{MIME: formImageMIME(header), Data: data},
	})
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	result, err := a.Gen.Generate(r.Context(), genReq)
	if err != nil {
		a.generationError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"image": result.ImageDataURI})
}
