package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"server/internal/generation"
	"server/internal/middleware"
)

const maxScanPhotoBytes = 10 << 20

// BioScan runs a photo-based body composition analysis. The multipart form
// must carry a "front" and a "side" image.
func (a *App) BioScan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(2 * maxScanPhotoBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "expected multipart form with front and side photos")
		return
	}

	front, err := readFormImage(r, "front")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "front photo is required")
		return
	}
	side, err := readFormImage(r, "side")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "side photo is required")
		return
	}

	profile, err := a.Profiles.GetByID(r.Context(), a.currentUserID(r))
	if err != nil {
		a.notFoundOr(w, err, "profile")
		return
	}

	genReq, err := generation.Build(generation.IntentBiometricAnalysis, generation.Input{
		Profile:  profile,
		Front:    front,
		Side:     side,
		Language: middleware.LocaleFromContext(r.Context()),
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

	a.json(w, http.StatusOK, map[string]any{
		"report":          result.Report,
		"appliedDefaults": result.AppliedDefaults,
	})
}

func readFormImage(r *http.Request, field string) (*generation.MediaBlob, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxScanPhotoBytes))
	if err != nil {
		return nil, err
	}
	return &generation.MediaBlob{MIME: formImageMIME(header), Data: data}, nil
}

func formImageMIME(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "image/jpeg"
}
