package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ServeAsset streams a stored generation artifact to its owner.
func (a *App) ServeAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := a.Assets.GetByID(r.Context(), a.currentUserID(r), chi.URLParam(r, "assetID"))
	if err != nil {
		a.notFoundOr(w, err, "asset")
		return
	}

	data, err := a.Files.Read(r.Context(), asset.StorageKey)
	if err != nil {
		a.Logger.Error().Err(err).Str("asset_id", asset.ID).Msg("read asset file")
		a.error(w, http.StatusInternalServerError, "internal", "could not read asset")
		return
	}

	w.Header().Set("Content-Type", asset.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
