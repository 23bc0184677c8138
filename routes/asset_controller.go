package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/crodriguezm/sgsst/app"
	"github.com/crodriguezm/sgsst/asset"
	"github.com/crodriguezm/sgsst/httpx"
	"github.com/crodriguezm/sgsst/log"
)

// UploadAsset re-encodes one raw image body into a storable data URI.
// Undecodable uploads come back as 204; the client drops the asset.
func UploadAsset(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := asset.Kind(r.URL.Query().Get("kind"))
		if kind == "" {
			kind = asset.Photo
		}
		if kind != asset.Photo && kind != asset.Signature {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_kind")
			return
		}

		uri, ok := asset.Encode(r.Body, kind)
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		render.JSON(w, r, map[string]any{
			"asset": uri,
		})
	}
}
