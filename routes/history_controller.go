package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/crodriguezm/sgsst/app"
	"github.com/crodriguezm/sgsst/history"
	"github.com/crodriguezm/sgsst/httpx"
	"github.com/crodriguezm/sgsst/log"
	"github.com/crodriguezm/sgsst/model"
)

func GetHistory(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter *model.Variant
		if param := r.URL.Query().Get("filter"); param != "" {
			variant, err := model.ParseVariant(param)
			if err != nil {
				httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_filter")
				return
			}
			filter = &variant
		}

		entries, err := history.Fetch(r.Context(), app.Store, filter)
		if err != nil {
			httpx.LogInternalError(w, "db.get_history", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"inspections": entries,
		})
	}
}
