package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/crodriguezm/sgsst/app"
	"github.com/crodriguezm/sgsst/httpx"
	"github.com/crodriguezm/sgsst/log"
)

func ClassifyFinding(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if app.Classifier == nil {
			httpx.LogStatus(w, http.StatusServiceUnavailable, log.DebugLevel, "classify.disabled")
			return
		}

		var body struct {
			Description string `json:"description"`
			Photo       string `json:"photo"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if body.Description == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel,
				"classify.description", "description is required")
			return
		}

		suggestion, err := app.Classifier.Analyze(r.Context(), body.Description, body.Photo)
		if err != nil {
			httpx.LogError(w, http.StatusBadGateway, "classify.analyze", err)
			return
		}

		render.JSON(w, r, suggestion)
	}
}
