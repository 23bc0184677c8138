package routes

import (
	"bytes"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/crodriguezm/sgsst/app"
	"github.com/crodriguezm/sgsst/form"
	"github.com/crodriguezm/sgsst/httpx"
	"github.com/crodriguezm/sgsst/log"
	"github.com/crodriguezm/sgsst/model"
	"github.com/crodriguezm/sgsst/report"
	"github.com/crodriguezm/sgsst/routes/middlewares"
)

func urlVariant(w http.ResponseWriter, r *http.Request) (model.Variant, bool) {
	variant, err := model.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_variant")
		return "", false
	}
	return variant, true
}

func SubmitInspection(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		variant, ok := urlVariant(w, r)
		if !ok {
			return
		}

		ins := model.Inspection{Variant: variant}
		err := render.DecodeJSON(r.Body, &ins)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		ins.ID = 0

		profile, err := app.Store.GetProfile(r.Context(), middlewares.Username(r))
		if err != nil {
			httpx.LogInternalError(w, "db.get_profile", err)
			return
		}
		if variant == model.SafetyConditions && !profile.Active() {
			httpx.LogStatusMsg(w, http.StatusForbidden, log.DebugLevel,
				"inspection.submit.subscription", "Suscripción inactiva")
			return
		}
		ins.ClientCode = profile.ClientCode

		ctrl, err := form.Resume(ins, uuid.NewString)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_variant")
			return
		}
		err = ctrl.Submit(r.Context(), app.Store)
		if errors.Is(err, model.ErrValidation) {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel,
				"inspection.submit.validate", "%s", err)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.insert_inspection", err)
			return
		}

		saved := ctrl.Inspection()
		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id":          saved.ID,
			"consecutive": saved.Consecutive,
		})
	}
}

func UpdateInspection(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		variant, ok := urlVariant(w, r)
		if !ok {
			return
		}
		id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

		ins := model.Inspection{Variant: variant}
		err := render.DecodeJSON(r.Body, &ins)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		ins.ID = id

		ctrl, err := form.Resume(ins, uuid.NewString)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_variant")
			return
		}
		err = ctrl.Submit(r.Context(), app.Store)
		switch {
		case errors.Is(err, model.ErrValidation):
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel,
				"inspection.update.validate", "%s", err)
			return
		case errors.Is(err, sql.ErrNoRows):
			httpx.LogNotFound(w, "db.update_inspection", id)
			return
		case err != nil:
			httpx.LogInternalError(w, "db.update_inspection", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetInspection(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		variant, ok := urlVariant(w, r)
		if !ok {
			return
		}
		id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

		ins, err := app.Store.GetByID(r.Context(), variant, id)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "db.get_inspection", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_inspection", err)
			return
		}

		render.JSON(w, r, ins)
	}
}

func ExportInspectionPDF(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		variant, ok := urlVariant(w, r)
		if !ok {
			return
		}
		id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

		ins, err := app.Store.GetByID(r.Context(), variant, id)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "db.get_inspection", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_inspection", err)
			return
		}

		// render fully before writing; a late failure must not leave a
		// half-sent document behind a 200
		var buf bytes.Buffer
		err = report.WritePDF(ins, &buf)
		if err != nil {
			httpx.LogInternalError(w, "report.render", err)
			return
		}

		w.Header().Set("content-type", "application/pdf")
		w.Header().Set("content-disposition", `attachment; filename="`+report.FileName(ins)+`"`)
		w.Write(buf.Bytes())
	}
}
