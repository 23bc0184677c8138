package routes

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"

	"github.com/crodriguezm/sgsst/app"
	"github.com/crodriguezm/sgsst/httpx"
	"github.com/crodriguezm/sgsst/log"
	"github.com/crodriguezm/sgsst/model"
	"github.com/crodriguezm/sgsst/routes/middlewares"
)

func GetProfile(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := middlewares.Username(r)
		profile, err := app.Store.GetProfile(r.Context(), username)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "db.get_profile", username)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_profile", err)
			return
		}

		render.JSON(w, r, profile)
	}
}

func UpdateProfile(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := model.Profile{}
		err := render.DecodeJSON(r.Body, &profile)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		// accounts only ever edit themselves
		profile.Username = middlewares.Username(r)

		err = app.Store.UpdateProfile(r.Context(), profile)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "db.update_profile", profile.Username)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.update_profile", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListProfiles(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := app.Store.ListProfiles(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_profiles", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"profiles": profiles,
		})
	}
}

func CreateProfile(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if body.Username == "" || body.Password == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel,
				"profile.create", "username and password are required")
			return
		}
		if body.Role == "" {
			body.Role = model.RoleUser
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			httpx.LogInternalError(w, "profile.create.hash", err)
			return
		}

		id, err := app.Store.CreateProfile(r.Context(), body.Username, string(hash), body.Role)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_profile", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": id,
		})
	}
}

func UpdateSubscription(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		var body struct {
			PlanType           string `json:"plan_type"`
			SubscriptionStatus string `json:"subscription_status"`
			ExpiryDate         string `json:"expiry_date"`
			Role               string `json:"role"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = app.Store.UpdateSubscription(r.Context(), username,
			body.PlanType, body.SubscriptionStatus, body.ExpiryDate, body.Role)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "db.update_subscription", username)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.update_subscription", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
