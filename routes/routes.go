package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/crodriguezm/sgsst/app"
	"github.com/crodriguezm/sgsst/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	api.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticated(app.TokenSecret))

		r.Post("/inspections/{variant}", SubmitInspection(app))
		r.Put(`/inspections/{variant}/{id:^\d+$}`, UpdateInspection(app))
		r.Get(`/inspections/{variant}/{id:^\d+$}`, GetInspection(app))
		r.Get(`/inspections/{variant}/{id:^\d+$}/pdf`, ExportInspectionPDF(app))

		r.Get("/history", GetHistory(app))
		r.Post("/assets", UploadAsset(app))
		r.Post("/classify", ClassifyFinding(app))

		r.Get("/profile", GetProfile(app))
		r.Put("/profile", UpdateProfile(app))
	})

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		r.Get("/profiles", ListProfiles(app))
		r.Post("/profiles", CreateProfile(app))
		r.Put("/profiles/{username}", UpdateSubscription(app))
	})

	return api
}
