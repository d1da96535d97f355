package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-playground/validator/v10"
	"github.com/joules19/chowmate-web-sub002/app"
	"github.com/joules19/chowmate-web-sub002/routes/middlewares"
)

var validate = validator.New()

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()
	api.Use(jwtauth.Verifier(app.JWT))

	api.Get("/surveys/{id}", PublicGetSurveyById(app))
	api.With(middlewares.Respondent).Post("/surveys/{id}/responses", PublicSubmitResponse(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin)

		r.Get("/surveys", ListSurveys(app))
		r.Get("/surveys/{id}", GetSurveyById(app))
		r.Put("/surveys/{id}", SaveSurvey(app))
		r.Delete("/surveys/{id}", DeleteSurvey(app))

		r.Get("/surveys/{id}/responses", GetSurveyResponses(app))
	})

	return api
}
