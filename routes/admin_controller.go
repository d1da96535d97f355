package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/joules19/chowmate-web-sub002/app"
	"github.com/joules19/chowmate-web-sub002/database"
	"github.com/joules19/chowmate-web-sub002/httpx"
	"github.com/joules19/chowmate-web-sub002/log"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/joules19/chowmate-web-sub002/survey"
)

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveys, err := database.ListSurveys(r.Context(), app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.get_surveys", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"surveys": surveys,
		})
	}
}

func GetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		s, err := database.GetSurvey(r.Context(), app.DB, surveyId)
		if errors.Is(err, database.ErrNotFound) {
			httpx.LogNotFound(w, "get_survey", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_survey", err)
			return
		}

		render.JSON(w, r, s)
	}
}

// SaveSurvey creates or replaces a survey. A body carrying a version is an
// edit of that version and fails with 409 if someone saved in between.
func SaveSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		s := model.Survey{}
		err := render.DecodeJSON(r.Body, &s)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if s.ID == "" {
			s.ID = surveyId
		}
		if s.ID != surveyId {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.survey_id", "survey id %q does not match %q", s.ID, surveyId)
			return
		}

		err = survey.CheckDefinition(s)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.DebugLevel, "survey.check", "%s", err)
			return
		}

		version, err := database.SaveSurvey(r.Context(), app.DB, s)
		if errors.Is(err, database.ErrConflict) {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "db.save_survey.verify.conflict")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.save_survey", err)
			return
		}

		if err := app.Cache.Invalidate(r.Context(), s.ID); err != nil {
			log.Warnf("cache.invalidate: %s", err)
		}

		render.JSON(w, r, map[string]any{
			"id":      s.ID,
			"version": version,
		})
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		err := database.DeleteSurvey(r.Context(), app.DB, surveyId)
		if errors.Is(err, database.ErrNotFound) {
			httpx.LogNotFound(w, "delete_survey", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.delete_survey", err)
			return
		}

		if err := app.Cache.Invalidate(r.Context(), surveyId); err != nil {
			log.Warnf("cache.invalidate: %s", err)
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		responses, err := database.ListResponses(r.Context(), app.DB, surveyId)
		if errors.Is(err, database.ErrNotFound) {
			httpx.LogNotFound(w, "get_responses", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_responses", err)
			return
		}

		render.JSON(w, r, responses)
	}
}
