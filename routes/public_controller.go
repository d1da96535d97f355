package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"
	"github.com/joules19/chowmate-web-sub002/app"
	"github.com/joules19/chowmate-web-sub002/database"
	"github.com/joules19/chowmate-web-sub002/httpx"
	"github.com/joules19/chowmate-web-sub002/log"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/joules19/chowmate-web-sub002/routes/middlewares"
	"github.com/joules19/chowmate-web-sub002/survey"
)

func PublicGetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		s, ok, err := app.Cache.Get(r.Context(), surveyId)
		if err != nil {
			log.Warnf("cache.get_survey: %s", err)
		}
		if ok {
			render.JSON(w, r, s)
			return
		}

		s, err = database.GetSurvey(r.Context(), app.DB, surveyId)
		if errors.Is(err, database.ErrNotFound) {
			httpx.LogNotFound(w, "get_survey", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_survey", err)
			return
		}

		if err := app.Cache.Put(r.Context(), s); err != nil {
			log.Warnf("cache.put_survey: %s", err)
		}
		render.JSON(w, r, s)
	}
}

func PublicSubmitResponse(app app.App) http.HandlerFunc {
	adapter := survey.Adapter{Policy: survey.FallbackToShortText}

	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		req := model.SubmitRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		err = validate.Struct(req)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.validate", "%s", err)
			return
		}

		// responses are always checked against the stored survey, never the cache
		raw, err := database.GetSurvey(r.Context(), app.DB, surveyId)
		if errors.Is(err, database.ErrNotFound) {
			httpx.LogNotFound(w, "get_survey", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_survey", err)
			return
		}
		s, err := adapter.Survey(raw)
		if err != nil {
			httpx.LogInternalError(w, "survey.adapt", err)
			return
		}

		err = survey.Verify(s, req)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.DebugLevel, "response.verify", "%s", strings.TrimSpace(err.Error()))
			return
		}

		id, err := uuid.NewV4()
		if err != nil {
			httpx.LogInternalError(w, "response.id", err)
			return
		}
		resp := model.Response{
			ID:         id.String(),
			SurveyID:   s.ID,
			SessionID:  req.SessionID,
			Respondent: middlewares.RespondentFrom(r.Context()),
			Time:       time.Now(),
			IP:         httpx.ClientIP(r),
			Answers:    req.Answers,
		}
		err = database.InsertResponse(r.Context(), app.DB, resp)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_response", err)
			return
		}
		log.WithFields(log.Fields{
			"survey":   s.ID,
			"response": resp.ID,
			"answers":  len(resp.Answers),
		}).Info("response stored")

		result := model.SubmitResult{
			ResponseID: resp.ID,
			Message:    fmt.Sprintf("Thank you for completing %s!", s.Title),
		}
		if s.Incentive != "" {
			result.RewardCode = rewardCode(id)
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, result)
	}
}

// rewardCode is a short code the respondent can quote to claim the incentive.
func rewardCode(id uuid.UUID) string {
	return "CHOW-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}
