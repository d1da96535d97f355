package database

import (
	"context"
	"database/sql"

	"github.com/goccy/go-json"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/pkg/errors"
)

// InsertResponse stores a response and its answers. The survey must exist.
func InsertResponse(ctx context.Context, db *sql.DB, r model.Response) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "db.begin_tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO response (id, survey_id, session_id, respondent, time, ip)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.SurveyID, r.SessionID, r.Respondent, r.Time.UTC(), r.IP,
	)
	if err != nil {
		return errors.Wrap(err, "db.insert_response")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO response_answer (response_id, position, question_id, value)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "db.insert_response.answers.prepare")
	}
	defer stmt.Close()

	for i, a := range r.Answers {
		value, err := json.Marshal(a)
		if err != nil {
			return errors.Wrap(err, "db.insert_response.answers.encode")
		}
		_, err = stmt.ExecContext(ctx, r.ID, i, a.QuestionID, string(value))
		if err != nil {
			return errors.Wrapf(err, "db.insert_response.answers.insert %s", a.QuestionID)
		}
	}

	return errors.Wrap(tx.Commit(), "db.insert_response.commit")
}

// ListResponses returns the responses to a survey, oldest first.
func ListResponses(ctx context.Context, db *sql.DB, surveyID string) ([]model.Response, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `SELECT 1 FROM survey WHERE id = ?`, surveyID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "db.get_responses.survey")
	}

	rows, err := db.QueryContext(ctx, `
		SELECT
			r.id, r.session_id, r.respondent, r.time, r.ip,
			a.value
		FROM response r
		LEFT OUTER JOIN response_answer a ON (r.id = a.response_id)
		WHERE r.survey_id = ?
		ORDER BY r.time, r.id, a.position`,
		surveyID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "db.get_responses")
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		r := model.Response{SurveyID: surveyID}
		var value sql.NullString
		err = rows.Scan(&r.ID, &r.SessionID, &r.Respondent, &r.Time, &r.IP, &value)
		if err != nil {
			return nil, errors.Wrap(err, "db.get_responses.scan")
		}

		last := len(responses) - 1
		if last < 0 || responses[last].ID != r.ID {
			r.Answers = []model.Answer{}
			responses = append(responses, r)
			last++
		}
		if !value.Valid {
			continue
		}
		a := model.Answer{}
		if err = json.Unmarshal([]byte(value.String), &a); err != nil {
			return nil, errors.Wrap(err, "db.get_responses.parse_value")
		}
		responses[last].Answers = append(responses[last].Answers, a)
	}
	return responses, errors.Wrap(rows.Err(), "db.get_responses.rows")
}
