package database

import (
	"context"
	"database/sql"

	"github.com/goccy/go-json"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict is an optimistic lock failure: the stored version moved on.
	ErrConflict = errors.New("version conflict")
)

// GetSurvey loads a survey with its questions in authored order.
func GetSurvey(ctx context.Context, db *sql.DB, id string) (model.Survey, error) {
	s := model.Survey{}
	err := db.QueryRowContext(ctx, `
		SELECT id, version, title, description, incentive
		FROM survey
		WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.Version, &s.Title, &s.Description, &s.Incentive)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	if err != nil {
		return s, errors.Wrap(err, "db.get_survey")
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, ord, type, text, description, required, options, validation
		FROM survey_question
		WHERE survey_id = ?
		ORDER BY position`,
		id,
	)
	if err != nil {
		return s, errors.Wrap(err, "db.get_survey.questions")
	}
	defer rows.Close()

	s.Questions = []model.Question{}
	for rows.Next() {
		q := model.Question{}
		var typ, opts, validation string
		err = rows.Scan(&q.ID, &q.Order, &typ, &q.Text, &q.Description, &q.Required, &opts, &validation)
		if err != nil {
			return s, errors.Wrap(err, "db.get_survey.scan")
		}
		q.Type = model.ParseTypeCode(typ)
		if opts != "" {
			if err = json.Unmarshal([]byte(opts), &q.Options); err != nil {
				return s, errors.Wrapf(err, "db.get_survey.parse_options %s", q.ID)
			}
		}
		if validation != "" {
			q.Validation = &model.Validation{}
			if err = json.Unmarshal([]byte(validation), q.Validation); err != nil {
				return s, errors.Wrapf(err, "db.get_survey.parse_validation %s", q.ID)
			}
		}
		s.Questions = append(s.Questions, q)
	}
	return s, errors.Wrap(rows.Err(), "db.get_survey.rows")
}

// ListSurveys returns every survey without its questions.
func ListSurveys(ctx context.Context, db *sql.DB) ([]model.Survey, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, version, title, description, incentive
		FROM survey
		ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "db.get_surveys")
	}
	defer rows.Close()

	surveys := []model.Survey{}
	for rows.Next() {
		s := model.Survey{}
		err = rows.Scan(&s.ID, &s.Version, &s.Title, &s.Description, &s.Incentive)
		if err != nil {
			return nil, errors.Wrap(err, "db.get_surveys.scan")
		}
		surveys = append(surveys, s)
	}
	return surveys, errors.Wrap(rows.Err(), "db.get_surveys.rows")
}

// SaveSurvey creates the survey or replaces it with its questions, in one
// transaction. When s.Version is set it must match the stored version. The
// new version is returned.
func SaveSurvey(ctx context.Context, db *sql.DB, s model.Survey) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "db.begin_tx")
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx, `SELECT version FROM survey WHERE id = ?`, s.ID).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		current = 0
	case err != nil:
		return 0, errors.Wrap(err, "db.save_survey.version")
	}

	if current == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO survey (id, version, title, description, incentive)
			VALUES (?, 1, ?, ?, ?)`,
			s.ID, s.Title, s.Description, s.Incentive,
		)
		if err != nil {
			return 0, errors.Wrap(err, "db.insert_survey")
		}
	} else {
		if s.Version != 0 && s.Version != current {
			return 0, ErrConflict
		}
		// optimistic lock
		res, err := tx.ExecContext(ctx, `
			UPDATE survey
			SET
				title = ?,
				description = ?,
				incentive = ?,
				version = version+1
			WHERE id = ?
				AND version = ?`,
			s.Title, s.Description, s.Incentive,
			s.ID, current,
		)
		if err != nil {
			return 0, errors.Wrap(err, "db.update_survey")
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, errors.Wrap(err, "db.update_survey.verify")
		}
		if n < 1 {
			return 0, ErrConflict
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM survey_question WHERE survey_id = ?`, s.ID)
		if err != nil {
			return 0, errors.Wrap(err, "db.update_survey.delete_questions")
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO survey_question (survey_id, id, position, ord, type, text, description, required, options, validation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, errors.Wrap(err, "db.save_survey.questions.prepare")
	}
	defer stmt.Close()

	for i, q := range s.Questions {
		var opts, validation []byte
		if q.Options != nil {
			if opts, err = json.Marshal(q.Options); err != nil {
				return 0, errors.Wrap(err, "db.save_survey.questions.options")
			}
		}
		if q.Validation != nil {
			if validation, err = json.Marshal(q.Validation); err != nil {
				return 0, errors.Wrap(err, "db.save_survey.questions.validation")
			}
		}
		_, err = stmt.ExecContext(ctx,
			s.ID, q.ID, i, q.Order, q.Type.String(), q.Text, q.Description, q.Required,
			string(opts), string(validation),
		)
		if err != nil {
			return 0, errors.Wrapf(err, "db.save_survey.questions.insert %s", q.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "db.save_survey.commit")
	}
	return current + 1, nil
}

// DeleteSurvey removes a survey together with its questions and responses.
func DeleteSurvey(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM survey WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "db.delete_survey")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "db.delete_survey.verify")
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}
