package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/knowledgeflow/backend/core/track"
)

type progressRow struct {
	ID              int       `db:"id"`
	UserID          int       `db:"user_id"`
	ModuleID        int       `db:"module_id"`
	PercentComplete int       `db:"percent_complete"`
	Completed       bool      `db:"completed"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r progressRow) toProgress() track.Progress {
	return track.Progress{
		ID:              r.ID,
		UserID:          r.UserID,
		ModuleID:        r.ModuleID,
		PercentComplete: r.PercentComplete,
		Completed:       r.Completed,
		UpdatedAt:       r.UpdatedAt,
	}
}

type evaluationRow struct {
	ID             int       `db:"id"`
	UserID         int       `db:"user_id"`
	Score          int       `db:"score"`
	TotalQuestions int       `db:"total_questions"`
	Completed      bool      `db:"completed"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r evaluationRow) toEvaluation() track.Evaluation {
	return track.Evaluation{
		ID:             r.ID,
		UserID:         r.UserID,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Completed:      r.Completed,
		UpdatedAt:      r.UpdatedAt,
	}
}

type feedbackRow struct {
	ID           int            `db:"id"`
	UserID       int            `db:"user_id"`
	Rating       int            `db:"rating"`
	Improvements pq.StringArray `db:"improvements"`
	FeedbackText string         `db:"feedback_text"`
	SubmittedAt  time.Time      `db:"submitted_at"`
}

func (r feedbackRow) toFeedback() track.Feedback {
	return track.Feedback{
		ID:           r.ID,
		UserID:       r.UserID,
		Rating:       r.Rating,
		Improvements: r.Improvements,
		FeedbackText: r.FeedbackText,
		SubmittedAt:  r.SubmittedAt,
	}
}

type trackRepository struct {
	db *sqlx.DB
}

func NewTrackRepository(db *sqlx.DB) track.Repository {
	return &trackRepository{db: db}
}

func (repo *trackRepository) QueryProgressByUser(userID int) ([]track.Progress, error) {
	var rows []progressRow
	err := repo.db.Select(&rows, `SELECT * FROM progress WHERE user_id = $1 ORDER BY module_id`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying progress")
	}
	records := make([]track.Progress, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toProgress())
	}
	return records, nil
}

func (repo *trackRepository) GetModuleProgress(userID, moduleID int) (track.Progress, error) {
	var row progressRow
	err := repo.db.Get(&row, `SELECT * FROM progress WHERE user_id = $1 AND module_id = $2`, userID, moduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return track.Progress{}, track.ErrNotFound
		}
		return track.Progress{}, errors.Wrap(err, "getting module progress")
	}
	return row.toProgress(), nil
}

func (repo *trackRepository) UpsertProgress(p track.Progress) (track.Progress, error) {
	var row progressRow
	err := repo.db.Get(
		&row,
		`INSERT INTO progress (user_id, module_id, percent_complete, completed, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, module_id) DO UPDATE
		 SET percent_complete = EXCLUDED.percent_complete,
		     completed = EXCLUDED.completed,
		     updated_at = EXCLUDED.updated_at
		 RETURNING *`,
		p.UserID, p.ModuleID, p.PercentComplete, p.Completed, p.UpdatedAt,
	)
	if err != nil {
		return track.Progress{}, errors.Wrap(err, "upserting progress")
	}
	return row.toProgress(), nil
}

func (repo *trackRepository) GetEvaluationByUser(userID int) (track.Evaluation, error) {
	var row evaluationRow
	err := repo.db.Get(&row, `SELECT * FROM evaluations WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return track.Evaluation{}, track.ErrNotFound
		}
		return track.Evaluation{}, errors.Wrap(err, "getting evaluation")
	}
	return row.toEvaluation(), nil
}

func (repo *trackRepository) UpsertEvaluation(e track.Evaluation) (track.Evaluation, error) {
	var row evaluationRow
	err := repo.db.Get(
		&row,
		`INSERT INTO evaluations (user_id, score, total_questions, completed, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE
		 SET score = EXCLUDED.score,
		     total_questions = EXCLUDED.total_questions,
		     completed = EXCLUDED.completed,
		     updated_at = EXCLUDED.updated_at
		 RETURNING *`,
		e.UserID, e.Score, e.TotalQuestions, e.Completed, e.UpdatedAt,
	)
	if err != nil {
		return track.Evaluation{}, errors.Wrap(err, "upserting evaluation")
	}
	return row.toEvaluation(), nil
}

func (repo *trackRepository) CreateFeedback(f track.Feedback) (track.Feedback, error) {
	var row feedbackRow
	err := repo.db.Get(
		&row,
		`INSERT INTO feedback (user_id, rating, improvements, feedback_text, submitted_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING *`,
		f.UserID, f.Rating, pq.Array(f.Improvements), f.FeedbackText, f.SubmittedAt,
	)
	if err != nil {
		return track.Feedback{}, errors.Wrap(err, "inserting feedback")
	}
	return row.toFeedback(), nil
}
