package inmemdb

import (
	"github.com/knowledgeflow/backend/core/track"
)

type trackRepository struct {
	progress   *progressTable
	evaluation *evaluationTable
	feedback   *feedbackTable
}

func NewTrackRepository(db *DB) track.Repository {
	return &trackRepository{
		progress:   db.progress,
		evaluation: db.evaluation,
		feedback:   db.feedback,
	}
}

func (repo *trackRepository) QueryProgressByUser(userID int) ([]track.Progress, error) {
	repo.progress.RLock()
	defer repo.progress.RUnlock()

	records := make([]track.Progress, 0)
	for key, rec := range repo.progress.table {
		if key.UserID == userID {
			records = append(records, *rec)
		}
	}
	return records, nil
}

func (repo *trackRepository) GetModuleProgress(userID, moduleID int) (track.Progress, error) {
	repo.progress.RLock()
	defer repo.progress.RUnlock()

	if rec, ok := repo.progress.table[progressKey{UserID: userID, ModuleID: moduleID}]; ok {
		return *rec, nil
	}
	return track.Progress{}, track.ErrNotFound
}

// UpsertProgress holds the write lock across the lookup and the write, so two
// concurrent upserts for the same (user, module) pair cannot both create a record.
func (repo *trackRepository) UpsertProgress(p track.Progress) (track.Progress, error) {
	repo.progress.Lock()
	defer repo.progress.Unlock()

	key := progressKey{UserID: p.UserID, ModuleID: p.ModuleID}
	if existing, ok := repo.progress.table[key]; ok {
		existing.PercentComplete = p.PercentComplete
		existing.Completed = p.Completed
		existing.UpdatedAt = p.UpdatedAt
		return *existing, nil
	}

	repo.progress.seq++
	p.ID = repo.progress.seq
	repo.progress.table[key] = &p
	return p, nil
}

func (repo *trackRepository) GetEvaluationByUser(userID int) (track.Evaluation, error) {
	repo.evaluation.RLock()
	defer repo.evaluation.RUnlock()

	if ev, ok := repo.evaluation.table[userID]; ok {
		return *ev, nil
	}
	return track.Evaluation{}, track.ErrNotFound
}

func (repo *trackRepository) UpsertEvaluation(ev track.Evaluation) (track.Evaluation, error) {
	repo.evaluation.Lock()
	defer repo.evaluation.Unlock()

	if existing, ok := repo.evaluation.table[ev.UserID]; ok {
		existing.Score = ev.Score
		existing.TotalQuestions = ev.TotalQuestions
		existing.Completed = ev.Completed
		existing.UpdatedAt = ev.UpdatedAt
		return *existing, nil
	}

	repo.evaluation.seq++
	ev.ID = repo.evaluation.seq
	repo.evaluation.table[ev.UserID] = &ev
	return ev, nil
}

func (repo *trackRepository) CreateFeedback(fb track.Feedback) (track.Feedback, error) {
	repo.feedback.Lock()
	defer repo.feedback.Unlock()

	repo.feedback.seq++
	fb.ID = repo.feedback.seq
	repo.feedback.table[fb.ID] = &fb
	repo.feedback.order = append(repo.feedback.order, fb.ID)
	return fb, nil
}
