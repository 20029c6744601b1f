package track

import (
	"errors"
	"math"
	"time"

	"github.com/knowledgeflow/backend/core/catalog"
)

var (
	// errors
	ErrNotFound = errors.New("not found")
)

// ResumeFeedback is the resume target once every tracked module is complete.
const ResumeFeedback = "feedback"

// DefaultTrackedModuleIDs lists, in canonical order, the modules whose
// completion feeds the overall percentage: Social Factors, Cultural Factors
// and the Evaluation.
var DefaultTrackedModuleIDs = []int{1, 2, 3}

type (
	Repository interface {
		QueryProgressByUser(userID int) ([]Progress, error)
		GetModuleProgress(userID, moduleID int) (Progress, error)
		// UpsertProgress stores the record keyed by (UserID, ModuleID):
		// an existing record is overwritten in place keeping its ID, an
		// absent one is created with a fresh ID. The lookup and the write
		// are a single atomic operation.
		UpsertProgress(p Progress) (Progress, error)

		GetEvaluationByUser(userID int) (Evaluation, error)
		// UpsertEvaluation stores the record keyed by UserID alone.
		UpsertEvaluation(ev Evaluation) (Evaluation, error)

		// CreateFeedback always inserts a new record.
		CreateFeedback(fb Feedback) (Feedback, error)
	}

	Service interface {
		ProgressByUser(userID int) ([]Progress, error)
		SaveProgress(userID int, up UpsertProgress) (Progress, error)
		EvaluationByUser(userID int) (Evaluation, error)
		SaveEvaluation(userID int, ne NewEvaluation) (Evaluation, error)
		SubmitFeedback(userID int, nf NewFeedback) (Feedback, error)
		Summary(userID int) (Overview, error)
	}

	service struct {
		repo       Repository
		modules    catalog.Repository
		trackedIDs []int
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, modules catalog.Repository, trackedModuleIDs ...int) Service {
	if len(trackedModuleIDs) == 0 {
		trackedModuleIDs = DefaultTrackedModuleIDs
	}
	return &service{repo: repo, modules: modules, trackedIDs: trackedModuleIDs}
}

func (svc *service) ProgressByUser(userID int) ([]Progress, error) {
	return svc.repo.QueryProgressByUser(userID)
}

// SaveProgress upserts the user's progress on a module. A module reported at
// 100% counts as completed even if the caller did not say so.
func (svc *service) SaveProgress(userID int, up UpsertProgress) (Progress, error) {
	return svc.repo.UpsertProgress(Progress{
		UserID:          userID,
		ModuleID:        up.ModuleID,
		PercentComplete: up.PercentComplete,
		Completed:       up.Completed || up.PercentComplete == 100,
		UpdatedAt:       time.Now().UTC(),
	})
}

func (svc *service) EvaluationByUser(userID int) (Evaluation, error) {
	return svc.repo.GetEvaluationByUser(userID)
}

func (svc *service) SaveEvaluation(userID int, ne NewEvaluation) (Evaluation, error) {
	return svc.repo.UpsertEvaluation(Evaluation{
		UserID:         userID,
		Score:          ne.Score,
		TotalQuestions: ne.TotalQuestions,
		Completed:      ne.Completed,
		UpdatedAt:      time.Now().UTC(),
	})
}

func (svc *service) SubmitFeedback(userID int, nf NewFeedback) (Feedback, error) {
	improvements := nf.Improvements
	if improvements == nil {
		improvements = []string{}
	}
	return svc.repo.CreateFeedback(Feedback{
		UserID:       userID,
		Rating:       nf.Rating,
		Improvements: improvements,
		FeedbackText: nf.FeedbackText,
		SubmittedAt:  time.Now().UTC(),
	})
}

// Summary derives the overall completion percentage and the resume target
// from the user's progress records alone. A module with no record counts as
// 0% and incomplete.
func (svc *service) Summary(userID int) (Overview, error) {
	records, err := svc.repo.QueryProgressByUser(userID)
	if err != nil {
		return Overview{}, err
	}

	byModule := make(map[int]Progress, len(records))
	for _, rec := range records {
		byModule[rec.ModuleID] = rec
	}

	var completed int
	for _, id := range svc.trackedIDs {
		if rec, ok := byModule[id]; ok && (rec.Completed || rec.PercentComplete == 100) {
			completed++
		}
	}

	ov := Overview{
		OverallPercent:   int(math.Round(float64(completed) / float64(len(svc.trackedIDs)) * 100)),
		CompletedModules: completed,
		TotalModules:     len(svc.trackedIDs),
		ResumeTarget:     ResumeFeedback,
	}

	// resume at the first tracked module, in canonical order, under 100%
	for _, id := range svc.trackedIDs {
		if byModule[id].PercentComplete < 100 {
			ov.ResumeModuleID = id
			if mod, err := svc.modules.GetModuleByID(id); err == nil {
				ov.ResumeTarget = mod.Slug
			}
			break
		}
	}
	return ov, nil
}
