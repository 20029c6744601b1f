package track

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/knowledgeflow/backend/core"
)

// Progress is the join between a User and a Module, uniquely identified by
// the (UserID, ModuleID) pair. Invariant: Completed is true whenever
// PercentComplete is 100, regardless of what the caller asked for.
type Progress struct {
	ID              int       `json:"id"`
	UserID          int       `json:"userId"`
	ModuleID        int       `json:"moduleId"`
	PercentComplete int       `json:"percentComplete"`
	Completed       bool      `json:"completed"`
	UpdatedAt       time.Time `json:"updatedAt"` // UTC
}

// Evaluation is a user's quiz result. At most one per user; a second
// submission overwrites the first.
type Evaluation struct {
	ID             int       `json:"id"`
	UserID         int       `json:"userId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Completed      bool      `json:"completed"`
	UpdatedAt      time.Time `json:"updatedAt"` // UTC
}

// Feedback is an append-only submission; users may submit any number of them.
type Feedback struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	Rating       int       `json:"rating"`
	Improvements []string  `json:"improvements"`
	FeedbackText string    `json:"feedbackText,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt"` // UTC
}

// UpsertProgress contains information needed to record a user's progress on a module.
type UpsertProgress struct {
	ModuleID        int  `json:"moduleId" validate:"required,gt=0"`
	PercentComplete int  `json:"percentComplete" validate:"gte=0,lte=100"`
	Completed       bool `json:"completed"`
}

func (up *UpsertProgress) Validate(validate *validator.Validate) error {
	return validate.Struct(up)
}

// NewEvaluation contains a quiz result to be saved for a user.
type NewEvaluation struct {
	Score          int  `json:"score" validate:"gte=0"`
	TotalQuestions int  `json:"totalQuestions" validate:"required,gt=0"`
	Completed      bool `json:"completed"`
}

func (ne *NewEvaluation) Validate(validate *validator.Validate) error {
	return validate.Struct(ne)
}

// NewFeedback contains a feedback submission.
type NewFeedback struct {
	Rating       int      `json:"rating" validate:"required,gte=1,lte=5"`
	Improvements []string `json:"improvements"`
	FeedbackText string   `json:"feedbackText"`
}

func (nf *NewFeedback) Validate(validate *validator.Validate) error {
	for i, imp := range nf.Improvements {
		nf.Improvements[i] = core.CleanString(imp)
	}
	nf.FeedbackText = core.CleanString(nf.FeedbackText)
	return validate.Struct(nf)
}

// Overview is the aggregation of a user's progress over the tracked modules.
type Overview struct {
	OverallPercent   int    `json:"overallPercent"`
	CompletedModules int    `json:"completedModules"`
	TotalModules     int    `json:"totalModules"`
	ResumeModuleID   int    `json:"resumeModuleId,omitempty"`
	ResumeTarget     string `json:"resumeTarget"` // module slug, or "feedback" when done
}
