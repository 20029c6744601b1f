package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/knowledgeflow/backend/core/track"
)

type trackApi struct {
	svc      track.Service
	validate *validator.Validate
}

func registerTrackAPI(g *echo.Group, session *sessionManager, deps Deps) {
	api := trackApi{
		svc:      deps.TrackSvc,
		validate: deps.Validate,
	}

	// all endpoints require a session
	ag := g.Group("", session.requireAuth)
	ag.GET("/progress", api.queryProgress)
	ag.POST("/progress", api.saveProgress)
	ag.GET("/progress/summary", api.progressSummary)
	ag.GET("/evaluation", api.retrieveEvaluation)
	ag.POST("/evaluation", api.saveEvaluation)
	ag.POST("/feedback", api.submitFeedback)
}

// Handlers

func (api *trackApi) queryProgress(ctx echo.Context) error {
	records, err := api.svc.ProgressByUser(sessionUserID(ctx))
	if err != nil {
		return errors.Wrap(err, "querying progress")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *trackApi) saveProgress(ctx echo.Context) error {
	var data track.UpsertProgress
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpsertProgress")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.SaveProgress(sessionUserID(ctx), data)
	if err != nil {
		return errors.Wrap(err, "saving progress")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *trackApi) progressSummary(ctx echo.Context) error {
	overview, err := api.svc.Summary(sessionUserID(ctx))
	if err != nil {
		return errors.Wrap(err, "summarizing progress")
	}
	return ctx.JSON(http.StatusOK, overview)
}

func (api *trackApi) retrieveEvaluation(ctx echo.Context) error {
	ev, err := api.svc.EvaluationByUser(sessionUserID(ctx))
	if err != nil {
		if errors.Cause(err) == track.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting evaluation")
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *trackApi) saveEvaluation(ctx echo.Context) error {
	var data track.NewEvaluation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvaluation")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ev, err := api.svc.SaveEvaluation(sessionUserID(ctx), data)
	if err != nil {
		return errors.Wrap(err, "saving evaluation")
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *trackApi) submitFeedback(ctx echo.Context) error {
	var data track.NewFeedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFeedback")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	fb, err := api.svc.SubmitFeedback(sessionUserID(ctx), data)
	if err != nil {
		return errors.Wrap(err, "submitting feedback")
	}
	return ctx.JSON(http.StatusOK, fb)
}

// sessionUserID returns the user ID set by requireAuth.
func sessionUserID(ctx echo.Context) int {
	id, _ := ctx.Get(contextUserIDKey).(int)
	return id
}
