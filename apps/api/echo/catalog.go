package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/knowledgeflow/backend/core/catalog"
)

var errInvalidID = echo.NewHTTPError(http.StatusBadRequest, "invalid id")

type catalogApi struct {
	svc catalog.Service
}

func registerCatalogAPI(g *echo.Group, deps Deps) {
	api := catalogApi{svc: deps.CatalogSvc}

	cg := g.Group("/courses")
	cg.GET("", api.queryCourses)
	cg.GET("/featured", api.queryFeaturedCourses)
	cg.GET("/category/:category", api.queryCoursesByCategory)
	cg.GET("/:id", api.retrieveCourse)

	mg := g.Group("/modules")
	mg.GET("", api.queryModules)
	mg.GET("/course/:courseId", api.queryCourseModules)
	mg.GET("/:slug", api.retrieveModule)
}

// Handlers

func (api *catalogApi) queryCourses(ctx echo.Context) error {
	courses, err := api.svc.Courses()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *catalogApi) queryFeaturedCourses(ctx echo.Context) error {
	courses, err := api.svc.FeaturedCourses()
	if err != nil {
		return errors.Wrap(err, "querying featured courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *catalogApi) queryCoursesByCategory(ctx echo.Context) error {
	courses, err := api.svc.CoursesByCategory(ctx.Param("category"))
	if err != nil {
		return errors.Wrap(err, "querying courses by category")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *catalogApi) retrieveCourse(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errInvalidID
	}
	course, err := api.svc.CourseByID(id)
	if err != nil {
		if errors.Cause(err) == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *catalogApi) queryModules(ctx echo.Context) error {
	modules, err := api.svc.Modules()
	if err != nil {
		return errors.Wrap(err, "querying modules")
	}
	return ctx.JSON(http.StatusOK, modules)
}

func (api *catalogApi) queryCourseModules(ctx echo.Context) error {
	courseID, err := strconv.Atoi(ctx.Param("courseId"))
	if err != nil {
		return errInvalidID
	}
	modules, err := api.svc.ModulesByCourse(courseID)
	if err != nil {
		return errors.Wrap(err, "querying course modules")
	}
	return ctx.JSON(http.StatusOK, modules)
}

func (api *catalogApi) retrieveModule(ctx echo.Context) error {
	module, err := api.svc.ModuleBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Cause(err) == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting module")
	}
	return ctx.JSON(http.StatusOK, module)
}
