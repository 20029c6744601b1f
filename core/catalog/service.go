package catalog

import (
	"errors"

	"github.com/knowledgeflow/backend/core"
)

var ErrNotFound = errors.New("not found")

type (
	Repository interface {
		CreateCourse(c Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id int) (Course, error)
		GetCourseBySlug(slug string) (Course, error)
		FilterFeaturedCourses() ([]Course, error)
		FilterCoursesByCategory(category string) ([]Course, error)

		CreateModule(m Module) (Module, error)
		// QueryAllModules returns all modules ordered ascending by Order;
		// the sort is stable, ties keep insertion order.
		QueryAllModules() ([]Module, error)
		GetModuleByID(id int) (Module, error)
		GetModuleBySlug(slug string) (Module, error)
		FilterModulesByCourse(courseID int) ([]Module, error)
	}

	Service interface {
		Courses() ([]Course, error)
		CourseByID(id int) (Course, error)
		CourseBySlug(slug string) (Course, error)
		FeaturedCourses() ([]Course, error)
		CoursesByCategory(category string) ([]Course, error)

		Modules() ([]Module, error)
		ModuleByID(id int) (Module, error)
		ModuleBySlug(slug string) (Module, error)
		ModulesByCourse(courseID int) ([]Module, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Courses() ([]Course, error)        { return svc.repo.QueryAllCourses() }
func (svc *service) CourseByID(id int) (Course, error) { return svc.repo.GetCourseByID(id) }
func (svc *service) FeaturedCourses() ([]Course, error) {
	return svc.repo.FilterFeaturedCourses()
}

func (svc *service) CourseBySlug(slug string) (Course, error) {
	return svc.repo.GetCourseBySlug(core.CleanString(slug, true /* lower */))
}

func (svc *service) CoursesByCategory(category string) ([]Course, error) {
	return svc.repo.FilterCoursesByCategory(core.CleanString(category))
}

func (svc *service) Modules() ([]Module, error)        { return svc.repo.QueryAllModules() }
func (svc *service) ModuleByID(id int) (Module, error) { return svc.repo.GetModuleByID(id) }

func (svc *service) ModuleBySlug(slug string) (Module, error) {
	return svc.repo.GetModuleBySlug(core.CleanString(slug, true /* lower */))
}

func (svc *service) ModulesByCourse(courseID int) ([]Module, error) {
	return svc.repo.FilterModulesByCourse(courseID)
}
