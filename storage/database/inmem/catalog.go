package inmemdb

import (
	"sort"
	"time"

	"github.com/knowledgeflow/backend/core/catalog"
)

type catalogRepository struct {
	courses *courseTable
	modules *moduleTable
}

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{courses: db.course, modules: db.module}
}

func (repo *catalogRepository) CreateCourse(c catalog.Course) (catalog.Course, error) {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	repo.courses.seq++
	c.ID = repo.courses.seq
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	repo.courses.table[c.ID] = &c
	repo.courses.order = append(repo.courses.order, c.ID)
	return c, nil
}

func (repo *catalogRepository) QueryAllCourses() ([]catalog.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()
	return repo.queryCourses(func(catalog.Course) bool { return true }), nil
}

func (repo *catalogRepository) GetCourseByID(id int) (catalog.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	if c, ok := repo.courses.table[id]; ok {
		return *c, nil
	}
	return catalog.Course{}, catalog.ErrNotFound
}

func (repo *catalogRepository) GetCourseBySlug(slug string) (catalog.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	for _, c := range repo.courses.table {
		if c.Slug == slug {
			return *c, nil
		}
	}
	return catalog.Course{}, catalog.ErrNotFound
}

func (repo *catalogRepository) FilterFeaturedCourses() ([]catalog.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()
	return repo.queryCourses(func(c catalog.Course) bool { return c.Featured }), nil
}

func (repo *catalogRepository) FilterCoursesByCategory(category string) ([]catalog.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()
	return repo.queryCourses(func(c catalog.Course) bool { return c.Category == category }), nil
}

// queryCourses returns matching courses in insertion order. Callers hold the lock.
func (repo *catalogRepository) queryCourses(match func(catalog.Course) bool) []catalog.Course {
	courses := make([]catalog.Course, 0, len(repo.courses.order))
	for _, id := range repo.courses.order {
		if c := repo.courses.table[id]; match(*c) {
			courses = append(courses, *c)
		}
	}
	return courses
}

func (repo *catalogRepository) CreateModule(m catalog.Module) (catalog.Module, error) {
	repo.modules.Lock()
	defer repo.modules.Unlock()

	repo.modules.seq++
	m.ID = repo.modules.seq
	repo.modules.table[m.ID] = &m
	repo.modules.order = append(repo.modules.order, m.ID)
	return m, nil
}

func (repo *catalogRepository) QueryAllModules() ([]catalog.Module, error) {
	repo.modules.RLock()
	defer repo.modules.RUnlock()
	return repo.queryModules(func(catalog.Module) bool { return true }), nil
}

func (repo *catalogRepository) GetModuleByID(id int) (catalog.Module, error) {
	repo.modules.RLock()
	defer repo.modules.RUnlock()

	if m, ok := repo.modules.table[id]; ok {
		return *m, nil
	}
	return catalog.Module{}, catalog.ErrNotFound
}

func (repo *catalogRepository) GetModuleBySlug(slug string) (catalog.Module, error) {
	repo.modules.RLock()
	defer repo.modules.RUnlock()

	for _, m := range repo.modules.table {
		if m.Slug == slug {
			return *m, nil
		}
	}
	return catalog.Module{}, catalog.ErrNotFound
}

func (repo *catalogRepository) FilterModulesByCourse(courseID int) ([]catalog.Module, error) {
	repo.modules.RLock()
	defer repo.modules.RUnlock()
	return repo.queryModules(func(m catalog.Module) bool { return m.CourseID == courseID }), nil
}

// queryModules returns matching modules ascending by Order; the sort is
// stable so ties keep insertion order. Callers hold the lock.
func (repo *catalogRepository) queryModules(match func(catalog.Module) bool) []catalog.Module {
	modules := make([]catalog.Module, 0, len(repo.modules.order))
	for _, id := range repo.modules.order {
		if m := repo.modules.table[id]; match(*m) {
			modules = append(modules, *m)
		}
	}
	sort.SliceStable(modules, func(i, j int) bool { return modules[i].Order < modules[j].Order })
	return modules
}
