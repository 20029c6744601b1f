package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/knowledgeflow/backend/core/catalog"
)

type courseRow struct {
	ID          int       `db:"id"`
	Title       string    `db:"title"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	ImageURL    string    `db:"image_url"`
	Category    string    `db:"category"`
	Level       string    `db:"level"`
	Duration    string    `db:"duration"`
	Featured    bool      `db:"featured"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r courseRow) toCourse() catalog.Course {
	return catalog.Course{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Level:       r.Level,
		Duration:    r.Duration,
		Featured:    r.Featured,
		CreatedAt:   r.CreatedAt,
	}
}

type moduleRow struct {
	ID          int    `db:"id"`
	CourseID    int    `db:"course_id"`
	Title       string `db:"title"`
	Slug        string `db:"slug"`
	Description string `db:"description"`
	Order       int    `db:"order"`
}

func (r moduleRow) toModule() catalog.Module {
	return catalog.Module{
		ID:          r.ID,
		CourseID:    r.CourseID,
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Order:       r.Order,
	}
}

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) catalog.Repository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) CreateCourse(c catalog.Course) (catalog.Course, error) {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	var row courseRow
	err := repo.db.Get(
		&row,
		`INSERT INTO courses (title, slug, description, image_url, category, level, duration, featured, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING *`,
		c.Title, c.Slug, c.Description, c.ImageURL, c.Category, c.Level, c.Duration, c.Featured, createdAt,
	)
	if err != nil {
		return catalog.Course{}, errors.Wrap(err, "inserting course")
	}
	return row.toCourse(), nil
}

func (repo *catalogRepository) QueryAllCourses() ([]catalog.Course, error) {
	return repo.queryCourses(`SELECT * FROM courses ORDER BY id`)
}

func (repo *catalogRepository) GetCourseByID(id int) (catalog.Course, error) {
	var row courseRow
	if err := repo.db.Get(&row, `SELECT * FROM courses WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Course{}, catalog.ErrNotFound
		}
		return catalog.Course{}, errors.Wrap(err, "getting course by ID")
	}
	return row.toCourse(), nil
}

func (repo *catalogRepository) GetCourseBySlug(slug string) (catalog.Course, error) {
	var row courseRow
	if err := repo.db.Get(&row, `SELECT * FROM courses WHERE slug = $1`, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Course{}, catalog.ErrNotFound
		}
		return catalog.Course{}, errors.Wrap(err, "getting course by slug")
	}
	return row.toCourse(), nil
}

func (repo *catalogRepository) FilterFeaturedCourses() ([]catalog.Course, error) {
	return repo.queryCourses(`SELECT * FROM courses WHERE featured ORDER BY id`)
}

func (repo *catalogRepository) FilterCoursesByCategory(category string) ([]catalog.Course, error) {
	return repo.queryCourses(`SELECT * FROM courses WHERE category = $1 ORDER BY id`, category)
}

func (repo *catalogRepository) queryCourses(query string, args ...interface{}) ([]catalog.Course, error) {
	var rows []courseRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]catalog.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.toCourse())
	}
	return courses, nil
}

func (repo *catalogRepository) CreateModule(m catalog.Module) (catalog.Module, error) {
	var row moduleRow
	err := repo.db.Get(
		&row,
		`INSERT INTO modules (course_id, title, slug, description, "order")
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING *`,
		m.CourseID, m.Title, m.Slug, m.Description, m.Order,
	)
	if err != nil {
		return catalog.Module{}, errors.Wrap(err, "inserting module")
	}
	return row.toModule(), nil
}

func (repo *catalogRepository) QueryAllModules() ([]catalog.Module, error) {
	return repo.queryModules(`SELECT * FROM modules ORDER BY "order", id`)
}

func (repo *catalogRepository) GetModuleByID(id int) (catalog.Module, error) {
	var row moduleRow
	if err := repo.db.Get(&row, `SELECT * FROM modules WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Module{}, catalog.ErrNotFound
		}
		return catalog.Module{}, errors.Wrap(err, "getting module by ID")
	}
	return row.toModule(), nil
}

func (repo *catalogRepository) GetModuleBySlug(slug string) (catalog.Module, error) {
	var row moduleRow
	if err := repo.db.Get(&row, `SELECT * FROM modules WHERE slug = $1`, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Module{}, catalog.ErrNotFound
		}
		return catalog.Module{}, errors.Wrap(err, "getting module by slug")
	}
	return row.toModule(), nil
}

func (repo *catalogRepository) FilterModulesByCourse(courseID int) ([]catalog.Module, error) {
	return repo.queryModules(`SELECT * FROM modules WHERE course_id = $1 ORDER BY "order", id`, courseID)
}

func (repo *catalogRepository) queryModules(query string, args ...interface{}) ([]catalog.Module, error) {
	var rows []moduleRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying modules")
	}
	modules := make([]catalog.Module, 0, len(rows))
	for _, row := range rows {
		modules = append(modules, row.toModule())
	}
	return modules, nil
}
