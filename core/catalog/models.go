package catalog

import "time"

// Course is a catalog entry. Courses are seeded at startup and read-only
// during normal operation.
type Course struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	Level       string    `json:"level,omitempty"` // Beginner, Intermediate, Advanced
	Duration    string    `json:"duration,omitempty"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
}

// Module is an ordered unit of instructional content belonging to a Course.
// Order values are unique within a course and define presentation sequence.
type Module struct {
	ID          int    `json:"id"`
	CourseID    int    `json:"courseId"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}
