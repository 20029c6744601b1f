package inmemdb

import (
	"sync"

	"github.com/knowledgeflow/backend/core/catalog"
	"github.com/knowledgeflow/backend/core/track"
	"github.com/knowledgeflow/backend/core/user"
)

// DB is the in-memory storage engine: one table per entity kind, each with
// its own lock and a monotonic ID sequence that is never reused.
type (
	DB struct {
		user       *userTable
		course     *courseTable
		module     *moduleTable
		progress   *progressTable
		evaluation *evaluationTable
		feedback   *feedbackTable
	}

	userTable struct {
		sync.RWMutex
		seq   int
		table map[int]*user.User
	}

	courseTable struct {
		sync.RWMutex
		seq   int
		table map[int]*catalog.Course
		order []int // insertion order
	}

	moduleTable struct {
		sync.RWMutex
		seq   int
		table map[int]*catalog.Module
		order []int // insertion order
	}

	// progressKey is the composite identity of a Progress record.
	progressKey struct {
		UserID   int
		ModuleID int
	}

	progressTable struct {
		sync.RWMutex
		seq   int
		table map[progressKey]*track.Progress
	}

	evaluationTable struct {
		sync.RWMutex
		seq   int
		table map[int]*track.Evaluation // keyed by UserID
	}

	feedbackTable struct {
		sync.RWMutex
		seq   int
		table map[int]*track.Feedback
		order []int // insertion order
	}
)

// Open returns a fresh DB with the default catalog seeded.
func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[int]*user.User)},
		course:     &courseTable{table: make(map[int]*catalog.Course)},
		module:     &moduleTable{table: make(map[int]*catalog.Module)},
		progress:   &progressTable{table: make(map[progressKey]*track.Progress)},
		evaluation: &evaluationTable{table: make(map[int]*track.Evaluation)},
		feedback:   &feedbackTable{table: make(map[int]*track.Feedback)},
	}
	if err := catalog.Seed(NewCatalogRepository(db)); err != nil {
		return nil, err
	}
	return db, nil
}
