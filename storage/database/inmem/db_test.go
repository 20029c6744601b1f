package inmemdb_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledgeflow/backend/core/catalog"
	"github.com/knowledgeflow/backend/core/track"
	"github.com/knowledgeflow/backend/core/user"
	inmemdb "github.com/knowledgeflow/backend/storage/database/inmem"
	testutil "github.com/knowledgeflow/backend/tests"
)

func openDB(t *testing.T) *inmemdb.DB {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	return db
}

func Test_userRepository_CreateUser_uniqueUsername(t *testing.T) {
	db := openDB(t)
	repo := inmemdb.NewUserRepository(db)

	usr := testutil.CreateUser(t, repo, "Awe Some", "awe", "awe@test.cd", "mdr123", true)
	assert.Equal(t, 1, usr.ID)

	_, err := repo.CreateUser(user.User{Username: "awe", Email: "other@test.cd"})
	assert.Equal(t, user.ErrUsernameExists, err)

	// IDs are monotonic, never reused
	usr2 := testutil.CreateUser(t, repo, "", "lol", "lol@test.cd", "mdr123", true)
	assert.Equal(t, 2, usr2.ID)
}

func Test_userRepository_lookups(t *testing.T) {
	db := openDB(t)
	repo := inmemdb.NewUserRepository(db)

	usr := testutil.CreateUser(t, repo, "Awe Some", "awe", "awe@test.cd", "mdr123", true)

	got, err := repo.GetUserByID(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, usr.Username, got.Username)

	got, err = repo.GetUserByUsername("awe")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)

	_, err = repo.GetUserByID(999)
	assert.Equal(t, user.ErrNotFound, err)
	_, err = repo.GetUserByUsername("nope")
	assert.Equal(t, user.ErrNotFound, err)

	now := time.Now().UTC()
	got, err = repo.SetUserLastLogin(usr.ID, now)
	require.NoError(t, err)
	assert.Equal(t, now, got.LastLogin)
}

func Test_catalogRepository_seeded(t *testing.T) {
	db := openDB(t)
	repo := inmemdb.NewCatalogRepository(db)

	courses, err := repo.QueryAllCourses()
	require.NoError(t, err)
	assert.Len(t, courses, 3)

	modules, err := repo.QueryAllModules()
	require.NoError(t, err)
	assert.Len(t, modules, 7)

	// ordered by "order", insertion order breaking ties
	for i := 1; i < len(modules); i++ {
		assert.LessOrEqual(t, modules[i-1].Order, modules[i].Order)
	}

	featured, err := repo.FilterFeaturedCourses()
	require.NoError(t, err)
	assert.Len(t, featured, 2)

	courseModules, err := repo.FilterModulesByCourse(1)
	require.NoError(t, err)
	assert.Len(t, courseModules, 3)

	mod, err := repo.GetModuleBySlug("social-factors")
	require.NoError(t, err)
	assert.Equal(t, 1, mod.ID)

	_, err = repo.GetModuleBySlug("nope")
	assert.Equal(t, catalog.ErrNotFound, err)
	_, err = repo.GetCourseByID(999)
	assert.Equal(t, catalog.ErrNotFound, err)
}

func Test_trackRepository_UpsertProgress(t *testing.T) {
	db := openDB(t)
	repo := inmemdb.NewTrackRepository(db)

	first := testutil.CreateProgress(t, repo, 1, 1, 40, false)
	assert.Equal(t, 1, first.ID)

	// same (user, module) pair updates in place, keeping the ID
	second := testutil.CreateProgress(t, repo, 1, 1, 90, false)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 90, second.PercentComplete)

	// a different module for the same user is a new record
	third := testutil.CreateProgress(t, repo, 1, 2, 10, false)
	assert.NotEqual(t, first.ID, third.ID)

	// a different user on the same module is a new record
	fourth := testutil.CreateProgress(t, repo, 2, 1, 10, false)
	assert.NotEqual(t, first.ID, fourth.ID)

	records, err := repo.QueryProgressByUser(1)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	rec, err := repo.GetModuleProgress(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 90, rec.PercentComplete)

	_, err = repo.GetModuleProgress(1, 999)
	assert.Equal(t, track.ErrNotFound, err)
}

func Test_trackRepository_UpsertEvaluation(t *testing.T) {
	db := openDB(t)
	repo := inmemdb.NewTrackRepository(db)

	_, err := repo.GetEvaluationByUser(1)
	assert.Equal(t, track.ErrNotFound, err)

	first, err := repo.UpsertEvaluation(track.Evaluation{UserID: 1, Score: 4, TotalQuestions: 10, UpdatedAt: time.Now().UTC()})
	require.NoError(t, err)

	// one evaluation per user
	second, err := repo.UpsertEvaluation(track.Evaluation{UserID: 1, Score: 8, TotalQuestions: 10, Completed: true, UpdatedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.GetEvaluationByUser(1)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Score)
	assert.True(t, got.Completed)
}

func Test_trackRepository_CreateFeedback(t *testing.T) {
	db := openDB(t)
	repo := inmemdb.NewTrackRepository(db)

	first, err := repo.CreateFeedback(track.Feedback{UserID: 1, Rating: 4, Improvements: []string{}, SubmittedAt: time.Now().UTC()})
	require.NoError(t, err)

	// append-only: a second submission is a new record
	second, err := repo.CreateFeedback(track.Feedback{UserID: 1, Rating: 5, Improvements: []string{"more examples"}, SubmittedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}
