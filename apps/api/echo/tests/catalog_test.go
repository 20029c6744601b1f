package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledgeflow/backend/core/catalog"
)

func Test_catalogApi_courses(t *testing.T) {
	tests := []httpTest{
		{name: "all courses", path: "/api/courses", wantCode: http.StatusOK, extra: 3},
		{name: "featured courses", path: "/api/courses/featured", wantCode: http.StatusOK, extra: 2},
		{name: "by category", path: "/api/courses/category/Fundamentals", wantCode: http.StatusOK, extra: 1},
		{name: "unknown category is empty", path: "/api/courses/category/Nope", wantCode: http.StatusOK, extra: 0},
		{name: "by id", path: "/api/courses/1", wantCode: http.StatusOK},
		{name: "unknown id", path: "/api/courses/999", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
		{name: "non-numeric id", path: "/api/courses/abc", wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid id"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if wantLen, ok := tt.extra.(int); ok {
				var courses []catalog.Course
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
				assert.Len(t, courses, wantLen)
			}
		})
	}
}

func Test_catalogApi_retrieveCourse(t *testing.T) {
	req, rec := newRequest(http.MethodGet, "/api/courses/1")
	app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var course catalog.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &course))
	assert.Equal(t, 1, course.ID)
	assert.Equal(t, "km-fundamentals", course.Slug)
	assert.True(t, course.Featured)
}

func Test_catalogApi_modules(t *testing.T) {
	t.Run("all modules ordered", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/modules")
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var modules []catalog.Module
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &modules))
		assert.Len(t, modules, 7)
		for i := 1; i < len(modules); i++ {
			assert.LessOrEqual(t, modules[i-1].Order, modules[i].Order)
		}
	})

	t.Run("by course", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/modules/course/1")
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var modules []catalog.Module
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &modules))
		assert.Len(t, modules, 3)
		assert.Equal(t, "social-factors", modules[0].Slug)
		assert.Equal(t, "cultural-factors", modules[1].Slug)
		assert.Equal(t, "evaluation", modules[2].Slug)
	})

	t.Run("by slug", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/modules/social-factors")
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var mod catalog.Module
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mod))
		assert.Equal(t, 1, mod.ID)
		assert.Equal(t, "Social Factors in Knowledge Management", mod.Title)
	})

	t.Run("unknown slug", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/modules/nope")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})
}
