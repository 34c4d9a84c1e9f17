package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/edutax/edutax-backend/internal/domain"
)

func TestGetLesson(t *testing.T) {
	id, moduleID := uuid.New(), uuid.New()
	drive := "https://drive.example/l1"
	svc := &fakeCourseService{lessons: map[uuid.UUID]*types.Lesson{
		id: {ID: id, ModuleID: moduleID, LessonNumber: 2, Title: "Exercices", DriveURL: &drive},
	}}
	h := NewLessonHandler(testLogger(t), svc)

	t.Run("found", func(t *testing.T) {
		rec := serve(t, http.MethodGet, "/api/lessons/:id", "/api/lessons/"+id.String(), "u1", nil, h.GetLesson)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[map[string]any](t, rec)
		assert.Equal(t, drive, got["driveUrl"])
		assert.EqualValues(t, 2, got["lessonNumber"])
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := serve(t, http.MethodGet, "/api/lessons/:id", "/api/lessons/"+uuid.NewString(), "u1", nil, h.GetLesson)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Lesson not found", decode[map[string]string](t, rec)["message"])
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := serve(t, http.MethodGet, "/api/lessons/:id", "/api/lessons/not-a-uuid", "u1", nil, h.GetLesson)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListModuleLessons(t *testing.T) {
	moduleID := uuid.New()
	a, b := uuid.New(), uuid.New()
	svc := &fakeCourseService{lessons: map[uuid.UUID]*types.Lesson{
		a: {ID: a, ModuleID: moduleID, LessonNumber: 1},
		b: {ID: b, ModuleID: uuid.New(), LessonNumber: 1},
	}}
	h := NewLessonHandler(testLogger(t), svc)

	rec := serve(t, http.MethodGet, "/api/modules/:id/lessons", "/api/modules/"+moduleID.String()+"/lessons", "", nil, h.ListModuleLessons)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = serve(t, http.MethodGet, "/api/modules/:id/lessons", "/api/modules/garbage/lessons", "", nil, h.ListModuleLessons)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
