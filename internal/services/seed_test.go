package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutax/edutax-backend/internal/data/repos"
	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/platform/dbctx"
)

func TestSeedCatalogIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, env.seed.SeedCatalog(ctx))
	}

	assert.EqualValues(t, 2, countRows(t, env.db, "course"))
	assert.EqualValues(t, 10, countRows(t, env.db, "module"))
	assert.EqualValues(t, 30, countRows(t, env.db, "lesson"))
}

func TestSeedCatalogContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.seed.SeedCatalog(ctx))

	a, err := env.courses.GetCourseDetailBySlug(ctx, "brevet-a")
	require.NoError(t, err)
	assert.Equal(t, "Brevet A", a.Title)
	assert.Equal(t, "Beginner", a.Level)
	assert.Equal(t, "4 Weeks", a.Duration)
	assert.Equal(t, "John Smith", a.Instructor)
	require.NotNil(t, a.ThumbnailURL)
	assert.Equal(t, "/placeholder-tax.jpg", *a.ThumbnailURL)
	assert.Contains(t, a.Description, "Master the fundamentals of taxation in Indonesia")

	require.Len(t, a.Modules, 5)
	assert.Equal(t, "Introduction to the Indonesian Tax System", a.Modules[0].Title)
	assert.Equal(t, "Tax Administration and e-Filing", a.Modules[4].Title)

	first := a.Modules[0].Lessons[0]
	assert.Equal(t, "45 Minutes", first.Duration)
	assert.Contains(t, first.Description, "budgetary, regulatory, and redistributive")
	require.NotNil(t, first.Content)
	assert.Equal(t, "Detailed lesson content about the Indonesian tax system structure and functions.", *first.Content)
	require.NotNil(t, first.DriveURL)
	assert.Equal(t, "https://drive.google.com", *first.DriveURL)

	generic := a.Modules[2].Lessons[1]
	assert.Equal(t, "Module lesson 2", generic.Title)
	assert.Equal(t, "Lesson content", generic.Description)
	assert.Equal(t, "Detailed lesson content.", *generic.Content)
	assert.Equal(t, "https://zoom.us", *generic.ZoomURL)

	b, err := env.courses.GetCourseDetailBySlug(ctx, "brevet-b")
	require.NoError(t, err)
	assert.Equal(t, "Emily Johnson", b.Instructor)
	assert.Equal(t, "Intermediate", b.Level)
	require.Len(t, b.Modules, 5)
	assert.Equal(t, "International Taxation", b.Modules[3].Title)
	assert.Equal(t, "1 Hour", b.Modules[0].Lessons[1].Duration)
}

// brokenLessons fails every insert so the seed aborts after courses and modules.
type brokenLessons struct {
	repos.LessonRepo
}

func (brokenLessons) Create(dbctx.Context, []*types.Lesson) ([]*types.Lesson, error) {
	return nil, errors.New("disk full")
}

func TestSeedCatalogRollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	catalog, err := DefaultSeedCatalog()
	require.NoError(t, err)

	broken := NewSeedService(env.db, env.log, catalog, env.courseRepo, env.moduleRepo, brokenLessons{env.lessonRepo})
	err = broken.SeedCatalog(ctx)
	require.Error(t, err)

	assert.EqualValues(t, 0, countRows(t, env.db, "course"), "partial seed must roll back")
	assert.EqualValues(t, 0, countRows(t, env.db, "module"))

	require.NoError(t, env.seed.SeedCatalog(ctx), "next attempt should seed from scratch")
	assert.EqualValues(t, 2, countRows(t, env.db, "course"))
	assert.EqualValues(t, 30, countRows(t, env.db, "lesson"))
}

func TestParseSeedCatalogValidation(t *testing.T) {
	_, err := ParseSeedCatalog([]byte(`
courses:
  - slug: dup
    title: One
  - slug: dup
    title: Two
  - title: No slug
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate slug "dup"`)
	assert.Contains(t, err.Error(), "courses[2]: slug is required")
}

func TestLoadSeedCatalogDefaultsToEmbedded(t *testing.T) {
	c, err := LoadSeedCatalog("")
	require.NoError(t, err)
	require.Len(t, c.Courses, 2)
	assert.Equal(t, "brevet-a", c.Courses[0].Slug)
	assert.Len(t, c.Courses[1].Modules[4].Lessons, 3)
}
