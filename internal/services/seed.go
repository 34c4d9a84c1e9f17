package services

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/edutax/edutax-backend/internal/data/repos"
	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/platform/dbctx"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

//go:embed seeddata/catalog.yaml
var defaultCatalogYAML []byte

type SeedLesson struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Duration    string `yaml:"duration"`
	Content     string `yaml:"content"`
	DriveURL    string `yaml:"drive_url"`
	ZoomURL     string `yaml:"zoom_url"`
}

type SeedModule struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Lessons     []SeedLesson `yaml:"lessons"`
}

type SeedCourse struct {
	Slug         string       `yaml:"slug"`
	Title        string       `yaml:"title"`
	Description  string       `yaml:"description"`
	Level        string       `yaml:"level"`
	Duration     string       `yaml:"duration"`
	Instructor   string       `yaml:"instructor"`
	ThumbnailURL string       `yaml:"thumbnail_url"`
	Modules      []SeedModule `yaml:"modules"`
}

// SeedCatalog is the YAML document describing the initial catalog.
type SeedCatalog struct {
	LessonDefaults SeedLesson   `yaml:"lesson_defaults"`
	Courses        []SeedCourse `yaml:"courses"`
}

// DefaultSeedCatalog returns the embedded catalog.
func DefaultSeedCatalog() (*SeedCatalog, error) {
	return ParseSeedCatalog(defaultCatalogYAML)
}

// LoadSeedCatalog reads path, or the embedded catalog when path is empty.
func LoadSeedCatalog(path string) (*SeedCatalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultSeedCatalog()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed catalog %s: %w", path, err)
	}
	return ParseSeedCatalog(raw)
}

func ParseSeedCatalog(raw []byte) (*SeedCatalog, error) {
	var c SeedCatalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *SeedCatalog) validate() error {
	var problems []string
	slugs := map[string]bool{}
	for i, course := range c.Courses {
		switch {
		case strings.TrimSpace(course.Slug) == "":
			problems = append(problems, fmt.Sprintf("courses[%d]: slug is required", i))
		case slugs[course.Slug]:
			problems = append(problems, fmt.Sprintf("courses[%d]: duplicate slug %q", i, course.Slug))
		}
		slugs[course.Slug] = true
		if strings.TrimSpace(course.Title) == "" {
			problems = append(problems, fmt.Sprintf("courses[%d]: title is required", i))
		}
		for j, m := range course.Modules {
			if strings.TrimSpace(m.Title) == "" {
				problems = append(problems, fmt.Sprintf("courses[%d].modules[%d]: title is required", i, j))
			}
			for k, l := range m.Lessons {
				if strings.TrimSpace(l.Title) == "" {
					problems = append(problems, fmt.Sprintf("courses[%d].modules[%d].lessons[%d]: title is required", i, j, k))
				}
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid seed catalog:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type SeedService interface {
	// SeedCatalog inserts the catalog if no course exists yet. It is safe to call
	// on every boot and from several replicas at once.
	SeedCatalog(ctx context.Context) error
}

type seedService struct {
	tx         dbctx.TxRunner
	log        *logger.Logger
	catalog    *SeedCatalog
	courseRepo repos.CourseRepo
	moduleRepo repos.ModuleRepo
	lessonRepo repos.LessonRepo
}

func NewSeedService(
	db *gorm.DB,
	baseLog *logger.Logger,
	catalog *SeedCatalog,
	courseRepo repos.CourseRepo,
	moduleRepo repos.ModuleRepo,
	lessonRepo repos.LessonRepo,
) SeedService {
	return &seedService{
		tx:         dbctx.NewTxRunner(db),
		log:        baseLog.With("service", "SeedService"),
		catalog:    catalog,
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
	}
}

var errAlreadySeeded = errors.New("catalog already seeded")

func (s *seedService) SeedCatalog(ctx context.Context) error {
	if s.catalog == nil || len(s.catalog.Courses) == 0 {
		s.log.Warn("Seed catalog is empty, skipping")
		return nil
	}

	var nCourses, nModules, nLessons int
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {

		existing, err := s.courseRepo.Count(dbc)
		if err != nil {
			return fmt.Errorf("count courses: %w", err)
		}
		if existing > 0 {
			return errAlreadySeeded
		}

		courses := make([]*types.Course, 0, len(s.catalog.Courses))
		for _, c := range s.catalog.Courses {
			courses = append(courses, &types.Course{
				Slug:         c.Slug,
				Title:        c.Title,
				Description:  strings.TrimSpace(c.Description),
				Level:        c.Level,
				Duration:     c.Duration,
				Instructor:   c.Instructor,
				ThumbnailURL: optionalString(c.ThumbnailURL),
			})
		}
		if _, err := s.courseRepo.Create(dbc, courses); err != nil {
			return fmt.Errorf("insert courses: %w", err)
		}

		var modules []*types.Module
		var owners []SeedModule
		for i, c := range s.catalog.Courses {
			for j, m := range c.Modules {
				modules = append(modules, &types.Module{
					CourseID:     courses[i].ID,
					ModuleNumber: j + 1,
					Title:        m.Title,
					Description:  strings.TrimSpace(m.Description),
				})
				owners = append(owners, m)
			}
		}
		if _, err := s.moduleRepo.Create(dbc, modules); err != nil {
			return fmt.Errorf("insert modules: %w", err)
		}

		d := s.catalog.LessonDefaults
		var lessons []*types.Lesson
		for i, m := range owners {
			for k, l := range m.Lessons {
				lessons = append(lessons, &types.Lesson{
					ModuleID:     modules[i].ID,
					LessonNumber: k + 1,
					Title:        l.Title,
					Description:  strings.TrimSpace(orDefault(l.Description, d.Description)),
					Duration:     orDefault(l.Duration, d.Duration),
					Content:      optionalString(orDefault(l.Content, d.Content)),
					DriveURL:     optionalString(orDefault(l.DriveURL, d.DriveURL)),
					ZoomURL:      optionalString(orDefault(l.ZoomURL, d.ZoomURL)),
				})
			}
		}
		if _, err := s.lessonRepo.Create(dbc, lessons); err != nil {
			return fmt.Errorf("insert lessons: %w", err)
		}

		nCourses, nModules, nLessons = len(courses), len(modules), len(lessons)
		return nil
	})

	switch {
	case err == nil:
		s.log.Info("Catalog seeded", "courses", nCourses, "modules", nModules, "lessons", nLessons)
		return nil
	case errors.Is(err, errAlreadySeeded):
		s.log.Debug("Catalog already present, seed skipped")
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// Another process committed the same catalog between our count and insert.
		s.log.Info("Catalog seeded concurrently by another instance")
		return nil
	default:
		s.log.Error("Seed catalog failed", "error", err)
		return fmt.Errorf("seed catalog: %w", err)
	}
}
