package testutil

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/gorm"

	types "github.com/edutax/edutax-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, subject string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        subject,
		Email:     strPtr(subject + "@example.com"),
		FirstName: strPtr("Test"),
		LastName:  strPtr("User"),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Course {
	tb.Helper()
	c := &types.Course{
		Slug:         slug,
		Title:        "Course " + slug,
		Description:  "description",
		Level:        "Beginner",
		Duration:     "4 Weeks",
		Instructor:   "Instructor",
		ThumbnailURL: strPtr("/placeholder-tax.jpg"),
	}
	if err := tx.WithContext(ctx).Omit("Modules").Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedModule(tb testing.TB, ctx context.Context, tx *gorm.DB, course *types.Course, number int) *types.Module {
	tb.Helper()
	m := &types.Module{
		CourseID:     course.ID,
		ModuleNumber: number,
		Title:        fmt.Sprintf("Module %d", number),
		Description:  "module",
	}
	if err := tx.WithContext(ctx).Omit("Lessons").Create(m).Error; err != nil {
		tb.Fatalf("seed module: %v", err)
	}
	return m
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, module *types.Module, number int) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ModuleID:     module.ID,
		LessonNumber: number,
		Title:        fmt.Sprintf("Lesson %d", number),
		Description:  "Lesson content",
		Duration:     "45 Minutes",
		Content:      strPtr("Detailed lesson content."),
		DriveURL:     strPtr("https://drive.google.com"),
		ZoomURL:      strPtr("https://zoom.us"),
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID string, course *types.Course) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{UserID: userID, CourseID: course.ID}
	if err := tx.WithContext(ctx).Omit("User", "Course").Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}
