package domain

import (
	"github.com/edutax/edutax-backend/internal/domain/catalog"
	"github.com/edutax/edutax-backend/internal/domain/user"
)

type User = user.User
type UserProfile = user.Profile

type Course = catalog.Course
type Module = catalog.Module
type Lesson = catalog.Lesson
type Enrollment = catalog.Enrollment

type CourseDetail = catalog.CourseDetail
type ModuleDetail = catalog.ModuleDetail
