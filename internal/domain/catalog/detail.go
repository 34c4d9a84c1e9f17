package catalog

import (
	"cmp"
	"slices"
)

// CourseDetail is a course with its ordered curriculum. It marshals flat: the
// course fields plus a "modules" array.
type CourseDetail struct {
	Course
	Modules []ModuleDetail `json:"modules"`
}

type ModuleDetail struct {
	Module
	Lessons []Lesson `json:"lessons"`
}

// AssembleCurriculum groups lessons under their modules and orders both levels by
// their number field. Lessons whose module is not in modules are dropped.
func AssembleCurriculum(course Course, modules []Module, lessons []Lesson) *CourseDetail {
	sortedModules := slices.Clone(modules)
	slices.SortStableFunc(sortedModules, func(a, b Module) int {
		return cmp.Compare(a.ModuleNumber, b.ModuleNumber)
	})

	byModule := make(map[string][]Lesson, len(sortedModules))
	for _, l := range lessons {
		key := l.ModuleID.String()
		byModule[key] = append(byModule[key], l)
	}

	out := &CourseDetail{Course: course, Modules: make([]ModuleDetail, 0, len(sortedModules))}
	for _, m := range sortedModules {
		ls := byModule[m.ID.String()]
		slices.SortStableFunc(ls, func(a, b Lesson) int {
			return cmp.Compare(a.LessonNumber, b.LessonNumber)
		})
		if ls == nil {
			ls = []Lesson{}
		}
		m.Lessons = nil
		out.Modules = append(out.Modules, ModuleDetail{Module: m, Lessons: ls})
	}
	out.Course.Modules = nil
	return out
}
